package ui

import (
	"strings"

	"github.com/skelly-dev/projscout/internal/project"
)

type field struct {
	label string
	value string
}

// Render formats a snapshot: title, directory, known fields, then the
// description paragraph.
func Render(info project.Info, styles Styles) string {
	var b strings.Builder

	icon := info.Icon
	if icon == "" {
		icon = info.Type.Icon()
	}
	b.WriteString(styles.Title.Render(strings.TrimSpace(icon + " " + info.Name)))
	b.WriteString("\n")
	b.WriteString(styles.Dir.Render(info.Dir))
	b.WriteString("\n")

	fields := infoFields(info)
	if len(fields) > 0 {
		width := 0
		for _, f := range fields {
			width = max(width, len(f.label))
		}
		b.WriteString("\n")
		for _, f := range fields {
			label := f.label + ":" + strings.Repeat(" ", width-len(f.label)+1)
			b.WriteString(styles.Label.Render(label))
			b.WriteString(styles.Value.Render(f.value))
			b.WriteString("\n")
		}
	}

	if len(info.Description) > 0 {
		b.WriteString("\n")
		for _, line := range info.Description {
			b.WriteString(styles.Body.Render(line))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func infoFields(info project.Info) []field {
	fields := []field{{label: "type", value: info.Type.String()}}
	add := func(label, value string) {
		if value != "" {
			fields = append(fields, field{label: label, value: value})
		}
	}

	add("version", info.Version)
	if m := info.Module; m != nil {
		add("module", joinNonEmpty("@", m.Name, m.Version))
	}
	if p := info.Package; p != nil {
		add("package", joinNonEmpty(" ", p.Name, p.Version))
		add("edition", p.Edition)
	}
	if e := info.Engine; e != nil {
		add("editor", e.EditorVersion)
		add("organization", e.Organization)
		add("product", e.Product)
		add("executable", e.Executable)
	}
	return fields
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

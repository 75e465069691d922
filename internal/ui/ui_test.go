package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/skelly-dev/projscout/internal/project"
)

func sampleInfo() project.Info {
	return project.Info{
		Dir:         "/work/mylib",
		Type:        project.TypeBazel,
		Name:        "mylib",
		Icon:        project.TypeBazel.Icon(),
		Version:     "1.2.3",
		Description: []string{"Builds things.", "Quickly."},
		Module:      &project.ModuleInfo{Name: "mylib", Version: "1.2.3"},
		Stage:       project.StageRefined,
	}
}

func TestRenderPlain(t *testing.T) {
	out := Render(sampleInfo(), PlainStyles())
	lines := strings.Split(out, "\n")

	if lines[0] != project.TypeBazel.Icon()+" mylib" {
		t.Fatalf("unexpected title line: %q", lines[0])
	}
	if lines[1] != "/work/mylib" {
		t.Fatalf("unexpected dir line: %q", lines[1])
	}
	for _, want := range []string{"type:    bazel", "version: 1.2.3", "module:  mylib@1.2.3", "Builds things.", "Quickly."} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderEngineFields(t *testing.T) {
	info := project.Info{
		Dir:  "/g/shooter",
		Type: project.TypeUnity,
		Name: "Space Shooter",
		Engine: &project.EngineInfo{
			EditorVersion: "2022.3.10f1",
			Organization:  "Acme",
		},
	}
	out := Render(info, PlainStyles())
	if !strings.Contains(out, "editor:       2022.3.10f1") || !strings.Contains(out, "organization: Acme") {
		t.Fatalf("unexpected engine rendering:\n%s", out)
	}
	if strings.Contains(out, "product") || strings.Contains(out, "executable") {
		t.Fatalf("expected empty fields to be omitted:\n%s", out)
	}
	if !strings.HasPrefix(out, project.TypeUnity.Icon()) {
		t.Fatalf("expected type icon fallback, got %q", out)
	}
}

func TestInfoModelLifecycle(t *testing.T) {
	m := NewInfoModel(PlainStyles())
	if !strings.Contains(m.View(), "classifying") {
		t.Fatalf("expected placeholder before first snapshot")
	}

	baseline := sampleInfo()
	baseline.Name = "p"
	baseline.Stage = project.StageBaseline

	next, _ := m.Update(SnapshotMsg{Info: baseline})
	m = next.(InfoModel)
	if !strings.Contains(m.View(), "refining") {
		t.Fatalf("expected refining status while not done")
	}

	next, _ = m.Update(SnapshotMsg{Info: sampleInfo()})
	m = next.(InfoModel)
	next, _ = m.Update(SnapshotMsg{Info: baseline})
	m = next.(InfoModel)
	if m.Info().Name != "mylib" {
		t.Fatalf("expected refined snapshot to stay on display, got %q", m.Info().Name)
	}

	next, _ = m.Update(DoneMsg{})
	m = next.(InfoModel)
	if !m.Done() || strings.Contains(m.View(), "refining") {
		t.Fatalf("expected finished status after DoneMsg")
	}

	_, cmd := m.Update(spinner.TickMsg{})
	if cmd != nil {
		t.Fatalf("expected spinner to stop once done")
	}
}

func TestInfoModelQuitKeys(t *testing.T) {
	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	}
	for _, key := range keys {
		m := NewInfoModel(PlainStyles())
		next, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("expected quit command for %q", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected tea.QuitMsg for %q", key.String())
		}
		if next.(InfoModel).View() != "" {
			t.Fatalf("expected empty view after quit")
		}
	}
}

func TestInfoModelIgnoresOtherKeys(t *testing.T) {
	m := NewInfoModel(PlainStyles())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd != nil {
		t.Fatalf("expected no command for unrelated key")
	}
}

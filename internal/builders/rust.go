package builders

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/skelly-dev/projscout/internal/project"
	"github.com/skelly-dev/projscout/internal/readme"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var crateRoots = []string{
	filepath.Join("src", "lib.rs"),
	filepath.Join("src", "main.rs"),
}

// cargoManifest keeps version and edition loose: workspace members write
// them as tables ("version.workspace = true").
type cargoManifest struct {
	Package struct {
		Name        string `toml:"name"`
		Version     any    `toml:"version"`
		Edition     any    `toml:"edition"`
		Description any    `toml:"description"`
	} `toml:"package"`
}

// RustBuilder reads Cargo.toml and, without a README, the crate-level docs.
type RustBuilder struct {
	env Env
}

func NewRustBuilder(env Env) *RustBuilder {
	return &RustBuilder{env: env.withDefaults()}
}

func (b *RustBuilder) Enrich(ctx context.Context, req project.Request, emit project.Emit) {
	info := Baseline(b.env, req)
	manifest, err := b.readManifest(req.Dir)
	if err != nil {
		b.env.Logger.Debug("failed to decode Cargo.toml",
			zap.String("request_id", req.ID),
			zap.String("dir", req.Dir),
			zap.Error(err),
		)
	}

	patch := project.Info{}
	if manifest != nil {
		pkg := &project.PackageInfo{
			Name:    strings.TrimSpace(manifest.Package.Name),
			Version: stringValue(manifest.Package.Version),
			Edition: stringValue(manifest.Package.Edition),
		}
		if *pkg != (project.PackageInfo{}) {
			patch.Package = pkg
			patch.Version = pkg.Version
		}
	}
	if len(info.Description) == 0 {
		patch.Description = b.crateDocs(ctx, req.Dir)
		if len(patch.Description) == 0 && manifest != nil {
			if desc := stringValue(manifest.Package.Description); desc != "" {
				patch.Description = []string{desc}
			}
		}
	}
	emit(info.Merge(patch))
}

func (b *RustBuilder) readManifest(dir string) (*cargoManifest, error) {
	data, err := afero.ReadFile(b.env.FS, filepath.Join(dir, "Cargo.toml"))
	if err != nil {
		return nil, nil
	}
	var manifest cargoManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}

func (b *RustBuilder) crateDocs(ctx context.Context, dir string) []string {
	for _, rel := range crateRoots {
		path := filepath.Join(dir, rel)
		if !b.env.Prober.FileExists(path) {
			continue
		}
		content, err := afero.ReadFile(b.env.FS, path)
		if err != nil {
			continue
		}
		lines, err := innerDocLines(ctx, content, b.env.Readme.MaxLines)
		if err != nil {
			b.env.Logger.Debug("failed to parse crate root", zap.String("path", path), zap.Error(err))
			continue
		}
		if len(lines) > 0 {
			return lines
		}
	}
	return nil
}

// innerDocLines returns the first paragraph of leading "//!" comments.
func innerDocLines(ctx context.Context, content []byte, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		maxLines = readme.DefaultMaxLines
	}
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(rust.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	lines := make([]string, 0, maxLines)
	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		if node.Type() != "line_comment" {
			break
		}
		text := node.Content(content)
		if !strings.HasPrefix(text, "//!") {
			if len(lines) > 0 {
				break
			}
			continue
		}
		line := strings.TrimSpace(strings.TrimPrefix(text, "//!"))
		if line == "" {
			if len(lines) > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(line, "#") && len(lines) == 0 {
			continue
		}
		lines = append(lines, line)
		if len(lines) == maxLines {
			break
		}
	}
	return lines, nil
}

func stringValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

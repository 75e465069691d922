package builders

import (
	"context"
	"path/filepath"

	"github.com/skelly-dev/projscout/internal/project"
	"github.com/skelly-dev/projscout/internal/scrape"
)

// GodotBuilder reads the application name and the first export target.
type GodotBuilder struct {
	env Env
}

func NewGodotBuilder(env Env) *GodotBuilder {
	return &GodotBuilder{env: env.withDefaults()}
}

func (b *GodotBuilder) Enrich(_ context.Context, req project.Request, emit project.Emit) {
	info := Baseline(b.env, req)

	name := scrape.Unquote(scrape.ExtractEquals(b.env.FS, filepath.Join(req.Dir, "project.godot"), "config/name")["config/name"])
	executable := scrape.Unquote(scrape.ExtractEquals(b.env.FS, filepath.Join(req.Dir, "export_presets.cfg"), "export_path")["export_path"])

	patch := project.Info{Name: name}
	if executable != "" {
		patch.Engine = &project.EngineInfo{Executable: executable}
	}
	emit(info.Merge(patch))
}

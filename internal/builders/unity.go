package builders

import (
	"context"
	"path/filepath"

	"github.com/skelly-dev/projscout/internal/project"
	"github.com/skelly-dev/projscout/internal/scrape"
)

// UnityBuilder reads the editor version and player settings.
type UnityBuilder struct {
	env Env
}

func NewUnityBuilder(env Env) *UnityBuilder {
	return &UnityBuilder{env: env.withDefaults()}
}

func (b *UnityBuilder) Enrich(_ context.Context, req project.Request, emit project.Emit) {
	settings := filepath.Join(req.Dir, "ProjectSettings")
	version := scrape.ExtractColon(b.env.FS, filepath.Join(settings, "ProjectVersion.txt"), "m_EditorVersion")
	player := scrape.ExtractColon(b.env.FS, filepath.Join(settings, "ProjectSettings.asset"), "companyName", "productName")

	engine := project.EngineInfo{
		EditorVersion: version["m_EditorVersion"],
		Organization:  player["companyName"],
		Product:       player["productName"],
	}
	info := Baseline(b.env, req)
	if engine != (project.EngineInfo{}) {
		info = info.Merge(project.Info{
			Name:    engine.Product,
			Version: engine.EditorVersion,
			Engine:  &engine,
		})
	}
	emit(info)
}

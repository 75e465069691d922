package builders

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/skelly-dev/projscout/internal/project"
	"github.com/skelly-dev/projscout/internal/scrape"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type uprojectFile struct {
	EngineAssociation string `json:"EngineAssociation"`
}

// UnrealBuilder reads the project name from DefaultGame.ini and the engine
// association from the .uproject descriptor.
type UnrealBuilder struct {
	env Env
}

func NewUnrealBuilder(env Env) *UnrealBuilder {
	return &UnrealBuilder{env: env.withDefaults()}
}

func (b *UnrealBuilder) Enrich(_ context.Context, req project.Request, emit project.Emit) {
	info := Baseline(b.env, req)

	ini := filepath.Join(req.Dir, "Config", "DefaultGame.ini")
	patch := project.Info{
		Name: scrape.Unquote(scrape.ExtractEquals(b.env.FS, ini, "ProjectName")["ProjectName"]),
	}
	if engine := b.engineAssociation(req); engine != "" {
		patch.Engine = &project.EngineInfo{EditorVersion: engine}
		patch.Version = engine
	}
	emit(info.Merge(patch))
}

func (b *UnrealBuilder) engineAssociation(req project.Request) string {
	path := filepath.Join(req.Dir, filepath.Base(req.Dir)+".uproject")
	data, err := afero.ReadFile(b.env.FS, path)
	if err != nil {
		return ""
	}
	var descriptor uprojectFile
	if err := json.Unmarshal(data, &descriptor); err != nil {
		b.env.Logger.Debug("failed to decode uproject",
			zap.String("request_id", req.ID),
			zap.String("path", path),
			zap.Error(err),
		)
		return ""
	}
	return strings.TrimSpace(descriptor.EngineAssociation)
}

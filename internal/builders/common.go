// Package builders holds the per-type enrichment strategies.
package builders

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/skelly-dev/projscout/internal/probe"
	"github.com/skelly-dev/projscout/internal/project"
	"github.com/skelly-dev/projscout/internal/readme"
	"github.com/skelly-dev/projscout/internal/runner"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	DefaultBazelShell = "sh"
	DefaultBazelQuery = `bazel mod graph --depth=0 2>/dev/null | sed -n 's/^<root> (\(.*\)@\(.*\))$/\1 \2/p'`
)

// BazelOptions configures the module query. Query is handed to Shell as
// "-c <query>" and must print "<name> <version>" on one line.
type BazelOptions struct {
	Shell string
	Query string
}

func DefaultBazelOptions() BazelOptions {
	return BazelOptions{Shell: DefaultBazelShell, Query: DefaultBazelQuery}
}

// Env is shared by every strategy.
type Env struct {
	FS     afero.Fs
	Prober *probe.Prober
	Runner runner.Runner
	Logger *zap.Logger
	Readme readme.Options
	Bazel  BazelOptions
}

func (e Env) withDefaults() Env {
	if e.FS == nil {
		if e.Prober != nil {
			e.FS = e.Prober.Fs()
		} else {
			e.FS = afero.NewOsFs()
		}
	}
	if e.Prober == nil {
		e.Prober = probe.New(e.FS)
	}
	if e.Logger == nil {
		e.Logger = zap.NewNop()
	}
	if e.Runner == nil {
		e.Runner = runner.NewExec(0, e.Logger)
	}
	if strings.TrimSpace(e.Bazel.Shell) == "" {
		e.Bazel.Shell = DefaultBazelShell
	}
	if strings.TrimSpace(e.Bazel.Query) == "" {
		e.Bazel.Query = DefaultBazelQuery
	}
	return e
}

// Baseline is the generic snapshot every strategy starts from.
func Baseline(env Env, req project.Request) project.Info {
	env = env.withDefaults()
	return project.Info{
		Dir:         req.Dir,
		Type:        req.Type,
		Name:        filepath.Base(req.Dir),
		Icon:        req.Type.Icon(),
		Description: readme.Describe(env.FS, req.Dir, env.Readme),
		Stage:       project.StageBaseline,
	}
}

// baselineOnly serves types with nothing beyond the generic snapshot.
type baselineOnly struct {
	env Env
}

func newBaselineOnly(env Env) *baselineOnly {
	return &baselineOnly{env: env.withDefaults()}
}

func (b *baselineOnly) Enrich(_ context.Context, req project.Request, emit project.Emit) {
	emit(Baseline(b.env, req))
}

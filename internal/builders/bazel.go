package builders

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/skelly-dev/projscout/internal/project"
	"github.com/skelly-dev/projscout/internal/runner"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// BazelBuilder reads MODULE.bazel, emits, then asks bazel itself for the
// canonical module name and version.
type BazelBuilder struct {
	env Env
}

func NewBazelBuilder(env Env) *BazelBuilder {
	return &BazelBuilder{env: env.withDefaults()}
}

func (b *BazelBuilder) Enrich(ctx context.Context, req project.Request, emit project.Emit) {
	info := Baseline(b.env, req).Merge(b.scrapeModule(req.Dir))
	emit(info)

	logger := b.env.Logger.With(
		zap.String("request_id", req.ID),
		zap.String("dir", req.Dir),
	)
	b.env.Runner.Run(ctx, b.env.Bazel.Shell, []string{"-c", b.env.Bazel.Query}, req.Dir, func(res runner.Result) {
		patch, ok := parseModuleQuery(res)
		if !ok {
			logger.Debug("bazel module query yielded nothing",
				zap.Int("exit_code", res.ExitCode),
				zap.String("output", res.Output),
				zap.Error(res.Err),
			)
			return
		}
		emit(info.Merge(patch))
	})
}

var (
	moduleCallRe = regexp.MustCompile(`(?m)^[ \t]*module[ \t]*\(`)
	moduleAttrRe = regexp.MustCompile(`\b(name|version)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

// scrapeModule reads name and version from the module() call only.
func (b *BazelBuilder) scrapeModule(dir string) project.Info {
	data, err := afero.ReadFile(b.env.FS, filepath.Join(dir, "MODULE.bazel"))
	if err != nil {
		return project.Info{}
	}
	body, ok := moduleCall(string(data))
	if !ok {
		return project.Info{}
	}

	values := make(map[string]string, 2)
	for _, m := range moduleAttrRe.FindAllStringSubmatch(body, -1) {
		if _, seen := values[m[1]]; seen {
			continue
		}
		values[m[1]] = m[2] + m[3]
	}
	name, version := values["name"], values["version"]
	if name == "" && version == "" {
		return project.Info{}
	}
	return project.Info{
		Name:    name,
		Version: version,
		Module:  &project.ModuleInfo{Name: name, Version: version},
	}
}

// moduleCall returns the argument text of the first top-level module(...)
// call. Parentheses inside strings and comments are not counted.
func moduleCall(src string) (string, bool) {
	loc := moduleCallRe.FindStringIndex(src)
	if loc == nil {
		return "", false
	}
	start := loc[1]
	depth := 1
	var quote byte
	for i := start; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return src[start:i], true
			}
		}
	}
	return "", false
}

// parseModuleQuery accepts only a clean "<name> <version>" answer from a
// successful run.
func parseModuleQuery(res runner.Result) (project.Info, bool) {
	if !res.OK() {
		return project.Info{}, false
	}
	fields := strings.Fields(res.Output)
	if len(fields) != 2 {
		return project.Info{}, false
	}
	name, version := fields[0], fields[1]
	return project.Info{
		Name:    name,
		Version: version,
		Module:  &project.ModuleInfo{Name: name, Version: version},
		Stage:   project.StageRefined,
	}, true
}

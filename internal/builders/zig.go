package builders

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/skelly-dev/projscout/internal/project"
	"github.com/skelly-dev/projscout/internal/scrape"
)

// ZigBuilder reads the package name and version from build.zig.zon.
type ZigBuilder struct {
	env Env
}

func NewZigBuilder(env Env) *ZigBuilder {
	return &ZigBuilder{env: env.withDefaults()}
}

func (b *ZigBuilder) Enrich(_ context.Context, req project.Request, emit project.Emit) {
	info := Baseline(b.env, req)
	values := scrape.ExtractEquals(b.env.FS, filepath.Join(req.Dir, "build.zig.zon"), ".name", ".version")
	name := zonValue(values[".name"])
	version := zonValue(values[".version"])
	if name != "" || version != "" {
		info = info.Merge(project.Info{
			Version: version,
			Package: &project.PackageInfo{Name: name, Version: version},
		})
	}
	emit(info)
}

// zonValue accepts both string literals and enum literals (.name = .foo).
func zonValue(raw string) string {
	value := scrape.Unquote(raw)
	if strings.HasPrefix(value, ".") && !strings.HasPrefix(strings.TrimSpace(raw), `"`) {
		value = strings.TrimPrefix(value, ".")
	}
	return value
}

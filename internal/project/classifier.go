package project

import (
	"path/filepath"
	"strings"

	"github.com/skelly-dev/projscout/internal/probe"
)

// Rule maps a marker check to a project type.
type Rule struct {
	Type  Type
	Match func(p *probe.Prober, dir string) bool
}

var neovimManifests = []string{"stylua.toml", ".stylua.toml", "selene.toml", ".luarc.json"}

// DefaultRules returns the classification rules, highest priority first.
// Marker sets overlap (most projects also carry .git), so order matters.
func DefaultRules() []Rule {
	return []Rule{
		{Type: TypeBazel, Match: hasFile("MODULE.bazel")},
		{Type: TypeCMake, Match: hasFile("CMakeLists.txt")},
		{Type: TypeRust, Match: hasFile("Cargo.toml")},
		{Type: TypeZig, Match: hasAnyFile("build.zig.zon", "build.zig")},
		{Type: TypeGodot, Match: hasFile("project.godot")},
		{Type: TypeUnity, Match: hasFile(filepath.Join("ProjectSettings", "ProjectVersion.txt"))},
		{Type: TypeUnreal, Match: isUnrealProject},
		{Type: TypeNeovim, Match: isNeovimPlugin},
		{Type: TypeGit, Match: func(p *probe.Prober, dir string) bool {
			return p.Exists(filepath.Join(dir, ".git"))
		}},
	}
}

// Classifier evaluates rules in order and stops at the first match.
type Classifier struct {
	prober *probe.Prober
	rules  []Rule
}

// NewClassifier uses DefaultRules when rules is nil and the OS filesystem
// when prober is nil.
func NewClassifier(prober *probe.Prober, rules []Rule) *Classifier {
	if prober == nil {
		prober = probe.NewOS()
	}
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{prober: prober, rules: rules}
}

// Prober returns the prober the rules run against.
func (c *Classifier) Prober() *probe.Prober {
	return c.prober
}

// Classify returns the type of the first matching rule, or (TypeNone, false).
func (c *Classifier) Classify(dir string) (Type, bool) {
	for _, rule := range c.rules {
		if rule.Match(c.prober, dir) {
			return rule.Type, true
		}
	}
	return TypeNone, false
}

func hasFile(name string) func(*probe.Prober, string) bool {
	return func(p *probe.Prober, dir string) bool {
		return p.FileExists(filepath.Join(dir, name))
	}
}

func hasAnyFile(names ...string) func(*probe.Prober, string) bool {
	return func(p *probe.Prober, dir string) bool {
		for _, name := range names {
			if p.FileExists(filepath.Join(dir, name)) {
				return true
			}
		}
		return false
	}
}

func isUnrealProject(p *probe.Prober, dir string) bool {
	base := filepath.Base(filepath.Clean(dir))
	if base == "." || base == string(filepath.Separator) {
		return false
	}
	return p.FileExists(filepath.Join(dir, base+".uproject"))
}

func isNeovimPlugin(p *probe.Prober, dir string) bool {
	if strings.HasSuffix(filepath.Base(filepath.Clean(dir)), ".nvim") {
		return true
	}
	if !p.DirExists(filepath.Join(dir, "lua")) {
		return false
	}
	return hasAnyFile(neovimManifests...)(p, dir)
}

package project

import "fmt"

// Stage orders snapshots by completeness.
type Stage int

const (
	StageBaseline Stage = iota
	StageRefined
)

func (s Stage) String() string {
	switch s {
	case StageBaseline:
		return "baseline"
	case StageRefined:
		return "refined"
	default:
		return "unknown"
	}
}

func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Stage) UnmarshalText(text []byte) error {
	switch string(text) {
	case "baseline":
		*s = StageBaseline
	case "refined":
		*s = StageRefined
	default:
		return fmt.Errorf("unknown stage %q", text)
	}
	return nil
}

// ModuleInfo is the build-system view of a project (bazel module name/version).
type ModuleInfo struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// EngineInfo describes game-engine projects.
type EngineInfo struct {
	EditorVersion string `json:"editor_version,omitempty"`
	Organization  string `json:"organization,omitempty"`
	Product       string `json:"product,omitempty"`
	Executable    string `json:"executable,omitempty"`
}

// PackageInfo comes from a language manifest (Cargo.toml, build.zig.zon).
type PackageInfo struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
	Edition string `json:"edition,omitempty"`
}

// Info is one immutable snapshot of what is known about a project directory.
// Later snapshots for the same directory are produced with Merge and never
// drop a field an earlier snapshot carried.
type Info struct {
	Dir         string       `json:"dir"`
	Type        Type         `json:"type"`
	Name        string       `json:"name"`
	Icon        string       `json:"icon"`
	Version     string       `json:"version,omitempty"`
	Description []string     `json:"description,omitempty"`
	Module      *ModuleInfo  `json:"module,omitempty"`
	Engine      *EngineInfo  `json:"engine,omitempty"`
	Package     *PackageInfo `json:"package,omitempty"`
	Stage       Stage        `json:"stage"`
}

// Merge layers patch on top of i and returns the result as a new value.
// Non-empty patch values win, except Dir, Icon and Description which are
// only filled when still empty.
func (i Info) Merge(patch Info) Info {
	out := i.Clone()

	if out.Dir == "" {
		out.Dir = patch.Dir
	}
	if out.Icon == "" {
		out.Icon = patch.Icon
	}
	if len(out.Description) == 0 && len(patch.Description) > 0 {
		out.Description = append([]string(nil), patch.Description...)
	}
	if patch.Type != TypeNone {
		out.Type = patch.Type
	}
	if patch.Name != "" {
		out.Name = patch.Name
	}
	if patch.Version != "" {
		out.Version = patch.Version
	}
	out.Module = mergeModule(out.Module, patch.Module)
	out.Engine = mergeEngine(out.Engine, patch.Engine)
	out.Package = mergePackage(out.Package, patch.Package)
	if patch.Stage > out.Stage {
		out.Stage = patch.Stage
	}
	return out
}

// Clone deep-copies the slice and sub-records.
func (i Info) Clone() Info {
	out := i
	if i.Description != nil {
		out.Description = append([]string(nil), i.Description...)
	}
	if i.Module != nil {
		m := *i.Module
		out.Module = &m
	}
	if i.Engine != nil {
		e := *i.Engine
		out.Engine = &e
	}
	if i.Package != nil {
		p := *i.Package
		out.Package = &p
	}
	return out
}

func mergeModule(dst, src *ModuleInfo) *ModuleInfo {
	if src == nil {
		return dst
	}
	if dst == nil {
		dst = &ModuleInfo{}
	}
	dst.Name = pick(dst.Name, src.Name)
	dst.Version = pick(dst.Version, src.Version)
	return dst
}

func mergeEngine(dst, src *EngineInfo) *EngineInfo {
	if src == nil {
		return dst
	}
	if dst == nil {
		dst = &EngineInfo{}
	}
	dst.EditorVersion = pick(dst.EditorVersion, src.EditorVersion)
	dst.Organization = pick(dst.Organization, src.Organization)
	dst.Product = pick(dst.Product, src.Product)
	dst.Executable = pick(dst.Executable, src.Executable)
	return dst
}

func mergePackage(dst, src *PackageInfo) *PackageInfo {
	if src == nil {
		return dst
	}
	if dst == nil {
		dst = &PackageInfo{}
	}
	dst.Name = pick(dst.Name, src.Name)
	dst.Version = pick(dst.Version, src.Version)
	dst.Edition = pick(dst.Edition, src.Edition)
	return dst
}

func pick(current, next string) string {
	if next != "" {
		return next
	}
	return current
}

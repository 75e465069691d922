package project

// Type tags the kind of project a directory holds.
type Type string

const (
	TypeNone   Type = ""
	TypeBazel  Type = "bazel"
	TypeCMake  Type = "cmake"
	TypeRust   Type = "rust"
	TypeZig    Type = "zig"
	TypeGodot  Type = "godot"
	TypeUnity  Type = "unity"
	TypeUnreal Type = "unreal"
	TypeNeovim Type = "neovim"
	TypeGit    Type = "git"
)

// Nerd-font glyphs keyed by type.
var icons = map[Type]string{
	TypeBazel:  "\ue63a",
	TypeCMake:  "\ue794",
	TypeRust:   "\ue7a8",
	TypeZig:    "\ue6a9",
	TypeGodot:  "\ue65f",
	TypeUnity:  "\ue721",
	TypeUnreal: "\U000f0b22",
	TypeNeovim: "\ue6ae",
	TypeGit:    "\ue702",
}

// Types returns every known type in classifier priority order.
func Types() []Type {
	return []Type{
		TypeBazel,
		TypeCMake,
		TypeRust,
		TypeZig,
		TypeGodot,
		TypeUnity,
		TypeUnreal,
		TypeNeovim,
		TypeGit,
	}
}

func ParseType(raw string) (Type, bool) {
	for _, t := range Types() {
		if string(t) == raw {
			return t, true
		}
	}
	return TypeNone, false
}

func (t Type) String() string {
	if t == TypeNone {
		return "none"
	}
	return string(t)
}

// Icon returns the glyph for t, or a generic folder glyph for unknown types.
func (t Type) Icon() string {
	if icon, ok := icons[t]; ok {
		return icon
	}
	return "\uf07b"
}

package probe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestProberMemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/p/Cargo.toml", []byte("[package]\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := fs.MkdirAll("/p/.git", 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	p := New(fs)
	cases := []struct {
		path   string
		exists bool
		file   bool
		dir    bool
	}{
		{path: "/p/Cargo.toml", exists: true, file: true, dir: false},
		{path: "/p/.git", exists: true, file: false, dir: true},
		{path: "/p/missing", exists: false, file: false, dir: false},
	}
	for _, tc := range cases {
		if got := p.Exists(tc.path); got != tc.exists {
			t.Fatalf("Exists(%s): expected %v, got %v", tc.path, tc.exists, got)
		}
		if got := p.FileExists(tc.path); got != tc.file {
			t.Fatalf("FileExists(%s): expected %v, got %v", tc.path, tc.file, got)
		}
		if got := p.DirExists(tc.path); got != tc.dir {
			t.Fatalf("DirExists(%s): expected %v, got %v", tc.path, tc.dir, got)
		}
	}
}

func TestProberOSFs(t *testing.T) {
	root := t.TempDir()
	marker := filepath.Join(root, "MODULE.bazel")
	if err := os.WriteFile(marker, []byte("module(name = \"x\")\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	p := NewOS()
	if !p.FileExists(marker) {
		t.Fatalf("expected %s to exist as a file", marker)
	}
	if p.FileExists(root) {
		t.Fatalf("expected directory %s not to count as a file", root)
	}
	if !p.DirExists(root) {
		t.Fatalf("expected %s to exist as a directory", root)
	}
}

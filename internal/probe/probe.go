package probe

import (
	"github.com/spf13/afero"
)

// Prober answers marker-file questions against a filesystem.
type Prober struct {
	fs afero.Fs
}

// New creates a prober over fs. A nil fs means the OS filesystem.
func New(fs afero.Fs) *Prober {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Prober{fs: fs}
}

// NewOS creates a prober over the real filesystem.
func NewOS() *Prober {
	return New(afero.NewOsFs())
}

// Fs returns the filesystem the prober reads.
func (p *Prober) Fs() afero.Fs {
	return p.fs
}

// Exists reports whether anything (file, dir, special file) lives at path.
func (p *Prober) Exists(path string) bool {
	_, err := p.fs.Stat(path)
	return err == nil
}

// FileExists opens path for reading and releases the handle right away.
// Some mounts misreport metadata for special files, so an open is the test.
func (p *Prober) FileExists(path string) bool {
	f, err := p.fs.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return true
	}
	return !info.IsDir()
}

// DirExists reports whether path is a directory.
func (p *Prober) DirExists(path string) bool {
	info, err := p.fs.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

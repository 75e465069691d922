// Package exclude holds the user's excluded directory prefixes.
package exclude

import (
	"strings"
	"sync"
)

// List is an append-only set of path prefixes. The zero value is ready to use.
type List struct {
	mu   sync.RWMutex
	dirs []string
}

func New(dirs ...string) *List {
	l := &List{}
	for _, dir := range dirs {
		l.Add(dir)
	}
	return l
}

// Add records prefix. Blank and duplicate entries are ignored.
func (l *List) Add(prefix string) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, existing := range l.dirs {
		if existing == prefix {
			return
		}
	}
	l.dirs = append(l.dirs, prefix)
}

// Dirs returns a copy in insertion order.
func (l *List) Dirs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.dirs...)
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.dirs)
}

// Excluded reports whether path starts with any recorded prefix. The match is
// a plain string prefix, so "/src/foo" also excludes "/src/foobar".
func (l *List) Excluded(path string) bool {
	if l == nil {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, prefix := range l.dirs {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Filter returns the paths that are not excluded, preserving order.
func (l *List) Filter(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if !l.Excluded(path) {
			out = append(out, path)
		}
	}
	return out
}

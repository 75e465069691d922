// Package candidates lists directories that may be worth classifying.
package candidates

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/skelly-dev/projscout/internal/exclude"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type walkOptions struct {
	logger *zap.Logger
}

// WalkOption customises Walk.
type WalkOption func(*walkOptions)

// WithLogger reports skipped subtrees at debug level.
func WithLogger(logger *zap.Logger) WalkOption {
	return func(o *walkOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Walk returns root followed by its descendant directories down to depth
// levels, breadth first and sorted by name within each level. Directories the
// matcher ignores are pruned with their subtrees; excluded ones are pruned too.
// Returned paths are absolute. Only an unreadable root is an error; a
// descendant that cannot be listed is kept but not descended into.
func Walk(fs afero.Fs, root string, depth int, matcher *Matcher, excludes *exclude.List, opts ...WalkOption) ([]string, error) {
	o := walkOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	info, err := fs.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", absRoot)
	}
	if excludes.Excluded(absRoot) {
		return nil, nil
	}

	out := []string{absRoot}
	level := []string{absRoot}
	for d := 0; d < depth && len(level) > 0; d++ {
		var next []string
		for _, dir := range level {
			children, err := childDirs(fs, absRoot, dir, matcher, excludes)
			if err != nil {
				if dir == absRoot {
					return nil, err
				}
				o.logger.Debug("skipping unreadable directory", zap.String("dir", dir), zap.Error(err))
				continue
			}
			next = append(next, children...)
		}
		out = append(out, next...)
		level = next
	}
	return out, nil
}

func childDirs(fs afero.Fs, root, dir string, matcher *Matcher, excludes *exclude.List) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	children := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		if matcher.Ignored(rel, true) || excludes.Excluded(path) {
			continue
		}
		children = append(children, path)
	}
	return children, nil
}

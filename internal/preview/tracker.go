// Package preview keeps the latest snapshot per directory and drops
// snapshots that belong to a superseded request.
package preview

import (
	"fmt"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/skelly-dev/projscout/internal/project"
)

const DefaultCacheSize = 256

// Token identifies the epoch a sink was created in.
type Token uint64

// Tracker hands out epoch tokens. Sinks created for an older token turn into
// no-ops once the epoch moves on, so late subprocess completions cannot
// overwrite a newer preview.
type Tracker struct {
	epoch atomic.Uint64

	mu     sync.Mutex
	latest *lru.Cache[string, project.Info]
}

func NewTracker(size int) (*Tracker, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, project.Info](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create preview cache: %w", err)
	}
	return &Tracker{latest: cache}, nil
}

// Begin starts a new epoch and returns its token. Earlier tokens go stale.
func (t *Tracker) Begin() Token {
	return Token(t.epoch.Add(1))
}

// Invalidate makes every outstanding token stale.
func (t *Tracker) Invalidate() {
	t.epoch.Add(1)
}

func (t *Tracker) Current(token Token) bool {
	return uint64(token) == t.epoch.Load()
}

// Sink returns an Emit that records snapshots and forwards them to onUpdate
// while token is current. onUpdate may be nil.
func (t *Tracker) Sink(token Token, onUpdate project.Emit) project.Emit {
	return func(info project.Info) {
		if !t.Current(token) {
			return
		}
		if !t.record(info) {
			return
		}
		if onUpdate != nil {
			onUpdate(info)
		}
	}
}

// record stores info unless a more complete snapshot for the same directory
// is already cached.
func (t *Tracker) record(info project.Info) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.latest.Peek(info.Dir); ok && prev.Stage > info.Stage {
		return false
	}
	t.latest.Add(info.Dir, info.Clone())
	return true
}

func (t *Tracker) Latest(dir string) (project.Info, bool) {
	info, ok := t.latest.Get(dir)
	if !ok {
		return project.Info{}, false
	}
	return info.Clone(), true
}

// Forget drops the cached snapshot for dir.
func (t *Tracker) Forget(dir string) {
	t.latest.Remove(dir)
}

func (t *Tracker) Len() int {
	return t.latest.Len()
}

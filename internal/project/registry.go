package project

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request identifies one enrichment run.
type Request struct {
	ID   string
	Dir  string
	Type Type
}

// Strategy turns a classified directory into one or more snapshots.
type Strategy interface {
	// Enrich must emit a baseline snapshot before returning. Further
	// snapshots may follow asynchronously.
	Enrich(ctx context.Context, req Request, emit Emit)
}

type StrategyFunc func(ctx context.Context, req Request, emit Emit)

func (f StrategyFunc) Enrich(ctx context.Context, req Request, emit Emit) {
	f(ctx, req, emit)
}

// Registry holds the enrichment strategy for each project type.
type Registry struct {
	classifier *Classifier
	logger     *zap.Logger

	mu         sync.RWMutex
	strategies map[Type]Strategy
}

// NewRegistry creates an empty registry dispatching through classifier.
func NewRegistry(classifier *Classifier, logger *zap.Logger) *Registry {
	if classifier == nil {
		classifier = NewClassifier(nil, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		classifier: classifier,
		logger:     logger,
		strategies: make(map[Type]Strategy),
	}
}

// Register sets the strategy for t, replacing any previous one.
func (r *Registry) Register(t Type, s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[t] = s
}

// Lookup returns the strategy registered for t.
func (r *Registry) Lookup(t Type) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[t]
	return s, ok
}

// Types lists registered types in classifier priority order.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Type, 0, len(r.strategies))
	for _, t := range Types() {
		if _, ok := r.strategies[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Classifier returns the classifier BuildInfo dispatches on.
func (r *Registry) Classifier() *Classifier {
	return r.classifier
}

func (r *Registry) Classify(dir string) (Type, bool) {
	return r.classifier.Classify(normalizeDir(dir))
}

// BuildInfo classifies dir and starts its strategy. It returns false, without
// ever calling emit, when dir is not a project or no strategy is registered
// for its type. It does not wait for asynchronous enrichment.
func (r *Registry) BuildInfo(ctx context.Context, dir string, emit Emit) bool {
	dir = normalizeDir(dir)
	t, ok := r.classifier.Classify(dir)
	if !ok {
		r.logger.Debug("directory not classified", zap.String("dir", dir))
		return false
	}

	strategy, ok := r.Lookup(t)
	if !ok {
		r.logger.Warn("no enrichment strategy registered",
			zap.String("dir", dir),
			zap.String("type", t.String()),
		)
		return false
	}

	req := Request{ID: uuid.NewString(), Dir: dir, Type: t}
	r.logger.Debug("building project info",
		zap.String("request_id", req.ID),
		zap.String("dir", dir),
		zap.String("type", t.String()),
	)
	strategy.Enrich(ctx, req, Guard(emit, r.logger.With(zap.String("request_id", req.ID))))
	return true
}

func normalizeDir(dir string) string {
	if dir == "" {
		return dir
	}
	if !filepath.IsAbs(dir) {
		if abs, err := filepath.Abs(dir); err == nil {
			return abs
		}
	}
	return filepath.Clean(dir)
}

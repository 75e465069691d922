// Package runner launches external commands off the caller's goroutine and
// reports their buffered stdout once they exit.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const waitDelay = 2 * time.Second

// Result is what a finished command produced. ExitCode is -1 when the
// process never started or was killed. Callers decide what to do with a
// failure; the enrichment strategies currently ignore it and keep their
// baseline snapshot.
type Result struct {
	Output   string
	ExitCode int
	Err      error
}

func (r Result) OK() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Runner starts name with args in dir and calls onComplete exactly once,
// after the process has exited.
type Runner interface {
	Run(ctx context.Context, name string, args []string, dir string, onComplete func(Result))
}

// Func adapts a plain function to Runner.
type Func func(ctx context.Context, name string, args []string, dir string, onComplete func(Result))

func (f Func) Run(ctx context.Context, name string, args []string, dir string, onComplete func(Result)) {
	f(ctx, name, args, dir, onComplete)
}

// Exec runs commands with os/exec and tracks the ones still in flight.
type Exec struct {
	timeout time.Duration
	logger  *zap.Logger
	wg      sync.WaitGroup
}

// NewExec creates a runner. A zero timeout means commands only stop when
// their context is cancelled.
func NewExec(timeout time.Duration, logger *zap.Logger) *Exec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exec{timeout: timeout, logger: logger}
}

func (e *Exec) Run(ctx context.Context, name string, args []string, dir string, onComplete func(Result)) {
	if ctx == nil {
		ctx = context.Background()
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		result := e.run(ctx, name, args, dir)
		e.complete(name, onComplete, result)
	}()
}

// Wait blocks until every started command has exited and its callback returned.
func (e *Exec) Wait() {
	e.wg.Wait()
}

func (e *Exec) run(ctx context.Context, name string, args []string, dir string) Result {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if strings.TrimSpace(dir) != "" {
		cmd.Dir = dir
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	result := Result{Output: stdout.String()}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%v)", ctxErr, err)
		}
		result.Err = fmt.Errorf("command %s failed: %w", name, err)
	}

	e.logger.Debug("command finished",
		zap.String("command", name),
		zap.Strings("args", args),
		zap.String("dir", dir),
		zap.Int("exit_code", result.ExitCode),
		zap.Int("output_bytes", len(result.Output)),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(result.Err),
	)
	return result
}

func (e *Exec) complete(name string, onComplete func(Result), result Result) {
	if onComplete == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("command completion handler failed",
				zap.String("command", name),
				zap.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	onComplete(result)
}

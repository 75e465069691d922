package project

import (
	"fmt"

	"go.uber.org/zap"
)

// Emit receives snapshots for one directory, baseline first.
type Emit func(Info)

// Guard wraps emit so a failing consumer never unwinds into the strategy
// that produced the snapshot, nor into a pending subprocess callback.
func Guard(emit Emit, logger *zap.Logger) Emit {
	if logger == nil {
		logger = zap.NewNop()
	}
	if emit == nil {
		return func(Info) {}
	}
	return func(info Info) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("snapshot consumer failed",
					zap.String("dir", info.Dir),
					zap.String("type", info.Type.String()),
					zap.String("panic", fmt.Sprint(r)),
				)
			}
		}()
		emit(info)
	}
}

package utils

import (
	"context"
	"time"

	"go.viam.com/radialwarp/logging"
)

// SlowLogger warns with msg every few seconds until the returned func is called or ctx
// is done. The first warning comes after two seconds.
func SlowLogger(ctx context.Context, msg, fieldName, fieldVal string, logger logging.Logger) func() {
	slowTicker := time.NewTicker(2 * time.Second)
	ctx, cancel := context.WithCancel(ctx)
	start := time.Now()
	workers := NewStoppableWorkers(ctx, func(ctx context.Context) {
		for {
			select {
			case <-ctx.Done():
				return
			case <-slowTicker.C:
				elapsed := time.Since(start).Round(time.Second).String()
				logger.Warnw(msg, fieldName, fieldVal, "time_elapsed", elapsed)
				slowTicker.Reset(5 * time.Second)
			}
		}
	})
	return func() {
		cancel()
		workers.Stop()
		slowTicker.Stop()
	}
}

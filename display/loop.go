package display

import (
	"context"
	"image"
	"time"

	"github.com/pkg/errors"

	"go.viam.com/radialwarp/logging"
)

// Run shows tex in win once per interval until the window closes or ctx is done. A close
// event closes the window. Images received on updates replace tex from the next frame on;
// updates may be nil.
func Run(
	ctx context.Context,
	win Window,
	tex image.Image,
	placements [2]image.Rectangle,
	updates <-chan image.Image,
	interval time.Duration,
	logger logging.Logger,
) error {
	if interval <= 0 {
		return errors.Errorf("frame interval must be positive, got %v", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		for _, event := range win.PollEvents() {
			if event.Type == EventClosed {
				logger.Infow("window closed", "frames", frame)
				return win.Close()
			}
		}
		if !win.IsOpen() {
			return nil
		}

		select {
		case next, ok := <-updates:
			if ok && next != nil {
				logger.Debugw("swapping texture", "frame", frame)
				tex = next
			}
			if !ok {
				updates = nil
			}
		default:
		}

		if err := win.Display(tex, placements[:]); err != nil {
			if !win.IsOpen() {
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			return win.Close()
		case <-ticker.C:
		}
	}
}

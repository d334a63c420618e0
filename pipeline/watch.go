package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// DefaultDebounce is how long Watch waits after the last file event before re-running.
var DefaultDebounce = 100 * time.Millisecond

// Watch re-runs the pipeline whenever one of paths is written or created and hands each
// new result to onChange. Failed runs are logged and skipped so the caller keeps showing
// the previous result. Watch blocks until ctx is done.
func (p *Pipeline) Watch(ctx context.Context, paths []string, onChange func(*Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer goutils.UncheckedErrorFunc(watcher.Close)

	// Editors often replace files instead of writing them in place, so the
	// parent directories are watched and events are filtered by name.
	watched := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		watched[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "cannot watch %s", dir)
		}
		dirs[dir] = struct{}{}
	}

	// debounced calls run on their own goroutine; they only signal the loop below.
	changed := make(chan struct{}, 1)
	debounced := debounce.New(DefaultDebounce)
	signalChange := func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := watched[abs]; !ok {
				continue
			}
			p.logger.Debugw("file changed", "path", abs, "op", event.Op.String())
			debounced(signalChange)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.logger.Warnw("file watcher error", "error", err)
		case <-changed:
			res, err := p.Run(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				p.logger.Errorw("failed to re-run after change, keeping previous image", "error", err)
				continue
			}
			p.logger.Infow("reloaded image", "input", p.cfg.Input, "elapsed", res.Elapsed)
			onChange(res)
		}
	}
}

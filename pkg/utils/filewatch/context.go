package filewatch

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// UntilModifyContext derives a context that is canceled as soon as any of
// the given files changes (write, create, remove, rename or chmod).
//
// The daemon uses this to shut itself down when its config file is edited,
// leaving the restart to the process supervisor.
//
// The returned cancel function releases the watcher; the cancellation cause
// names the file and operation that triggered it. On error, context and
// cancel are nil and no watcher is left running.
func UntilModifyContext(ctx context.Context, files ...string) (context.Context, func(), error) {
	wctx, cancel := context.WithCancelCause(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		cancel(err)
		return nil, nil, err
	}

	go func() {
		defer watcher.Close()
		select {
		case <-wctx.Done():
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			cancel(fmt.Errorf("%s is modified (%s)", ev.Name, ev.Op))
		}
	}()

	for _, f := range files {
		if err := watcher.Add(f); err != nil {
			cancel(err)
			return nil, nil, err
		}
	}

	return wctx, func() { cancel(nil) }, nil
}

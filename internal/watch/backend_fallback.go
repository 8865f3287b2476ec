//go:build !linux

package watch

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/hoffindustries/rolexhound/internal/errors"
	"github.com/hoffindustries/rolexhound/internal/inotify"
)

// fallbackBackend implements Backend using fsnotify on platforms without
// inotify. Decoded ops are translated onto the same condition-flag masks so
// classification is shared with the Linux backend.
type fallbackBackend struct {
	logger    *slog.Logger
	watcher   *fsnotify.Watcher
	path      string
	records   chan inotify.Record
	errs      chan error
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

// newBackend creates an fsnotify watcher for the path and starts the
// translation goroutine.
func newBackend(logger *slog.Logger, path string, _ int) (Backend, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeQueueInit, "failed to create fsnotify watcher")
	}

	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return nil, errors.Wrapf(err, errors.CodeWatchRejected, "failed to watch %s", path)
	}

	b := &fallbackBackend{
		logger:  logger,
		watcher: watcher,
		path:    path,
		records: make(chan inotify.Record, 64),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}

	logger.Debug("added watch", "path", path)

	b.wg.Add(1)
	go b.translateLoop()

	return b, nil
}

// translateLoop converts fsnotify events into decoded records.
func (b *fallbackBackend) translateLoop() {
	defer b.wg.Done()
	defer close(b.records)
	defer close(b.errs)

	for {
		select {
		case <-b.done:
			return
		case ev, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			rec := b.translate(ev)
			if rec.Mask == 0 {
				continue
			}
			select {
			case b.records <- rec:
			case <-b.done:
				return
			}
		case err, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			select {
			case b.errs <- err:
			case <-b.done:
			}
			return
		}
	}
}

// translate maps fsnotify ops onto the equivalent condition flags.
func (b *fallbackBackend) translate(ev fsnotify.Event) inotify.Record {
	var mask uint32
	if ev.Has(fsnotify.Create) {
		mask |= inotify.FlagCreate
	}
	if ev.Has(fsnotify.Remove) {
		mask |= inotify.FlagDelete
	}
	if ev.Has(fsnotify.Write) {
		mask |= inotify.FlagModify
	}
	if ev.Has(fsnotify.Rename) {
		mask |= inotify.FlagMoveSelf
	}
	if ev.Has(fsnotify.Chmod) {
		mask |= inotify.FlagAccess
	}

	name := ""
	if ev.Name != "" && ev.Name != b.path {
		name = filepath.Base(ev.Name)
	}

	return inotify.Record{Mask: mask, Name: name}
}

// Records returns the channel of decoded event records.
func (b *fallbackBackend) Records() <-chan inotify.Record {
	return b.records
}

// Errors returns the channel of fatal acquisition errors.
func (b *fallbackBackend) Errors() <-chan error {
	return b.errs
}

// Close shuts down the fsnotify watcher exactly once.
func (b *fallbackBackend) Close() error {
	b.closeOnce.Do(func() {
		close(b.done)
		b.closeErr = b.watcher.Close()
		b.wg.Wait()
	})
	return b.closeErr
}

//go:build linux

package watch

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/hoffindustries/rolexhound/internal/errors"
	"github.com/hoffindustries/rolexhound/internal/inotify"
)

// linuxBackend implements Backend using raw inotify. One inotify instance,
// one watch descriptor, one reader goroutine.
type linuxBackend struct {
	logger    *slog.Logger
	records   chan inotify.Record
	errs      chan error
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
	fd        int
	wd        int
	wakeR     int
	wakeW     int
	bufSize   int
}

// newBackend creates the inotify queue, registers the single watch and
// starts the reader goroutine.
func newBackend(logger *slog.Logger, path string, bufferSize int) (Backend, error) {
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC | unix.IN_NONBLOCK)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeQueueInit, "failed to initialize inotify queue")
	}

	wd, err := unix.InotifyAddWatch(fd, path, inotify.WatchMask)
	if err != nil {
		_ = unix.Close(fd)
		return nil, errors.Wrapf(err, errors.CodeWatchRejected, "failed to add inotify watch for %s", path)
	}

	// Wakeup pipe so Close can interrupt a blocked poll.
	var wake [2]int
	if err := unix.Pipe2(wake[:], unix.O_CLOEXEC|unix.O_NONBLOCK); err != nil {
		//nolint:gosec // G115: wd is a small non-negative int from inotify
		_, _ = unix.InotifyRmWatch(fd, uint32(wd))
		_ = unix.Close(fd)
		return nil, errors.Wrap(err, errors.CodeQueueInit, "failed to create wakeup pipe")
	}

	b := &linuxBackend{
		logger:  logger,
		records: make(chan inotify.Record, 64),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
		fd:      fd,
		wd:      wd,
		wakeR:   wake[0],
		wakeW:   wake[1],
		bufSize: bufferSize,
	}

	logger.Debug("added watch", "path", path, "wd", wd)

	b.wg.Add(1)
	go b.readLoop()

	return b, nil
}

// readLoop blocks in poll until the kernel has events or the wakeup pipe
// fires, then reads one raw buffer and decodes it.
func (b *linuxBackend) readLoop() {
	defer b.wg.Done()
	defer close(b.records)
	defer close(b.errs)

	buf := make([]byte, b.bufSize)
	fds := []unix.PollFd{
		{Fd: int32(b.fd), Events: unix.POLLIN},
		{Fd: int32(b.wakeR), Events: unix.POLLIN},
	}

	for {
		fds[0].Revents = 0
		fds[1].Revents = 0

		n, err := unix.Poll(fds, -1)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			b.fail(fmt.Errorf("polling inotify queue: %w", err))
			return
		}
		if n == 0 {
			continue
		}
		if fds[1].Revents != 0 {
			// Woken by Close.
			return
		}
		if fds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		readLen, err := unix.Read(b.fd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			b.fail(fmt.Errorf("reading inotify queue: %w", err))
			return
		}
		if readLen <= 0 {
			continue
		}

		dec := inotify.NewDecoder(buf[:readLen])
		for dec.Next() {
			if !b.emit(dec.Record()) {
				return
			}
		}
		if err := dec.Err(); err != nil {
			b.fail(err)
			return
		}
	}
}

// emit forwards one record, giving up if the backend is closing.
func (b *linuxBackend) emit(rec inotify.Record) bool {
	select {
	case b.records <- rec:
		return true
	case <-b.done:
		return false
	}
}

// fail reports a fatal acquisition error, giving up if the backend is closing.
func (b *linuxBackend) fail(err error) {
	select {
	case b.errs <- err:
	case <-b.done:
	}
}

// Records returns the channel of decoded event records.
func (b *linuxBackend) Records() <-chan inotify.Record {
	return b.records
}

// Errors returns the channel of fatal acquisition errors.
func (b *linuxBackend) Errors() <-chan error {
	return b.errs
}

// Close removes the watch and releases the inotify queue exactly once.
func (b *linuxBackend) Close() error {
	b.closeOnce.Do(func() {
		close(b.done)

		// Wake the reader out of poll and wait for it to finish.
		_, _ = unix.Write(b.wakeW, []byte{0})
		b.wg.Wait()

		//nolint:gosec // G115: wd is a small non-negative int from inotify
		if _, err := unix.InotifyRmWatch(b.fd, uint32(b.wd)); err != nil {
			b.logger.Warn("error removing inotify watch", "wd", b.wd, "error", err)
			b.closeErr = fmt.Errorf("removing inotify watch: %w", err)
		}
		if err := unix.Close(b.fd); err != nil && b.closeErr == nil {
			b.closeErr = fmt.Errorf("closing inotify queue: %w", err)
		}
		_ = unix.Close(b.wakeR)
		_ = unix.Close(b.wakeW)
	})
	return b.closeErr
}

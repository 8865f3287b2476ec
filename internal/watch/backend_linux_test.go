//go:build linux

package watch

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoffindustries/rolexhound/internal/errors"
	"github.com/hoffindustries/rolexhound/internal/inotify"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestLinuxBackend_WatchRejected(t *testing.T) {
	_, err := newBackend(testLogger(), "/no/such/path/anywhere", 4096)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrWatchRejected)
}

func TestLinuxBackend_ModifyAndCloseWrite(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "watched.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("initial"), 0o644))

	backend, err := newBackend(testLogger(), testFile, 4096)
	require.NoError(t, err)
	defer backend.Close()

	require.NoError(t, os.WriteFile(testFile, []byte("changed"), 0o644))

	// Writing and closing the file raises modify followed by close-write.
	var sawModify, sawCloseWrite bool
	deadline := time.After(2 * time.Second)
	for !sawModify || !sawCloseWrite {
		select {
		case rec, ok := <-backend.Records():
			require.True(t, ok, "record channel closed early")
			sawModify = sawModify || rec.Mask&inotify.FlagModify != 0
			sawCloseWrite = sawCloseWrite || rec.Mask&inotify.FlagCloseWrite != 0
		case err := <-backend.Errors():
			t.Fatalf("unexpected error: %v", err)
		case <-deadline:
			t.Fatalf("timeout waiting for events: modify=%v closeWrite=%v", sawModify, sawCloseWrite)
		}
	}
}

func TestLinuxBackend_CloseUnblocksReader(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "idle.txt")
	require.NoError(t, os.WriteFile(testFile, nil, 0o644))

	backend, err := newBackend(testLogger(), testFile, 4096)
	require.NoError(t, err)

	// No events are pending; the reader is blocked in poll. Close must
	// wake it and close the channels.
	done := make(chan error, 1)
	go func() {
		done <- backend.Close()
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return; reader still blocked")
	}

	_, ok := <-backend.Records()
	assert.False(t, ok, "record channel should be closed after Close")
}

func TestLinuxBackend_CloseIsIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "twice.txt")
	require.NoError(t, os.WriteFile(testFile, nil, 0o644))

	backend, err := newBackend(testLogger(), testFile, 4096)
	require.NoError(t, err)

	first := backend.Close()
	second := backend.Close()

	assert.NoError(t, first)
	assert.Equal(t, first, second)
}

func TestLinuxBackend_DeleteInWatchedDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "doomed.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("x"), 0o644))

	// Watch the directory so entry deletion raises a delete record
	// carrying the entry name.
	backend, err := newBackend(testLogger(), tmpDir, 4096)
	require.NoError(t, err)
	defer backend.Close()

	require.NoError(t, os.Remove(testFile))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case rec, ok := <-backend.Records():
			require.True(t, ok, "record channel closed early")
			if rec.Mask&inotify.FlagDelete != 0 {
				assert.Equal(t, "doomed.txt", rec.Name)
				return
			}
		case err := <-backend.Errors():
			t.Fatalf("unexpected error: %v", err)
		case <-deadline:
			t.Fatal("timeout waiting for delete event")
		}
	}
}

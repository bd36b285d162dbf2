package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
)

func TestIsMedia(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"standup.mp4", true},
		{"Standup.MOV", true},
		{"call.m4a", true},
		{"call.flac", true},
		{"notes.txt", false},
		{"transcript.json", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMedia(tt.path))
		})
	}
}

func TestMediaExtensionsSorted(t *testing.T) {
	exts := MediaExtensions()
	assert.Len(t, exts, 11)
	assert.IsIncreasing(t, exts)
}

func TestWatcherDispatchesMediaFiles(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var got []string
	done := make(chan struct{}, 4)
	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		got = append(got, filepath.Base(path))
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	w, err := New(dir, handler, logger.Nop(), 1)
	require.NoError(t, err)
	defer w.Stop()
	w.(*implWatcher).settle = 0

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	// Give the event loop a moment to start selecting.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "standup.wav"), []byte("x"), 0644))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"standup.wav"}, got)
}

func TestClaimRelease(t *testing.T) {
	w := &implWatcher{inFlight: make(map[string]struct{})}
	assert.True(t, w.claim("a"))
	assert.False(t, w.claim("a"))
	w.release("a")
	assert.True(t, w.claim("a"))
}

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
)

// Test Plan for Watcher:
// - Start() delivers a debounced batch after a monitored file changes
// - Rapid successive writes coalesce into one batch
// - Files with unmonitored extensions are ignored
// - Stop() is idempotent and safe without Start()

type batchRecorder struct {
	mu      sync.Mutex
	batches [][]string
}

func (r *batchRecorder) record(files []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, files)
}

func (r *batchRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

func (r *batchRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestWatcher_DeliversDebouncedBatch(t *testing.T) {
	dir := t.TempDir()

	w, err := New([]string{dir}, []string{".c"})
	require.NoError(t, err)
	defer w.Stop()
	w.debounceTime = 50 * time.Millisecond

	rec := &batchRecorder{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, rec.record))

	path := filepath.Join(dir, "main.c")
	require.NoError(t, os.WriteFile(path, []byte("int x;\n"), 0644))

	require.True(t, waitFor(t, 3*time.Second, func() bool { return rec.count() >= 1 }),
		"expected a change batch")
	assert.Contains(t, rec.all(), path)
}

func TestWatcher_CoalescesRapidWrites(t *testing.T) {
	dir := t.TempDir()

	w, err := New([]string{dir}, []string{".c"})
	require.NoError(t, err)
	defer w.Stop()
	w.debounceTime = 100 * time.Millisecond

	rec := &batchRecorder{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, rec.record))

	path := filepath.Join(dir, "burst.c")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("int x;\n"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	require.True(t, waitFor(t, 3*time.Second, func() bool { return rec.count() >= 1 }))
	// The quiet period collapses the burst into one batch
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 1, rec.count())
}

func TestWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()

	w, err := New([]string{dir}, []string{".c", ".h"})
	require.NoError(t, err)
	defer w.Stop()
	w.debounceTime = 50 * time.Millisecond

	rec := &batchRecorder{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, rec.record))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0644))

	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, rec.count())
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	dir := t.TempDir()

	w, err := New([]string{dir}, []string{".c"})
	require.NoError(t, err)

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

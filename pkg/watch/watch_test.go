/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() []Option {
	return []Option{
		WithSettleDelay(50 * time.Millisecond),
		WithRate(1000, 10),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

func collect(t *testing.T, dir string, opts ...Option) (<-chan string, context.CancelFunc, <-chan error) {
	t.Helper()

	seen := make(chan string, 16)
	w, err := New(dir, func(_ context.Context, path string) {
		seen <- path
	}, append(testOptions(), opts...)...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(cancel)

	return seen, cancel, done
}

func waitPath(t *testing.T, seen <-chan string) string {
	t.Helper()
	select {
	case p := <-seen:
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for handler")
		return ""
	}
}

func TestWatcher_HandlesMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	seen, cancel, done := collect(t, dir)

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	match := filepath.Join(dir, "ArubaOS-CX_6200_10_13_1000.swi")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(match, []byte("firmware"), 0o600))

	assert.Equal(t, match, waitPath(t, seen))

	select {
	case p := <-seen:
		t.Fatalf("unexpected second call for %s", p)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_Existing(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "ArubaOS-CX_8320.swi")
	require.NoError(t, os.WriteFile(existing, []byte("firmware"), 0o600))

	seen, cancel, done := collect(t, dir, WithExisting(true))

	assert.Equal(t, existing, waitPath(t, seen))

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_RemovedBeforeSettled(t *testing.T) {
	dir := t.TempDir()
	seen, cancel, done := collect(t, dir, WithSettleDelay(300*time.Millisecond))
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "ArubaOS-CX_6100.swi")
	require.NoError(t, os.WriteFile(path, []byte("partial"), 0o600))
	require.NoError(t, os.Remove(path))

	select {
	case p := <-seen:
		t.Fatalf("removed file should not be handled, got %s", p)
	case <-time.After(600 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}

func TestNew_Errors(t *testing.T) {
	noop := func(context.Context, string) {}

	_, err := New(t.TempDir(), nil)
	assert.Error(t, err)

	_, err = New(filepath.Join(t.TempDir(), "missing"), noop)
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	_, err = New(file, noop)
	assert.Error(t, err)
}

func TestOldestSettled(t *testing.T) {
	now := time.Now()
	pending := map[string]time.Time{
		"fresh": now,
		"b":     now.Add(-2 * time.Second),
		"a":     now.Add(-3 * time.Second),
	}

	p, ok := oldestSettled(pending, now, time.Second)
	require.True(t, ok)
	assert.Equal(t, "a", p)

	delete(pending, "a")
	delete(pending, "b")
	_, ok = oldestSettled(pending, now, time.Second)
	assert.False(t, ok)
}

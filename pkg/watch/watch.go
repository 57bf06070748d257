/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package watch validates firmware images as they land in a staging directory.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/arubamgr/fwvalidate/pkg/defaults"
)

// Handler is called once per settled file.
type Handler func(ctx context.Context, path string)

// Watcher reports files in a directory once they stop changing.
type Watcher struct {
	dir      string
	filter   Filter
	settle   time.Duration
	limiter  *rate.Limiter
	existing bool
	logger   *slog.Logger
	handle   Handler
}

// Option is a functional option for configuring Watcher instances.
type Option func(*Watcher)

// WithPatterns returns an Option that restricts the watched file names.
func WithPatterns(patterns ...string) Option {
	return func(w *Watcher) {
		w.filter = Filter(patterns)
	}
}

// WithSettleDelay returns an Option that sets how long a file must go
// without events before it is handled.
func WithSettleDelay(d time.Duration) Option {
	return func(w *Watcher) {
		w.settle = d
	}
}

// WithRate returns an Option that limits how many files are handled per second.
func WithRate(perSecond float64, burst int) Option {
	return func(w *Watcher) {
		w.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithExisting returns an Option that also handles matching files already
// present when the watcher starts.
func WithExisting(existing bool) Option {
	return func(w *Watcher) {
		w.existing = existing
	}
}

// WithLogger returns an Option that sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a Watcher for dir that calls handle for each settled file.
func New(dir string, handle Handler, opts ...Option) (*Watcher, error) {
	if handle == nil {
		return nil, fmt.Errorf("handler cannot be nil")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path %q is not a directory", dir)
	}

	w := &Watcher{
		dir:     dir,
		filter:  Filter{defaults.WatchPattern},
		settle:  defaults.WatchSettleDelay,
		limiter: rate.NewLimiter(rate.Limit(defaults.WatchRateLimit), defaults.WatchRateBurst),
		logger:  slog.Default(),
		handle:  handle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run watches until ctx is canceled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", w.dir, err)
	}

	// pending maps a path to the time of its last event
	pending := make(map[string]time.Time)

	if w.existing {
		if err := w.scan(pending); err != nil {
			return err
		}
	}

	tick := w.settle / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	w.logger.Info("watching for firmware images", "dir", w.dir, "patterns", []string(w.filter), "settle", w.settle)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped", "dir", w.dir)
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.observe(event, pending)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case now := <-ticker.C:
			if err := w.flush(ctx, now, pending); err != nil {
				return nil
			}
		}
	}
}

func (w *Watcher) scan(pending map[string]time.Time) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("failed to list %q: %w", w.dir, err)
	}
	now := time.Now()
	for _, e := range entries {
		if e.Type().IsRegular() && w.filter.Match(e.Name()) {
			pending[filepath.Join(w.dir, e.Name())] = now
		}
	}
	return nil
}

func (w *Watcher) observe(event fsnotify.Event, pending map[string]time.Time) {
	if !w.filter.Match(filepath.Base(event.Name)) {
		return
	}

	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		pending[event.Name] = time.Now()
		w.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		delete(pending, event.Name)
	}
}

// flush hands every settled path to the handler, oldest first.
// It returns an error only when ctx is done while waiting on the limiter.
func (w *Watcher) flush(ctx context.Context, now time.Time, pending map[string]time.Time) error {
	for {
		path, ok := oldestSettled(pending, now, w.settle)
		if !ok {
			return nil
		}
		delete(pending, path)

		if err := w.limiter.Wait(ctx); err != nil {
			return err
		}
		w.handle(ctx, path)
	}
}

func oldestSettled(pending map[string]time.Time, now time.Time, settle time.Duration) (string, bool) {
	var (
		best   string
		bestAt time.Time
	)
	for p, at := range pending {
		if now.Sub(at) < settle {
			continue
		}
		if best == "" || at.Before(bestAt) || (at.Equal(bestAt) && p < best) {
			best, bestAt = p, at
		}
	}
	return best, best != ""
}

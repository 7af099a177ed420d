// Package watcher ingests documents dropped into a watched directory.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// DefaultDebounce is how long a file must be quiet before ingestion.
// Editors and downloads write in bursts; waiting avoids half-written files.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a directory and ingests new or modified PDF and text
// files through the Ingestor.
type Watcher struct {
	ingestor driving.Ingestor
	dir      string
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a watcher for the given directory.
func New(ingestor driving.Ingestor, dir string, debounce time.Duration) (*Watcher, error) {
	if ingestor == nil {
		return nil, fmt.Errorf("watcher: ingestor is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watcher: %s is not a directory", dir)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		ingestor: ingestor,
		dir:      dir,
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Run watches the directory until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watcher: watch %s: %w", w.dir, err)
	}

	logger.Info("Watching %s for new documents", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !ingestable(event.Name) {
				continue
			}
			w.schedule(ctx, event.Name)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// schedule debounces ingestion of a path: each new event resets the timer.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		if err := w.ingest(ctx, path); err != nil {
			logger.Warn("Ingest %s: %v", path, err)
			return
		}
		logger.Info("Ingested %s", path)
	})
}

// cancelPending stops all outstanding debounce timers.
func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
}

// ingest routes a file to the ingestor based on its extension.
func (w *Watcher) ingest(ctx context.Context, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return w.ingestor.IngestPDF(ctx, path)
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		return w.ingestor.IngestText(ctx, "txt:"+filepath.Base(path), string(data))
	default:
		return nil
	}
}

// ingestable reports whether the watcher handles this file type.
func ingestable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".txt":
		return true
	}
	return false
}

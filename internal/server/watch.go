package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"shopfront/internal/catalog"
)

// CatalogWatcher hot-reloads the product catalog from a JSON file on
// disk. It watches the file's directory so editors that replace the
// file on save (rename + create) are still picked up.
type CatalogWatcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	repo        *Repository
	path        string
	log         *zap.Logger
	debounceDur time.Duration
	pendingAt   time.Time
	pending     bool
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

func NewCatalogWatcher(path string, repo *Repository, log *zap.Logger) (*CatalogWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogWatcher{
		watcher:     watcher,
		repo:        repo,
		path:        filepath.Clean(path),
		log:         log,
		debounceDur: 500 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// LoadCatalogFile reads a JSON product list from disk.
func LoadCatalogFile(path string) ([]catalog.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var products []catalog.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", path, err)
	}
	return products, nil
}

// Start loads the file once if it exists and begins watching for
// changes. Non-blocking; the event loop runs in a goroutine.
func (cw *CatalogWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return nil
	}
	cw.running = true
	cw.mu.Unlock()

	if _, err := os.Stat(cw.path); err == nil {
		cw.reload()
	}

	dir := filepath.Dir(cw.path)
	if err := cw.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	cw.log.Info("watching catalog file", zap.String("path", cw.path))

	go cw.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to drain.
func (cw *CatalogWatcher) Stop() {
	cw.mu.Lock()
	if !cw.running {
		cw.mu.Unlock()
		return
	}
	cw.running = false
	cw.mu.Unlock()

	close(cw.stopCh)
	<-cw.doneCh

	if err := cw.watcher.Close(); err != nil {
		cw.log.Error("closing catalog watcher", zap.Error(err))
	}
}

func (cw *CatalogWatcher) run(ctx context.Context) {
	defer close(cw.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopCh:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleEvent(event)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log.Error("catalog watcher error", zap.Error(err))
		case <-ticker.C:
			cw.flushPending()
		}
	}
}

func (cw *CatalogWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != cw.path {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}

	cw.mu.Lock()
	cw.pending = true
	cw.pendingAt = time.Now()
	cw.mu.Unlock()
}

func (cw *CatalogWatcher) flushPending() {
	cw.mu.Lock()
	ready := cw.pending && time.Since(cw.pendingAt) >= cw.debounceDur
	if ready {
		cw.pending = false
	}
	cw.mu.Unlock()

	if ready {
		cw.reload()
	}
}

func (cw *CatalogWatcher) reload() {
	products, err := LoadCatalogFile(cw.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return
		}
		cw.log.Warn("catalog reload failed", zap.Error(err))
		return
	}
	cw.repo.Replace(products)
	cw.log.Info("catalog reloaded", zap.Int("products", len(products)))
}

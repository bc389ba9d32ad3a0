// Package worker runs the periodic dataset refresh: pull the source
// workbooks, snapshot the cleaned records to SQLite, announce the new
// version over AMQP.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"painel/internal/services"
)

// Refresher produces a fresh dataset from the sources.
type Refresher interface {
	Refresh(ctx context.Context) (*services.Dataset, error)
}

// SnapshotSaver persists a dataset snapshot.
type SnapshotSaver interface {
	SaveSnapshot(ctx context.Context, ds *services.Dataset) error
}

// Publisher announces a refreshed snapshot. May be nil when AMQP is not
// configured; the worker then skips the announcement.
type Publisher interface {
	PublishDatasetRefreshed(ctx context.Context, version string, records int, refreshedAt time.Time) error
}

// RefreshWorkerConfig holds configuration for the refresh worker
type RefreshWorkerConfig struct {
	// Interval is how often to refresh the dataset
	Interval time.Duration
}

// RefreshWorker periodically refreshes the dataset and persists it.
// A failed cycle keeps the previous snapshot; the worker never stops on
// refresh errors.
type RefreshWorker struct {
	refresher Refresher
	store     SnapshotSaver
	publisher Publisher
	config    RefreshWorkerConfig

	// Lifecycle management
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewRefreshWorker(
	refresher Refresher,
	store SnapshotSaver,
	publisher Publisher,
	config RefreshWorkerConfig,
) *RefreshWorker {
	return &RefreshWorker{
		refresher: refresher,
		store:     store,
		publisher: publisher,
		config:    config,
	}
}

// Start begins the refresh loop. Returns an error if already running.
// One refresh runs immediately so a fresh deployment serves data without
// waiting a full interval.
func (w *RefreshWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("refresh worker is already running")
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.runLoop(ctx)

	slog.InfoContext(ctx, "Refresh worker started",
		"interval", w.config.Interval)

	return nil
}

// Stop gracefully stops the worker and waits for the current cycle.
func (w *RefreshWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)

	select {
	case <-w.doneCh:
		slog.InfoContext(ctx, "Refresh worker stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Refresh worker stop timed out")
		return ctx.Err()
	}

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	return nil
}

func (w *RefreshWorker) runLoop(ctx context.Context) {
	defer close(w.doneCh)

	w.RunOnce(ctx)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single refresh cycle: refresh, snapshot, announce.
// Errors are logged and swallowed; the loop must survive flaky sources.
func (w *RefreshWorker) RunOnce(ctx context.Context) {
	started := time.Now()

	ds, err := w.refresher.Refresh(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Dataset refresh failed", "error", err)
		return
	}

	if err := w.store.SaveSnapshot(ctx, ds); err != nil {
		slog.ErrorContext(ctx, "Failed to save snapshot",
			"version", ds.Version, "error", err)
		return
	}

	if w.publisher != nil {
		if err := w.publisher.PublishDatasetRefreshed(ctx, ds.Version, len(ds.Records), ds.RefreshedAt); err != nil {
			// The snapshot is already durable; a missed announcement only
			// delays consumers until the next cycle.
			slog.WarnContext(ctx, "Failed to publish refresh announcement",
				"version", ds.Version, "error", err)
		}
	}

	slog.InfoContext(ctx, "Refresh cycle completed",
		"version", ds.Version,
		"records", len(ds.Records),
		"duration", time.Since(started).Round(time.Millisecond))
}

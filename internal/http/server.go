// Package http serves the dashboard JSON API. Handlers never touch the
// sources directly: they work on the current dataset, which is cached in
// memory, refreshed on demand and backed by the last stored snapshot
// when the sources are unreachable.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"painel/internal/cache"
	"painel/internal/log"
	"painel/internal/middleware/ratelimit"
	"painel/internal/middleware/trace"
	"painel/internal/services"
)

// DatasetProvider produces a fresh dataset from the sources.
type DatasetProvider interface {
	Refresh(ctx context.Context) (*services.Dataset, error)
}

// SnapshotLoader loads the last persisted dataset. May be nil when the
// server runs without storage.
type SnapshotLoader interface {
	LoadLatest(ctx context.Context) (*services.Dataset, error)
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr     string
	PageSize int
	CacheTTL time.Duration
}

const datasetCacheKey = "current"

type Server struct {
	http.Server

	refresher DatasetProvider
	snapshots SnapshotLoader
	pageSize  int

	datasetCache   *cache.LRUCache[*services.Dataset]
	dashboardCache *cache.LRUCache[services.Dashboard]
	cacheManager   *cache.Manager
	limiter        *ratelimit.Limiter

	logger *log.Logger

	// refreshMu serializes on-demand refreshes so concurrent cache
	// misses trigger one download, not one per request.
	refreshMu sync.Mutex

	shutdownOnce sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(cfg ServerConfig, refresher DatasetProvider, snapshots SnapshotLoader, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		refresher:      refresher,
		snapshots:      snapshots,
		pageSize:       cfg.PageSize,
		datasetCache:   cache.NewLRUCache[*services.Dataset](1, cfg.CacheTTL),
		dashboardCache: cache.NewLRUCache[services.Dashboard](200, cfg.CacheTTL),
		cacheManager:   cache.NewManager(),
		limiter:        ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		logger:         logger,
	}

	s.cacheManager.Register(s.datasetCache)
	s.cacheManager.Register(s.dashboardCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/api/periods", s.handlePeriods)
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
	mux.HandleFunc("/api/records", s.handleRecords)
	mux.HandleFunc("/api/trend", s.handleTrend)
	mux.HandleFunc("/api/sources", s.handleSources)

	handler := s.limiter.Middleware(clientIP)(mux)
	handler = trace.Middleware()(handler)
	s.Server = http.Server{
		Addr:    cfg.Addr,
		Handler: log.Middleware(logger)(handler),
	}

	return s
}

// clientIP resolves the caller's address, trusting proxy headers first.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// InvalidateDataset drops the cached dataset after the worker announces
// a new snapshot, so the next request picks the new version up instead
// of waiting out the TTL. Dashboard entries are keyed by version and
// simply stop being hit.
func (s *Server) InvalidateDataset(version string) {
	s.datasetCache.Delete(datasetCacheKey)
	s.logger.Info("Dataset cache invalidated",
		log.FieldDatasetVersion, version)
}

// Shutdown stops the cache cleanup goroutine and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// dataset returns the current dataset: cached if fresh, refreshed from
// the sources otherwise, falling back to the last stored snapshot when
// the refresh fails.
func (s *Server) dataset(ctx context.Context) (*services.Dataset, error) {
	if ds, ok := s.datasetCache.Get(datasetCacheKey); ok {
		return ds, nil
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	// Another request may have refreshed while we waited for the lock.
	if ds, ok := s.datasetCache.Get(datasetCacheKey); ok {
		return ds, nil
	}

	ds, err := s.refresher.Refresh(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Refresh failed, falling back to stored snapshot",
			log.FieldError, err.Error())
		if s.snapshots == nil {
			return nil, err
		}
		snapshot, loadErr := s.snapshots.LoadLatest(ctx)
		if loadErr != nil {
			s.logger.ErrorContext(ctx, "Snapshot fallback failed",
				log.FieldError, loadErr.Error())
			return nil, err
		}
		s.logger.InfoContext(ctx, "Serving stored snapshot",
			log.FieldDatasetVersion, snapshot.Version)
		ds = snapshot
	}

	s.datasetCache.Set(datasetCacheKey, ds)
	return ds, nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.dataset(r.Context()); err != nil {
		http.Error(w, "no data available", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"painel/internal/pipeline"
	"painel/internal/sources"
)

// ErrNoSources is returned when every configured source fails to load:
// a snapshot with no data behind it would silently blank the dashboard.
var ErrNoSources = errors.New("no source could be refreshed")

// RefreshService downloads the source workbooks, runs each sheet through
// the normalization pipeline and merges the results into a Dataset.
// Sources load concurrently; a single failing source degrades the
// snapshot instead of failing the refresh.
type RefreshService struct {
	fetcher sources.FileFetcher
	reader  sources.SheetReader
	schemas []pipeline.Schema
	fileIDs map[string]string
}

func NewRefreshService(
	fetcher sources.FileFetcher,
	reader sources.SheetReader,
	schemas []pipeline.Schema,
	fileIDs map[string]string,
) *RefreshService {
	return &RefreshService{
		fetcher: fetcher,
		reader:  reader,
		schemas: schemas,
		fileIDs: fileIDs,
	}
}

type sourceResult struct {
	table pipeline.Table
	err   error
}

// Refresh loads every configured source and merges the cleaned tables.
// The returned Dataset carries a fresh version and a per-source status
// list; it is an error only when no source loads at all.
func (s *RefreshService) Refresh(ctx context.Context) (*Dataset, error) {
	results := make([]sourceResult, len(s.schemas))

	g, gctx := errgroup.WithContext(ctx)
	for i, schema := range s.schemas {
		i, schema := i, schema
		g.Go(func() error {
			results[i] = s.loadSource(gctx, schema)
			return nil
		})
	}
	// Goroutines report per-source failures through results, never
	// through the group.
	_ = g.Wait()

	dataset := &Dataset{
		Version:     uuid.NewString(),
		RefreshedAt: time.Now().UTC(),
	}

	var loaded []pipeline.Table
	for i, schema := range s.schemas {
		status := SourceStatus{Name: schema.Name}
		if err := results[i].err; err != nil {
			status.Err = err.Error()
			slog.WarnContext(ctx, "Source failed to load, continuing without it",
				"source", schema.Name, "error", err)
		} else {
			status.Rows = results[i].table.Len()
			loaded = append(loaded, results[i].table)
		}
		dataset.Sources = append(dataset.Sources, status)
	}

	if len(loaded) == 0 {
		return nil, ErrNoSources
	}

	merged := pipeline.Merge(loaded...)
	dataset.Records = pipeline.Records(merged)

	slog.InfoContext(ctx, "Dataset refreshed",
		"version", dataset.Version,
		"sources_ok", len(loaded),
		"sources_total", len(s.schemas),
		"records", len(dataset.Records))

	return dataset, nil
}

// loadSource runs one schema end to end: fetch bytes, read the sheet,
// normalize the headers, clean the rows.
func (s *RefreshService) loadSource(ctx context.Context, schema pipeline.Schema) sourceResult {
	fileID, ok := s.fileIDs[schema.FileKey]
	if !ok {
		return sourceResult{err: fmt.Errorf("no file configured for source %q", schema.FileKey)}
	}

	data, err := s.fetcher.Fetch(ctx, fileID)
	if err != nil {
		return sourceResult{err: fmt.Errorf("fetching %q: %w", schema.FileKey, err)}
	}

	header, rows, err := s.reader.Read(data, schema.SheetName, schema.HeaderSkip)
	if err != nil {
		return sourceResult{err: fmt.Errorf("reading sheet %q: %w", schema.SheetName, err)}
	}

	table := pipeline.NormalizeColumns(header, rows, schema)
	cleaned := pipeline.Clean(table, schema)

	slog.DebugContext(ctx, "Source loaded",
		"source", schema.Name,
		"rows_in", len(rows),
		"rows_out", cleaned.Len())

	return sourceResult{table: cleaned}
}

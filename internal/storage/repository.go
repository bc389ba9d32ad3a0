// Package storage persists dataset snapshots to SQLite so the API can
// serve the last good data when the sources are unreachable.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"painel/internal/core"
	"painel/internal/services"

	_ "modernc.org/sqlite"
)

// ErrNoSnapshot is returned by LoadLatest when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// keepSnapshots is how many refreshed snapshots are retained; older ones
// are pruned on every save.
const keepSnapshots = 3

const dateLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveSnapshot stores a refreshed dataset atomically and prunes old
// snapshots beyond the retention window.
func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, ds *services.Dataset) error {
	sourcesJSON, err := json.Marshal(ds.Sources)
	if err != nil {
		return fmt.Errorf("marshal source statuses: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (version, refreshed_at, sources) VALUES (?, ?, ?)`,
		ds.Version, ds.RefreshedAt.UTC().Format(time.RFC3339), string(sourcesJSON))
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	snapshotID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("snapshot id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO snapshot_records (
		snapshot_id, record_date, person, operation, payment_type,
		expense_group, expense_type, order_number, description,
		amount_cents, labor_cents, parts_cents, other_cents,
		total_with_fee_cents, source
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare record insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range ds.Records {
		var date any
		if !rec.Date.IsZero() {
			date = rec.Date.Format(dateLayout)
		}
		if _, err := stmt.ExecContext(ctx,
			snapshotID, date, rec.Person, rec.Operation, rec.PaymentType,
			rec.Group, rec.Type, rec.OrderNumber, rec.Description,
			rec.Amount.Cents, rec.Labor.Cents, rec.Parts.Cents,
			rec.Other.Cents, rec.TotalWithFee.Cents, string(rec.Source),
		); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_records WHERE snapshot_id IN (
		SELECT id FROM snapshots ORDER BY id DESC LIMIT -1 OFFSET ?
	)`, keepSnapshots); err != nil {
		return fmt.Errorf("prune old snapshot records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE id IN (
		SELECT id FROM snapshots ORDER BY id DESC LIMIT -1 OFFSET ?
	)`, keepSnapshots); err != nil {
		return fmt.Errorf("prune old snapshots: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot saved",
		"version", ds.Version,
		"records", len(ds.Records))

	return nil
}

// LoadLatest returns the most recently saved dataset, or ErrNoSnapshot.
func (r *SQLiteRepository) LoadLatest(ctx context.Context) (*services.Dataset, error) {
	var (
		id          int64
		version     string
		refreshedAt string
		sourcesJSON string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, version, refreshed_at, sources FROM snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&id, &version, &refreshedAt, &sourcesJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load latest snapshot: %w", err)
	}

	ds := &services.Dataset{Version: version}
	if ds.RefreshedAt, err = time.Parse(time.RFC3339, refreshedAt); err != nil {
		return nil, fmt.Errorf("parse refreshed_at: %w", err)
	}
	if err := json.Unmarshal([]byte(sourcesJSON), &ds.Sources); err != nil {
		return nil, fmt.Errorf("unmarshal source statuses: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT
		record_date, person, operation, payment_type, expense_group,
		expense_type, order_number, description, amount_cents, labor_cents,
		parts_cents, other_cents, total_with_fee_cents, source
	FROM snapshot_records WHERE snapshot_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("load snapshot records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec  core.Record
			date sql.NullString
			src  string
		)
		if err := rows.Scan(
			&date, &rec.Person, &rec.Operation, &rec.PaymentType, &rec.Group,
			&rec.Type, &rec.OrderNumber, &rec.Description, &rec.Amount.Cents,
			&rec.Labor.Cents, &rec.Parts.Cents, &rec.Other.Cents,
			&rec.TotalWithFee.Cents, &src,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot record: %w", err)
		}
		if date.Valid {
			t, err := time.Parse(dateLayout, date.String)
			if err != nil {
				return nil, fmt.Errorf("parse record date: %w", err)
			}
			rec.Date = core.DateOf(t)
		}
		rec.Source = core.Source(src)
		ds.Records = append(ds.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot records: %w", err)
	}

	return ds, nil
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/piwi3910/hppcalc/internal/logger"
	"github.com/piwi3910/hppcalc/internal/model"
)

const defaultLimit = 10

// SQLiteHistory keeps the most recent estimates in a history table, newest
// first. Each row stores the full entry as JSON plus a few summary columns.
type SQLiteHistory struct {
	db    *sql.DB
	limit int
	log   *slog.Logger
}

// DefaultPath returns the database location under dataDir.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, "history.db")
}

// OpenHistory opens (or creates) the database at path and migrates it.
func OpenHistory(path string, limit int, log *slog.Logger) (*SQLiteHistory, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return NewHistory(db, limit, log), nil
}

// NewHistory wraps an already migrated database.
func NewHistory(db *sql.DB, limit int, log *slog.Logger) *SQLiteHistory {
	if limit <= 0 {
		limit = defaultLimit
	}
	if log == nil {
		log = logger.Discard()
	}
	return &SQLiteHistory{db: db, limit: limit, log: log}
}

// Close closes the underlying database.
func (h *SQLiteHistory) Close() error {
	return h.db.Close()
}

// Save inserts entry and prunes everything beyond the limit.
func (h *SQLiteHistory) Save(ctx context.Context, entry model.HistoryEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO history (saved_at, project_name, unit_count, grand_total, cost_per_unit, payload)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Timestamp.UnixNano(),
		entry.ProjectName,
		entry.Totals.UnitCount,
		entry.Totals.GrandTotal,
		entry.Totals.CostPerUnit,
		string(payload),
	); err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM history
		WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT ?)`, h.limit)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		h.log.Debug("history pruned", "dropped", n)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history tx: %w", err)
	}
	return nil
}

// List returns the saved entries, newest first.
func (h *SQLiteHistory) List(ctx context.Context) ([]model.HistoryEntry, error) {
	rows, err := h.db.QueryContext(ctx, `SELECT payload FROM history ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := []model.HistoryEntry{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		var e model.HistoryEntry
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			return nil, fmt.Errorf("decode history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Summary is one row of the history listing without the full payload.
type Summary struct {
	SavedAt     time.Time
	ProjectName string
	UnitCount   int
	GrandTotal  float64
	CostPerUnit float64
}

// Summaries lists the summary columns, newest first.
func (h *SQLiteHistory) Summaries(ctx context.Context) ([]Summary, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT saved_at, project_name, unit_count, grand_total, cost_per_unit
		FROM history ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query history summaries: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		var savedAt int64
		if err := rows.Scan(&savedAt, &s.ProjectName, &s.UnitCount, &s.GrandTotal, &s.CostPerUnit); err != nil {
			return nil, fmt.Errorf("scan history summary: %w", err)
		}
		s.SavedAt = time.Unix(0, savedAt).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

// Clear deletes all entries.
func (h *SQLiteHistory) Clear(ctx context.Context) error {
	if _, err := h.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

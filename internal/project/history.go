package project

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/piwi3910/hppcalc/internal/logger"
	"github.com/piwi3910/hppcalc/internal/model"
)

// DefaultHistoryLimit is the number of snapshots kept when no limit is set.
const DefaultHistoryLimit = 10

// HistoryStore keeps the most recent saved estimates, newest first.
type HistoryStore interface {
	Save(ctx context.Context, entry model.HistoryEntry) error
	List(ctx context.Context) ([]model.HistoryEntry, error)
	Clear(ctx context.Context) error
}

// FileHistory is a HistoryStore backed by a single JSON file.
type FileHistory struct {
	path  string
	limit int
	log   *slog.Logger
}

// NewFileHistory returns a history stored at path keeping at most limit
// entries. A non-positive limit uses DefaultHistoryLimit.
func NewFileHistory(path string, limit int, log *slog.Logger) *FileHistory {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if log == nil {
		log = logger.Discard()
	}
	return &FileHistory{path: path, limit: limit, log: log}
}

// DefaultHistoryPath returns the history file location under the data dir.
func DefaultHistoryPath(cfg model.AppConfig) string {
	return filepath.Join(DataDir(cfg), "history.json")
}

// Save puts entry at the front of the history and drops the oldest entries
// beyond the limit.
func (h *FileHistory) Save(ctx context.Context, entry model.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := h.List(ctx)
	if err != nil {
		return err
	}
	entries = append([]model.HistoryEntry{entry}, entries...)
	if len(entries) > h.limit {
		h.log.Debug("history pruned", "dropped", len(entries)-h.limit)
		entries = entries[:h.limit]
	}

	return writeJSON(h.path, entries, "history")
}

// List returns the saved entries, newest first. A missing file is an empty
// history.
func (h *FileHistory) List(ctx context.Context) ([]model.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var entries []model.HistoryEntry
	if err := readJSON(h.path, &entries, "history"); err != nil {
		if isNotExist(err) {
			return []model.HistoryEntry{}, nil
		}
		return nil, err
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	return entries, nil
}

// Clear deletes all entries.
func (h *FileHistory) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

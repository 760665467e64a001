package project

import (
	"fmt"
	"time"

	"github.com/piwi3910/hppcalc/internal/model"
)

const backupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string               `json:"version"`
	CreatedAt string               `json:"created_at"`
	Config    model.AppConfig      `json:"config"`
	Inventory model.Inventory      `json:"inventory"`
	Templates model.TemplateStore  `json:"templates"`
	History   []model.HistoryEntry `json:"history"`
}

// NewBackup bundles the application data with the current time.
func NewBackup(config model.AppConfig, inv model.Inventory, templates model.TemplateStore, history []model.HistoryEntry) BackupData {
	if history == nil {
		history = []model.HistoryEntry{}
	}
	return BackupData{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Inventory: inv,
		Templates: templates,
		History:   history,
	}
}

// ExportAllData writes a backup to a single JSON file at the specified path.
func ExportAllData(exportPath string, backup BackupData) error {
	return writeJSON(exportPath, backup, "backup")
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying it.
func ImportAllData(importPath string) (BackupData, error) {
	var backup BackupData
	if err := readJSON(importPath, &backup, "backup"); err != nil {
		return BackupData{}, err
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	// Ensure slices are never nil
	if backup.Config.RecentProjects == nil {
		backup.Config.RecentProjects = []string{}
	}
	if backup.Inventory.Presets == nil {
		backup.Inventory.Presets = []model.MaterialPreset{}
	}
	if backup.Templates.Templates == nil {
		backup.Templates.Templates = []model.ProjectTemplate{}
	}
	if backup.History == nil {
		backup.History = []model.HistoryEntry{}
	}
	return backup, nil
}

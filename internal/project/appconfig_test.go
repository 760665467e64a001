package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/piwi3910/hppcalc/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.PanelSheetLength = 240
	cfg.LinearBarLength = 1
	cfg.HistoryDriver = "sqlite"
	cfg.DefaultUnitCount = 25
	cfg.RecentProjects = []string{"/tmp/a.hpp.json", "/tmp/b.hpp.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.PanelSheetLength != 240 {
		t.Errorf("expected PanelSheetLength=240, got %f", loaded.PanelSheetLength)
	}
	if loaded.LinearBarLength != 1 {
		t.Errorf("expected LinearBarLength=1, got %f", loaded.LinearBarLength)
	}
	if loaded.HistoryDriver != "sqlite" {
		t.Errorf("expected HistoryDriver=sqlite, got %s", loaded.HistoryDriver)
	}
	if loaded.DefaultUnitCount != 25 {
		t.Errorf("expected DefaultUnitCount=25, got %d", loaded.DefaultUnitCount)
	}
	if len(loaded.RecentProjects) != 2 {
		t.Errorf("expected 2 recent projects, got %d", len(loaded.RecentProjects))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.PanelSheetWidth != defaults.PanelSheetWidth {
		t.Errorf("expected default sheet width %f, got %f", defaults.PanelSheetWidth, cfg.PanelSheetWidth)
	}
	if cfg.OverheadPercent != 5 {
		t.Errorf("expected overhead 5, got %f", cfg.OverheadPercent)
	}
	if cfg.HistoryLimit != 10 {
		t.Errorf("expected history limit 10, got %d", cfg.HistoryLimit)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"fabric_width": 150}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.FabricWidth != 150 {
		t.Errorf("expected fabric width 150, got %f", cfg.FabricWidth)
	}
	if cfg.LiquidCoverage != 10 {
		t.Errorf("expected default coverage 10, got %f", cfg.LiquidCoverage)
	}
}

func TestLoadAppConfigEnvOverride(t *testing.T) {
	t.Setenv("HPP_OVERHEAD_PERCENT", "7.5")
	t.Setenv("HPP_LOG_LEVEL", "debug")

	cfg, err := LoadAppConfig("")
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.OverheadPercent != 7.5 {
		t.Errorf("expected overhead 7.5 from env, got %f", cfg.OverheadPercent)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug from env, got %s", cfg.LogLevel)
	}
}

func TestLoadAppConfigWithFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"overhead_percent": 8, "history_limit": 3}`), 0644); err != nil {
		t.Fatal(err)
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64("overhead-percent", 0, "")
	flags.Int("history-limit", 0, "")
	flags.String("output", "", "")
	if err := flags.Parse([]string{"--overhead-percent=12"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfigWithFlags(path, flags)
	if err != nil {
		t.Fatalf("LoadAppConfigWithFlags failed: %v", err)
	}
	if cfg.OverheadPercent != 12 {
		t.Errorf("expected flag to win with 12, got %f", cfg.OverheadPercent)
	}
	if cfg.HistoryLimit != 3 {
		t.Errorf("unset flag should not override file, got %d", cfg.HistoryLimit)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigNilRecentProjects(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"panel_sheet_length":244,"recent_projects":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil after loading")
	}
}

func TestAddRecentProject(t *testing.T) {
	cfg := model.DefaultAppConfig()
	for i := 0; i < 12; i++ {
		AddRecentProject(&cfg, filepath.Join("/p", string(rune('a'+i))))
	}
	if len(cfg.RecentProjects) != 10 {
		t.Fatalf("expected 10 recent projects, got %d", len(cfg.RecentProjects))
	}

	AddRecentProject(&cfg, "/p/e")
	if cfg.RecentProjects[0] != "/p/e" {
		t.Errorf("expected /p/e first, got %s", cfg.RecentProjects[0])
	}
	if len(cfg.RecentProjects) != 10 {
		t.Errorf("re-adding should not grow the list, got %d", len(cfg.RecentProjects))
	}
}

func TestDataDir(t *testing.T) {
	cfg := model.DefaultAppConfig()
	if filepath.Base(DataDir(cfg)) != ".hppcalc" {
		t.Errorf("expected default data dir .hppcalc, got %s", DataDir(cfg))
	}
	cfg.DataDir = "/srv/hpp"
	if DataDir(cfg) != "/srv/hpp" {
		t.Errorf("expected configured data dir, got %s", DataDir(cfg))
	}
}

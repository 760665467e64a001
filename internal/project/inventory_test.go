package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/hppcalc/internal/model"
)

func TestDefaultInventoryPath(t *testing.T) {
	path := DefaultInventoryPath()
	if filepath.Base(path) != "inventory.json" {
		t.Errorf("expected filename inventory.json, got %s", filepath.Base(path))
	}
	dir := filepath.Base(filepath.Dir(path))
	if dir != ".hppcalc" {
		t.Errorf("expected parent dir .hppcalc, got %s", dir)
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test_inventory.json")

	inv := model.Inventory{
		Presets: []model.MaterialPreset{
			model.NewMaterialPreset("Test Plywood", "Panel", model.PanelConfig{
				RawSheetLength: "244", RawSheetWidth: "122", PricePerSheet: "250000",
			}),
			model.NewMaterialPreset("Test Paint", "Liquid", model.LiquidConfig{Coverage: "12"}),
		},
	}

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("inventory file was not created")
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(loaded.Presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(loaded.Presets))
	}
	cfg, ok := loaded.Presets[0].Material.Config.(model.PanelConfig)
	if !ok {
		t.Fatalf("expected PanelConfig after load, got %T", loaded.Presets[0].Material.Config)
	}
	if cfg.PricePerSheet != "250000" {
		t.Errorf("expected price 250000, got %s", cfg.PricePerSheet)
	}
	if loaded.Presets[1].Material.Kind != model.KindLiquid {
		t.Errorf("expected liquid preset, got %s", loaded.Presets[1].Material.Kind)
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(inv.Presets) != len(model.DefaultInventory().Presets) {
		t.Errorf("expected default presets, got %d", len(inv.Presets))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default inventory should be saved: %v", err)
	}
}

func TestLoadInventoryInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := os.WriteFile(path, []byte("{bad"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInventory(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportInventoryMergesByID(t *testing.T) {
	existing := model.Inventory{Presets: []model.MaterialPreset{
		model.NewMaterialPreset("Plywood", "Panel", model.PanelConfig{}),
	}}
	imported := model.Inventory{Presets: []model.MaterialPreset{
		existing.Presets[0],
		model.NewMaterialPreset("Hinge", "Unit", model.UnitConfig{PricePerUnit: "5000"}),
	}}

	path := filepath.Join(t.TempDir(), "import.json")
	data, err := json.Marshal(imported)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	merged, err := ImportInventory(path, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}
	if len(merged.Presets) != 2 {
		t.Fatalf("expected 2 presets after merge, got %d", len(merged.Presets))
	}
	if merged.Presets[1].Name != "Hinge" {
		t.Errorf("expected Hinge appended, got %s", merged.Presets[1].Name)
	}
}

func TestImportInventoryMissingFile(t *testing.T) {
	existing := model.DefaultInventory()
	got, err := ImportInventory(filepath.Join(t.TempDir(), "none.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(got.Presets) != len(existing.Presets) {
		t.Error("existing inventory should be returned unchanged")
	}
}

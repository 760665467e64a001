package project

import (
	"path/filepath"

	"github.com/piwi3910/hppcalc/internal/model"
)

// DefaultInventoryPath returns the default file path for the material presets.
// This is located at ~/.hppcalc/inventory.json.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

// SaveInventory writes the inventory to the specified JSON file.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv, "inventory")
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	var inv model.Inventory
	if err := readJSON(path, &inv, "inventory"); err != nil {
		if !isNotExist(err) {
			return model.Inventory{}, err
		}
		inv = model.DefaultInventory()
		return inv, SaveInventory(path, inv)
	}
	if inv.Presets == nil {
		inv.Presets = []model.MaterialPreset{}
	}
	return inv, nil
}

// ImportInventory reads presets from a JSON file and merges them into the
// existing inventory. Presets whose ID is already present are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	var imported model.Inventory
	if err := readJSON(path, &imported, "inventory"); err != nil {
		return existing, err
	}
	return MergeInventory(existing, imported), nil
}

// MergeInventory appends the presets of imported whose IDs are not yet in
// existing.
func MergeInventory(existing, imported model.Inventory) model.Inventory {
	ids := make(map[string]bool, len(existing.Presets))
	for _, p := range existing.Presets {
		ids[p.ID] = true
	}
	for _, p := range imported.Presets {
		if !ids[p.ID] {
			existing.Presets = append(existing.Presets, p)
			ids[p.ID] = true
		}
	}
	return existing
}

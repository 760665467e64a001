package model

// MaterialPreset is a reusable material definition: a named config with the
// supplier's stock size and price already filled in.
type MaterialPreset struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Material Material `json:"material"`
}

// NewMaterialPreset creates a preset with a generated ID.
func NewMaterialPreset(name, category string, cfg MaterialConfig) MaterialPreset {
	return MaterialPreset{
		ID:       newID(),
		Name:     name,
		Category: category,
		Material: Material{ID: newID(), Kind: cfg.Kind(), Name: name, Config: cfg},
	}
}

// ToMaterial returns a fresh material built from the preset.
func (p MaterialPreset) ToMaterial() Material {
	m := p.Material.Clone()
	m.ID = newID()
	m.Result = nil
	m.Stale = false
	if m.Name == "" {
		m.Name = p.Name
	}
	return m
}

// Inventory holds the user's saved material presets.
type Inventory struct {
	Presets []MaterialPreset `json:"presets"`
}

// DefaultInventory returns an inventory populated with common workshop stock.
// Prices are in rupiah.
func DefaultInventory() Inventory {
	return Inventory{
		Presets: []MaterialPreset{
			NewMaterialPreset("Plywood 18mm 244x122", "Panel", PanelConfig{
				Mode: ModeDimension, RawSheetLength: "244", RawSheetWidth: "122",
				PricePerSheet: "250000", WastePercent: "10",
			}),
			NewMaterialPreset("MDF 15mm 244x122", "Panel", PanelConfig{
				Mode: ModeDimension, RawSheetLength: "244", RawSheetWidth: "122",
				PricePerSheet: "185000", WastePercent: "10",
			}),
			NewMaterialPreset("Hollow 40x40 6m", "Linear", LinearConfig{
				Mode: ModePerUnit, RawBarLength: "6", PricePerUnit: "120000", WastePercent: "5",
			}),
			NewMaterialPreset("Edging PVC 22mm", "Linear", LinearConfig{
				Mode: ModePerUnit, RawBarLength: "1", PricePerUnit: "3500", WastePercent: "10",
			}),
			NewMaterialPreset("Melamine Clear", "Liquid", LiquidConfig{
				Layers: "2", Coverage: "10", PricePerLiter: "95000", WastePercent: "15",
			}),
			NewMaterialPreset("Canvas 140cm", "Fabric", FabricConfig{
				Mode: ModePerUnit, FabricWidth: "140", PricePerMeter: "65000", WastePercent: "15",
			}),
			NewMaterialPreset("Foam D23 5cm", "Unit", UnitConfig{
				PricePerUnit: "85000",
			}),
		},
	}
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (inv *Inventory) FindByID(id string) *MaterialPreset {
	for i := range inv.Presets {
		if inv.Presets[i].ID == id {
			return &inv.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (inv *Inventory) FindByName(name string) *MaterialPreset {
	for i := range inv.Presets {
		if inv.Presets[i].Name == name {
			return &inv.Presets[i]
		}
	}
	return nil
}

// Names returns the preset names.
func (inv *Inventory) Names() []string {
	names := make([]string, len(inv.Presets))
	for i, p := range inv.Presets {
		names[i] = p.Name
	}
	return names
}

// ByKind returns the presets of one material kind.
func (inv *Inventory) ByKind(kind Kind) []MaterialPreset {
	var out []MaterialPreset
	for _, p := range inv.Presets {
		if p.Material.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

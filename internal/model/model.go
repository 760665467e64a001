package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies which purchasing rule a material follows.
type Kind string

const (
	KindPanel  Kind = "panel"  // Sheet goods: plywood, MDF, HPL
	KindLinear Kind = "linear" // Bars, profiles, pipes, edge banding
	KindLiquid Kind = "liquid" // Paint, lacquer, glue
	KindFabric Kind = "fabric" // Upholstery fabric sold by the meter
	KindUnit   Kind = "unit"   // Piece goods counted by hand
)

// Kinds lists every material kind in display order.
var Kinds = []Kind{KindPanel, KindLinear, KindLiquid, KindFabric, KindUnit}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	switch k {
	case KindPanel:
		return "Panel"
	case KindLinear:
		return "Linear"
	case KindLiquid:
		return "Liquid"
	case KindFabric:
		return "Fabric"
	case KindUnit:
		return "Unit"
	default:
		return string(k)
	}
}

// InputMode selects how the net requirement is entered.
type InputMode string

const (
	ModeDimension InputMode = "dimension" // Panel: cut length x width per unit
	ModeArea      InputMode = "area"      // Panel: total net area for the batch
	ModePerUnit   InputMode = "perUnit"   // Linear/Fabric: length per unit
	ModeTotal     InputMode = "total"     // Linear/Fabric: total length for the batch
)

// MaterialConfig is the kind-specific input of a material. The concrete types
// are PanelConfig, LinearConfig, LiquidConfig, FabricConfig and UnitConfig.
type MaterialConfig interface {
	Kind() Kind
}

// PanelConfig describes a sheet material. Lengths are in cm, areas in m².
type PanelConfig struct {
	Mode           InputMode `json:"mode"`
	CutLength      Value     `json:"cut_length"`
	CutWidth       Value     `json:"cut_width"`
	DirectArea     Value     `json:"direct_area"` // Total for all units
	RawSheetLength Value     `json:"raw_sheet_length"`
	RawSheetWidth  Value     `json:"raw_sheet_width"`
	PricePerSheet  Value     `json:"price_per_sheet"`
	WastePercent   Value     `json:"waste_percent"`
}

func (PanelConfig) Kind() Kind { return KindPanel }

// LinearConfig describes a bar material. Lengths are in meters; a raw bar
// length of 1 means the material is sold by the running meter.
type LinearConfig struct {
	Mode          InputMode `json:"mode"`
	LengthPerUnit Value     `json:"length_per_unit"`
	TotalLength   Value     `json:"total_length"`
	RawBarLength  Value     `json:"raw_bar_length"`
	PricePerUnit  Value     `json:"price_per_unit"`
	WastePercent  Value     `json:"waste_percent"`
}

func (LinearConfig) Kind() Kind { return KindLinear }

// LiquidConfig describes a coating. Coverage is m² per liter per layer.
type LiquidConfig struct {
	SurfaceArea   Value `json:"surface_area"` // m² per unit
	Layers        Value `json:"layers"`
	Coverage      Value `json:"coverage"`
	PricePerLiter Value `json:"price_per_liter"`
	WastePercent  Value `json:"waste_percent"`
}

func (LiquidConfig) Kind() Kind { return KindLiquid }

// FabricConfig describes fabric sold by the meter. Width (cm) is informational.
type FabricConfig struct {
	Mode          InputMode `json:"mode"`
	LengthPerUnit Value     `json:"length_per_unit"`
	TotalLength   Value     `json:"total_length"`
	FabricWidth   Value     `json:"fabric_width"`
	PricePerMeter Value     `json:"price_per_meter"`
	WastePercent  Value     `json:"waste_percent"`
}

func (FabricConfig) Kind() Kind { return KindFabric }

// UnitConfig describes piece goods. QtyNeeded already covers the whole batch.
type UnitConfig struct {
	QtyNeeded    Value  `json:"qty_needed"`
	PricePerUnit Value  `json:"price_per_unit"`
	Notes        string `json:"notes"`
}

func (UnitConfig) Kind() Kind { return KindUnit }

// Material is one row of material consumption.
type Material struct {
	ID     string         `json:"id"`
	Kind   Kind           `json:"kind"`
	Name   string         `json:"name"`
	Config MaterialConfig `json:"config"`
	Result *PurchasePlan  `json:"result,omitempty"`
	Stale  bool           `json:"stale,omitempty"` // Config edited since Result was computed
}

// NewMaterial creates a material of the given kind with default inputs.
func NewMaterial(kind Kind, name string, cfg AppConfig) Material {
	return Material{
		ID:     newID(),
		Kind:   kind,
		Name:   name,
		Config: cfg.DefaultMaterialConfig(kind),
	}
}

// DisplayName returns the name, or a placeholder for unnamed materials.
func (m Material) DisplayName() string {
	if m.Name == "" {
		return "Unnamed"
	}
	return m.Name
}

// Clone returns a copy that shares no mutable state with m.
func (m Material) Clone() Material {
	cp := m
	if m.Result != nil {
		r := m.Result.clone()
		cp.Result = &r
	}
	return cp
}

type materialJSON struct {
	ID     string          `json:"id"`
	Kind   Kind            `json:"kind"`
	Name   string          `json:"name"`
	Config json.RawMessage `json:"config"`
	Result *PurchasePlan   `json:"result,omitempty"`
	Stale  bool            `json:"stale,omitempty"`
}

// UnmarshalJSON decodes the config according to the kind field.
func (m *Material) UnmarshalJSON(data []byte) error {
	var raw materialJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	cfg, err := decodeConfig(raw.Kind, raw.Config)
	if err != nil {
		return fmt.Errorf("material %s: %w", raw.ID, err)
	}
	*m = Material{
		ID:     raw.ID,
		Kind:   raw.Kind,
		Name:   raw.Name,
		Config: cfg,
		Result: raw.Result,
		Stale:  raw.Stale,
	}
	return nil
}

func decodeConfig(kind Kind, data json.RawMessage) (MaterialConfig, error) {
	if len(data) == 0 || string(data) == "null" {
		data = json.RawMessage("{}")
	}
	switch kind {
	case KindPanel:
		var c PanelConfig
		err := json.Unmarshal(data, &c)
		return c, err
	case KindLinear:
		var c LinearConfig
		err := json.Unmarshal(data, &c)
		return c, err
	case KindLiquid:
		var c LiquidConfig
		err := json.Unmarshal(data, &c)
		return c, err
	case KindFabric:
		var c FabricConfig
		err := json.Unmarshal(data, &c)
		return c, err
	case KindUnit:
		var c UnitConfig
		err := json.Unmarshal(data, &c)
		return c, err
	default:
		return nil, fmt.Errorf("unknown material kind %q", kind)
	}
}

// HardwareItem is an accessory line: hinges, screws, handles.
type HardwareItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Qty     Value  `json:"qty"`
	Price   Value  `json:"price"`
	PerUnit bool   `json:"per_unit"` // Qty is per finished unit
}

// NewHardwareItem returns a hardware row with quantity 1 for the whole batch.
func NewHardwareItem(name string) HardwareItem {
	return HardwareItem{ID: newID(), Name: name, Qty: "1"}
}

// Cost returns qty x price, scaled by units when the item is per unit.
func (h HardwareItem) Cost(units int) float64 {
	cost := h.Qty.Float() * h.Price.Float()
	if h.PerUnit {
		cost *= float64(EffectiveUnits(units))
	}
	return cost
}

// LaborItem is a labor cost line.
type LaborItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CostPerUnit Value  `json:"cost_per_unit"`
	PerUnit     bool   `json:"per_unit"`
}

// NewLaborItem returns a labor row that scales with the unit count.
func NewLaborItem(name string) LaborItem {
	return LaborItem{ID: newID(), Name: name, PerUnit: true}
}

// Cost returns the labor cost, scaled by units when the item is per unit.
func (l LaborItem) Cost(units int) float64 {
	cost := l.CostPerUnit.Float()
	if l.PerUnit {
		cost *= float64(EffectiveUnits(units))
	}
	return cost
}

// Project ties everything together for save/load.
type Project struct {
	Name            string         `json:"name"`
	UnitCount       int            `json:"unit_count"`
	OverheadPercent Value          `json:"overhead_percent"`
	Materials       []Material     `json:"materials"`
	Hardware        []HardwareItem `json:"hardware"`
	Labor           []LaborItem    `json:"labor"`
}

// NewProject returns an empty project seeded with one hardware and one labor
// row, the way a fresh estimate starts.
func NewProject(name string, cfg AppConfig) Project {
	if name == "" {
		name = "Untitled"
	}
	return Project{
		Name:            name,
		UnitCount:       EffectiveUnits(cfg.DefaultUnitCount),
		OverheadPercent: Num(cfg.OverheadPercent),
		Materials:       []Material{},
		Hardware:        []HardwareItem{NewHardwareItem("")},
		Labor:           []LaborItem{NewLaborItem("")},
	}
}

// Units returns the effective unit count of the project.
func (p Project) Units() int {
	return EffectiveUnits(p.UnitCount)
}

func newID() string {
	return uuid.New().String()[:8]
}

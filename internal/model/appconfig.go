package model

// AppConfig holds application-wide preferences and the defaults applied to
// newly added materials.
type AppConfig struct {
	// Panel defaults
	PanelSheetLength  float64 `json:"panel_sheet_length" mapstructure:"panel_sheet_length"` // cm
	PanelSheetWidth   float64 `json:"panel_sheet_width" mapstructure:"panel_sheet_width"`   // cm
	PanelWastePercent float64 `json:"panel_waste_percent" mapstructure:"panel_waste_percent"`

	// Linear defaults
	LinearBarLength    float64 `json:"linear_bar_length" mapstructure:"linear_bar_length"` // m, 1 = running meter
	LinearWastePercent float64 `json:"linear_waste_percent" mapstructure:"linear_waste_percent"`

	// Liquid defaults
	LiquidLayers       float64 `json:"liquid_layers" mapstructure:"liquid_layers"`
	LiquidCoverage     float64 `json:"liquid_coverage" mapstructure:"liquid_coverage"` // m² per liter
	LiquidWastePercent float64 `json:"liquid_waste_percent" mapstructure:"liquid_waste_percent"`

	// Fabric defaults
	FabricWidth        float64 `json:"fabric_width" mapstructure:"fabric_width"` // cm
	FabricWastePercent float64 `json:"fabric_waste_percent" mapstructure:"fabric_waste_percent"`

	// Project defaults
	DefaultUnitCount int     `json:"default_unit_count" mapstructure:"default_unit_count"`
	OverheadPercent  float64 `json:"overhead_percent" mapstructure:"overhead_percent"`

	// Storage
	DataDir       string `json:"data_dir" mapstructure:"data_dir"`             // "" = ~/.hppcalc
	HistoryDriver string `json:"history_driver" mapstructure:"history_driver"` // "file" or "sqlite"
	HistoryLimit  int    `json:"history_limit" mapstructure:"history_limit"`

	// Application preferences
	LogLevel       string   `json:"log_level" mapstructure:"log_level"`   // "debug", "info", "warn", "error"
	LogFormat      string   `json:"log_format" mapstructure:"log_format"` // "text" or "json"
	RecentProjects []string `json:"recent_projects" mapstructure:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with the workshop defaults:
// 244x122 cm sheets, 6 m bars, two coats at 10 m²/L and 140 cm fabric.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		PanelSheetLength:   244,
		PanelSheetWidth:    122,
		PanelWastePercent:  10,
		LinearBarLength:    6,
		LinearWastePercent: 5,
		LiquidLayers:       2,
		LiquidCoverage:     10,
		LiquidWastePercent: 15,
		FabricWidth:        140,
		FabricWastePercent: 15,
		DefaultUnitCount:   10,
		OverheadPercent:    5,
		HistoryDriver:      "file",
		HistoryLimit:       10,
		LogLevel:           "info",
		LogFormat:          "text",
		RecentProjects:     []string{},
	}
}

// DefaultMaterialConfig returns the starting inputs for a new material of the
// given kind. Quantities and prices are left blank for the user to fill in.
func (c AppConfig) DefaultMaterialConfig(kind Kind) MaterialConfig {
	switch kind {
	case KindPanel:
		return PanelConfig{
			Mode:           ModeDimension,
			RawSheetLength: Num(c.PanelSheetLength),
			RawSheetWidth:  Num(c.PanelSheetWidth),
			WastePercent:   Num(c.PanelWastePercent),
		}
	case KindLinear:
		return LinearConfig{
			Mode:         ModePerUnit,
			RawBarLength: Num(c.LinearBarLength),
			WastePercent: Num(c.LinearWastePercent),
		}
	case KindLiquid:
		return LiquidConfig{
			Layers:       Num(c.LiquidLayers),
			Coverage:     Num(c.LiquidCoverage),
			WastePercent: Num(c.LiquidWastePercent),
		}
	case KindFabric:
		return FabricConfig{
			Mode:         ModePerUnit,
			FabricWidth:  Num(c.FabricWidth),
			WastePercent: Num(c.FabricWastePercent),
		}
	case KindUnit:
		return UnitConfig{}
	default:
		return nil
	}
}

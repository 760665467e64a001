package model

import "time"

// PurchaseUnit is the discrete, buyable increment of a material.
type PurchaseUnit string

const (
	UnitSheet PurchaseUnit = "Sheet"
	UnitBar   PurchaseUnit = "Bar"
	UnitMeter PurchaseUnit = "Meter" // Running meter
	UnitLiter PurchaseUnit = "Liter"
	UnitPiece PurchaseUnit = "Unit"
)

// Natural measurement units used in waste reports and trail steps.
const (
	SquareMeter = "m²"
	Meter       = "m"
	Liter       = "L"
	Centimeter  = "cm"
	Percent     = "%"
)

// StepOp identifies one step of a derivation trail.
type StepOp string

const (
	OpNetAreaPerPiece StepOp = "net_area_per_piece" // cutLength, cutWidth -> m²
	OpTotalNetArea    StepOp = "total_net_area"     // netArea, units -> m²
	OpDirectInput     StepOp = "direct_input"       // value, units -> value
	OpGross           StepOp = "gross"              // net, waste% -> gross
	OpSheetArea       StepOp = "sheet_area"         // rawLength, rawWidth -> m²
	OpSheetsNeeded    StepOp = "sheets_needed"      // gross, sheetArea, ratio -> sheets
	OpNetLength       StepOp = "net_length"         // lengthPerUnit, units -> m
	OpMeterRun        StepOp = "meter_run"          // mode marker
	OpMetersNeeded    StepOp = "meters_needed"      // gross -> meters
	OpBarMode         StepOp = "bar_mode"           // mode marker
	OpBarsNeeded      StepOp = "bars_needed"        // gross, barLength, ratio -> bars
	OpPurchased       StepOp = "purchased"          // bars, barLength -> m
	OpLeftover        StepOp = "leftover"           // purchased, gross -> m
	OpTotalArea       StepOp = "total_area"         // surface, layers, units -> m²
	OpNetLiters       StepOp = "net_liters"         // totalArea, coverage -> L
	OpLitersToBuy     StepOp = "liters_to_buy"      // gross -> L
	OpFabricWidth     StepOp = "fabric_width"       // width -> cm
	OpQuantity        StepOp = "quantity"           // qty -> qty
	OpNotes           StepOp = "notes"              // Text only
	OpCost            StepOp = "cost"               // qty, price -> cost
	OpMissingInput    StepOp = "missing_input"      // Advisory, Text names the field
)

// Step is one structured entry of a derivation trail. Presentation decides how
// to phrase and format it.
type Step struct {
	Op       StepOp    `json:"op"`
	Operands []float64 `json:"operands,omitempty"`
	Result   float64   `json:"result"`
	Unit     string    `json:"unit,omitempty"`
	Text     string    `json:"text,omitempty"`
}

// Advisory reports whether the step is a warning rather than arithmetic.
func (s Step) Advisory() bool {
	return s.Op == OpMissingInput
}

// WasteReport describes the waste allowance of a plan.
type WasteReport struct {
	Amount  float64 `json:"amount"`
	Unit    string  `json:"unit"`
	Percent float64 `json:"percent"` // Allowance that was applied
}

// Offcut is the informational leftover of a bar purchase.
type Offcut struct {
	Purchased float64 `json:"purchased"` // m bought
	Leftover  float64 `json:"leftover"`  // m beyond the gross requirement
}

// PurchasePlan is the output of a resolver. It is a value: resolvers build a
// fresh one every time and nothing mutates it afterwards.
type PurchasePlan struct {
	Kind      Kind         `json:"kind"`
	Quantity  float64      `json:"quantity"`
	Unit      PurchaseUnit `json:"unit"`
	TotalCost float64      `json:"total_cost"`
	Net       float64      `json:"net"`
	Gross     float64      `json:"gross"`
	Waste     *WasteReport `json:"waste,omitempty"`
	Offcut    *Offcut      `json:"offcut,omitempty"`
	Trail     []Step       `json:"trail"`
}

// MissingInput reports whether the plan was short-circuited by an advisory.
func (p PurchasePlan) MissingInput() bool {
	for _, s := range p.Trail {
		if s.Advisory() {
			return true
		}
	}
	return false
}

func (p PurchasePlan) clone() PurchasePlan {
	cp := p
	if p.Waste != nil {
		w := *p.Waste
		cp.Waste = &w
	}
	if p.Offcut != nil {
		o := *p.Offcut
		cp.Offcut = &o
	}
	if p.Trail != nil {
		cp.Trail = make([]Step, len(p.Trail))
		for i, s := range p.Trail {
			cp.Trail[i] = s
			if s.Operands != nil {
				cp.Trail[i].Operands = append([]float64(nil), s.Operands...)
			}
		}
	}
	return cp
}

// Totals is the cost roll-up of a project. Money values are not rounded.
type Totals struct {
	UnitCount    int     `json:"unit_count"`
	MaterialCost float64 `json:"material_cost"`
	HardwareCost float64 `json:"hardware_cost"`
	LaborCost    float64 `json:"labor_cost"`
	Subtotal     float64 `json:"subtotal"`
	Overhead     float64 `json:"overhead"`
	GrandTotal   float64 `json:"grand_total"`
	CostPerUnit  float64 `json:"cost_per_unit"`
}

// HistoryEntry is one saved snapshot of a project and its last totals.
type HistoryEntry struct {
	Timestamp       time.Time      `json:"timestamp"`
	ProjectName     string         `json:"project_name"`
	UnitCount       int            `json:"unit_count"`
	OverheadPercent Value          `json:"overhead_percent"`
	Materials       []Material     `json:"materials"`
	Hardware        []HardwareItem `json:"hardware"`
	Labor           []LaborItem    `json:"labor"`
	Totals          Totals         `json:"totals"`
}

// Project rebuilds the project the entry was saved from.
func (e HistoryEntry) Project() Project {
	return Project{
		Name:            e.ProjectName,
		UnitCount:       e.UnitCount,
		OverheadPercent: e.OverheadPercent,
		Materials:       append([]Material{}, e.Materials...),
		Hardware:        append([]HardwareItem{}, e.Hardware...),
		Labor:           append([]LaborItem{}, e.Labor...),
	}
}

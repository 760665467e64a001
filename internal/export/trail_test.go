package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/hppcalc/internal/engine"
	"github.com/piwi3910/hppcalc/internal/model"
)

func panelConfig() model.PanelConfig {
	return model.PanelConfig{
		Mode:           model.ModeDimension,
		CutLength:      "120",
		CutWidth:       "60",
		RawSheetLength: "244",
		RawSheetWidth:  "122",
		PricePerSheet:  "250000",
		WastePercent:   "10",
	}
}

func TestRenderTrail_Panel(t *testing.T) {
	plan := engine.ResolvePanel(panelConfig(), 10)

	lines := RenderTrail(plan.Trail)
	assert.Equal(t, []string{
		"1. Net area per piece: 120 × 60 cm = 0.7200 m²",
		"2. Total net area (10 pcs): 0.7200 × 10 = 7.2000 m²",
		"3. Gross (+10% waste): 7.2000 × 1.10 = 7.9200 m²",
		"4. Raw sheet area: 244 × 122 cm = 2.9768 m²",
		"5. Sheets needed: 7.9200 ÷ 2.9768 = 2.66 -> 3 Sheet",
		"6. Total cost: 3 × Rp 250.000 = Rp 750.000",
	}, lines)
}

func TestRenderTrail_MarkersAreNotNumbered(t *testing.T) {
	steps := []model.Step{
		{Op: model.OpBarMode},
		{Op: model.OpBarsNeeded, Operands: []float64{12.6, 6, 2.1}, Result: 3, Unit: string(model.UnitBar)},
		{Op: model.OpPurchased, Operands: []float64{3, 6}, Result: 18, Unit: model.Meter},
		{Op: model.OpLeftover, Operands: []float64{18, 12.6}, Result: 5.4, Unit: model.Meter},
	}
	assert.Equal(t, []string{
		"Sold per bar",
		"1. Bars needed: 12.60 ÷ 6 = 2.10 -> 3 Bar",
		"Total bought: 3 × 6 m = 18.00 m",
		"Leftover: 5.40 m",
	}, RenderTrail(steps))
}

func TestRenderStep_Advisory(t *testing.T) {
	plan := engine.ResolvePanel(model.PanelConfig{Mode: model.ModeDimension}, 10)
	require.True(t, plan.MissingInput())

	lines := RenderTrail(plan.Trail)
	require.Len(t, lines, 1)
	assert.Equal(t, "Missing input: cut length and width", lines[0])
}

func TestRenderStep_Liquid(t *testing.T) {
	s := model.Step{Op: model.OpNetLiters, Operands: []float64{24, 10}, Result: 2.4, Unit: model.Liter}
	assert.Equal(t, "Net liters: 24.00 ÷ 10 m²/L = 2.40 L", RenderStep(s))

	s = model.Step{Op: model.OpLitersToBuy, Operands: []float64{2.76}, Result: 3, Unit: model.Liter}
	assert.Equal(t, "Liters to buy: 2.76 L -> 3 L", RenderStep(s))
}

func TestRenderStep_MissingOperandsDoNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		RenderStep(model.Step{Op: model.OpSheetsNeeded})
		RenderStep(model.Step{Op: model.OpCost, Operands: []float64{1}})
		RenderStep(model.Step{Op: "custom", Result: 1})
	})
}

func TestRenderTrail_Empty(t *testing.T) {
	assert.Empty(t, RenderTrail(nil))
}

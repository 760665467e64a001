package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/hppcalc/internal/model"
)

func panelExample() model.PanelConfig {
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

func findStep(t *testing.T, plan model.PurchasePlan, op model.StepOp) model.Step {
	t.Helper()
	for _, s := range plan.Trail {
		if s.Op == op {
			return s
		}
	}
	t.Fatalf("step %s not found in trail", op)
	return model.Step{}
}

func TestResolvePanelWorkedExample(t *testing.T) {
	plan := ResolvePanel(panelExample(), 10)

	assert.InDelta(t, 0.72, findStep(t, plan, model.OpNetAreaPerPiece).Result, 1e-9)
	assert.InDelta(t, 7.2, plan.Net, 1e-9)
	assert.InDelta(t, 7.92, plan.Gross, 1e-9)
	assert.InDelta(t, 2.9768, findStep(t, plan, model.OpSheetArea).Result, 1e-9)
	assert.Equal(t, 3.0, plan.Quantity)
	assert.Equal(t, model.UnitSheet, plan.Unit)
	assert.Equal(t, 750000.0, plan.TotalCost)

	require.NotNil(t, plan.Waste)
	assert.InDelta(t, 3*2.9768-7.2, plan.Waste.Amount, 1e-9, "waste is the leftover after whole sheets")
	assert.Equal(t, model.SquareMeter, plan.Waste.Unit)
	assert.Equal(t, 10.0, plan.Waste.Percent)
	assert.False(t, plan.MissingInput())
}

func TestResolvePanelAreaMode(t *testing.T) {
	cfg := panelExample()
	cfg.Mode = model.ModeArea
	cfg.DirectArea = "7,2"

	plan := ResolvePanel(cfg, 10)
	assert.InDelta(t, 7.2, plan.Net, 1e-9)
	assert.Equal(t, 3.0, plan.Quantity)
	assert.Equal(t, 750000.0, plan.TotalCost)

	// Direct area already covers every unit: the count does not scale it.
	other := ResolvePanel(cfg, 40)
	assert.InDelta(t, plan.Net, other.Net, 1e-12)
	assert.Equal(t, plan.Quantity, other.Quantity)
}

func TestResolvePanelMissingCutDimension(t *testing.T) {
	cfg := panelExample()
	cfg.CutWidth = ""

	plan := ResolvePanel(cfg, 10)
	assert.Zero(t, plan.Quantity)
	assert.Zero(t, plan.TotalCost)
	assert.True(t, plan.MissingInput())
	require.Len(t, plan.Trail, 1)
	assert.Equal(t, model.OpMissingInput, plan.Trail[0].Op)
	assert.Contains(t, plan.Trail[0].Text, "cut length")
}

func TestResolvePanelMissingDirectArea(t *testing.T) {
	cfg := panelExample()
	cfg.Mode = model.ModeArea
	cfg.DirectArea = "abc"

	plan := ResolvePanel(cfg, 10)
	assert.Zero(t, plan.TotalCost)
	assert.True(t, plan.MissingInput())
	assert.Contains(t, plan.Trail[0].Text, "total area")
}

func TestResolvePanelZeroRawSheetFloorsToOne(t *testing.T) {
	cfg := panelExample()
	cfg.RawSheetLength = "0"
	cfg.RawSheetWidth = ""

	plan := ResolvePanel(cfg, 1)
	assert.False(t, math.IsInf(plan.Quantity, 0))
	assert.False(t, math.IsNaN(plan.Quantity))
	// 1x1 cm sheets: 0.72 m² x 1.1 / 0.0001 m² = 7920 sheets.
	assert.Equal(t, 7920.0, plan.Quantity)
}

func TestResolveLinearRunningMeter(t *testing.T) {
	cfg := model.LinearConfig{
		Mode:          model.ModePerUnit,
		LengthPerUnit: "1.5",
		RawBarLength:  "1",
		PricePerUnit:  "3500",
		WastePercent:  "10",
	}
	plan := ResolveLinear(cfg, 10)

	assert.Equal(t, model.UnitMeter, plan.Unit)
	assert.InDelta(t, 15.0, plan.Net, 1e-9)
	assert.InDelta(t, 16.5, plan.Gross, 1e-9)
	assert.Equal(t, 17.0, plan.Quantity)
	assert.Equal(t, 17*3500.0, plan.TotalCost)
	assert.Nil(t, plan.Offcut)
	require.NotNil(t, plan.Waste)
	assert.InDelta(t, 1.5, plan.Waste.Amount, 1e-9)
}

func TestResolveLinearBars(t *testing.T) {
	cfg := model.LinearConfig{
		Mode:          model.ModePerUnit,
		LengthPerUnit: "2.4",
		RawBarLength:  "6",
		PricePerUnit:  "120000",
		WastePercent:  "5",
	}
	plan := ResolveLinear(cfg, 10)

	// 24 m net, 25.2 m gross, 25.2 / 6 = 4.2 -> 5 bars.
	assert.Equal(t, model.UnitBar, plan.Unit)
	assert.Equal(t, 5.0, plan.Quantity)
	assert.Equal(t, 600000.0, plan.TotalCost)
	require.NotNil(t, plan.Offcut)
	assert.InDelta(t, 30.0, plan.Offcut.Purchased, 1e-9)
	assert.InDelta(t, 4.8, plan.Offcut.Leftover, 1e-9)
	assert.InDelta(t, 1.2, plan.Waste.Amount, 1e-9)
}

func TestResolveLinearLeftoverNeverNegative(t *testing.T) {
	for _, length := range []string{"0.1", "1", "2.999", "3", "5.5", "6", "11.9"} {
		for _, bar := range []string{"2", "3", "6", "5.8"} {
			cfg := model.LinearConfig{LengthPerUnit: model.Value(length), RawBarLength: model.Value(bar), WastePercent: "7"}
			plan := ResolveLinear(cfg, 3)
			require.NotNil(t, plan.Offcut, "length=%s bar=%s", length, bar)
			assert.GreaterOrEqual(t, plan.Offcut.Leftover, 0.0, "length=%s bar=%s", length, bar)
			b := bar2f(bar)
			assert.GreaterOrEqual(t, plan.Quantity*b, plan.Gross-1e-9, "bars cover the requirement")
			assert.Less(t, (plan.Quantity-1)*b, plan.Gross, "no whole spare bar")
		}
	}
}

func bar2f(s string) float64 {
	return model.Value(s).Float()
}

func TestResolveLinearZeroBarIsRunningMeter(t *testing.T) {
	cfg := model.LinearConfig{Mode: model.ModeTotal, TotalLength: "3.2", RawBarLength: "0", PricePerUnit: "1000"}
	plan := ResolveLinear(cfg, 99)
	assert.Equal(t, model.UnitMeter, plan.Unit)
	assert.Equal(t, 4.0, plan.Quantity)
	assert.InDelta(t, 3.2, plan.Net, 1e-12)
}

func TestResolveLiquid(t *testing.T) {
	cfg := model.LiquidConfig{
		SurfaceArea:   "1.5",
		Layers:        "2",
		Coverage:      "10",
		PricePerLiter: "95000",
		WastePercent:  "15",
	}
	plan := ResolveLiquid(cfg, 10)

	// 1.5 x 2 x 10 = 30 m², 3 L net, 3.45 L gross -> 4 L.
	assert.InDelta(t, 30.0, findStep(t, plan, model.OpTotalArea).Result, 1e-9)
	assert.InDelta(t, 3.0, plan.Net, 1e-9)
	assert.InDelta(t, 3.45, plan.Gross, 1e-9)
	assert.Equal(t, 4.0, plan.Quantity)
	assert.Equal(t, model.UnitLiter, plan.Unit)
	assert.Equal(t, 380000.0, plan.TotalCost)
	assert.InDelta(t, 0.45, plan.Waste.Amount, 1e-9)
	assert.Equal(t, model.Liter, plan.Waste.Unit)
}

func TestResolveLiquidZeroDivisorsFloorToOne(t *testing.T) {
	cfg := model.LiquidConfig{SurfaceArea: "2", Layers: "0", Coverage: "", PricePerLiter: "10"}
	plan := ResolveLiquid(cfg, 1)
	assert.InDelta(t, 2.0, plan.Net, 1e-12)
	assert.Equal(t, 2.0, plan.Quantity)
}

func TestResolveFabricCeiling(t *testing.T) {
	cases := []struct {
		total string
		want  float64
	}{
		{"16", 16},
		{"16.01", 17},
		{"16.99", 17},
		{"0.2", 1},
		{"0", 0},
		{"16.0000000005", 17},
		{"0.0000000005", 1},
	}
	for _, tc := range cases {
		cfg := model.FabricConfig{Mode: model.ModeTotal, TotalLength: model.Value(tc.total), PricePerMeter: "65000"}
		plan := ResolveFabric(cfg, 10)
		assert.Equal(t, tc.want, plan.Quantity, "gross=%s", tc.total)
		assert.Equal(t, model.UnitMeter, plan.Unit)
		assert.Equal(t, tc.want*65000, plan.TotalCost)
	}
}

func TestRoundUp(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{-2.5, 0},
		{math.NaN(), 0},
		{5e-10, 1},
		{1e-300, 1},
		{1, 1},
		{6.000000000000001, 6},
		{0.1 * 3 / 0.3 * 7, 7},
		{16.0000000005, 17},
		{2.66, 3},
		{1e6 + 0.001, 1e6 + 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, roundUp(tc.in), "roundUp(%v)", tc.in)
	}
}

func TestRoundUpNonIntegerAddsOne(t *testing.T) {
	for _, x := range []float64{0.5, 1.25, 16.01, 99.999, 1234.0001} {
		assert.Equal(t, math.Floor(x)+1, roundUp(x), "roundUp(%v)", x)
	}
}

func TestResolveFabricWidthIsInformational(t *testing.T) {
	narrow := model.FabricConfig{LengthPerUnit: "1.2", FabricWidth: "90", PricePerMeter: "50000", WastePercent: "15"}
	wide := narrow
	wide.FabricWidth = "280"

	a := ResolveFabric(narrow, 5)
	b := ResolveFabric(wide, 5)
	assert.Equal(t, a.Quantity, b.Quantity)
	assert.Equal(t, a.TotalCost, b.TotalCost)
	assert.Equal(t, 90.0, findStep(t, a, model.OpFabricWidth).Result)

	// 6 m net x 1.15 = 6.9 -> 7 m
	assert.Equal(t, 7.0, a.Quantity)
}

func TestResolveUnitPassThrough(t *testing.T) {
	cfg := model.UnitConfig{QtyNeeded: "2,5", PricePerUnit: "85000", Notes: "cut at supplier"}
	plan := ResolveUnit(cfg, 10)

	assert.Equal(t, 2.5, plan.Quantity, "no rounding")
	assert.Equal(t, 2.5*85000, plan.TotalCost)
	assert.Equal(t, model.UnitPiece, plan.Unit)
	assert.Nil(t, plan.Waste)
	assert.Equal(t, "cut at supplier", findStep(t, plan, model.OpNotes).Text)

	// Unit count never scales piece goods.
	assert.Equal(t, plan.TotalCost, ResolveUnit(cfg, 500).TotalCost)
}

func TestResolveIsIdempotent(t *testing.T) {
	materials := []model.Material{
		{Kind: model.KindPanel, Config: panelExample()},
		{Kind: model.KindLinear, Config: model.LinearConfig{LengthPerUnit: "2.4", RawBarLength: "6", PricePerUnit: "1", WastePercent: "5"}},
		{Kind: model.KindLiquid, Config: model.LiquidConfig{SurfaceArea: "1", Layers: "2", Coverage: "8", PricePerLiter: "1"}},
		{Kind: model.KindFabric, Config: model.FabricConfig{LengthPerUnit: "0.7", PricePerMeter: "1"}},
		{Kind: model.KindUnit, Config: model.UnitConfig{QtyNeeded: "3", PricePerUnit: "1"}},
	}
	for _, m := range materials {
		first := Resolve(m, 7)
		second := Resolve(m, 7)
		assert.Equal(t, first, second, "kind %s", m.Kind)
		assert.Equal(t, m.Kind, first.Kind)
	}
}

func TestResolveUnknownConfig(t *testing.T) {
	plan := Resolve(model.Material{Kind: "mystery"}, 3)
	assert.Zero(t, plan.TotalCost)
	assert.NotNil(t, plan.Trail)
}

func TestResolveZeroUnitCountTreatedAsOne(t *testing.T) {
	a := ResolvePanel(panelExample(), 0)
	b := ResolvePanel(panelExample(), 1)
	assert.Equal(t, b, a)
}

func TestResolveAllRecomputesEveryMaterial(t *testing.T) {
	perUnit := model.Material{ID: "a", Kind: model.KindLinear, Config: model.LinearConfig{Mode: model.ModePerUnit, LengthPerUnit: "1", RawBarLength: "1", WastePercent: "10"}}
	direct := model.Material{ID: "b", Kind: model.KindLinear, Config: model.LinearConfig{Mode: model.ModeTotal, TotalLength: "10", RawBarLength: "1", WastePercent: "10"}}

	at10 := ResolveAll([]model.Material{perUnit, direct}, 10)
	at20 := ResolveAll([]model.Material{perUnit, direct}, 20)

	assert.InDelta(t, 10.0, at10[0].Result.Net, 1e-12)
	assert.InDelta(t, 20.0, at20[0].Result.Net, 1e-12)
	assert.InDelta(t, at10[1].Result.Net, at20[1].Result.Net, 1e-12, "direct totals do not depend on unit count")
	assert.Equal(t, 11.0, at20[1].Result.Quantity)
	assert.Nil(t, perUnit.Result, "input is not modified")
}

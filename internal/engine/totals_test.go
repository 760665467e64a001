package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/hppcalc/internal/model"
)

func withResult(cost float64) model.Material {
	return model.Material{Kind: model.KindUnit, Result: &model.PurchasePlan{TotalCost: cost}}
}

func TestAggregate(t *testing.T) {
	materials := []model.Material{
		withResult(750000),
		withResult(250000),
		{Kind: model.KindPanel}, // never computed
	}
	hardware := []model.HardwareItem{
		{Name: "Hinge", Qty: "4", Price: "5000", PerUnit: true},
		{Name: "Glue", Qty: "1", Price: "30000"},
	}
	labor := []model.LaborItem{
		{Name: "Carpenter", CostPerUnit: "50000", PerUnit: true},
		{Name: "Delivery", CostPerUnit: "100000"},
	}

	totals := Aggregate(materials, hardware, labor, 5, 10)

	assert.Equal(t, 1000000.0, totals.MaterialCost)
	assert.Equal(t, 4*5000*10+30000.0, totals.HardwareCost)
	assert.Equal(t, 50000*10+100000.0, totals.LaborCost)
	assert.Equal(t, 1000000+230000+600000.0, totals.Subtotal)
	assert.InDelta(t, 0.05*1830000, totals.Overhead, 1e-6)
	assert.InDelta(t, 1921500.0, totals.GrandTotal, 1e-6)
	assert.InDelta(t, 192150.0, totals.CostPerUnit, 1e-6)
	assert.Equal(t, 10, totals.UnitCount)
}

func TestAggregateInvariants(t *testing.T) {
	hardware := []model.HardwareItem{{Qty: "3", Price: "1234.5", PerUnit: true}}
	labor := []model.LaborItem{{CostPerUnit: "777", PerUnit: true}}
	materials := []model.Material{withResult(98765.4321)}

	for _, units := range []int{1, 3, 7, 10, 333} {
		for _, overhead := range []float64{0, 2.5, 5, 33} {
			totals := Aggregate(materials, hardware, labor, overhead, units)
			assert.GreaterOrEqual(t, totals.GrandTotal, totals.Subtotal)
			assert.InDelta(t, totals.GrandTotal, totals.CostPerUnit*float64(units), 1e-6)
		}
	}
}

func TestAggregateZeroUnitsFloorsToOne(t *testing.T) {
	totals := Aggregate([]model.Material{withResult(100)}, nil, []model.LaborItem{{CostPerUnit: "10", PerUnit: true}}, 0, 0)
	assert.Equal(t, 1, totals.UnitCount)
	assert.Equal(t, 110.0, totals.GrandTotal)
	assert.Equal(t, 110.0, totals.CostPerUnit)
}

func TestEstimateLeavesInputUntouched(t *testing.T) {
	p := model.NewProject("Coffee Table", model.DefaultAppConfig())
	p.Materials = append(p.Materials, model.Material{ID: "m1", Kind: model.KindPanel, Config: panelExample()})

	resolved, totals := Estimate(p)
	require.NotNil(t, resolved.Materials[0].Result)
	assert.Nil(t, p.Materials[0].Result)
	assert.Equal(t, 750000.0, totals.MaterialCost)
	// 5% default overhead
	assert.InDelta(t, 787500.0, totals.GrandTotal, 1e-6)
}

func TestCompareUnitCounts(t *testing.T) {
	p := model.NewProject("Shelf", model.DefaultAppConfig())
	p.Materials = []model.Material{{ID: "m1", Kind: model.KindPanel, Config: panelExample()}}
	p.OverheadPercent = "0"

	results := CompareUnitCounts(p, []int{1, 4, 10})
	require.Len(t, results, 3)

	// 1 unit: 0.792 m² -> 1 sheet; 4 units: 3.168 m² -> 2 sheets; 10 units: 3 sheets.
	assert.Equal(t, 250000.0, results[0].Totals.MaterialCost)
	assert.Equal(t, 500000.0, results[1].Totals.MaterialCost)
	assert.Equal(t, 750000.0, results[2].Totals.MaterialCost)
	assert.Equal(t, "4 units", results[1].Label)
	assert.Equal(t, 2, CheapestPerUnit(results))
	assert.Greater(t, results[0].LeftoverValue, 0.0)
	assert.Equal(t, 10, p.UnitCount, "project unit count is not modified")
}

func TestDefaultUnitCounts(t *testing.T) {
	assert.Equal(t, []int{5, 10, 20, 50}, DefaultUnitCounts(10))
	assert.Equal(t, []int{1, 2, 5}, DefaultUnitCounts(1))
	assert.Equal(t, []int{1, 2, 5}, DefaultUnitCounts(0))
}

func TestCheapestPerUnitEmpty(t *testing.T) {
	assert.Equal(t, -1, CheapestPerUnit(nil))
}

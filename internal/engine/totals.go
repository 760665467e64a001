package engine

import "github.com/piwi3910/hppcalc/internal/model"

// Aggregate rolls resolved materials, hardware and labor up into project
// totals. Materials without a result count as zero. The unit count is floored
// to 1 for both the per-unit multipliers and the cost per unit.
func Aggregate(materials []model.Material, hardware []model.HardwareItem, labor []model.LaborItem, overheadPercent float64, unitCount int) model.Totals {
	n := model.EffectiveUnits(unitCount)

	var materialCost float64
	for _, m := range materials {
		if m.Result != nil {
			materialCost += m.Result.TotalCost
		}
	}

	var hardwareCost float64
	for _, h := range hardware {
		hardwareCost += h.Cost(n)
	}

	var laborCost float64
	for _, l := range labor {
		laborCost += l.Cost(n)
	}

	subtotal := materialCost + hardwareCost + laborCost
	overhead := overheadPercent / 100 * subtotal
	grandTotal := subtotal + overhead

	return model.Totals{
		UnitCount:    n,
		MaterialCost: materialCost,
		HardwareCost: hardwareCost,
		LaborCost:    laborCost,
		Subtotal:     subtotal,
		Overhead:     overhead,
		GrandTotal:   grandTotal,
		CostPerUnit:  grandTotal / float64(n),
	}
}

// AggregateProject totals a project using the results already on its materials.
func AggregateProject(p model.Project) model.Totals {
	return Aggregate(p.Materials, p.Hardware, p.Labor, p.OverheadPercent.Float(), p.UnitCount)
}

// Estimate resolves every material of p and totals the result. It returns the
// resolved project; p itself is left untouched.
func Estimate(p model.Project) (model.Project, model.Totals) {
	resolved := p
	resolved.Materials = ResolveAll(p.Materials, p.UnitCount)
	return resolved, AggregateProject(resolved)
}

package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/hppcalc/internal/model"
)

// ComparisonResult holds the totals and purchase plans for one batch size.
type ComparisonResult struct {
	UnitCount int
	Label     string
	Materials []model.Material
	Totals    model.Totals
	// LeftoverValue is the cost of bought-but-unused material beyond the
	// waste allowance: whole sheets, bars and liters rounded up.
	LeftoverValue float64
}

// CompareUnitCounts estimates the project at each batch size so per-unit cost
// can be compared side by side. Results follow the order of counts.
func CompareUnitCounts(p model.Project, counts []int) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(counts))
	for _, n := range counts {
		scenario := p
		scenario.UnitCount = n
		resolved, totals := Estimate(scenario)

		results = append(results, ComparisonResult{
			UnitCount:     totals.UnitCount,
			Label:         fmt.Sprintf("%d units", totals.UnitCount),
			Materials:     resolved.Materials,
			Totals:        totals,
			LeftoverValue: leftoverValue(resolved.Materials),
		})
	}
	return results
}

// DefaultUnitCounts builds a what-if series around the current batch size:
// half, current, double and five times. Duplicates are removed.
func DefaultUnitCounts(base int) []int {
	base = model.EffectiveUnits(base)
	candidates := []int{base / 2, base, base * 2, base * 5}

	seen := make(map[int]bool, len(candidates))
	var counts []int
	for _, c := range candidates {
		c = model.EffectiveUnits(c)
		if seen[c] {
			continue
		}
		seen[c] = true
		counts = append(counts, c)
	}
	sort.Ints(counts)
	return counts
}

// CheapestPerUnit returns the index of the scenario with the lowest cost per
// unit, or -1 for no scenarios.
func CheapestPerUnit(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if best == -1 || r.Totals.CostPerUnit < results[best].Totals.CostPerUnit {
			best = i
		}
	}
	return best
}

// leftoverValue prices the rounding surplus of each plan: the fraction of
// purchased quantity that exceeds the gross requirement.
func leftoverValue(materials []model.Material) float64 {
	var total float64
	for _, m := range materials {
		r := m.Result
		if r == nil || r.Quantity <= 0 || r.Kind == model.KindUnit {
			continue
		}
		unitPrice := r.TotalCost / r.Quantity
		var surplus float64
		switch {
		case r.Offcut != nil:
			// Leftover meters as a share of the bars bought.
			if r.Offcut.Purchased > 0 {
				surplus = r.Offcut.Leftover / r.Offcut.Purchased * r.Quantity
			}
		case r.Kind == model.KindPanel:
			if r.Waste != nil && r.Quantity > 0 {
				sheetArea := (r.Waste.Amount + r.Net) / r.Quantity
				if sheetArea > 0 {
					surplus = r.Quantity - r.Gross/sheetArea
				}
			}
		default:
			surplus = r.Quantity - r.Gross
		}
		if surplus > 0 {
			total += surplus * unitPrice
		}
	}
	return total
}

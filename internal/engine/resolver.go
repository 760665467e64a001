// Package engine resolves material inputs into purchase plans and rolls the
// plans up into project totals. Everything here is pure computation.
package engine

import (
	"math"

	"github.com/piwi3910/hppcalc/internal/model"
)

// roundingTolerance is the relative floating point noise ignored by ceiling
// rounding, so a gross requirement of 6.000000000000001 buys 6 units, not 7,
// while 16.0000000005 still buys 17.
const roundingTolerance = 1e-12

// Resolve dispatches a material to the resolver of its kind.
// A material without a recognised config yields an empty plan.
func Resolve(m model.Material, unitCount int) model.PurchasePlan {
	switch cfg := m.Config.(type) {
	case model.PanelConfig:
		return ResolvePanel(cfg, unitCount)
	case model.LinearConfig:
		return ResolveLinear(cfg, unitCount)
	case model.LiquidConfig:
		return ResolveLiquid(cfg, unitCount)
	case model.FabricConfig:
		return ResolveFabric(cfg, unitCount)
	case model.UnitConfig:
		return ResolveUnit(cfg, unitCount)
	default:
		return model.PurchasePlan{Kind: m.Kind, Trail: []model.Step{}}
	}
}

// ResolveAll returns copies of the materials with freshly computed results.
// The input slice is not modified.
func ResolveAll(materials []model.Material, unitCount int) []model.Material {
	out := make([]model.Material, len(materials))
	for i, m := range materials {
		plan := Resolve(m, unitCount)
		out[i] = m.Clone()
		out[i].Result = &plan
		out[i].Stale = false
	}
	return out
}

// trail accumulates derivation steps.
type trail []model.Step

func (t *trail) add(op model.StepOp, result float64, unit string, operands ...float64) {
	*t = append(*t, model.Step{Op: op, Operands: operands, Result: result, Unit: unit})
}

func (t *trail) note(op model.StepOp, text string) {
	*t = append(*t, model.Step{Op: op, Text: text})
}

func (t trail) steps() []model.Step {
	if t == nil {
		return []model.Step{}
	}
	return []model.Step(t)
}

// wasteFactor turns a waste allowance in percent into a multiplier.
func wasteFactor(wastePercent float64) float64 {
	return 1 + wastePercent/100
}

// roundUp returns the whole number of purchase units covering x. Partial
// units are never purchasable: any positive requirement buys at least one,
// and zero or a negative requirement buys nothing.
func roundUp(x float64) float64 {
	if x <= 0 || math.IsNaN(x) {
		return 0
	}
	n := math.Floor(x)
	if x-n > roundingTolerance*math.Max(1, x) {
		n++
	}
	return math.Max(n, 1)
}

func units(unitCount int) float64 {
	return float64(model.EffectiveUnits(unitCount))
}

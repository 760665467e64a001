package engine

import "github.com/piwi3910/hppcalc/internal/model"

// ResolveUnit prices piece goods. The quantity is taken as entered: it is
// neither rounded nor scaled by the unit count, and there is no waste.
func ResolveUnit(cfg model.UnitConfig, _ int) model.PurchasePlan {
	qty := cfg.QtyNeeded.Float()
	price := cfg.PricePerUnit.Float()

	var t trail
	t.add(model.OpQuantity, qty, string(model.UnitPiece), qty)
	if cfg.Notes != "" {
		t.note(model.OpNotes, cfg.Notes)
	}

	cost := qty * price
	t.add(model.OpCost, cost, "", qty, price)

	return model.PurchasePlan{
		Kind:      model.KindUnit,
		Quantity:  qty,
		Unit:      model.UnitPiece,
		TotalCost: cost,
		Trail:     t.steps(),
	}
}

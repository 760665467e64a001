package engine

import "github.com/piwi3910/hppcalc/internal/model"

// ResolveLiquid computes how many whole liters of a coating to buy.
// Layers and coverage are floored to 1 so they can never zero out or divide by zero.
func ResolveLiquid(cfg model.LiquidConfig, unitCount int) model.PurchasePlan {
	surface := cfg.SurfaceArea.Float()
	layers := model.OrOne(cfg.Layers.Float())
	coverage := model.OrOne(cfg.Coverage.Float())
	qty := units(unitCount)
	price := cfg.PricePerLiter.Float()
	waste := cfg.WastePercent.Float()

	var t trail

	totalArea := surface * layers * qty
	t.add(model.OpTotalArea, totalArea, model.SquareMeter, surface, layers, qty)

	net := totalArea / coverage
	t.add(model.OpNetLiters, net, model.Liter, totalArea, coverage)

	gross := net * wasteFactor(waste)
	t.add(model.OpGross, gross, model.Liter, net, waste)

	liters := roundUp(gross)
	t.add(model.OpLitersToBuy, liters, model.Liter, gross)

	cost := liters * price
	t.add(model.OpCost, cost, "", liters, price)

	return model.PurchasePlan{
		Kind:      model.KindLiquid,
		Quantity:  liters,
		Unit:      model.UnitLiter,
		TotalCost: cost,
		Net:       net,
		Gross:     gross,
		Waste: &model.WasteReport{
			Amount:  gross - net,
			Unit:    model.Liter,
			Percent: waste,
		},
		Trail: t.steps(),
	}
}

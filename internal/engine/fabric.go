package engine

import "github.com/piwi3910/hppcalc/internal/model"

// ResolveFabric computes how many whole meters of fabric to buy. Fabric is
// sold by length only; the roll width is shown but never used in the math.
func ResolveFabric(cfg model.FabricConfig, unitCount int) model.PurchasePlan {
	qty := units(unitCount)
	price := cfg.PricePerMeter.Float()
	waste := cfg.WastePercent.Float()
	width := cfg.FabricWidth.Float()

	var t trail
	if width > 0 {
		t.add(model.OpFabricWidth, width, model.Centimeter, width)
	}

	net := netLength(&t, cfg.Mode, cfg.LengthPerUnit, cfg.TotalLength, qty)

	gross := net * wasteFactor(waste)
	t.add(model.OpGross, gross, model.Meter, net, waste)

	meters := roundUp(gross)
	t.add(model.OpMetersNeeded, meters, model.Meter, gross)

	cost := meters * price
	t.add(model.OpCost, cost, "", meters, price)

	return model.PurchasePlan{
		Kind:      model.KindFabric,
		Quantity:  meters,
		Unit:      model.UnitMeter,
		TotalCost: cost,
		Net:       net,
		Gross:     gross,
		Waste: &model.WasteReport{
			Amount:  gross - net,
			Unit:    model.Meter,
			Percent: waste,
		},
		Trail: t.steps(),
	}
}

package engine

import "github.com/piwi3910/hppcalc/internal/model"

// runningMeter is the raw bar length that marks a material sold per meter.
const runningMeter = 1.0

// ResolveLinear computes how many bars (or running meters) to buy.
func ResolveLinear(cfg model.LinearConfig, unitCount int) model.PurchasePlan {
	barLength := model.OrOne(cfg.RawBarLength.Float())
	qty := units(unitCount)
	price := cfg.PricePerUnit.Float()
	waste := cfg.WastePercent.Float()

	var t trail
	net := netLength(&t, cfg.Mode, cfg.LengthPerUnit, cfg.TotalLength, qty)

	gross := net * wasteFactor(waste)
	t.add(model.OpGross, gross, model.Meter, net, waste)

	plan := model.PurchasePlan{
		Kind:  model.KindLinear,
		Net:   net,
		Gross: gross,
		Waste: &model.WasteReport{
			Amount:  gross - net,
			Unit:    model.Meter,
			Percent: waste,
		},
	}

	if barLength == runningMeter {
		t.note(model.OpMeterRun, "")
		meters := roundUp(gross)
		t.add(model.OpMetersNeeded, meters, model.Meter, gross)

		plan.Quantity = meters
		plan.Unit = model.UnitMeter
		plan.TotalCost = meters * price
		t.add(model.OpCost, plan.TotalCost, "", meters, price)
	} else {
		t.note(model.OpBarMode, "")
		ratio := gross / barLength
		bars := roundUp(ratio)
		t.add(model.OpBarsNeeded, bars, string(model.UnitBar), gross, barLength, ratio)

		plan.Quantity = bars
		plan.Unit = model.UnitBar
		plan.TotalCost = bars * price
		t.add(model.OpCost, plan.TotalCost, "", bars, price)

		purchased := bars * barLength
		leftover := purchased - gross
		if leftover < 0 {
			leftover = 0
		}
		t.add(model.OpPurchased, purchased, model.Meter, bars, barLength)
		t.add(model.OpLeftover, leftover, model.Meter, purchased, gross)
		plan.Offcut = &model.Offcut{Purchased: purchased, Leftover: leftover}
	}

	plan.Trail = t.steps()
	return plan
}

// netLength records and returns the net length for the per-unit or direct
// total input mode. Linear and Fabric share it.
func netLength(t *trail, mode model.InputMode, perUnit, total model.Value, qty float64) float64 {
	if mode == model.ModeTotal {
		net := total.Float()
		t.add(model.OpDirectInput, net, model.Meter, net, qty)
		return net
	}
	length := perUnit.Float()
	net := length * qty
	t.add(model.OpNetLength, net, model.Meter, length, qty)
	return net
}

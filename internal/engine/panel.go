package engine

import "github.com/piwi3910/hppcalc/internal/model"

// cm² per m².
const sqcmPerSqm = 10000.0

// ResolvePanel computes how many whole sheets to buy.
//
// In dimension mode the cut size is per finished unit and is multiplied by the
// unit count; in area mode the direct area already covers the whole batch.
// The reported waste is the real leftover after buying whole sheets.
func ResolvePanel(cfg model.PanelConfig, unitCount int) model.PurchasePlan {
	rawL := model.OrOne(cfg.RawSheetLength.Float())
	rawW := model.OrOne(cfg.RawSheetWidth.Float())
	qty := units(unitCount)
	price := cfg.PricePerSheet.Float()
	waste := cfg.WastePercent.Float()

	var t trail
	var totalNet float64

	if cfg.Mode == model.ModeArea {
		totalNet = cfg.DirectArea.Float()
		if totalNet == 0 {
			return missingPanelInput(waste, "total area")
		}
		t.add(model.OpDirectInput, totalNet, model.SquareMeter, totalNet, qty)
	} else {
		cutL := cfg.CutLength.Float()
		cutW := cfg.CutWidth.Float()
		if cutL == 0 || cutW == 0 {
			return missingPanelInput(waste, "cut length and width")
		}
		perPiece := (cutL * cutW) / sqcmPerSqm
		t.add(model.OpNetAreaPerPiece, perPiece, model.SquareMeter, cutL, cutW)

		totalNet = perPiece * qty
		t.add(model.OpTotalNetArea, totalNet, model.SquareMeter, perPiece, qty)
	}

	gross := totalNet * wasteFactor(waste)
	t.add(model.OpGross, gross, model.SquareMeter, totalNet, waste)

	sheetArea := (rawL * rawW) / sqcmPerSqm
	t.add(model.OpSheetArea, sheetArea, model.SquareMeter, rawL, rawW)

	ratio := gross / sheetArea
	sheets := roundUp(ratio)
	t.add(model.OpSheetsNeeded, sheets, string(model.UnitSheet), gross, sheetArea, ratio)

	cost := sheets * price
	t.add(model.OpCost, cost, "", sheets, price)

	return model.PurchasePlan{
		Kind:      model.KindPanel,
		Quantity:  sheets,
		Unit:      model.UnitSheet,
		TotalCost: cost,
		Net:       totalNet,
		Gross:     gross,
		Waste: &model.WasteReport{
			Amount:  sheets*sheetArea - totalNet,
			Unit:    model.SquareMeter,
			Percent: waste,
		},
		Trail: t.steps(),
	}
}

// missingPanelInput is the degenerate plan returned when the net area cannot
// be determined. It carries an advisory step instead of arithmetic.
func missingPanelInput(waste float64, field string) model.PurchasePlan {
	var t trail
	t.note(model.OpMissingInput, field)
	return model.PurchasePlan{
		Kind:  model.KindPanel,
		Unit:  model.UnitSheet,
		Waste: &model.WasteReport{Unit: model.SquareMeter, Percent: waste},
		Trail: t.steps(),
	}
}

package export

import (
	"fmt"

	"github.com/piwi3910/hppcalc/internal/model"
)

// RenderStep phrases one derivation step as a line of text, e.g.
// "Sheets needed: 7.9200 ÷ 2.9768 = 2.66 -> 3 Sheet".
func RenderStep(s model.Step) string {
	op := func(i int) float64 {
		if i < len(s.Operands) {
			return s.Operands[i]
		}
		return 0
	}
	q := func(f float64) string { return fixed(f, decimalsFor(s.Unit)) }

	switch s.Op {
	case model.OpNetAreaPerPiece:
		return fmt.Sprintf("Net area per piece: %s × %s cm = %s m²",
			FormatQty(op(0)), FormatQty(op(1)), fixed(s.Result, 4))
	case model.OpTotalNetArea:
		return fmt.Sprintf("Total net area (%s pcs): %s × %s = %s m²",
			FormatQty(op(1)), fixed(op(0), 4), FormatQty(op(1)), fixed(s.Result, 4))
	case model.OpDirectInput:
		return fmt.Sprintf("Total net (direct input): %s %s", q(s.Result), s.Unit)
	case model.OpNetLength:
		return fmt.Sprintf("Net length: %s m × %s pcs = %s m",
			FormatQty(op(0)), FormatQty(op(1)), fixed(s.Result, 2))
	case model.OpGross:
		return fmt.Sprintf("Gross (+%s%% waste): %s × %s = %s %s",
			FormatQty(op(1)), q(op(0)), fixed(1+op(1)/100, 2), q(s.Result), s.Unit)
	case model.OpSheetArea:
		return fmt.Sprintf("Raw sheet area: %s × %s cm = %s m²",
			FormatQty(op(0)), FormatQty(op(1)), fixed(s.Result, 4))
	case model.OpSheetsNeeded:
		return fmt.Sprintf("Sheets needed: %s ÷ %s = %s -> %s %s",
			fixed(op(0), 4), fixed(op(1), 4), fixed(op(2), 2), FormatQty(s.Result), s.Unit)
	case model.OpMeterRun:
		return "Sold per running meter"
	case model.OpMetersNeeded:
		return fmt.Sprintf("Meters to buy: %s m -> %s m", fixed(op(0), 2), FormatQty(s.Result))
	case model.OpBarMode:
		return "Sold per bar"
	case model.OpBarsNeeded:
		return fmt.Sprintf("Bars needed: %s ÷ %s = %s -> %s %s",
			fixed(op(0), 2), FormatQty(op(1)), fixed(op(2), 2), FormatQty(s.Result), s.Unit)
	case model.OpPurchased:
		return fmt.Sprintf("Total bought: %s × %s m = %s m",
			FormatQty(op(0)), FormatQty(op(1)), fixed(s.Result, 2))
	case model.OpLeftover:
		return fmt.Sprintf("Leftover: %s m", fixed(s.Result, 2))
	case model.OpTotalArea:
		return fmt.Sprintf("Total area: %s m² × %s layers × %s pcs = %s m²",
			FormatQty(op(0)), FormatQty(op(1)), FormatQty(op(2)), fixed(s.Result, 2))
	case model.OpNetLiters:
		return fmt.Sprintf("Net liters: %s ÷ %s m²/L = %s L",
			fixed(op(0), 2), FormatQty(op(1)), fixed(s.Result, 2))
	case model.OpLitersToBuy:
		return fmt.Sprintf("Liters to buy: %s L -> %s L", fixed(op(0), 2), FormatQty(s.Result))
	case model.OpFabricWidth:
		return fmt.Sprintf("Fabric width: %s cm", FormatQty(s.Result))
	case model.OpQuantity:
		return fmt.Sprintf("Quantity: %s", FormatQty(s.Result))
	case model.OpNotes:
		return "Notes: " + s.Text
	case model.OpCost:
		return fmt.Sprintf("Total cost: %s × %s = %s",
			FormatQty(op(0)), FormatIDR(op(1)), FormatIDR(s.Result))
	case model.OpMissingInput:
		return "Missing input: " + s.Text
	default:
		return fmt.Sprintf("%s: %s %s", s.Op, FormatQty(s.Result), s.Unit)
	}
}

// RenderTrail renders every step of a trail. Arithmetic steps are numbered;
// mode markers, notes and advisories are not.
func RenderTrail(steps []model.Step) []string {
	lines := make([]string, 0, len(steps))
	n := 0
	for _, s := range steps {
		line := RenderStep(s)
		if numbered(s.Op) {
			n++
			line = fmt.Sprintf("%d. %s", n, line)
		}
		lines = append(lines, line)
	}
	return lines
}

func numbered(op model.StepOp) bool {
	switch op {
	case model.OpMeterRun, model.OpBarMode, model.OpNotes, model.OpMissingInput,
		model.OpFabricWidth, model.OpPurchased, model.OpLeftover:
		return false
	}
	return true
}

// decimalsFor picks the display precision of a natural unit: areas get
// four decimals, lengths and volumes two.
func decimalsFor(unit string) int {
	if unit == model.SquareMeter {
		return 4
	}
	return 2
}

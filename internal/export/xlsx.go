package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/hppcalc/internal/model"
)

// Worksheet names of the XLSX report.
const (
	SheetSummary   = "Summary"
	SheetMaterials = "Materials"
	SheetBreakdown = "Breakdown"
)

const rupiahNumFmt = `"Rp" #,##0`

// xlsxStyles holds the style IDs registered on a workbook.
type xlsxStyles struct {
	title  int
	header int
	money  int
	bold   int
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	var s xlsxStyles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E6E6E6"}},
	}); err != nil {
		return s, err
	}
	numFmt := rupiahNumFmt
	if s.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt}); err != nil {
		return s, err
	}
	boldFmt := rupiahNumFmt
	s.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &boldFmt})
	return s, err
}

// ExportXLSX writes the cost report as a workbook with a Summary, a
// Materials and a Breakdown sheet. Money cells hold numbers formatted as
// rupiah so the sheet stays usable for further calculation.
func ExportXLSX(path string, p model.Project, totals model.Totals) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newXLSXStyles(f)
	if err != nil {
		return fmt.Errorf("failed to create styles: %w", err)
	}

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetMaterials, SheetBreakdown} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	if err := writeSummarySheet(f, styles, p, totals); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if err := writeMaterialsSheet(f, styles, p.Materials); err != nil {
		return fmt.Errorf("failed to write materials: %w", err)
	}
	if err := writeBreakdownSheet(f, styles, p.Materials); err != nil {
		return fmt.Errorf("failed to write breakdown: %w", err)
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, st xlsxStyles, p model.Project, totals model.Totals) error {
	sh := SheetSummary
	if err := f.SetCellValue(sh, "A1", ReportTitle(p)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sh, "A1", "A1", st.title); err != nil {
		return err
	}
	if err := f.SetSheetRow(sh, "A2", &[]interface{}{"Units", totals.UnitCount}); err != nil {
		return err
	}
	if err := f.SetSheetRow(sh, "A3", &[]interface{}{"Overhead %", p.OverheadPercent.Float()}); err != nil {
		return err
	}

	rows := []struct {
		label string
		value float64
		bold  bool
	}{
		{"Materials", totals.MaterialCost, false},
		{"Hardware", totals.HardwareCost, false},
		{"Labor", totals.LaborCost, false},
		{"Subtotal", totals.Subtotal, true},
		{"Overhead", totals.Overhead, false},
		{"Grand total", totals.GrandTotal, true},
		{"HPP per unit", totals.CostPerUnit, true},
	}
	for i, r := range rows {
		row := i + 5
		label := fmt.Sprintf("A%d", row)
		value := fmt.Sprintf("B%d", row)
		if err := f.SetSheetRow(sh, label, &[]interface{}{r.label, r.value}); err != nil {
			return err
		}
		style := st.money
		if r.bold {
			style = st.bold
		}
		if err := f.SetCellStyle(sh, value, value, style); err != nil {
			return err
		}
	}

	// Hardware and labor lines below the roll-up
	row := len(rows) + 6
	if err := writeCostLines(f, st, sh, &row, "Hardware", hardwareLines(p.Hardware, totals.UnitCount)); err != nil {
		return err
	}
	if err := writeCostLines(f, st, sh, &row, "Labor", laborLines(p.Labor, totals.UnitCount)); err != nil {
		return err
	}

	return f.SetColWidth(sh, "A", "A", 28)
}

// costLine is one hardware or labor row of the summary sheet.
type costLine struct {
	name    string
	qty     float64
	price   float64
	perUnit bool
	total   float64
}

func hardwareLines(items []model.HardwareItem, units int) []costLine {
	var lines []costLine
	for _, h := range items {
		if h.Name == "" && h.Price.Float() == 0 {
			continue
		}
		lines = append(lines, costLine{nameOr(h.Name, "Hardware"), h.Qty.Float(), h.Price.Float(), h.PerUnit, h.Cost(units)})
	}
	return lines
}

func laborLines(items []model.LaborItem, units int) []costLine {
	var lines []costLine
	for _, l := range items {
		if l.Name == "" && l.CostPerUnit.Float() == 0 {
			continue
		}
		lines = append(lines, costLine{nameOr(l.Name, "Labor"), 1, l.CostPerUnit.Float(), l.PerUnit, l.Cost(units)})
	}
	return lines
}

func writeCostLines(f *excelize.File, st xlsxStyles, sh string, row *int, title string, lines []costLine) error {
	if len(lines) == 0 {
		return nil
	}
	start := fmt.Sprintf("A%d", *row)
	end := fmt.Sprintf("E%d", *row)
	if err := f.SetSheetRow(sh, start, &[]interface{}{title, "Qty", "Price", "Per unit", "Total"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sh, start, end, st.header); err != nil {
		return err
	}
	*row++
	for _, l := range lines {
		if err := f.SetSheetRow(sh, fmt.Sprintf("A%d", *row), &[]interface{}{l.name, l.qty, l.price, l.perUnit, l.total}); err != nil {
			return err
		}
		if err := f.SetCellStyle(sh, fmt.Sprintf("C%d", *row), fmt.Sprintf("C%d", *row), st.money); err != nil {
			return err
		}
		if err := f.SetCellStyle(sh, fmt.Sprintf("E%d", *row), fmt.Sprintf("E%d", *row), st.money); err != nil {
			return err
		}
		*row++
	}
	*row++
	return nil
}

func writeMaterialsSheet(f *excelize.File, st xlsxStyles, materials []model.Material) error {
	sh := SheetMaterials
	header := []interface{}{"Material", "Kind", "Quantity", "Unit", "Net", "Gross", "Waste", "Waste unit", "Total cost", "Status"}
	if err := f.SetSheetRow(sh, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sh, "A1", "J1", st.header); err != nil {
		return err
	}

	for i, m := range materials {
		row := i + 2
		cells := []interface{}{m.DisplayName(), m.Kind.String()}
		if r := m.Result; r != nil {
			var waste float64
			var wasteUnit string
			if r.Waste != nil {
				waste, wasteUnit = r.Waste.Amount, r.Waste.Unit
			}
			cells = append(cells, r.Quantity, string(r.Unit), r.Net, r.Gross, waste, wasteUnit, r.TotalCost, materialStatus(m))
		} else {
			cells = append(cells, nil, nil, nil, nil, nil, nil, nil, "Not calculated")
		}
		if err := f.SetSheetRow(sh, fmt.Sprintf("A%d", row), &cells); err != nil {
			return err
		}
		cost := fmt.Sprintf("I%d", row)
		if err := f.SetCellStyle(sh, cost, cost, st.money); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sh, "A", "A", 28); err != nil {
		return err
	}
	return f.SetColWidth(sh, "I", "J", 16)
}

// materialStatus summarises the state of a computed material.
func materialStatus(m model.Material) string {
	switch {
	case m.Result.MissingInput():
		return "Missing input"
	case m.Stale:
		return "Edited"
	default:
		return "OK"
	}
}

func writeBreakdownSheet(f *excelize.File, st xlsxStyles, materials []model.Material) error {
	sh := SheetBreakdown
	if err := f.SetSheetRow(sh, "A1", &[]interface{}{"Material", "Step"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sh, "A1", "B1", st.header); err != nil {
		return err
	}

	row := 2
	for _, m := range materials {
		if m.Result == nil {
			continue
		}
		for _, line := range RenderTrail(m.Result.Trail) {
			if err := f.SetSheetRow(sh, fmt.Sprintf("A%d", row), &[]interface{}{m.DisplayName(), line}); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SetColWidth(sh, "A", "A", 28); err != nil {
		return err
	}
	return f.SetColWidth(sh, "B", "B", 80)
}

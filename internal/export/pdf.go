// Package export writes cost reports: a printable PDF and an XLSX workbook.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/hppcalc/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
	rowHeight    = 6.0
	qrSize       = 28.0
)

// ReportOptions controls the optional parts of a PDF report.
type ReportOptions struct {
	GeneratedAt time.Time // Zero means now
	Breakdown   bool      // One section per material with its derivation
	QRCode      bool      // QR code of the summary in the header
}

// DefaultReportOptions includes everything.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{Breakdown: true, QRCode: true}
}

// Summary is the data encoded in the report's QR code.
type Summary struct {
	Project     string  `json:"project"`
	Units       int     `json:"units"`
	GrandTotal  float64 `json:"grand_total"`
	CostPerUnit float64 `json:"cost_per_unit"`
	Generated   string  `json:"generated"`
}

// ReportTitle is the document title for a project: "HPP <name>".
func ReportTitle(p model.Project) string {
	name := p.Name
	if name == "" {
		name = "Untitled"
	}
	return "HPP " + name
}

// ExportPDF writes an A4 cost report for a resolved project: header with
// summary, the material, hardware and labor tables, and optionally a
// breakdown page per material.
func ExportPDF(path string, p model.Project, totals model.Totals, opts ReportOptions) error {
	if len(p.Materials) == 0 && totals.GrandTotal == 0 {
		return fmt.Errorf("nothing to export")
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetTitle(ReportTitle(p), true)
	pdf.SetCreator("hppcalc", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-marginBottom + 3)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(contentWidth, 4, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	if err := renderHeader(pdf, tr, p, totals, opts); err != nil {
		return err
	}
	renderTotals(pdf, tr, p, totals)
	renderMaterials(pdf, tr, p.Materials)
	renderHardware(pdf, tr, p.Hardware, totals.UnitCount)
	renderLabor(pdf, tr, p.Labor, totals.UnitCount)

	if opts.Breakdown {
		renderBreakdown(pdf, tr, p.Materials)
	}

	if pdf.Err() {
		return fmt.Errorf("failed to render report: %w", pdf.Error())
	}
	return pdf.OutputFileAndClose(path)
}

// renderHeader draws the title block and, when enabled, the QR summary.
func renderHeader(pdf *fpdf.Fpdf, tr func(string) string, p model.Project, totals model.Totals, opts ReportOptions) error {
	textWidth := contentWidth
	if opts.QRCode {
		textWidth -= qrSize + 5
		if err := drawSummaryQR(pdf, p, totals, opts.GeneratedAt); err != nil {
			return err
		}
	}

	pdf.SetXY(marginLeft, marginTop)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(textWidth, 10, tr(ReportTitle(p)), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	lines := []string{
		"Cost of production report",
		fmt.Sprintf("Units: %d", totals.UnitCount),
		"Date: " + opts.GeneratedAt.Format("02/01/2006"),
	}
	for _, l := range lines {
		pdf.CellFormat(textWidth, 5, tr(l), "", 1, "L", false, 0, "")
	}

	y := marginTop + 10 + 5*float64(len(lines)) + 3
	if opts.QRCode && y < marginTop+qrSize+3 {
		y = marginTop + qrSize + 3
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, y, pageWidth-marginRight, y)
	pdf.SetY(y + 4)
	return nil
}

func drawSummaryQR(pdf *fpdf.Fpdf, p model.Project, totals model.Totals, at time.Time) error {
	data, err := json.Marshal(Summary{
		Project:     p.Name,
		Units:       totals.UnitCount,
		GrandTotal:  totals.GrandTotal,
		CostPerUnit: totals.CostPerUnit,
		Generated:   at.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal report summary: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	pdf.RegisterImageOptionsReader("summary_qr", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions("summary_qr", pageWidth-marginRight-qrSize, marginTop, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// renderTotals draws the cost roll-up.
func renderTotals(pdf *fpdf.Fpdf, tr func(string) string, p model.Project, totals model.Totals) {
	sectionTitle(pdf, tr, "Summary")

	items := []struct {
		label string
		value string
		bold  bool
	}{
		{"Materials", FormatIDR(totals.MaterialCost), false},
		{"Hardware", FormatIDR(totals.HardwareCost), false},
		{"Labor", FormatIDR(totals.LaborCost), false},
		{"Subtotal", FormatIDR(totals.Subtotal), true},
		{fmt.Sprintf("Overhead (%s%%)", FormatQty(p.OverheadPercent.Float())), FormatIDR(totals.Overhead), false},
		{"Grand total", FormatIDR(totals.GrandTotal), true},
		{"HPP per unit", FormatIDR(totals.CostPerUnit), true},
	}

	for _, item := range items {
		style := ""
		if item.bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(60, rowHeight, tr(item.label), "", 0, "L", false, 0, "")
		pdf.CellFormat(50, rowHeight, tr(item.value), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

// renderMaterials draws one row per material with its purchase plan.
func renderMaterials(pdf *fpdf.Fpdf, tr func(string) string, materials []model.Material) {
	if len(materials) == 0 {
		return
	}
	sectionTitle(pdf, tr, "Materials")

	widths := []float64{60, 20, 30, 35, 35}
	tableHeader(pdf, tr, widths, []string{"Material", "Type", "Buy", "Unit price", "Total"})

	for i, m := range materials {
		qty, unitPrice, total := "-", "-", "-"
		if r := m.Result; r != nil {
			qty = FormatQty(r.Quantity) + " " + string(r.Unit)
			if r.Quantity > 0 {
				unitPrice = FormatIDR(r.TotalCost / r.Quantity)
			}
			total = FormatIDR(r.TotalCost)
			if m.Stale {
				total += " *"
			}
		}
		tableRow(pdf, tr, widths, i, []string{m.DisplayName(), m.Kind.String(), qty, unitPrice, total},
			[]string{"L", "L", "R", "R", "R"})
	}

	if hasStale(materials) {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(contentWidth, 5, tr("* edited since last calculation"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func renderHardware(pdf *fpdf.Fpdf, tr func(string) string, hardware []model.HardwareItem, units int) {
	if !anyHardware(hardware) {
		return
	}
	sectionTitle(pdf, tr, "Hardware")

	widths := []float64{65, 20, 35, 20, 40}
	tableHeader(pdf, tr, widths, []string{"Item", "Qty", "Price", "Per unit", "Total"})
	for i, h := range hardware {
		perUnit := "No"
		if h.PerUnit {
			perUnit = "Yes"
		}
		tableRow(pdf, tr, widths, i, []string{
			nameOr(h.Name, "Hardware"), FormatQty(h.Qty.Float()), FormatIDR(h.Price.Float()), perUnit, FormatIDR(h.Cost(units)),
		}, []string{"L", "R", "R", "C", "R"})
	}
	pdf.Ln(4)
}

func renderLabor(pdf *fpdf.Fpdf, tr func(string) string, labor []model.LaborItem, units int) {
	if !anyLabor(labor) {
		return
	}
	sectionTitle(pdf, tr, "Labor")

	widths := []float64{85, 35, 20, 40}
	tableHeader(pdf, tr, widths, []string{"Task", "Cost", "Per unit", "Total"})
	for i, l := range labor {
		perUnit := "No"
		if l.PerUnit {
			perUnit = "Yes"
		}
		tableRow(pdf, tr, widths, i, []string{
			nameOr(l.Name, "Labor"), FormatIDR(l.CostPerUnit.Float()), perUnit, FormatIDR(l.Cost(units)),
		}, []string{"L", "R", "C", "R"})
	}
	pdf.Ln(4)
}

// renderBreakdown writes the derivation trail of every computed material.
func renderBreakdown(pdf *fpdf.Fpdf, tr func(string) string, materials []model.Material) {
	first := true
	for _, m := range materials {
		if m.Result == nil {
			continue
		}
		if first {
			pdf.AddPage()
			sectionTitle(pdf, tr, "Calculation breakdown")
			first = false
		}

		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentWidth, rowHeight, tr(fmt.Sprintf("%s (%s)", m.DisplayName(), m.Kind)), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, line := range RenderTrail(m.Result.Trail) {
			pdf.SetX(marginLeft + 4)
			pdf.MultiCell(contentWidth-4, 4.5, tr(line), "", "L", false)
		}
		if w := m.Result.Waste; w != nil {
			pdf.SetX(marginLeft + 4)
			pdf.SetFont("Helvetica", "I", 8)
			pdf.CellFormat(contentWidth-4, 4.5,
				tr(fmt.Sprintf("Waste: %s %s (allowance %s%%)", FormatDecimal(w.Amount, 4), w.Unit, FormatQty(w.Percent))),
				"", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}
}

func sectionTitle(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentWidth, 8, tr(title), "", 1, "L", false, 0, "")
}

func tableHeader(pdf *fpdf.Fpdf, tr func(string) string, widths []float64, headers []string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], rowHeight, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func tableRow(pdf *fpdf.Fpdf, tr func(string) string, widths []float64, index int, cells, align []string) {
	pdf.SetFont("Helvetica", "", 9)
	// Alternate row background
	if index%2 == 0 {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	for i, c := range cells {
		pdf.CellFormat(widths[i], rowHeight, tr(c), "1", 0, align[i], true, 0, "")
	}
	pdf.Ln(-1)
}

func hasStale(materials []model.Material) bool {
	for _, m := range materials {
		if m.Stale && m.Result != nil {
			return true
		}
	}
	return false
}

func anyHardware(items []model.HardwareItem) bool {
	for _, h := range items {
		if h.Name != "" || h.Price.Float() != 0 {
			return true
		}
	}
	return false
}

func anyLabor(items []model.LaborItem) bool {
	for _, l := range items {
		if l.Name != "" || l.CostPerUnit.Float() != 0 {
			return true
		}
	}
	return false
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

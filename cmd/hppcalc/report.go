package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/piwi3910/hppcalc/internal/engine"
	"github.com/piwi3910/hppcalc/internal/export"
	"github.com/piwi3910/hppcalc/internal/model"
	"github.com/piwi3910/hppcalc/internal/store"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// printEstimate writes the material plans and the cost roll-up.
func printEstimate(w io.Writer, p model.Project, totals model.Totals, showTrail bool) {
	fmt.Fprintf(w, "%s (%d units)\n\n", export.ReportTitle(p), totals.UnitCount)

	if len(p.Materials) > 0 {
		tw := newTable(w)
		fmt.Fprintln(tw, "MATERIAL\tKIND\tBUY\tTOTAL")
		for _, m := range p.Materials {
			if m.Result == nil {
				fmt.Fprintf(tw, "%s\t%s\t-\t-\n", m.DisplayName(), m.Kind)
				continue
			}
			buy := export.FormatQty(m.Result.Quantity) + " " + string(m.Result.Unit)
			if m.Result.MissingInput() {
				buy = "missing input"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.DisplayName(), m.Kind, buy, export.FormatIDR(m.Result.TotalCost))
		}
		tw.Flush()
		fmt.Fprintln(w)
	}

	if showTrail {
		for _, m := range p.Materials {
			if m.Result == nil {
				continue
			}
			fmt.Fprintf(w, "%s:\n", m.DisplayName())
			for _, line := range export.RenderTrail(m.Result.Trail) {
				fmt.Fprintf(w, "  %s\n", line)
			}
			fmt.Fprintln(w)
		}
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "Materials\t%s\n", export.FormatIDR(totals.MaterialCost))
	fmt.Fprintf(tw, "Hardware\t%s\n", export.FormatIDR(totals.HardwareCost))
	fmt.Fprintf(tw, "Labor\t%s\n", export.FormatIDR(totals.LaborCost))
	fmt.Fprintf(tw, "Subtotal\t%s\n", export.FormatIDR(totals.Subtotal))
	fmt.Fprintf(tw, "Overhead (%s%%)\t%s\n", export.FormatQty(p.OverheadPercent.Float()), export.FormatIDR(totals.Overhead))
	fmt.Fprintf(tw, "Grand total\t%s\n", export.FormatIDR(totals.GrandTotal))
	fmt.Fprintf(tw, "HPP per unit\t%s\n", export.FormatIDR(totals.CostPerUnit))
	tw.Flush()
}

// printComparison writes one row per batch size and marks the cheapest.
func printComparison(w io.Writer, results []engine.ComparisonResult) {
	if len(results) == 0 {
		return
	}
	best := engine.CheapestPerUnit(results)

	fmt.Fprintln(w, "\nBatch size comparison")
	tw := newTable(w)
	fmt.Fprintln(tw, "UNITS\tGRAND TOTAL\tPER UNIT\tLEFTOVER VALUE\t")
	for i, r := range results {
		mark := ""
		if i == best {
			mark = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.UnitCount,
			export.FormatIDR(r.Totals.GrandTotal),
			export.FormatIDR(r.Totals.CostPerUnit),
			export.FormatIDR(r.LeftoverValue),
			mark)
	}
	tw.Flush()
}

// historyRow is one line of the history listing.
type historyRow struct {
	savedAt     time.Time
	project     string
	units       int
	grandTotal  float64
	costPerUnit float64
}

func entryRows(entries []model.HistoryEntry) []historyRow {
	rows := make([]historyRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, historyRow{
			savedAt:     e.Timestamp,
			project:     e.ProjectName,
			units:       e.Totals.UnitCount,
			grandTotal:  e.Totals.GrandTotal,
			costPerUnit: e.Totals.CostPerUnit,
		})
	}
	return rows
}

func summaryRows(sums []store.Summary) []historyRow {
	rows := make([]historyRow, 0, len(sums))
	for _, s := range sums {
		rows = append(rows, historyRow{
			savedAt:     s.SavedAt,
			project:     s.ProjectName,
			units:       s.UnitCount,
			grandTotal:  s.GrandTotal,
			costPerUnit: s.CostPerUnit,
		})
	}
	return rows
}

// printHistory lists saved estimates, newest first.
func printHistory(w io.Writer, rows []historyRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No saved estimates.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "SAVED\tPROJECT\tUNITS\tGRAND TOTAL\tPER UNIT")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			r.savedAt.Local().Format("02/01/2006 15:04"),
			r.project,
			r.units,
			export.FormatIDR(r.grandTotal),
			export.FormatIDR(r.costPerUnit))
	}
	tw.Flush()
}

package export

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func cellFloat(t *testing.T, f *excelize.File, sheet, cell string) float64 {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	require.NoError(t, err)
	n, err := strconv.ParseFloat(v, 64)
	require.NoError(t, err, "cell %s!%s = %q", sheet, cell, v)
	return n
}

func TestExportXLSX(t *testing.T) {
	p, totals := buildTestProject()
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, ExportXLSX(path, p, totals))

	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetMaterials, SheetBreakdown}, f.GetSheetList())

	title, err := f.GetCellValue(SheetSummary, "A1")
	require.NoError(t, err)
	assert.Equal(t, "HPP Coffee Table", title)

	assert.Equal(t, 10.0, cellFloat(t, f, SheetSummary, "B2"))
	assert.InDelta(t, totals.MaterialCost, cellFloat(t, f, SheetSummary, "B5"), 1e-6)
	assert.InDelta(t, totals.GrandTotal, cellFloat(t, f, SheetSummary, "B10"), 1e-6)
	assert.InDelta(t, totals.CostPerUnit, cellFloat(t, f, SheetSummary, "B11"), 1e-6)

	name, err := f.GetCellValue(SheetMaterials, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Plywood 18mm", name)
	assert.Equal(t, 3.0, cellFloat(t, f, SheetMaterials, "C2"))
	assert.Equal(t, 750000.0, cellFloat(t, f, SheetMaterials, "I2"))

	status, err := f.GetCellValue(SheetMaterials, "J2")
	require.NoError(t, err)
	assert.Equal(t, "OK", status)

	step, err := f.GetCellValue(SheetBreakdown, "B2")
	require.NoError(t, err)
	assert.Equal(t, "1. Net area per piece: 120 × 60 cm = 0.7200 m²", step)
}

func TestExportXLSX_Uncomputed(t *testing.T) {
	p, totals := buildTestProject()
	p.Materials[0].Result = nil
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, ExportXLSX(path, p, totals))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	status, err := f.GetCellValue(SheetMaterials, "J2")
	require.NoError(t, err)
	assert.Equal(t, "Not calculated", status)
}

func TestExportXLSX_BadPath(t *testing.T) {
	p, totals := buildTestProject()
	err := ExportXLSX(filepath.Join(t.TempDir(), "missing", "report.xlsx"), p, totals)
	assert.Error(t, err)
}

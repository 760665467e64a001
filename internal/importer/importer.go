// Package importer reads material lists from CSV and Excel files and panel
// cut pieces from DXF drawings. Column headers are matched case-insensitively
// against a list of aliases, and the CSV delimiter is detected automatically.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/hppcalc/internal/model"
)

// ImportResult holds the results of an import operation. Row problems are
// reported as messages; the rows that parsed are still returned.
type ImportResult struct {
	Materials []model.Material
	Errors    []string
	Warnings  []string
}

// Column roles a header cell can map to.
const (
	colKind     = "kind"
	colName     = "name"
	colMode     = "mode"
	colLength   = "length"
	colWidth    = "width"
	colArea     = "area"
	colTotal    = "total"
	colRawLen   = "raw_length"
	colRawWidth = "raw_width"
	colPrice    = "price"
	colWaste    = "waste"
	colLayers   = "layers"
	colCoverage = "coverage"
	colQty      = "qty"
	colNotes    = "notes"
)

// ColumnMapping maps column roles to their indices in the data.
type ColumnMapping map[string]int

// Index returns the column of role, or -1 when the header did not name it.
func (m ColumnMapping) Index(role string) int {
	if i, ok := m[role]; ok {
		return i
	}
	return -1
}

// headerAliases maps column roles to their accepted header names (all lowercase).
var headerAliases = map[string][]string{
	colKind:     {"kind", "type", "material type", "jenis"},
	colName:     {"name", "material", "description", "desc", "item", "nama"},
	colMode:     {"mode", "input mode", "input"},
	colLength:   {"length", "cut length", "length per unit", "len", "panjang"},
	colWidth:    {"width", "cut width", "fabric width", "lebar"},
	colArea:     {"area", "direct area", "surface area", "surface", "luas"},
	colTotal:    {"total", "total length", "total area"},
	colRawLen:   {"raw length", "sheet length", "bar length", "raw sheet length", "raw bar length"},
	colRawWidth: {"raw width", "sheet width", "raw sheet width"},
	colPrice:    {"price", "unit price", "price per unit", "harga"},
	colWaste:    {"waste", "waste %", "waste percent", "waste%"},
	colLayers:   {"layers", "coats", "lapis"},
	colCoverage: {"coverage", "coverage m2/l", "daya sebar"},
	colQty:      {"qty", "quantity", "count", "pcs", "jumlah"},
	colNotes:    {"notes", "note", "remarks", "keterangan"},
}

// kindAliases maps accepted kind names (lowercase) to material kinds.
var kindAliases = map[string]model.Kind{
	"panel":   model.KindPanel,
	"sheet":   model.KindPanel,
	"board":   model.KindPanel,
	"linear":  model.KindLinear,
	"bar":     model.KindLinear,
	"profile": model.KindLinear,
	"liquid":  model.KindLiquid,
	"paint":   model.KindLiquid,
	"finish":  model.KindLiquid,
	"fabric":  model.KindFabric,
	"cloth":   model.KindFabric,
	"unit":    model.KindUnit,
	"piece":   model.KindUnit,
	"pcs":     model.KindUnit,
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns the column mapping and
// whether any cell was recognised as a header. The first column matching a
// role wins.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{}
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			if _, taken := mapping[role]; taken {
				continue
			}
			for _, alias := range aliases {
				if normalized == alias {
					mapping[role] = i
					break
				}
			}
		}
	}
	return mapping, len(mapping) > 0
}

// ParseKind converts a kind cell to a material kind.
func ParseKind(s string) (model.Kind, bool) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

// parseMode converts a mode cell to an input mode.
func parseMode(s string) (model.InputMode, bool) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "dimension", "dimensions", "dim":
		return model.ModeDimension, true
	case "area":
		return model.ModeArea, true
	case "perunit", "per-unit", "unit":
		return model.ModePerUnit, true
	case "total":
		return model.ModeTotal, true
	default:
		return "", false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// rowReader reads the cells of one row through a column mapping and collects
// warnings about them.
type rowReader struct {
	row      []string
	mapping  ColumnMapping
	label    string
	warnings []string
}

func (r *rowReader) text(role string) string {
	return getCell(r.row, r.mapping.Index(role))
}

// value returns the numeric cell of role, or fallback when the cell is blank.
// Text without any digit is kept, since the normalizer reads it as zero, but
// is reported.
func (r *rowReader) value(role string, fallback model.Value) model.Value {
	s := r.text(role)
	if s == "" {
		return fallback
	}
	if !strings.ContainsAny(s, "0123456789") {
		r.warnings = append(r.warnings, fmt.Sprintf("%s: '%s' in column %s is not a number, using 0", r.label, s, role))
	}
	return model.Value(s)
}

// mode returns the input mode cell if it is valid for the kind, the inferred
// mode when the cell is blank, or fallback.
func (r *rowReader) mode(allowed []model.InputMode, inferred, fallback model.InputMode) model.InputMode {
	s := r.text(colMode)
	if s == "" {
		if inferred != "" {
			return inferred
		}
		return fallback
	}
	m, ok := parseMode(s)
	if ok {
		for _, a := range allowed {
			if m == a {
				return m
			}
		}
	}
	r.warnings = append(r.warnings, fmt.Sprintf("%s: Unknown mode '%s', defaulting to %s", r.label, s, fallback))
	return fallback
}

// parseRow builds a material from a row. Blank cells keep the default inputs
// of the kind. Returns the material, any error message and the warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, cfg model.AppConfig) (model.Material, string, []string) {
	r := &rowReader{row: row, mapping: mapping, label: rowLabel}

	kindStr := r.text(colKind)
	if kindStr == "" {
		return model.Material{}, fmt.Sprintf("%s: Missing kind value", rowLabel), nil
	}
	kind, ok := ParseKind(kindStr)
	if !ok {
		return model.Material{}, fmt.Sprintf("%s: Unknown kind '%s'", rowLabel, kindStr), nil
	}

	m := model.NewMaterial(kind, r.text(colName), cfg)

	switch c := m.Config.(type) {
	case model.PanelConfig:
		inferred := model.InputMode("")
		if r.text(colArea) != "" && r.text(colLength) == "" {
			inferred = model.ModeArea
		}
		c.Mode = r.mode([]model.InputMode{model.ModeDimension, model.ModeArea}, inferred, c.Mode)
		c.CutLength = r.value(colLength, c.CutLength)
		c.CutWidth = r.value(colWidth, c.CutWidth)
		c.DirectArea = r.value(colArea, c.DirectArea)
		c.RawSheetLength = r.value(colRawLen, c.RawSheetLength)
		c.RawSheetWidth = r.value(colRawWidth, c.RawSheetWidth)
		c.PricePerSheet = r.value(colPrice, c.PricePerSheet)
		c.WastePercent = r.value(colWaste, c.WastePercent)
		m.Config = c

	case model.LinearConfig:
		c.Mode = r.mode([]model.InputMode{model.ModePerUnit, model.ModeTotal}, inferTotal(r), c.Mode)
		c.LengthPerUnit = r.value(colLength, c.LengthPerUnit)
		c.TotalLength = r.value(colTotal, c.TotalLength)
		c.RawBarLength = r.value(colRawLen, c.RawBarLength)
		c.PricePerUnit = r.value(colPrice, c.PricePerUnit)
		c.WastePercent = r.value(colWaste, c.WastePercent)
		m.Config = c

	case model.LiquidConfig:
		c.SurfaceArea = r.value(colArea, c.SurfaceArea)
		c.Layers = r.value(colLayers, c.Layers)
		c.Coverage = r.value(colCoverage, c.Coverage)
		c.PricePerLiter = r.value(colPrice, c.PricePerLiter)
		c.WastePercent = r.value(colWaste, c.WastePercent)
		m.Config = c

	case model.FabricConfig:
		c.Mode = r.mode([]model.InputMode{model.ModePerUnit, model.ModeTotal}, inferTotal(r), c.Mode)
		c.LengthPerUnit = r.value(colLength, c.LengthPerUnit)
		c.TotalLength = r.value(colTotal, c.TotalLength)
		c.FabricWidth = r.value(colWidth, c.FabricWidth)
		c.PricePerMeter = r.value(colPrice, c.PricePerMeter)
		c.WastePercent = r.value(colWaste, c.WastePercent)
		m.Config = c

	case model.UnitConfig:
		c.QtyNeeded = r.value(colQty, c.QtyNeeded)
		c.PricePerUnit = r.value(colPrice, c.PricePerUnit)
		c.Notes = r.text(colNotes)
		m.Config = c
	}

	return m, "", r.warnings
}

// inferTotal picks total mode for a length material that only has a total.
func inferTotal(r *rowReader) model.InputMode {
	if r.text(colTotal) != "" && r.text(colLength) == "" {
		return model.ModeTotal
	}
	return ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports materials from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string, cfg model.AppConfig) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings, cfg)
}

// ImportCSVFromReader imports materials from a CSV reader with a specific
// delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, cfg model.AppConfig) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil, cfg)
}

// ImportExcel imports materials from the first sheet of an Excel workbook.
func ImportExcel(path string, cfg model.AppConfig) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil, cfg)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// The first non-empty row must be a header naming at least the kind column.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string, cfg model.AppConfig) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	headerIdx := 0
	for headerIdx < len(rows) && isEmptyRow(rows[headerIdx]) {
		headerIdx++
	}
	if headerIdx == len(rows) {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[headerIdx])
	if !hasHeader {
		result.Errors = append(result.Errors, "No header row found")
		return result
	}
	if mapping.Index(colKind) == -1 {
		result.Errors = append(result.Errors, "Required columns not found in header: Kind")
		return result
	}

	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		m, errMsg, warnings := parseRow(row, mapping, rowLabel, cfg)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Materials = append(result.Materials, m)
	}

	if len(result.Materials) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}

	return result
}

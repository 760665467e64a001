package export

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idr = message.NewPrinter(language.Indonesian)

// FormatIDR formats an amount as whole rupiah with Indonesian digit
// grouping: 750000 becomes "Rp 750.000".
func FormatIDR(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	rounded := math.Round(amount)
	if rounded < 0 {
		return "-Rp " + idr.Sprintf("%.0f", -rounded)
	}
	return "Rp " + idr.Sprintf("%.0f", rounded+0) // +0 folds -0 into 0
}

// FormatQty formats a quantity with at most two decimals and no trailing
// zeros: 3, 2.5, 0.79.
func FormatQty(f float64) string {
	return FormatDecimal(f, 2)
}

// FormatDecimal formats f with at most places decimals, trimming trailing
// zeros.
func FormatDecimal(f float64, places int) string {
	s := strconv.FormatFloat(f, 'f', places, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// fixed formats f with exactly places decimals.
func fixed(f float64, places int) string {
	return strconv.FormatFloat(f, 'f', places, 64)
}

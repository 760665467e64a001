package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Value is a numeric field exactly as the user typed it. It is kept as text so
// that an edited form round-trips unchanged; Float normalizes it on demand.
type Value string

// Num builds a Value from a number.
func Num(f float64) Value {
	return Value(strconv.FormatFloat(f, 'f', -1, 64))
}

// Float returns the normalized numeric value. See Normalize.
func (v Value) Float() float64 {
	return parseDecimal(string(v))
}

// IsBlank reports whether nothing was entered.
func (v Value) IsBlank() bool {
	return strings.TrimSpace(string(v)) == ""
}

// MarshalJSON always writes the raw text as a JSON string.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(v))
}

// UnmarshalJSON accepts a JSON string, a JSON number or null. A number is
// stored as plain decimal text, so 2.5e5 becomes "250000".
func (v *Value) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch {
	case s == "null":
		*v = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*v = Value(str)
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) {
			*v = ""
			return nil
		}
		*v = Num(f)
	}
	return nil
}

// decimalSeparators maps the comma family (ASCII comma, Arabic comma, Arabic
// decimal separator) onto a period. Mobile keyboards send all three.
var decimalSeparators = strings.NewReplacer(",", ".", "،", ".", "٫", ".")

// Normalize coerces arbitrary input into a finite number. Numbers pass through,
// nil and empty input yield 0, and text is cleaned and parsed leniently.
// It never fails: anything unparseable or non-finite becomes 0.
func Normalize(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case string:
		return parseDecimal(x)
	case Value:
		return parseDecimal(string(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			// Not in JSON number syntax, e.g. "1,25" from a lenient decoder.
			return parseDecimal(x.String())
		}
		return finite(f)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// parseDecimal cleans s down to digits, periods and a leading sign, then
// parses the longest valid decimal prefix ("1.2.3" reads as 1.2).
func parseDecimal(s string) float64 {
	s = decimalSeparators.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case (r >= '0' && r <= '9') || r == '.':
			b.WriteRune(r)
		case (r == '-' || r == '+') && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return parsePrefix(b.String())
}

func parsePrefix(s string) float64 {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
			digits++
		}
		i = j
	}
	if digits == 0 {
		return 0
	}

	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// OrOne returns f, or 1 when f is zero. Divisor-like inputs go through this.
func OrOne(f float64) float64 {
	if f == 0 {
		return 1
	}
	return f
}

// EffectiveUnits returns the project unit count used in arithmetic.
// Zero or negative counts are treated as 1.
func EffectiveUnits(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

package keypad

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders a result for the display. Integral values keep a
// trailing ".0", non-finite values print as "inf", "-inf" or "nan", and
// magnitudes outside [1e-4, 1e16) use exponent form.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

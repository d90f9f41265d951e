package beerslaw

import (
	"math"
	"strconv"
	"strings"
)

// ParseValue parses one table cell to a finite float.
//
// Surrounding whitespace is ignored. Empty, malformed, NaN and infinite
// values report ok == false. The decimal separator is '.'.
func ParseValue(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseStandards parses raw standard rows, keeping input order.
//
// A row is dropped when either cell fails ParseValue or the concentration is
// negative. Only the number of dropped rows is reported.
func ParseStandards(entries []StandardEntry) ([]StandardPoint, int) {
	points := make([]StandardPoint, 0, len(entries))
	dropped := 0

	for _, e := range entries {
		conc, ok := ParseValue(e.Concentration)
		if !ok || conc < 0 {
			dropped++
			continue
		}
		absb, ok := ParseValue(e.Absorbance)
		if !ok {
			dropped++
			continue
		}
		points = append(points, StandardPoint{Concentration: conc, Absorbance: absb})
	}

	return points, dropped
}

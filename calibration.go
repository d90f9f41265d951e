package beerslaw

import (
	"fmt"
	"math"
)

// MinSlope is the smallest |slope| accepted by Fit. Below it the line is
// effectively flat and concentration cannot be resolved from absorbance.
const MinSlope = 1e-6

// Bounds for the caller-supplied minimum number of standards.
const (
	MinStandardsLower = 3
	MinStandardsUpper = 20
)

// CurveOvershoot extends the plotted calibration line 10% past the highest
// standard concentration.
const CurveOvershoot = 1.1

// StandardEntry is one raw row of the standards table, exactly as entered.
type StandardEntry struct {
	Concentration string // ppm
	Absorbance    string
}

// StandardPoint is a parsed calibration standard.
type StandardPoint struct {
	Concentration float64 `json:"concentration"` // ppm, ≥ 0
	Absorbance    float64 `json:"absorbance"`
}

// CalibrationResult is a fitted Beer's-Law line A = a·C + b.
//
// Produced only by Fit; treat it as immutable.
type CalibrationResult struct {
	Slope       float64 `json:"slope"`       // a = ε·l
	Intercept   float64 `json:"intercept"`   // b
	Correlation float64 `json:"correlation"` // Pearson r, [-1, 1]
	RSquared    float64 `json:"r_squared"`   // r²

	Points  []StandardPoint `json:"points"`  // Standards the line was fitted to
	Dropped int             `json:"dropped"` // Rows that failed to parse
}

// Config controls a calibration run.
type Config struct {
	MinStandards int // Required number of valid standards (3..20)
	CurvePoints  int // Resolution of CalibrationResult.Curve for plotting
}

// DefaultConfig returns the defaults of the bench worksheet: six standards,
// a 100-point plotted line.
func DefaultConfig() Config {
	return Config{
		MinStandards: 6,
		CurvePoints:  100,
	}
}

// Validate checks that the config can be passed to Fit.
func (c Config) Validate() error {
	if c.MinStandards < MinStandardsLower || c.MinStandards > MinStandardsUpper {
		return &FitError{Kind: ErrMinCountOutOfRange, Required: c.MinStandards}
	}
	if c.CurvePoints < 2 {
		return fmt.Errorf("curve points must be at least 2, got %d", c.CurvePoints)
	}
	return nil
}

// Fit builds a calibration line from raw standard entries.
//
// Rows that fail to parse are dropped and only counted. The remaining
// standards must number at least minCount and contain two distinct
// concentrations. The fit is ordinary least squares:
//
//	a = Sxy / Sxx
//	b = ȳ - a·x̄
//	r = Sxy / √(Sxx·Syy)
//
// A line whose coefficients are not finite (the sums over/underflowed) or
// whose |a| < MinSlope is rejected. Every failure is a *FitError.
func Fit(entries []StandardEntry, minCount int) (CalibrationResult, error) {
	if minCount < MinStandardsLower || minCount > MinStandardsUpper {
		return CalibrationResult{}, &FitError{Kind: ErrMinCountOutOfRange, Required: minCount}
	}

	points, dropped := ParseStandards(entries)

	if len(points) < minCount {
		return CalibrationResult{}, &FitError{
			Kind:     ErrInsufficientData,
			Parsed:   len(points),
			Dropped:  dropped,
			Required: minCount,
		}
	}

	if distinctConcentrations(points) < 2 {
		return CalibrationResult{}, &FitError{
			Kind:     ErrDegenerateConcentrations,
			Parsed:   len(points),
			Dropped:  dropped,
			Required: minCount,
		}
	}

	result := fitLine(points)
	result.Dropped = dropped

	if !finite(result.Slope) || !finite(result.Intercept) || !finite(result.Correlation) {
		return CalibrationResult{}, &FitError{
			Kind:      ErrNonFiniteFit,
			Parsed:    len(points),
			Dropped:   dropped,
			Required:  minCount,
			Slope:     result.Slope,
			Intercept: result.Intercept,
		}
	}

	if math.Abs(result.Slope) < MinSlope {
		return CalibrationResult{}, &FitError{
			Kind:     ErrSlopeTooSmall,
			Parsed:   len(points),
			Dropped:  dropped,
			Required: minCount,
			Slope:    result.Slope,
		}
	}

	return result, nil
}

// fitLine computes the least-squares line over points. Callers guarantee at
// least two distinct concentrations (Sxx > 0).
func fitLine(points []StandardPoint) CalibrationResult {
	n := float64(len(points))

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.Concentration
		sumY += p.Absorbance
	}
	meanX := sumX / n
	meanY := sumY / n

	// Central sums of squares and cross-products
	var sxx, syy, sxy float64
	for _, p := range points {
		dx := p.Concentration - meanX
		dy := p.Absorbance - meanY
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX

	// Constant absorbance has no defined correlation; report 0.
	var r float64
	if syy > 0 {
		r = sxy / math.Sqrt(sxx*syy)
		r = math.Max(-1, math.Min(1, r)) // Rounding can push |r| past 1
	}

	pts := make([]StandardPoint, len(points))
	copy(pts, points)

	return CalibrationResult{
		Slope:       slope,
		Intercept:   intercept,
		Correlation: r,
		RSquared:    r * r,
		Points:      pts,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func distinctConcentrations(points []StandardPoint) int {
	seen := make(map[float64]struct{}, len(points))
	for _, p := range points {
		seen[p.Concentration] = struct{}{}
	}
	return len(seen)
}

// Predict returns the absorbance on the fitted line at the given concentration.
func (c CalibrationResult) Predict(concentration float64) float64 {
	return c.Slope*concentration + c.Intercept
}

// Invert back-calculates concentration from absorbance: (A - b) / a,
// clamped at 0. Negative concentrations are physically meaningless.
func (c CalibrationResult) Invert(absorbance float64) float64 {
	return math.Max(0, (absorbance-c.Intercept)/c.Slope)
}

// MaxConcentration returns the highest standard concentration.
func (c CalibrationResult) MaxConcentration() float64 {
	var highest float64
	for _, p := range c.Points {
		if p.Concentration > highest {
			highest = p.Concentration
		}
	}
	return highest
}

// Curve samples the fitted line at n evenly spaced concentrations from 0 to
// CurveOvershoot × the highest standard. Used for plotting.
func (c CalibrationResult) Curve(n int) []StandardPoint {
	if n < 2 {
		n = 2
	}
	upper := c.MaxConcentration() * CurveOvershoot
	step := upper / float64(n-1)

	curve := make([]StandardPoint, n)
	for i := range curve {
		x := step * float64(i)
		curve[i] = StandardPoint{Concentration: x, Absorbance: c.Predict(x)}
	}
	return curve
}

// Equation formats the line as a plot legend, e.g. "y = 0.100x + 0.002".
func (c CalibrationResult) Equation() string {
	sign := "+"
	b := c.Intercept
	if b < 0 {
		sign = "-"
		b = -b
	}
	return fmt.Sprintf("y = %.3fx %s %.3f", c.Slope, sign, b)
}

package beerslaw

import (
	"errors"
	"fmt"
	"math"
)

// Fit failures. All are terminal: a calibration that fails with any of
// them must not be used to evaluate samples.
var (
	// ErrInsufficientData: fewer parseable standards than the required minimum.
	ErrInsufficientData = errors.New("insufficient calibration data")

	// ErrDegenerateConcentrations: fewer than two distinct concentrations,
	// so the regression slope is undefined.
	ErrDegenerateConcentrations = errors.New("degenerate concentrations")

	// ErrSlopeTooSmall: |slope| below MinSlope. Concentration cannot be
	// resolved from absorbance with such a line.
	ErrSlopeTooSmall = errors.New("calibration slope too small")

	// ErrNonFiniteFit: the least-squares sums overflowed or underflowed and
	// the fitted coefficients are NaN or infinite.
	ErrNonFiniteFit = errors.New("calibration coefficients not finite")

	// ErrMinCountOutOfRange: the caller asked for a minimum standard count
	// outside [MinStandardsLower, MinStandardsUpper].
	ErrMinCountOutOfRange = errors.New("minimum standard count out of range")
)

// ErrDivideByZero is returned by Evaluate when the mean concentration of the
// defined samples is exactly zero, so relative percent deviation cannot be
// computed. The Evaluation returned alongside it is otherwise complete.
var ErrDivideByZero = errors.New("mean concentration is zero")

// FitError describes why Fit rejected a calibration set.
//
// Only aggregate counts are reported. Which rows failed to parse is
// deliberately not tracked.
type FitError struct {
	Kind      error   // One of the Err* sentinels above
	Parsed    int     // Rows that parsed to a valid (concentration, absorbance) pair
	Dropped   int     // Rows that failed to parse
	Required  int     // Minimum count requested by the caller
	Slope     float64 // Fitted slope (ErrSlopeTooSmall, ErrNonFiniteFit)
	Intercept float64 // Fitted intercept (ErrNonFiniteFit)
}

func (e *FitError) Error() string {
	switch e.Kind {
	case ErrInsufficientData:
		return fmt.Sprintf("%v: %d valid standards, need %d (%d rows dropped)",
			e.Kind, e.Parsed, e.Required, e.Dropped)
	case ErrDegenerateConcentrations:
		return fmt.Sprintf("%v: need at least 2 distinct concentrations among %d standards",
			e.Kind, e.Parsed)
	case ErrSlopeTooSmall:
		return fmt.Sprintf("%v: |a| = %.3g < %g", e.Kind, math.Abs(e.Slope), MinSlope)
	case ErrNonFiniteFit:
		return fmt.Sprintf("%v: a = %g, b = %g over %d standards",
			e.Kind, e.Slope, e.Intercept, e.Parsed)
	case ErrMinCountOutOfRange:
		return fmt.Sprintf("%v: %d not in [%d, %d]",
			e.Kind, e.Required, MinStandardsLower, MinStandardsUpper)
	default:
		return fmt.Sprintf("calibration failed: %v", e.Kind)
	}
}

// Unwrap makes errors.Is(err, ErrInsufficientData) and friends work.
func (e *FitError) Unwrap() error {
	return e.Kind
}

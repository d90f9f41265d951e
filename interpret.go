package beerslaw

import (
	"fmt"
	"math"
)

// Acceptance criteria of the method. Fixed, not configurable.
const (
	InterceptTolerance    = 0.05  // |b| below this is consistent with Beer's Law
	ExcellentCorrelation  = 0.995 // r above this is excellent
	AcceptableCorrelation = 0.98  // r above this (up to Excellent) is acceptable
)

// SlopeTier classifies the sign of the calibration slope.
type SlopeTier string

const (
	SlopePositive  SlopeTier = "POSITIVE"  // Expected positive relationship
	SlopeAnomalous SlopeTier = "ANOMALOUS" // Zero or negative, review data
)

// InterceptTier classifies the magnitude of the intercept.
type InterceptTier string

const (
	InterceptNearZero   InterceptTier = "NEAR_ZERO"  // Consistent with Beer's Law
	InterceptSystematic InterceptTier = "SYSTEMATIC" // Possible systematic or blank error
)

// CorrelationTier classifies Pearson r.
type CorrelationTier string

const (
	CorrelationExcellent  CorrelationTier = "EXCELLENT"  // r > 0.995
	CorrelationAcceptable CorrelationTier = "ACCEPTABLE" // 0.98 < r ≤ 0.995
	CorrelationPoor       CorrelationTier = "POOR"       // r ≤ 0.98, review data
)

// Interpretation is the qualitative reading of a calibration line, used by
// front ends to pick a message tier.
type Interpretation struct {
	Slope       SlopeTier       `json:"slope"`
	Intercept   InterceptTier   `json:"intercept"`
	Correlation CorrelationTier `json:"correlation"`

	result CalibrationResult
}

// Classify grades a calibration against the fixed acceptance criteria.
func Classify(c CalibrationResult) Interpretation {
	in := Interpretation{
		Slope:       SlopeAnomalous,
		Intercept:   InterceptSystematic,
		Correlation: CorrelationPoor,
		result:      c,
	}

	if c.Slope > 0 {
		in.Slope = SlopePositive
	}

	if math.Abs(c.Intercept) < InterceptTolerance {
		in.Intercept = InterceptNearZero
	}

	switch {
	case c.Correlation > ExcellentCorrelation:
		in.Correlation = CorrelationExcellent
	case c.Correlation > AcceptableCorrelation:
		in.Correlation = CorrelationAcceptable
	}

	return in
}

// Acceptable reports whether every tier is in its passing state.
// An acceptable-but-not-excellent correlation still passes.
func (in Interpretation) Acceptable() bool {
	return in.Slope == SlopePositive &&
		in.Intercept == InterceptNearZero &&
		in.Correlation != CorrelationPoor
}

// Messages returns one human-readable line per tier, in the order slope,
// intercept, correlation.
func (in Interpretation) Messages() []string {
	c := in.result
	msgs := make([]string, 0, 3)

	switch in.Slope {
	case SlopePositive:
		msgs = append(msgs, fmt.Sprintf("slope a = %.4f is positive: expected positive linear relationship", c.Slope))
	default:
		msgs = append(msgs, fmt.Sprintf("slope a = %.4f is not positive: anomalous, review data", c.Slope))
	}

	switch in.Intercept {
	case InterceptNearZero:
		msgs = append(msgs, fmt.Sprintf("intercept b = %.4f is near zero: consistent with Beer's Law", c.Intercept))
	default:
		msgs = append(msgs, fmt.Sprintf("intercept b = %.4f: possible systematic or blank error", c.Intercept))
	}

	switch in.Correlation {
	case CorrelationExcellent:
		msgs = append(msgs, fmt.Sprintf("correlation r = %.4f is excellent", c.Correlation))
	case CorrelationAcceptable:
		msgs = append(msgs, fmt.Sprintf("correlation r = %.4f is acceptable", c.Correlation))
	default:
		msgs = append(msgs, fmt.Sprintf("correlation r = %.4f is poor: review data", c.Correlation))
	}

	return msgs
}

package beerslaw

import (
	"math"
	"strconv"
	"testing"
)

// AssertionConfig contains tolerances for calibration properties.
type AssertionConfig struct {
	// Minimum Pearson r for a usable curve
	MinCorrelation float64

	// Maximum |intercept| (blank absorbance)
	MaxIntercept float64

	// Absolute tolerance for comparing recovered coefficients
	Tolerance float64
}

// DefaultAssertionConfig returns the method's acceptance criteria with a
// tight numeric tolerance.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		MinCorrelation: AcceptableCorrelation,
		MaxIntercept:   InterceptTolerance,
		Tolerance:      1e-9,
	}
}

// AssertLinearCalibration fits entries and verifies the line passes the
// acceptance criteria in cfg. It returns the fitted result for further checks.
func AssertLinearCalibration(t *testing.T, entries []StandardEntry, minCount int, cfg AssertionConfig) CalibrationResult {
	t.Helper()

	cal, err := Fit(entries, minCount)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if cal.Slope <= 0 {
		t.Errorf("Slope not positive: a = %.6f", cal.Slope)
	}

	if math.Abs(cal.Intercept) > cfg.MaxIntercept {
		t.Errorf("Intercept too large: b = %.6f (max: %.6f)\n"+
			"Check the blank or for a systematic offset.",
			cal.Intercept, cfg.MaxIntercept)
	}

	if cal.Correlation < cfg.MinCorrelation {
		t.Errorf("Poor linearity: r = %.6f (min: %.6f)", cal.Correlation, cfg.MinCorrelation)
	}

	if math.Abs(cal.RSquared-cal.Correlation*cal.Correlation) > cfg.Tolerance {
		t.Errorf("r² = %.12f does not equal r·r = %.12f", cal.RSquared, cal.Correlation*cal.Correlation)
	}

	t.Logf("✓ Linear calibration: %s, r = %.4f, R² = %.4f", cal.Equation(), cal.Correlation, cal.RSquared)
	return cal
}

// AssertRecovers verifies a fit reproduces the coefficients the data were
// generated from.
func AssertRecovers(t *testing.T, cal CalibrationResult, slope, intercept float64, cfg AssertionConfig) {
	t.Helper()

	if math.Abs(cal.Slope-slope) > cfg.Tolerance {
		t.Errorf("Slope: expected %.9f, got %.9f", slope, cal.Slope)
	}
	if math.Abs(cal.Intercept-intercept) > cfg.Tolerance {
		t.Errorf("Intercept: expected %.9f, got %.9f", intercept, cal.Intercept)
	}
}

// AssertEvaluationInvariants verifies the structural guarantees of an
// Evaluation: no negative concentrations, Horwitz CV present exactly when the
// concentration is positive, and consistent counts.
func AssertEvaluationInvariants(t *testing.T, ev Evaluation) {
	t.Helper()

	defined := 0
	for i, s := range ev.Samples {
		if s.Concentration == nil {
			if s.HorwitzCV != nil || s.RelativePercentDeviation != nil {
				t.Errorf("Sample %d: unset concentration carries derived values", i)
			}
			continue
		}
		defined++

		c := *s.Concentration
		if c < 0 {
			t.Errorf("Sample %d: negative concentration %.6f", i, c)
		}
		if (c > 0) != (s.HorwitzCV != nil) {
			t.Errorf("Sample %d: concentration %.6f but Horwitz present = %v", i, c, s.HorwitzCV != nil)
		}
	}

	if defined != ev.Summary.Samples {
		t.Errorf("Summary counts %d defined samples, found %d", ev.Summary.Samples, defined)
	}
	if defined+ev.Summary.Unset != len(ev.Samples) {
		t.Errorf("Defined (%d) + unset (%d) != entries (%d)", defined, ev.Summary.Unset, len(ev.Samples))
	}
}

// PrintAnalysis outputs the calibration and evaluation to the test log.
func PrintAnalysis(t *testing.T, cal CalibrationResult, ev Evaluation) {
	t.Helper()

	t.Logf("\n=== Calibration ===")
	t.Logf("  a (slope)     = %.4f", cal.Slope)
	t.Logf("  b (intercept) = %.4f", cal.Intercept)
	t.Logf("  r             = %.4f", cal.Correlation)
	t.Logf("  R²            = %.4f", cal.RSquared)
	for _, msg := range Classify(cal).Messages() {
		t.Logf("  • %s", msg)
	}

	t.Logf("\nSamples:")
	t.Logf("  #    Absorbance  Conc (ppm)  CV Horwitz (%%)")
	t.Logf("  --   ----------  ----------  --------------")
	for i, s := range ev.Samples {
		if !s.Defined() {
			t.Logf("  S%-3d %10s  %10s  %14s", i+1, "-", "-", "-")
			continue
		}
		cv := "NaN"
		if s.HorwitzCV != nil {
			cv = strconv.FormatFloat(*s.HorwitzCV, 'f', 2, 64)
		}
		t.Logf("  S%-3d %10.4f  %10.3f  %14s", i+1, *s.Absorbance, *s.Concentration, cv)
	}

	t.Logf("\nPrecision:")
	t.Logf("  mean = %.2f ppm, %%RSD = %.2f", ev.Summary.MeanConcentration, ev.Summary.RSDPercent)
	if ev.Summary.MeanHorwitzCV != nil {
		t.Logf("  mean CV Horwitz = %.2f%%", *ev.Summary.MeanHorwitzCV)
	}
}

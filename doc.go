// Package beerslaw builds Beer's-Law calibration curves and back-calculates
// sample concentrations from absorbance.
//
// # Overview
//
// A spectrophotometric assay measures absorbance A of standards with known
// concentration C and relies on Beer's Law:
//
//	A = ε·l·C + b
//
// Where:
//   - ε·l (slope a): molar absorptivity times path length
//   - b (intercept): blank absorbance, ideally ≈ 0
//   - C: concentration in ppm
//
// beerslaw fits that line from raw standard entries, grades it against the
// method's acceptance criteria, inverts it for unknown samples and reports
// precision against the Horwitz equation.
//
// # Quick Start
//
//	standards := []beerslaw.StandardEntry{
//	    {Concentration: "1", Absorbance: "0.10"},
//	    {Concentration: "2", Absorbance: "0.20"},
//	    {Concentration: "3", Absorbance: "0.31"},
//	    {Concentration: "4", Absorbance: "0.39"},
//	    {Concentration: "5", Absorbance: "0.52"},
//	    {Concentration: "6", Absorbance: "0.60"},
//	}
//
//	cal, err := beerslaw.Fit(standards, 6)
//	if err != nil {
//	    log.Fatal(err) // no usable line: do not evaluate samples
//	}
//
//	ev, err := beerslaw.Evaluate(cal, []string{"0.35", "0.36", ""})
//	if errors.Is(err, beerslaw.ErrDivideByZero) {
//	    // every sample at 0 ppm; relative deviations are nil
//	}
//
//	fmt.Printf("%s, r = %.4f\n", cal.Equation(), cal.Correlation)
//	fmt.Printf("mean = %.2f ppm\n", ev.Summary.MeanConcentration)
//
// # Input Handling
//
// Entries are raw table cells. A standard row that does not parse to two
// finite numbers (or has a negative concentration) is dropped; only the count
// is reported, in CalibrationResult.Dropped or FitError.Dropped. A sample
// entry that does not parse yields a SampleResult with a nil Concentration,
// so a front end can render a blank instead of a misleading 0.
//
// # Fit Errors
//
// Fit checks, in order:
//
//   - ErrInsufficientData: fewer valid standards than the required minimum
//   - ErrDegenerateConcentrations: fewer than 2 distinct concentrations
//   - ErrNonFiniteFit: the sums overflowed and a, b or r is NaN or ±Inf
//   - ErrSlopeTooSmall: |a| < 1e-6 after fitting
//
// All are terminal. Errors are *FitError values; match them with errors.Is.
//
// # Acceptance Criteria
//
// Classify grades a line with fixed thresholds:
//
//   - Slope:       a > 0 expected; otherwise anomalous
//   - Intercept:   |b| < 0.05 consistent with Beer's Law; otherwise systematic
//   - Correlation: r > 0.995 excellent, r > 0.98 acceptable, else poor
//
// # Horwitz
//
// The Horwitz equation predicts the reproducibility CV expected at a given
// mass fraction C = ppm / 10⁶:
//
//	CV(%) = 2^(1 - 0.5·log10(C))
//
// It is undefined for C ≤ 0, so samples clamped to 0 ppm have no Horwitz CV.
//
// # Precision
//
// PrecisionSummary.RSDPercent is √(mean((Cᵢ - C̄)²)), the population
// standard deviation in ppm, reported under the bench report's historical
// name. The conventional 100·σ/C̄ is reported separately as
// ConventionalRSDPercent, and HorRat divides it by the mean Horwitz CV.
//
// # Testing
//
// Use the assertions to check calibration properties from tests:
//
//	func TestMyAssay(t *testing.T) {
//	    cal := beerslaw.AssertLinearCalibration(t, standards, 6, beerslaw.DefaultAssertionConfig())
//
//	    ev, _ := beerslaw.Evaluate(cal, samples)
//	    beerslaw.AssertEvaluationInvariants(t, ev)
//	}
//
// # See Also
//
//   - cmd/beerslaw - command line front end reading YAML worksheets
//   - examples/ - Working code samples
package beerslaw

package beerslaw

import (
	"strings"
	"testing"
)

// TestClassify_Thresholds pins every tier boundary.
func TestClassify_Thresholds(t *testing.T) {
	cases := []struct {
		name        string
		cal         CalibrationResult
		slope       SlopeTier
		intercept   InterceptTier
		correlation CorrelationTier
	}{
		{"ideal", CalibrationResult{Slope: 0.1, Intercept: 0.001, Correlation: 0.999},
			SlopePositive, InterceptNearZero, CorrelationExcellent},
		{"r at excellent boundary", CalibrationResult{Slope: 0.1, Correlation: 0.995},
			SlopePositive, InterceptNearZero, CorrelationAcceptable},
		{"r just above acceptable", CalibrationResult{Slope: 0.1, Correlation: 0.9801},
			SlopePositive, InterceptNearZero, CorrelationAcceptable},
		{"r at acceptable boundary", CalibrationResult{Slope: 0.1, Correlation: 0.98},
			SlopePositive, InterceptNearZero, CorrelationPoor},
		{"negative r", CalibrationResult{Slope: -0.1, Correlation: -0.999},
			SlopeAnomalous, InterceptNearZero, CorrelationPoor},
		{"zero slope", CalibrationResult{Slope: 0, Correlation: 0.999},
			SlopeAnomalous, InterceptNearZero, CorrelationExcellent},
		{"intercept at tolerance", CalibrationResult{Slope: 0.1, Intercept: 0.05, Correlation: 0.999},
			SlopePositive, InterceptSystematic, CorrelationExcellent},
		{"negative intercept inside tolerance", CalibrationResult{Slope: 0.1, Intercept: -0.049, Correlation: 0.999},
			SlopePositive, InterceptNearZero, CorrelationExcellent},
		{"negative intercept at tolerance", CalibrationResult{Slope: 0.1, Intercept: -0.05, Correlation: 0.999},
			SlopePositive, InterceptSystematic, CorrelationExcellent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := Classify(tc.cal)
			if in.Slope != tc.slope {
				t.Errorf("Slope tier: expected %s, got %s", tc.slope, in.Slope)
			}
			if in.Intercept != tc.intercept {
				t.Errorf("Intercept tier: expected %s, got %s", tc.intercept, in.Intercept)
			}
			if in.Correlation != tc.correlation {
				t.Errorf("Correlation tier: expected %s, got %s", tc.correlation, in.Correlation)
			}
		})
	}
}

func TestClassify_BenchScenario(t *testing.T) {
	in := Classify(mustFit(t))

	if !in.Acceptable() {
		t.Errorf("Bench calibration should be acceptable: %+v", in)
	}
	if in.Correlation != CorrelationExcellent {
		t.Errorf("Expected excellent correlation, got %s", in.Correlation)
	}
}

func TestInterpretation_Acceptable(t *testing.T) {
	acceptable := Classify(CalibrationResult{Slope: 0.1, Intercept: 0.01, Correlation: 0.99})
	if !acceptable.Acceptable() {
		t.Error("Acceptable correlation should pass")
	}

	blank := Classify(CalibrationResult{Slope: 0.1, Intercept: 0.2, Correlation: 0.999})
	if blank.Acceptable() {
		t.Error("Systematic intercept should not pass")
	}
}

func TestInterpretation_Messages(t *testing.T) {
	msgs := Classify(CalibrationResult{Slope: -0.1012, Intercept: 0.0731, Correlation: 0.97}).Messages()

	if len(msgs) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(msgs))
	}

	want := []string{"anomalous", "systematic", "poor"}
	for i, w := range want {
		if !strings.Contains(msgs[i], w) {
			t.Errorf("Message %d %q should mention %q", i, msgs[i], w)
		}
	}
	if !strings.Contains(msgs[0], "-0.1012") {
		t.Errorf("Slope message should include the value: %q", msgs[0])
	}
}

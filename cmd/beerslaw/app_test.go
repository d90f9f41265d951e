package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexshd/beerslaw"
)

const benchWorksheet = `min_standards: 6
standards:
  - {concentration: 1, absorbance: 0.10}
  - {concentration: 2, absorbance: 0.20}
  - {concentration: 3, absorbance: 0.31}
  - {concentration: 4, absorbance: 0.39}
  - {concentration: 5, absorbance: 0.52}
  - {concentration: 6, absorbance: 0.60}
samples:
  - 0.35
  - 0.36
  - ""
  - 0.34
`

func writeWorksheet(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worksheet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runApp(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = newApp(&out, &errOut).run(args)
	return out.String(), errOut.String(), err
}

func TestFit_Text(t *testing.T) {
	path := writeWorksheet(t, benchWorksheet)

	out, _, err := runApp(t, "fit", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Calibration curve")
	assert.Contains(t, out, "y = 0.101x - 0.001")
	assert.Contains(t, out, "Correlation (r):  0.9986")
	assert.Contains(t, out, "is excellent")
	assert.NotContains(t, out, "Samples")
}

func TestFit_JSON(t *testing.T) {
	path := writeWorksheet(t, benchWorksheet)

	out, _, err := runApp(t, "--json", "fit", path)
	require.NoError(t, err)

	var r report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, path, r.Worksheet)
	require.NotNil(t, r.Calibration)
	assert.InDelta(t, 1.77/17.5, r.Calibration.Slope, 1e-12)
	require.NotNil(t, r.Interpretation)
	assert.Equal(t, beerslaw.CorrelationExcellent, r.Interpretation.Correlation)
	assert.Nil(t, r.Evaluation)
}

func TestEvaluate_JSON(t *testing.T) {
	path := writeWorksheet(t, benchWorksheet)

	out, _, err := runApp(t, "--json", "evaluate", path)
	require.NoError(t, err)

	var r report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	require.NotNil(t, r.Evaluation)
	require.Len(t, r.Evaluation.Samples, 4)

	assert.Nil(t, r.Evaluation.Samples[2].Concentration, "blank entry should stay unset")
	require.NotNil(t, r.Evaluation.Samples[0].Concentration)
	assert.InDelta(t, 3.467, *r.Evaluation.Samples[0].Concentration, 0.001)

	assert.Equal(t, 3, r.Evaluation.Summary.Samples)
	assert.Equal(t, 1, r.Evaluation.Summary.Unset)
	assert.NotNil(t, r.Evaluation.Summary.MeanHorwitzCV)
	assert.Empty(t, r.Warnings)
}

func TestEvaluate_Text(t *testing.T) {
	path := writeWorksheet(t, benchWorksheet)

	out, stderr, err := runApp(t, "evaluate", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Samples")
	assert.Contains(t, out, "CV Horwitz (%)")
	assert.Contains(t, out, "3.467")
	assert.Contains(t, out, "Mean CV Horwitz")
	assert.Contains(t, out, "1 entries could not be read")
	assert.Contains(t, stderr, "sample entries could not be parsed")
}

func TestEvaluate_ZeroMeanWarns(t *testing.T) {
	ws := strings.Replace(benchWorksheet, "  - 0.35\n  - 0.36\n  - \"\"\n  - 0.34\n", "  - -0.5\n  - -0.4\n", 1)
	path := writeWorksheet(t, ws)

	out, stderr, err := runApp(t, "--json", "evaluate", path)
	require.NoError(t, err)

	var r report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], beerslaw.ErrDivideByZero.Error())
	assert.Contains(t, stderr, "relative deviation undefined")
}

func TestFitFailureHaltsEvaluation(t *testing.T) {
	ws := `min_standards: 6
standards:
  - {concentration: 1, absorbance: 0.10}
  - {concentration: 2, absorbance: 0.20}
  - {concentration: x, absorbance: 0.31}
  - {concentration: "", absorbance: ""}
samples: [0.35]
`
	path := writeWorksheet(t, ws)
	metrics := filepath.Join(t.TempDir(), "beerslaw.prom")

	out, stderr, err := runApp(t, "--metrics-file", metrics, "evaluate", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, beerslaw.ErrInsufficientData)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "command failed")

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `beerslaw_fits_total{outcome="insufficient_data"} 1`)
	assert.Contains(t, string(prom), "beerslaw_standards_dropped_total 2")
	assert.NotContains(t, string(prom), "beerslaw_samples_total")
}

func TestCurve(t *testing.T) {
	path := writeWorksheet(t, benchWorksheet)

	out, _, err := runApp(t, "curve", "--points", "5", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7) // equation, header, 5 points
	assert.Equal(t, "concentration,absorbance", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "0.0000,"))
	assert.True(t, strings.HasPrefix(lines[6], "6.6000,"))

	_, _, err = runApp(t, "curve", "--points", "1", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "curve points must be at least 2")
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.yaml")

	_, stderr, err := runApp(t, "init", "--standards", "4", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "worksheet created")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "min_standards: 4")

	// Refuses to overwrite
	_, _, err = runApp(t, "init", path)
	assert.Error(t, err)

	_, _, err = runApp(t, "init", "--standards", "25", filepath.Join(t.TempDir(), "x.yaml"))
	assert.ErrorIs(t, err, beerslaw.ErrMinCountOutOfRange)
}

func TestLogLevel(t *testing.T) {
	path := writeWorksheet(t, benchWorksheet)

	_, stderr, err := runApp(t, "--log-level", "debug", "fit", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "calibration fitted")

	_, _, err = runApp(t, "--log-level", "loud", "fit", path)
	assert.Error(t, err)
}

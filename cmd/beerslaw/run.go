package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/alexshd/beerslaw"
	"github.com/alexshd/beerslaw/internal/worksheet"
)

// report is the --json output of every command.
type report struct {
	ID             string                      `json:"id"`
	Worksheet      string                      `json:"worksheet"`
	Equation       string                      `json:"equation,omitempty"`
	Calibration    *beerslaw.CalibrationResult `json:"calibration,omitempty"`
	Interpretation *beerslaw.Interpretation    `json:"interpretation,omitempty"`
	Evaluation     *beerslaw.Evaluation        `json:"evaluation,omitempty"`
	Curve          []beerslaw.StandardPoint    `json:"curve,omitempty"`
	Warnings       []string                    `json:"warnings,omitempty"`
}

// loadAndFit loads the worksheet and fits its standards. A fit failure is
// terminal for every command.
func (a *app) loadAndFit(path string) (*worksheet.Worksheet, beerslaw.CalibrationResult, error) {
	ws, err := worksheet.Load(path)
	if err != nil {
		return nil, beerslaw.CalibrationResult{}, err
	}

	cal, err := beerslaw.Fit(ws.Entries(), ws.MinStandards)
	a.metrics.ObserveFit(cal, err)
	if err != nil {
		return nil, beerslaw.CalibrationResult{}, fmt.Errorf("calibration failed: %w", err)
	}

	a.logger.Debug("calibration fitted",
		"worksheet", path,
		"standards", len(cal.Points),
		"dropped", cal.Dropped,
		"slope", cal.Slope,
		"intercept", cal.Intercept,
		"r", cal.Correlation)

	if cal.Dropped > 0 {
		a.logger.Warn("standard rows dropped", "count", cal.Dropped)
	}
	return ws, cal, nil
}

func (a *app) runFit(path string) error {
	_, cal, err := a.loadAndFit(path)
	if err != nil {
		return err
	}
	in := beerslaw.Classify(cal)
	if !in.Acceptable() {
		a.logger.Warn("calibration outside acceptance criteria",
			"slope", in.Slope, "intercept", in.Intercept, "correlation", in.Correlation)
	}

	if a.jsonOut {
		return a.writeJSON(report{
			Worksheet:      path,
			Equation:       cal.Equation(),
			Calibration:    &cal,
			Interpretation: &in,
		})
	}

	printCalibration(a.stdout, cal, in)
	return nil
}

func (a *app) runEvaluate(path string) error {
	ws, cal, err := a.loadAndFit(path)
	if err != nil {
		return err
	}
	in := beerslaw.Classify(cal)

	ev, err := beerslaw.Evaluate(cal, ws.Samples)
	a.metrics.ObserveEvaluation(ev)

	var warnings []string
	switch {
	case errors.Is(err, beerslaw.ErrDivideByZero):
		// Results are still shown; the relative deviations are left blank
		a.logger.Warn("every sample evaluated to 0 ppm; relative deviation undefined")
		warnings = append(warnings, err.Error())
	case err != nil:
		return fmt.Errorf("evaluation failed: %w", err)
	}
	if ev.Summary.Unset > 0 {
		a.logger.Warn("sample entries could not be parsed", "count", ev.Summary.Unset)
	}

	if a.jsonOut {
		return a.writeJSON(report{
			Worksheet:      path,
			Equation:       cal.Equation(),
			Calibration:    &cal,
			Interpretation: &in,
			Evaluation:     &ev,
			Warnings:       warnings,
		})
	}

	printCalibration(a.stdout, cal, in)
	printEvaluation(a.stdout, ev, warnings)
	return nil
}

func (a *app) runCurve(path string, points int) error {
	cfg := beerslaw.DefaultConfig()
	cfg.CurvePoints = points
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("--points: %w", err)
	}

	_, cal, err := a.loadAndFit(path)
	if err != nil {
		return err
	}
	curve := cal.Curve(cfg.CurvePoints)

	if a.jsonOut {
		return a.writeJSON(report{
			Worksheet: path,
			Equation:  cal.Equation(),
			Curve:     curve,
		})
	}

	printCurve(a.stdout, cal, curve)
	return nil
}

func (a *app) runInit(path string, standards int) error {
	cfg := beerslaw.DefaultConfig()
	cfg.MinStandards = standards
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("--standards: %w", err)
	}
	if err := worksheet.Template(cfg.MinStandards).Write(path); err != nil {
		return err
	}
	a.logger.Info("worksheet created", "path", path, "standards", standards)
	return nil
}

func (a *app) writeJSON(r report) error {
	r.ID = uuid.NewString()
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/alexshd/beerslaw"
)

// styles renders for one writer; colour is dropped when w is not a terminal.
type styles struct {
	title   lipgloss.Style
	ok      lipgloss.Style
	warning lipgloss.Style
	bad     lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#20B9B4")),
		ok:      r.NewStyle().Foreground(lipgloss.Color("#2CD7C7")),
		warning: r.NewStyle().Foreground(lipgloss.Color("#F4D03F")),
		bad:     r.NewStyle().Foreground(lipgloss.Color("#E74C3C")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#2C4A54")),
	}
}

func printCalibration(w io.Writer, cal beerslaw.CalibrationResult, in beerslaw.Interpretation) {
	s := newStyles(w)

	fmt.Fprintln(w, s.title.Render("Calibration curve"))
	fmt.Fprintf(w, "  %s\n", cal.Equation())
	fmt.Fprintf(w, "  Slope (a = ε·l):  %.4f\n", cal.Slope)
	fmt.Fprintf(w, "  Intercept (b):    %.4f\n", cal.Intercept)
	fmt.Fprintf(w, "  Correlation (r):  %.4f\n", cal.Correlation)
	fmt.Fprintf(w, "  R-squared:        %.4f\n", cal.RSquared)
	if cal.Dropped > 0 {
		fmt.Fprintln(w, s.muted.Render(fmt.Sprintf("  %d standard rows dropped", cal.Dropped)))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, s.title.Render("Interpretation"))
	msgs := in.Messages()
	marks := []string{
		s.mark(in.Slope == beerslaw.SlopePositive, true),
		s.mark(in.Intercept == beerslaw.InterceptNearZero, true),
		s.mark(in.Correlation == beerslaw.CorrelationExcellent, in.Correlation == beerslaw.CorrelationAcceptable),
	}
	for i, msg := range msgs {
		fmt.Fprintf(w, "  %s %s\n", marks[i], msg)
	}
	fmt.Fprintln(w)
}

// mark picks ✓ when ok, ⚠ when only a warning, ✗ otherwise.
func (s styles) mark(ok, warn bool) string {
	switch {
	case ok:
		return s.ok.Render("✓")
	case warn:
		return s.warning.Render("⚠")
	default:
		return s.bad.Render("✗")
	}
}

func printEvaluation(w io.Writer, ev beerslaw.Evaluation, warnings []string) {
	s := newStyles(w)

	fmt.Fprintln(w, s.title.Render("Samples"))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Sample", "Absorbance", "Conc (ppm)", "Deviation", "RPD (%)", "CV Horwitz (%)")
	for i, r := range ev.Samples {
		row := []string{fmt.Sprintf("S%d", i+1), "", "", "", "", ""}
		if r.Defined() {
			row[1] = strconv.FormatFloat(*r.Absorbance, 'f', 4, 64)
			row[2] = strconv.FormatFloat(*r.Concentration, 'f', 3, 64)
			row[3] = strconv.FormatFloat(r.Deviation, 'f', 3, 64)
			row[4] = optional(r.RelativePercentDeviation, 2)
			row[5] = optional(r.HorwitzCV, 2)
		}
		t.Row(row...)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w)

	sum := ev.Summary
	fmt.Fprintln(w, s.title.Render("Precision"))
	fmt.Fprintf(w, "  Mean:             %.2f ppm\n", sum.MeanConcentration)
	fmt.Fprintf(w, "  %%RSD:             %.2f\n", sum.RSDPercent)
	if sum.MeanHorwitzCV != nil {
		fmt.Fprintf(w, "  Mean CV Horwitz:  %.2f%%\n", *sum.MeanHorwitzCV)
	}
	if sum.HorRat != nil {
		fmt.Fprintf(w, "  HorRat:           %.2f\n", *sum.HorRat)
	}
	if sum.Unset > 0 {
		fmt.Fprintln(w, s.muted.Render(fmt.Sprintf("  %d entries could not be read", sum.Unset)))
	}
	for _, warning := range warnings {
		fmt.Fprintf(w, "  %s %s\n", s.warning.Render("⚠"), warning)
	}
}

// optional formats v, or NaN when undefined.
func optional(v *float64, prec int) string {
	if v == nil {
		return "NaN"
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}

func printCurve(w io.Writer, cal beerslaw.CalibrationResult, curve []beerslaw.StandardPoint) {
	fmt.Fprintf(w, "# %s\n", cal.Equation())
	fmt.Fprintln(w, "concentration,absorbance")
	for _, p := range curve {
		fmt.Fprintf(w, "%.4f,%.4f\n", p.Concentration, p.Absorbance)
	}
}

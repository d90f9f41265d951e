package beerslaw

import "math"

// PPMPerUnit converts ppm to a dimensionless mass fraction.
const PPMPerUnit = 1_000_000

// SampleResult is the back-calculated result for one sample entry.
//
// Optional values are nil when undefined:
//   - Absorbance and Concentration: the entry failed to parse
//   - RelativePercentDeviation: concentration unset, or the mean is zero
//   - HorwitzCV: concentration unset or not strictly positive
type SampleResult struct {
	Absorbance               *float64 `json:"absorbance"`
	Concentration            *float64 `json:"concentration"` // ppm, clamped ≥ 0
	Deviation                float64  `json:"deviation"`     // Concentration - mean (signed)
	RelativePercentDeviation *float64 `json:"relative_percent_deviation"`
	HorwitzCV                *float64 `json:"horwitz_cv_percent"`
}

// Defined reports whether the sample produced a concentration.
func (s SampleResult) Defined() bool {
	return s.Concentration != nil
}

// PrecisionSummary aggregates the samples that produced a concentration.
type PrecisionSummary struct {
	Samples           int     `json:"samples"` // Samples with a defined concentration
	Unset             int     `json:"unset"`   // Entries that failed to parse
	MeanConcentration float64 `json:"mean_concentration"`

	// RSDPercent is √(mean((Cᵢ - C̄)²)): the population standard deviation
	// in ppm. It is kept under this name to match established bench reports
	// even though it is not 100·σ/C̄. See ConventionalRSDPercent.
	RSDPercent float64 `json:"rsd_percent"`

	// ConventionalRSDPercent is 100·σ/C̄. Nil when the mean is zero.
	ConventionalRSDPercent *float64 `json:"conventional_rsd_percent"`

	// MeanHorwitzCV is the mean of the defined per-sample Horwitz CVs.
	// Nil when no sample has a positive concentration.
	MeanHorwitzCV *float64 `json:"mean_horwitz_cv_percent"`

	// HorRat is ConventionalRSDPercent / MeanHorwitzCV. Nil when either is.
	HorRat *float64 `json:"horrat"`
}

// Evaluation is the output of Evaluate: one result per input entry in input
// order, plus the precision summary.
type Evaluation struct {
	Samples []SampleResult   `json:"samples"`
	Summary PrecisionSummary `json:"summary"`
}

// Evaluate back-calculates sample concentrations from raw absorbance entries
// using a calibration produced by Fit.
//
// An entry that fails to parse yields a SampleResult with nil Concentration;
// it never stops the batch and is excluded from every aggregate.
//
// When the defined concentrations average exactly zero, relative percent
// deviation is undefined. Evaluate then returns the Evaluation with every
// RelativePercentDeviation nil, together with ErrDivideByZero.
func Evaluate(cal CalibrationResult, entries []string) (Evaluation, error) {
	samples := make([]SampleResult, len(entries))

	var (
		defined []int
		sum     float64
	)

	// Pass 1: invert the line
	for i, text := range entries {
		a, ok := ParseValue(text)
		if !ok {
			continue
		}
		conc := cal.Invert(a)
		samples[i].Absorbance = &a
		samples[i].Concentration = &conc
		defined = append(defined, i)
		sum += conc
	}

	summary := PrecisionSummary{
		Samples: len(defined),
		Unset:   len(entries) - len(defined),
	}

	if len(defined) == 0 {
		return Evaluation{Samples: samples, Summary: summary}, nil
	}

	mean := sum / float64(len(defined))
	summary.MeanConcentration = mean

	// Pass 2: deviations and Horwitz
	var (
		sumSq      float64
		sumHorwitz float64
		nHorwitz   int
	)
	for _, i := range defined {
		s := &samples[i]
		conc := *s.Concentration

		s.Deviation = conc - mean
		sumSq += s.Deviation * s.Deviation

		if mean != 0 {
			rpd := math.Abs(s.Deviation) / mean * 100
			s.RelativePercentDeviation = &rpd
		}

		if cv, ok := HorwitzCV(conc); ok {
			s.HorwitzCV = &cv
			sumHorwitz += cv
			nHorwitz++
		}
	}

	sd := math.Sqrt(sumSq / float64(len(defined)))
	summary.RSDPercent = sd

	if nHorwitz > 0 {
		meanCV := sumHorwitz / float64(nHorwitz)
		summary.MeanHorwitzCV = &meanCV
	}

	if mean == 0 {
		return Evaluation{Samples: samples, Summary: summary}, ErrDivideByZero
	}

	rsd := sd / mean * 100
	summary.ConventionalRSDPercent = &rsd
	if summary.MeanHorwitzCV != nil {
		horrat := rsd / *summary.MeanHorwitzCV
		summary.HorRat = &horrat
	}

	return Evaluation{Samples: samples, Summary: summary}, nil
}

// HorwitzCV returns the Horwitz predicted reproducibility CV (%) for a
// concentration in ppm:
//
//	CV = 2^(1 - 0.5·log10(C)),  C = ppm / 10⁶
//
// ok is false when ppm ≤ 0 or not finite, where the equation is undefined.
func HorwitzCV(ppm float64) (cv float64, ok bool) {
	if !(ppm > 0) || math.IsInf(ppm, 1) {
		return 0, false
	}
	c := ppm / PPMPerUnit
	return math.Pow(2, 1-0.5*math.Log10(c)), true
}

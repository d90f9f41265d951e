package beerslaw

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts calibration and evaluation outcomes.
//
// Fit and Evaluate stay pure; callers record their results here afterwards.
type Metrics struct {
	StandardsParsed  prometheus.Counter
	StandardsDropped prometheus.Counter
	Fits             *prometheus.CounterVec // outcome: ok, insufficient_data, ...
	Samples          *prometheus.CounterVec // status: defined, unset
	LastCorrelation  prometheus.Gauge
}

// Fit outcome label values.
const (
	OutcomeOK                       = "ok"
	OutcomeInsufficientData         = "insufficient_data"
	OutcomeDegenerateConcentrations = "degenerate_concentrations"
	OutcomeSlopeTooSmall            = "slope_too_small"
	OutcomeNonFinite                = "non_finite"
	OutcomeInvalidConfig            = "invalid_config"
	OutcomeError                    = "error"
)

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		StandardsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "beerslaw",
			Name:      "standards_parsed_total",
			Help:      "Standard rows that parsed to a valid concentration/absorbance pair.",
		}),
		StandardsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "beerslaw",
			Name:      "standards_dropped_total",
			Help:      "Standard rows dropped because they failed to parse.",
		}),
		Fits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "beerslaw",
			Name:      "fits_total",
			Help:      "Calibration fits by outcome.",
		}, []string{"outcome"}),
		Samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "beerslaw",
			Name:      "samples_total",
			Help:      "Evaluated sample entries by status.",
		}, []string{"status"}),
		LastCorrelation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "beerslaw",
			Name:      "last_correlation",
			Help:      "Pearson r of the most recent successful fit.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.StandardsParsed, m.StandardsDropped, m.Fits, m.Samples, m.LastCorrelation,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveFit records the outcome of one Fit call.
func (m *Metrics) ObserveFit(res CalibrationResult, err error) {
	if err == nil {
		m.StandardsParsed.Add(float64(len(res.Points)))
		m.StandardsDropped.Add(float64(res.Dropped))
		m.Fits.WithLabelValues(OutcomeOK).Inc()
		m.LastCorrelation.Set(res.Correlation)
		return
	}

	var fe *FitError
	if errors.As(err, &fe) {
		m.StandardsParsed.Add(float64(fe.Parsed))
		m.StandardsDropped.Add(float64(fe.Dropped))
	}
	m.Fits.WithLabelValues(FitOutcome(err)).Inc()
}

// ObserveEvaluation records the sample counts of one Evaluate call.
func (m *Metrics) ObserveEvaluation(ev Evaluation) {
	m.Samples.WithLabelValues("defined").Add(float64(ev.Summary.Samples))
	m.Samples.WithLabelValues("unset").Add(float64(ev.Summary.Unset))
}

// FitOutcome maps a Fit error to its outcome label.
func FitOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrInsufficientData):
		return OutcomeInsufficientData
	case errors.Is(err, ErrDegenerateConcentrations):
		return OutcomeDegenerateConcentrations
	case errors.Is(err, ErrSlopeTooSmall):
		return OutcomeSlopeTooSmall
	case errors.Is(err, ErrNonFiniteFit):
		return OutcomeNonFinite
	case errors.Is(err, ErrMinCountOutOfRange):
		return OutcomeInvalidConfig
	default:
		return OutcomeError
	}
}

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"supply-curves/internal/model"
)

const (
	metricPrefix = "supply_"

	cacheHit  = "hit"
	cacheMiss = "miss"
)

var (
	registerOnce sync.Once

	calibrationsTotal  prometheus.Counter
	calibrationLatency prometheus.Histogram
	cacheLookups       *prometheus.CounterVec
	simulationsTotal   *prometheus.CounterVec
	exportsTotal       *prometheus.CounterVec
)

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		calibrationsTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "calibrations_total",
				Help: "Total decay-rate calibrations that ran a full scan",
			},
		)
		calibrationLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "calibration_seconds",
				Help:    "Calibration scan duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		)
		cacheLookups = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "calibration_cache_total",
				Help: "Calibration cache lookups by outcome",
			},
			[]string{"outcome"},
		)
		simulationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "simulations_total",
				Help: "Total simulations served by policy",
			},
			[]string{"policy"},
		)
		exportsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exports_total",
				Help: "Total table exports by format",
			},
			[]string{"format"},
		)
		prometheus.MustRegister(
			calibrationsTotal,
			calibrationLatency,
			cacheLookups,
			simulationsTotal,
			exportsTotal,
		)
	})
}

// ObserveSimulation counts one simulation of the given policy.
func ObserveSimulation(policy model.PolicyKind) {
	if simulationsTotal != nil {
		simulationsTotal.WithLabelValues(string(policy)).Inc()
	}
}

// ObserveExport counts one export in the given format (csv, xlsx, pdf).
func ObserveExport(format string) {
	if exportsTotal != nil {
		exportsTotal.WithLabelValues(format).Inc()
	}
}

// Recorder forwards calibration telemetry to the registered collectors.
// The zero value is ready to use once Init has run.
type Recorder struct{}

func (Recorder) CalibrationDone(elapsed time.Duration) {
	if calibrationsTotal != nil {
		calibrationsTotal.Inc()
	}
	if calibrationLatency != nil {
		calibrationLatency.Observe(elapsed.Seconds())
	}
}

func (Recorder) CacheLookup(hit bool) {
	if cacheLookups == nil {
		return
	}
	outcome := cacheMiss
	if hit {
		outcome = cacheHit
	}
	cacheLookups.WithLabelValues(outcome).Inc()
}

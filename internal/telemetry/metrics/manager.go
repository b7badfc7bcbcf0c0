package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterPhases       *prometheus.CounterVec
	CounterSickPhases   prometheus.Counter
	CounterPagesWritten prometheus.Counter
	CounterImportedRows *prometheus.CounterVec

	// gauges
	GaugeActivityTypes prometheus.Gauge
	GaugeYears         prometheus.Gauge

	// histograms
	HistCalculationDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("etl", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("etl", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterPhases := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "phases",
		Help:      "The total number of aggregated training phases",
	}, []string{"activity"})
	counterSickPhases := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sick_phases",
		Help:      "The total number of phases marking a sick day",
	})
	counterPagesWritten := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "pages_written",
		Help:      "The total number of generated report files",
	})
	counterImportedRows := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "imported_rows",
		Help:      "The total number of rows imported from third-party exports",
	}, []string{"source"})

	gaugeActivityTypes := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "activity_types",
		Help:      "Number of distinct activity types in the training log",
	})
	gaugeYears := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "years",
		Help:      "Number of years with at least one training phase",
	})

	histCalculationDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.0001, 0.0005, 0.001, 0.005, 0.01,
				0.05, 0.1, 0.5, 1, 5, 10,
			},
			Name: "calculation_duration_seconds",
			Help: "Duration of a single report calculation pass in seconds",
		},
	)

	return &Manager{
		CounterPhases:           counterPhases,
		CounterSickPhases:       counterSickPhases,
		CounterPagesWritten:     counterPagesWritten,
		CounterImportedRows:     counterImportedRows,
		GaugeActivityTypes:      gaugeActivityTypes,
		GaugeYears:              gaugeYears,
		HistCalculationDuration: histCalculationDuration,
	}
}

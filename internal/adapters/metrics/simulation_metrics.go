package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SimulationMetricsCollector handles dive simulation outcome metrics
type SimulationMetricsCollector struct {
	simulationsTotal *prometheus.CounterVec
	breachesTotal    prometheus.Counter
	advisoriesTotal  prometheus.Counter
	segmentsPerRun   prometheus.Histogram
}

// NewSimulationMetricsCollector creates a new simulation metrics collector
func NewSimulationMetricsCollector() *SimulationMetricsCollector {
	return &SimulationMetricsCollector{
		simulationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "simulations_total",
				Help:      "Total number of dive simulations by outcome",
			},
			[]string{"outcome"},
		),

		breachesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "turn_breaches_total",
				Help:      "Total number of simulations that breached turn pressure",
			},
		),

		advisoriesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stage_drop_advisories_total",
				Help:      "Total number of automatic stage drop advisories emitted",
			},
		),

		segmentsPerRun: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "segments_per_simulation",
				Help:      "Distribution of segment counts per simulated plan",
				Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
			},
		),
	}
}

// Register registers all simulation metrics with the Prometheus registry
func (c *SimulationMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.simulationsTotal,
		c.breachesTotal,
		c.advisoriesTotal,
		c.segmentsPerRun,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordSimulation records one simulation outcome
func (c *SimulationMetricsCollector) RecordSimulation(segments int, breach bool, advisories int) {
	outcome := "clear"
	if breach {
		outcome = "breach"
		c.breachesTotal.Inc()
	}
	c.simulationsTotal.WithLabelValues(outcome).Inc()
	c.advisoriesTotal.Add(float64(advisories))
	c.segmentsPerRun.Observe(float64(segments))
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "mlflow"

type Prometheus struct {
	Scores  *prometheus.GaugeVec
	Samples *prometheus.CounterVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Scores: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "score",
				Help:      "Latest value of a metric for a scorer.",
			}, []string{"scorer", "metric"}),
		Samples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "samples_total",
				Help:      "Samples scored by a scorer.",
			}, []string{"scorer"}),
	}
}

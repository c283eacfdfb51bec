package metrics

import (
	"fmt"
	"reflect"

	"github.com/drakos74/mlflow-demo/internal/score"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Publisher exposes scorer reports as prometheus metrics.
type Publisher struct {
	prometheus Prometheus
}

// NewPublisher creates a publisher and registers its collectors.
func NewPublisher(reg prometheus.Registerer) (*Publisher, error) {
	p := NewPrometheusMetrics()
	for _, c := range []prometheus.Collector{p.Scores, p.Samples} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("could not register collector: %w", err)
		}
	}
	return &Publisher{prometheus: p}, nil
}

// Publish records the numeric scores of the report.
// Scores that are not numbers are skipped.
func (p *Publisher) Publish(scorer string, samples int, report score.Report) {
	p.prometheus.Samples.WithLabelValues(scorer).Add(float64(samples))
	for name, v := range report {
		f, ok := Float(v)
		if !ok {
			log.Debug().
				Str("scorer", scorer).
				Str("metric", name).
				Str("type", fmt.Sprintf("%T", v)).
				Msg("skipping non numeric score")
			continue
		}
		p.prometheus.Scores.WithLabelValues(scorer, name).Set(f)
	}
}

// Float converts any integer or float score to a float64.
func Float(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

// WriteTextfile writes the gathered metrics in the text exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("could not write metrics to '%s': %w", path, err)
	}
	return nil
}

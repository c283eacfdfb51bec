package score

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmptyName      = errors.New("empty metric name")
	ErrDuplicateName  = errors.New("duplicate metric name")
	ErrNilMetric      = errors.New("nil metric function")
	ErrLengthMismatch = errors.New("length mismatch")
)

// Metric scores the predicted labels against the true ones.
// The returned score is passed through to the Report as is.
type Metric[L cmp.Ordered] func(y, yPred []L) (any, error)

// Named binds a metric function to the name it is reported under.
type Named[L cmp.Ordered] struct {
	Name string
	Func Metric[L]
}

// Use creates a named metric.
func Use[L cmp.Ordered](name string, fn Metric[L]) Named[L] {
	return Named[L]{Name: name, Func: fn}
}

// Report holds the score of each metric for a single call.
type Report map[string]any

// Scorer evaluates a fixed set of metrics on every call
// and keeps the labels it has seen along the way.
// A Scorer must not be shared across goroutines, use Copy instead.
type Scorer[L cmp.Ordered] struct {
	id      string
	metrics []Named[L]
	y       []L
	yPred   []L
}

// New creates a new scorer for the given metrics.
// The registration order is kept for Names.
func New[L cmp.Ordered](metrics ...Named[L]) (*Scorer[L], error) {
	seen := make(map[string]struct{}, len(metrics))
	for _, m := range metrics {
		if m.Name == "" {
			return nil, ErrEmptyName
		}
		if _, ok := seen[m.Name]; ok {
			return nil, fmt.Errorf("%s: %w", m.Name, ErrDuplicateName)
		}
		if m.Func == nil {
			return nil, fmt.Errorf("%s: %w", m.Name, ErrNilMetric)
		}
		seen[m.Name] = struct{}{}
	}
	return newScorer(append([]Named[L](nil), metrics...)), nil
}

func newScorer[L cmp.Ordered](metrics []Named[L]) *Scorer[L] {
	return &Scorer[L]{
		id:      uuid.New().String(),
		metrics: metrics,
		y:       make([]L, 0),
		yPred:   make([]L, 0),
	}
}

// Copy returns a scorer with the same metric functions and no history.
func (s *Scorer[L]) Copy() *Scorer[L] {
	return newScorer(s.metrics)
}

// ID identifies the scorer instance.
func (s *Scorer[L]) ID() string {
	return s.id
}

// Names returns the metric names in registration order.
func (s *Scorer[L]) Names() []string {
	names := make([]string, len(s.metrics))
	for i, m := range s.metrics {
		names[i] = m.Name
	}
	return names
}

// Len returns the number of samples scored so far.
func (s *Scorer[L]) Len() int {
	return len(s.y)
}

// History returns a copy of all true and predicted labels seen so far.
func (s *Scorer[L]) History() (y, yPred []L) {
	return append([]L(nil), s.y...), append([]L(nil), s.yPred...)
}

// Score predicts the labels for x, records them together with y
// and evaluates every metric on this call's labels only.
// Errors from the estimator or the metrics are returned unchanged.
func (s *Scorer[L]) Score(est Estimator[L], x mat.Matrix, y []L) (Report, error) {
	yPred, err := est.Predict(x)
	if err != nil {
		log.Warn().Err(err).Str("scorer", s.id).Msg("could not predict")
		return nil, err
	}
	if len(yPred) != len(y) {
		return nil, fmt.Errorf("labels %d vs predictions %d: %w", len(y), len(yPred), ErrLengthMismatch)
	}

	s.y = append(s.y, y...)
	s.yPred = append(s.yPred, yPred...)

	log.Debug().
		Str("scorer", s.id).
		Int("samples", len(y)).
		Int("total", len(s.y)).
		Msg("scored")

	report := make(Report, len(s.metrics))
	for _, m := range s.metrics {
		v, err := m.Func(y, yPred)
		if err != nil {
			log.Warn().Err(err).Str("scorer", s.id).Str("metric", m.Name).Msg("could not evaluate metric")
			return nil, err
		}
		report[m.Name] = v
	}
	return report, nil
}

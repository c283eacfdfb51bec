package metric

import (
	"errors"
	"testing"

	"github.com/drakos74/mlflow-demo/internal/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var (
	truth = []string{"a", "a", "b", "b"}
	pred  = []string{"a", "b", "b", "b"}
)

func TestConfusion(t *testing.T) {
	cm, err := Confusion([]int{0, 0, 1, 1}, []int{0, 1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, cm["0"]["0"])
	assert.Equal(t, 1, cm["0"]["1"])
	assert.Equal(t, 0, cm["1"]["0"])
	assert.Equal(t, 2, cm["1"]["1"])

	_, err = Confusion([]int{0}, []int{0, 1})
	assert.True(t, errors.Is(err, ErrLengthMismatch))
}

func TestMetrics(t *testing.T) {

	type test struct {
		metric score.Metric[string]
		value  float64
	}

	tests := map[string]test{
		"accuracy": {
			metric: Accuracy[string](),
			value:  0.75,
		},
		"macro-precision": {
			metric: MacroPrecision[string](),
			value:  5.0 / 6.0,
		},
		"macro-recall": {
			metric: MacroRecall[string](),
			value:  0.75,
		},
		"micro-precision": {
			metric: MicroPrecision[string](),
			value:  0.75,
		},
		"micro-recall": {
			metric: MicroRecall[string](),
			value:  0.75,
		},
		"precision-b": {
			metric: Precision("b"),
			value:  2.0 / 3.0,
		},
		"recall-a": {
			metric: Recall("a"),
			value:  0.5,
		},
		"f1-a": {
			metric: F1("a"),
			value:  2.0 / 3.0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := tt.metric(truth, pred)
			require.NoError(t, err)
			assert.InDelta(t, tt.value, v, 1e-9)
		})
	}
}

func TestSummary(t *testing.T) {
	v, err := Summary[string]()(truth, pred)
	require.NoError(t, err)
	s, ok := v.(string)
	require.True(t, ok)
	assert.Contains(t, s, "a")
	assert.Contains(t, s, "b")
}

func TestLookup(t *testing.T) {
	for _, key := range []string{AccuracyKey, MacroPrecisionKey, MacroRecallKey, MicroPrecisionKey, MicroRecallKey, SummaryKey} {
		m, err := Lookup[int](key)
		require.NoError(t, err, key)
		assert.NotNil(t, m)
	}

	_, err := Lookup[int]("roc_auc")
	assert.True(t, errors.Is(err, ErrUnknownMetric))
}

func TestSet_WithScorer(t *testing.T) {
	metrics, err := Set[int](AccuracyKey, MacroRecallKey)
	require.NoError(t, err)

	s, err := score.New(metrics...)
	require.NoError(t, err)
	assert.Equal(t, []string{AccuracyKey, MacroRecallKey}, s.Names())

	est := score.EstimatorFunc[int](func(x mat.Matrix) ([]int, error) {
		return []int{1, 1}, nil
	})
	report, err := s.Score(est, mat.NewDense(2, 1, nil), []int{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, report[AccuracyKey], 1e-9)

	_, err = Set[int](AccuracyKey, "unknown")
	assert.True(t, errors.Is(err, ErrUnknownMetric))
}

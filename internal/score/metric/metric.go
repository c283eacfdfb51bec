// Package metric provides the common classification metrics
// as score.Metric functions.
package metric

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/drakos74/mlflow-demo/internal/score"
	"github.com/sjwhitworth/golearn/evaluation"
)

const (
	AccuracyKey       = "accuracy"
	MacroPrecisionKey = "macro_precision"
	MacroRecallKey    = "macro_recall"
	MicroPrecisionKey = "micro_precision"
	MicroRecallKey    = "micro_recall"
	SummaryKey        = "summary"
)

var (
	ErrUnknownMetric  = errors.New("unknown metric")
	ErrLengthMismatch = errors.New("length mismatch")
)

// Confusion counts the predictions per true label.
// Labels are keyed by their default string format.
func Confusion[L cmp.Ordered](y, yPred []L) (evaluation.ConfusionMatrix, error) {
	if len(y) != len(yPred) {
		return nil, fmt.Errorf("labels %d vs predictions %d: %w", len(y), len(yPred), ErrLengthMismatch)
	}
	cm := make(evaluation.ConfusionMatrix)
	for i := range y {
		actual := fmt.Sprint(y[i])
		if _, ok := cm[actual]; !ok {
			cm[actual] = make(map[string]int)
		}
		cm[actual][fmt.Sprint(yPred[i])]++
	}
	return cm, nil
}

func from[L cmp.Ordered](f func(cm evaluation.ConfusionMatrix) any) score.Metric[L] {
	return func(y, yPred []L) (any, error) {
		cm, err := Confusion(y, yPred)
		if err != nil {
			return nil, err
		}
		return f(cm), nil
	}
}

// Accuracy is the fraction of correct predictions.
func Accuracy[L cmp.Ordered]() score.Metric[L] {
	return from[L](func(cm evaluation.ConfusionMatrix) any {
		return evaluation.GetAccuracy(cm)
	})
}

func MacroPrecision[L cmp.Ordered]() score.Metric[L] {
	return from[L](func(cm evaluation.ConfusionMatrix) any {
		return evaluation.GetMacroPrecision(cm)
	})
}

func MacroRecall[L cmp.Ordered]() score.Metric[L] {
	return from[L](func(cm evaluation.ConfusionMatrix) any {
		return evaluation.GetMacroRecall(cm)
	})
}

func MicroPrecision[L cmp.Ordered]() score.Metric[L] {
	return from[L](func(cm evaluation.ConfusionMatrix) any {
		return evaluation.GetMicroPrecision(cm)
	})
}

func MicroRecall[L cmp.Ordered]() score.Metric[L] {
	return from[L](func(cm evaluation.ConfusionMatrix) any {
		return evaluation.GetMicroRecall(cm)
	})
}

// Precision is the precision for the given class.
func Precision[L cmp.Ordered](class L) score.Metric[L] {
	return from[L](func(cm evaluation.ConfusionMatrix) any {
		return evaluation.GetPrecision(fmt.Sprint(class), cm)
	})
}

// Recall is the recall for the given class.
func Recall[L cmp.Ordered](class L) score.Metric[L] {
	return from[L](func(cm evaluation.ConfusionMatrix) any {
		return evaluation.GetRecall(fmt.Sprint(class), cm)
	})
}

// F1 is the harmonic mean of precision and recall for the given class.
func F1[L cmp.Ordered](class L) score.Metric[L] {
	return from[L](func(cm evaluation.ConfusionMatrix) any {
		return evaluation.GetF1Score(fmt.Sprint(class), cm)
	})
}

// Summary renders the per class precision, recall and f1 table.
func Summary[L cmp.Ordered]() score.Metric[L] {
	return from[L](func(cm evaluation.ConfusionMatrix) any {
		return evaluation.GetSummary(cm)
	})
}

// Lookup returns the metric registered under the given key.
func Lookup[L cmp.Ordered](key string) (score.Metric[L], error) {
	switch key {
	case AccuracyKey:
		return Accuracy[L](), nil
	case MacroPrecisionKey:
		return MacroPrecision[L](), nil
	case MacroRecallKey:
		return MacroRecall[L](), nil
	case MicroPrecisionKey:
		return MicroPrecision[L](), nil
	case MicroRecallKey:
		return MicroRecall[L](), nil
	case SummaryKey:
		return Summary[L](), nil
	}
	return nil, fmt.Errorf("%s: %w", key, ErrUnknownMetric)
}

// Set resolves all keys into named metrics, keeping their order.
func Set[L cmp.Ordered](keys ...string) ([]score.Named[L], error) {
	metrics := make([]score.Named[L], 0, len(keys))
	for _, key := range keys {
		m, err := Lookup[L](key)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, score.Use(key, m))
	}
	return metrics, nil
}

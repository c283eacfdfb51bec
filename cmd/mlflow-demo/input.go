package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

var errNoSamples = errors.New("no samples in input")

type sample struct {
	Labels      []any `yaml:"labels"`
	Predictions []any `yaml:"predictions"`
}

// input is either a single sample or a list of folds.
type input struct {
	sample `yaml:",inline"`
	Folds  []sample `yaml:"folds"`
}

func readInput(path string) (input, error) {
	var in input
	b, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("could not read input '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(b, &in); err != nil {
		return in, fmt.Errorf("could not decode input '%s': %w", path, err)
	}
	return in, nil
}

// samples returns the folds, or the top level sample if there are none.
func (in input) samples() []sample {
	if len(in.Folds) > 0 {
		return in.Folds
	}
	if len(in.Labels) > 0 || len(in.Predictions) > 0 {
		return []sample{in.sample}
	}
	return nil
}

type fold[L cmp.Ordered] struct {
	labels, predictions []L
}

// numeric reports whether every label and prediction is a number.
func numeric(samples []sample) bool {
	for _, s := range samples {
		for _, values := range [][]any{s.Labels, s.Predictions} {
			for _, v := range values {
				switch v.(type) {
				case int, int64, uint64, float64:
				default:
					return false
				}
			}
		}
	}
	return true
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

func toString(v any) string {
	return fmt.Sprint(v)
}

func convert[L cmp.Ordered](samples []sample, f func(v any) L) []fold[L] {
	folds := make([]fold[L], len(samples))
	for i, s := range samples {
		folds[i].labels = make([]L, len(s.Labels))
		for j, v := range s.Labels {
			folds[i].labels[j] = f(v)
		}
		folds[i].predictions = make([]L, len(s.Predictions))
		for j, v := range s.Predictions {
			folds[i].predictions[j] = f(v)
		}
	}
	return folds
}

// replay is an estimator serving recorded predictions.
// Each row of the feature matrix holds the index of the sample to predict.
type replay[L cmp.Ordered] struct {
	predictions []L
}

func (r replay[L]) Predict(x mat.Matrix) ([]L, error) {
	rows, _ := x.Dims()
	pred := make([]L, rows)
	for i := 0; i < rows; i++ {
		k := int(x.At(i, 0))
		if k < 0 || k >= len(r.predictions) {
			return nil, fmt.Errorf("no prediction for sample %d", k)
		}
		pred[i] = r.predictions[k]
	}
	return pred, nil
}

// indices creates a single column matrix holding 0..n-1.
func indices(n int) mat.Matrix {
	idx := make([]float64, n)
	for i := range idx {
		idx[i] = float64(i)
	}
	return mat.NewDense(n, 1, idx)
}

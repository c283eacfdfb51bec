package score

import (
	"cmp"

	"gonum.org/v1/gonum/mat"
)

// Estimator is anything that can produce a label per row of a feature matrix.
type Estimator[L cmp.Ordered] interface {
	Predict(x mat.Matrix) ([]L, error)
}

// EstimatorFunc adapts a plain function to an Estimator.
type EstimatorFunc[L cmp.Ordered] func(x mat.Matrix) ([]L, error)

// Predict calls f(x).
func (f EstimatorFunc[L]) Predict(x mat.Matrix) ([]L, error) {
	return f(x)
}

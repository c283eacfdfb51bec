package plot

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrEmpty             = errors.New("no labels")
)

// Counts is a confusion matrix over the sorted unique true labels.
// Row i, column j holds the samples of class i predicted as class j.
type Counts[L cmp.Ordered] struct {
	Classes []L
	Matrix  *mat.Dense
}

// ConfusionMatrix counts the predictions per true class.
// Predictions for a label that never occurs in labels are not counted.
func ConfusionMatrix[L cmp.Ordered](labels, pred []L) (Counts[L], error) {
	if len(labels) != len(pred) {
		return Counts[L]{}, fmt.Errorf("labels %d vs predictions %d: %w", len(labels), len(pred), ErrDimensionMismatch)
	}
	if len(labels) == 0 {
		return Counts[L]{}, ErrEmpty
	}

	classes := Unique(labels)
	index := make(map[L]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}

	m := mat.NewDense(len(classes), len(classes), nil)
	for k := range labels {
		j, ok := index[pred[k]]
		if !ok {
			continue
		}
		i := index[labels[k]]
		m.Set(i, j, m.At(i, j)+1)
	}
	return Counts[L]{Classes: classes, Matrix: m}, nil
}

// Unique returns the distinct labels in ascending order.
func Unique[L cmp.Ordered](labels []L) []L {
	u := slices.Clone(labels)
	slices.Sort(u)
	return slices.Compact(u)
}

// Normalize divides every row by its sum.
// A row without samples ends up as NaN.
func Normalize(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	n := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		sum := mat.Sum(m.RowView(i))
		for j := 0; j < c; j++ {
			n.Set(i, j, m.At(i, j)/sum)
		}
	}
	return n
}

// AxisLabels names each class for display.
// Text labels are kept as they are, anything else becomes "class <label>".
func AxisLabels[L cmp.Ordered](classes []L) []string {
	names := make([]string, len(classes))
	for i, c := range classes {
		if reflect.ValueOf(c).Kind() == reflect.String {
			names[i] = fmt.Sprint(c)
		} else {
			names[i] = fmt.Sprintf("class %v", c)
		}
	}
	return names
}

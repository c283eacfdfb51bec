package plot

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfusionMatrixFigure(t *testing.T) {
	fig, err := ConfusionMatrixFigure([]int{0, 0, 1, 1}, []int{0, 1, 1, 1})
	require.NoError(t, err)

	require.Len(t, fig.Data, 1)
	hm := fig.Data[0]
	assert.Equal(t, "heatmap", hm.Type)
	assert.Equal(t, []string{"class 1", "class 0"}, hm.X)
	assert.Equal(t, []string{"class 0", "class 1"}, hm.Y)
	assert.Equal(t, Grid{{0, 1}, {0.5, 0.5}}, hm.Z)
	assert.Equal(t, DefaultColorscale, hm.Colorscale)
	assert.True(t, hm.ReverseScale)

	assert.Equal(t, Layout{Width: 1000, Height: 1000, Title: Title{Text: "Confusion Matrix"}}, fig.Layout)
}

func TestConfusionMatrixFigure_Options(t *testing.T) {

	type test struct {
		opts   []Option
		scale  string
		layout Layout
	}

	tests := map[string]test{
		"default": {
			scale:  "Greens",
			layout: Layout{Width: 1000, Height: 1000, Title: Title{Text: "Confusion Matrix"}},
		},
		"colorscale": {
			opts:   []Option{WithColorscale("Blues")},
			scale:  "Blues",
			layout: Layout{Width: 1000, Height: 1000, Title: Title{Text: "Confusion Matrix"}},
		},
		"empty-values": {
			opts:   []Option{WithColorscale(""), WithTitle(""), WithSize(0, -1)},
			scale:  "Greens",
			layout: Layout{Width: 1000, Height: 1000, Title: Title{Text: "Confusion Matrix"}},
		},
		"layout": {
			opts:   []Option{WithSize(600, 400), WithTitle("fold 1")},
			scale:  "Greens",
			layout: Layout{Width: 600, Height: 400, Title: Title{Text: "fold 1"}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fig, err := ConfusionMatrixFigure([]string{"cat", "dog"}, []string{"cat", "cat"}, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.scale, fig.Data[0].Colorscale)
			assert.Equal(t, tt.layout, fig.Layout)
		})
	}
}

func TestConfusionMatrixFigure_Mismatch(t *testing.T) {
	_, err := ConfusionMatrixFigure([]string{"cat"}, []string{"cat", "dog"})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestFigure_JSON(t *testing.T) {
	fig, err := ConfusionMatrixFigure([]int{0, 1}, []int{0, 5})
	require.NoError(t, err)

	b, err := json.Marshal(fig)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"z":[[null,null],[1,0]]`)
	assert.Contains(t, string(b), `"title":{"text":"Confusion Matrix"}`)
	assert.Contains(t, string(b), `"reversescale":true`)

	var decoded Figure
	require.NoError(t, json.Unmarshal(b, &decoded))
	z := decoded.Data[0].Z
	assert.True(t, math.IsNaN(z[0][0]))
	assert.True(t, math.IsNaN(z[0][1]))
	assert.Equal(t, []float64{1, 0}, z[1])
	assert.Equal(t, fig.Data[0].X, decoded.Data[0].X)
	assert.Equal(t, fig.Layout, decoded.Layout)
}

func TestValidate(t *testing.T) {
	fig, err := ConfusionMatrixFigure([]int{0, 1, 1}, []int{0, 1, 2})
	require.NoError(t, err)

	errs, err := Validate(fig)
	require.NoError(t, err)
	assert.Empty(t, errs)

	fig.Data[0].Colorscale = ""
	fig.Layout.Width = 0
	errs, err = Validate(fig)
	require.NoError(t, err)
	assert.Len(t, errs, 2)
}

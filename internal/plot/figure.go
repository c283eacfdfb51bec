package plot

import (
	"cmp"
	"encoding/json"
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

const (
	DefaultColorscale = "Greens"
	DefaultSize       = 1000
	DefaultTitle      = "Confusion Matrix"

	heatmapType = "heatmap"
)

// Figure is a plotly figure description.
type Figure struct {
	Data   []Heatmap `json:"data"`
	Layout Layout    `json:"layout"`
}

// Heatmap is a plotly heatmap trace.
type Heatmap struct {
	Type         string   `json:"type"`
	X            []string `json:"x"`
	Y            []string `json:"y"`
	Z            Grid     `json:"z"`
	Colorscale   string   `json:"colorscale"`
	ReverseScale bool     `json:"reversescale"`
}

type Layout struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Title  Title `json:"title"`
}

type Title struct {
	Text string `json:"text"`
}

// Grid holds the z values of a heatmap.
// Values that json cannot represent, like NaN, are encoded as null.
type Grid [][]float64

// MarshalJSON encodes NaN and infinite cells as null.
func (g Grid) MarshalJSON() ([]byte, error) {
	rows := make([][]*float64, len(g))
	for i, row := range g {
		rows[i] = make([]*float64, len(row))
		for j := range row {
			v := row[j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			rows[i][j] = &v
		}
	}
	return json.Marshal(rows)
}

// UnmarshalJSON decodes null cells as NaN.
func (g *Grid) UnmarshalJSON(b []byte) error {
	var rows [][]*float64
	if err := json.Unmarshal(b, &rows); err != nil {
		return err
	}
	grid := make(Grid, len(rows))
	for i, row := range rows {
		grid[i] = make([]float64, len(row))
		for j, v := range row {
			if v == nil {
				grid[i][j] = math.NaN()
				continue
			}
			grid[i][j] = *v
		}
	}
	*g = grid
	return nil
}

type config struct {
	colorscale string
	width      int
	height     int
	title      string
}

// Option customises the confusion matrix figure.
type Option func(c *config)

// WithColorscale sets the plotly colorscale of the heatmap.
func WithColorscale(name string) Option {
	return func(c *config) {
		if name != "" {
			c.colorscale = name
		}
	}
}

// WithSize sets the canvas dimensions.
func WithSize(width, height int) Option {
	return func(c *config) {
		if width > 0 {
			c.width = width
		}
		if height > 0 {
			c.height = height
		}
	}
}

func WithTitle(title string) Option {
	return func(c *config) {
		if title != "" {
			c.title = title
		}
	}
}

// ConfusionMatrixFigure creates a heatmap of the row normalised confusion matrix.
// Both the x axis and the rows of z run in reverse,
// so that the diagonal goes from top left to bottom right.
func ConfusionMatrixFigure[L cmp.Ordered](labels, pred []L, opts ...Option) (*Figure, error) {
	cfg := config{
		colorscale: DefaultColorscale,
		width:      DefaultSize,
		height:     DefaultSize,
		title:      DefaultTitle,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	counts, err := ConfusionMatrix(labels, pred)
	if err != nil {
		return nil, err
	}
	cm := Normalize(counts.Matrix)
	names := AxisLabels(counts.Classes)

	log.Debug().
		Int("samples", len(labels)).
		Strs("classes", names).
		Msg("confusion matrix")

	return &Figure{
		Data: []Heatmap{{
			Type:         heatmapType,
			X:            reversed(names),
			Y:            names,
			Z:            reversedRows(cm),
			Colorscale:   cfg.colorscale,
			ReverseScale: true,
		}},
		Layout: Layout{
			Width:  cfg.width,
			Height: cfg.height,
			Title:  Title{Text: cfg.title},
		},
	}, nil
}

func reversed(s []string) []string {
	r := make([]string, len(s))
	for i := range s {
		r[len(s)-1-i] = s[i]
	}
	return r
}

func reversedRows(m *mat.Dense) Grid {
	r, _ := m.Dims()
	g := make(Grid, r)
	for i := 0; i < r; i++ {
		g[r-1-i] = mat.Row(nil, i, m)
	}
	return g
}

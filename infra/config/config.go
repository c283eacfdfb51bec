package config

import (
	"fmt"
	"os"

	"github.com/drakos74/mlflow-demo/internal/plot"
	"github.com/drakos74/mlflow-demo/internal/score/metric"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Chart configures the confusion matrix figure.
type Chart struct {
	Colorscale string `yaml:"colorscale" json:"colorscale"`
	Width      int    `yaml:"width" json:"width"`
	Height     int    `yaml:"height" json:"height"`
	Title      string `yaml:"title" json:"title"`
}

// Options turns the chart config into figure options.
func (c Chart) Options() []plot.Option {
	return []plot.Option{
		plot.WithColorscale(c.Colorscale),
		plot.WithSize(c.Width, c.Height),
		plot.WithTitle(c.Title),
	}
}

// Run is the configuration of an evaluation run.
type Run struct {
	Metrics []string `yaml:"metrics" json:"metrics"`
	Chart   Chart    `yaml:"chart" json:"chart"`
}

// Default returns the run configuration used when no file is given.
func Default() Run {
	return Run{
		Metrics: []string{metric.AccuracyKey, metric.MacroPrecisionKey, metric.MacroRecallKey},
		Chart: Chart{
			Colorscale: plot.DefaultColorscale,
			Width:      plot.DefaultSize,
			Height:     plot.DefaultSize,
			Title:      plot.DefaultTitle,
		},
	}
}

// Load reads the yaml or json file at path into v.
func Load(path string, v interface{}) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not load config '%s': %w", path, err)
	}

	err = yaml.Unmarshal(b, v)
	if err != nil {
		return fmt.Errorf("could not unmarshal config '%s': %w", path, err)
	}

	log.Info().Str("path", path).Msg("loaded config")
	return nil
}

// MustLoad loads the config at path and panics if it cannot.
func MustLoad(path string, v interface{}) {
	if err := Load(path, v); err != nil {
		panic(err.Error())
	}
}

// LoadRun loads a run configuration on top of the defaults.
func LoadRun(path string) (Run, error) {
	run := Default()
	if path == "" {
		return run, nil
	}
	if err := Load(path, &run); err != nil {
		return Run{}, err
	}
	return run, nil
}

package main

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/drakos74/mlflow-demo/infra/config"
	"github.com/drakos74/mlflow-demo/internal/plot"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newConfusionCommand() *cobra.Command {
	var inputPath, cfgPath, out string
	var chart config.Chart

	cmd := &cobra.Command{
		Use:   "confusion",
		Short: "Create the confusion matrix figure for labels and predictions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := readInput(inputPath)
			if err != nil {
				return err
			}
			samples := in.samples()
			if len(samples) != 1 {
				return fmt.Errorf("expected a single set of labels, got %d: %w", len(samples), errNoSamples)
			}

			run, err := config.LoadRun(cfgPath)
			if err != nil {
				return err
			}
			opts := append(run.Chart.Options(), chart.Options()...)

			var fig *plot.Figure
			if numeric(samples) {
				fig, err = confusionFigure(convert(samples, toFloat)[0], opts)
			} else {
				fig, err = confusionFigure(convert(samples, toString)[0], opts)
			}
			if err != nil {
				return err
			}

			if out == "" {
				return writeFigure(cmd.OutOrStdout(), fig)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("could not create '%s': %w", out, err)
			}
			defer f.Close()
			return writeFigure(f, fig)
		},
	}
	cmd.Flags().StringVar(&inputPath, "input", "", "yaml or json file with labels and predictions")
	cmd.Flags().StringVar(&cfgPath, "config", "", "run configuration file")
	cmd.Flags().StringVar(&out, "out", "", "output file, defaults to stdout")
	cmd.Flags().StringVar(&chart.Colorscale, "colorscale", "", "plotly colorscale")
	cmd.Flags().StringVar(&chart.Title, "title", "", "figure title")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// confusionFigure creates the figure and checks its shape.
func confusionFigure[L cmp.Ordered](f fold[L], opts []plot.Option) (*plot.Figure, error) {
	fig, err := plot.ConfusionMatrixFigure(f.labels, f.predictions, opts...)
	if err != nil {
		return nil, err
	}
	violations, err := plot.Validate(fig)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		log.Error().Strs("violations", violations).Msg("invalid figure")
		return nil, fmt.Errorf("invalid figure: %s", strings.Join(violations, "; "))
	}
	return fig, nil
}

func writeFigure(w io.Writer, fig *plot.Figure) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fig); err != nil {
		return fmt.Errorf("could not write figure: %w", err)
	}
	return nil
}

package main

import (
	"cmp"
	"fmt"
	"io"
	"math"

	"github.com/drakos74/mlflow-demo/infra/config"
	"github.com/drakos74/mlflow-demo/internal/artifact"
	"github.com/drakos74/mlflow-demo/internal/metrics"
	"github.com/drakos74/mlflow-demo/internal/score"
	"github.com/drakos74/mlflow-demo/internal/score/metric"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	reportArtifact    = "report.json"
	confusionArtifact = "confusion_matrix.json"
	overall           = "overall"
)

// runReport is the outcome of scoring all folds.
type runReport struct {
	Scorer  string         `json:"scorer"`
	Samples int            `json:"samples"`
	Folds   []score.Report `json:"folds"`
	Overall score.Report   `json:"overall"`
}

type scoreOptions struct {
	run         config.Run
	artifacts   string
	metricsFile string
}

func newScoreCommand() *cobra.Command {
	var inputPath, cfgPath string
	var opts scoreOptions

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score the predictions of every fold and of all the folds together",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := readInput(inputPath)
			if err != nil {
				return err
			}
			samples := in.samples()
			if len(samples) == 0 {
				return errNoSamples
			}

			opts.run, err = config.LoadRun(cfgPath)
			if err != nil {
				return err
			}

			if numeric(samples) {
				_, err = scoreFolds(cmd.OutOrStdout(), convert(samples, toFloat), opts)
			} else {
				_, err = scoreFolds(cmd.OutOrStdout(), convert(samples, toString), opts)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&inputPath, "input", "", "yaml or json file with the folds")
	cmd.Flags().StringVar(&cfgPath, "config", "", "run configuration file")
	cmd.Flags().StringVar(&opts.artifacts, "artifacts", "", "directory for the report and the confusion matrix")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write the scores as a prometheus textfile")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// scoreFolds scores every fold with the same scorer,
// so that its history holds all folds when building the overall report.
func scoreFolds[L cmp.Ordered](w io.Writer, folds []fold[L], opts scoreOptions) (runReport, error) {
	metricSet, err := metric.Set[L](opts.run.Metrics...)
	if err != nil {
		return runReport{}, err
	}
	scorer, err := score.New(metricSet...)
	if err != nil {
		return runReport{}, err
	}

	reg := prometheus.NewRegistry()
	publisher, err := metrics.NewPublisher(reg)
	if err != nil {
		return runReport{}, err
	}

	report := runReport{
		Scorer: scorer.ID(),
		Folds:  make([]score.Report, 0, len(folds)),
	}
	for i, f := range folds {
		if len(f.labels) == 0 {
			return runReport{}, fmt.Errorf("fold %d: %w", i, errNoSamples)
		}
		if len(f.labels) != len(f.predictions) {
			return runReport{}, fmt.Errorf("fold %d: labels %d vs predictions %d: %w",
				i, len(f.labels), len(f.predictions), score.ErrLengthMismatch)
		}
		r, err := scorer.Score(replay[L]{predictions: f.predictions}, indices(len(f.labels)), f.labels)
		if err != nil {
			return runReport{}, fmt.Errorf("fold %d: %w", i, err)
		}
		publisher.Publish(fmt.Sprintf("fold_%d", i), len(f.labels), r)
		report.Folds = append(report.Folds, r)
	}

	y, yPred := scorer.History()
	report.Samples = len(y)
	report.Overall, err = scorer.Copy().Score(replay[L]{predictions: yPred}, indices(len(y)), y)
	if err != nil {
		return runReport{}, err
	}
	publisher.Publish(overall, len(y), report.Overall)

	log.Info().
		Str("scorer", scorer.ID()).
		Int("folds", len(folds)).
		Int("samples", report.Samples).
		Msg("scored folds")

	render(w, scorer.Names(), report)

	if opts.artifacts != "" {
		fig, err := confusionFigure(fold[L]{labels: y, predictions: yPred}, opts.run.Chart.Options())
		if err != nil {
			return runReport{}, err
		}
		if err := artifact.Save(opts.artifacts, confusionArtifact, fig); err != nil {
			return runReport{}, err
		}
		if err := artifact.Save(opts.artifacts, reportArtifact, report.encodable()); err != nil {
			return runReport{}, err
		}
	}

	if opts.metricsFile != "" {
		if err := metrics.WriteTextfile(opts.metricsFile, reg); err != nil {
			return runReport{}, err
		}
	}
	return report, nil
}

func render(w io.Writer, names []string, report runReport) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(append([]string{"fold"}, names...))
	for i, r := range report.Folds {
		table.Append(row(fmt.Sprintf("%d", i), names, r))
	}
	table.Append(row(overall, names, report.Overall))
	table.Render()
}

func row(first string, names []string, r score.Report) []string {
	cells := []string{first}
	for _, name := range names {
		if f, ok := metrics.Float(r[name]); ok {
			cells = append(cells, fmt.Sprintf("%.4f", f))
			continue
		}
		cells = append(cells, fmt.Sprint(r[name]))
	}
	return cells
}

// encodable replaces the scores json cannot hold with null.
func (r runReport) encodable() runReport {
	clean := func(report score.Report) score.Report {
		c := make(score.Report, len(report))
		for k, v := range report {
			if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
				c[k] = nil
				continue
			}
			c[k] = v
		}
		return c
	}
	e := r
	e.Folds = make([]score.Report, len(r.Folds))
	for i, f := range r.Folds {
		e.Folds[i] = clean(f)
	}
	e.Overall = clean(r.Overall)
	return e
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"speaker-linker/pkg/pdf"
	"speaker-linker/pkg/report"
	"speaker-linker/pkg/score"
	"speaker-linker/pkg/workers"
)

func predictCmd(a *app) *cobra.Command {
	var pdfPath string

	cmd := &cobra.Command{
		Use:   "predict <datafile>",
		Short: "Resolve speakers in one dataset file and score against its labels",
		Long: `Load <RAW_DATA_DIR>/<datafile>.txt (or .pdf) and <PROCESSED_DATA_DIR>/<datafile>.json,
link speaker labels to names, print ground truth, prediction and the rewritten
transcript, and report accuracy.

Example:
  speakerlink predict interview01
  speakerlink predict interview01 --pdf interview01.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := a.predict(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := report.Console(cmd.OutOrStdout(), run); err != nil {
				return err
			}
			if pdfPath != "" {
				if err := writePDF(pdfPath, run); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", pdfPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "also write the report as a PDF to this path")
	return cmd
}

// predict runs the full pipeline for one dataset entry. A missing transcript
// or label file is an error; an empty label file only disables scoring.
func (a *app) predict(ctx context.Context, name string) (report.Run, error) {
	data, err := a.loader().Load(name)
	if err != nil {
		return report.Run{}, err
	}

	res, err := a.resolver.Resolve(ctx, data.Document)
	if err != nil {
		return report.Run{}, fmt.Errorf("resolve %s: %w", name, err)
	}

	sc, scoreErr := score.Compare(data.Labels, res.Mapping)
	if errors.Is(scoreErr, score.ErrNoGroundTruth) {
		zap.S().Warnf("Dataset %q has no ground-truth labels, skipping accuracy", name)
	}

	return report.Run{
		Name:      name,
		Truth:     data.Labels,
		Predicted: res.Mapping,
		Text:      res.Text,
		Score:     sc,
		ScoreErr:  scoreErr,
	}, nil
}

func writePDF(path string, run report.Run) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := pdf.MarkdownToPDF(report.Markdown(run), f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type batchResult struct {
	run report.Run
	err error
}

func batchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <datafile>...",
		Short: "Resolve and score several dataset files concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := workers.Run(cmd.Context(), args, a.cfg.MaxConcurrent,
				func(ctx context.Context, _ int, name string) (batchResult, error) {
					run, err := a.predict(ctx, name)
					return batchResult{run: run, err: err}, nil
				})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATASET\tCORRECT\tINCORRECT\tMISSING\tACCURACY")
			var total score.Report
			failed := 0
			for i, r := range results {
				switch {
				case r.err != nil:
					failed++
					fmt.Fprintf(w, "%s\terror: %v\t\t\t\n", args[i], r.err)
				case r.run.ScoreErr != nil:
					fmt.Fprintf(w, "%s\t-\t-\t-\t%s\n", args[i], r.run.Accuracy())
				default:
					s := r.run.Score
					total.Correct += s.Correct
					total.Incorrect += s.Incorrect
					total.Missing += s.Missing
					fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.4f\n", args[i], s.Correct, s.Incorrect, s.Missing, s.Accuracy)
				}
			}
			if total.Total() > 0 {
				total.Accuracy = float64(total.Correct) / float64(total.Total())
				fmt.Fprintf(w, "TOTAL\t%d\t%d\t%d\t%.4f\n", total.Correct, total.Incorrect, total.Missing, total.Accuracy)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d datasets failed", failed, len(args))
			}
			return nil
		},
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/newthinker/tradejournal/internal/analytics"
	"github.com/newthinker/tradejournal/internal/core"
	"github.com/newthinker/tradejournal/internal/review"
	"github.com/newthinker/tradejournal/internal/storage/trade"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	reportFrom    string
	reportTo      string
	reportFormat  string
	reportArchive string
	reportReview  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the analytics report for a date window",
	Long: `Build the full analytics report over the stored trades. Dates accept RFC3339
or YYYY-MM-DD; a bare --to date includes the whole day.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "window start (inclusive)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "window end (inclusive)")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "table", "output format: table, json or yaml")
	reportCmd.Flags().StringVar(&reportArchive, "archive", "", "also archive the report under this snapshot name")
	reportCmd.Flags().BoolVar(&reportReview, "review", false, "ask the configured LLM coach for a review")

	rootCmd.AddCommand(reportCmd)
}

// reportOutput is what the json and yaml formats print.
type reportOutput struct {
	Report analytics.Report `json:"report" yaml:"report"`
	Review *review.Review   `json:"review,omitempty" yaml:"review,omitempty"`
}

func runReport(cmd *cobra.Command, args []string) error {
	render, err := renderer(reportFormat)
	if err != nil {
		return err
	}
	from, to, err := parseWindow(reportFrom, reportTo)
	if err != nil {
		return err
	}

	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer teardown(a)

	ctx := cmd.Context()
	report, err := a.Journal().Report(ctx, trade.ListFilter{From: from, To: to})
	if err != nil {
		return err
	}
	out := reportOutput{Report: report}

	if reportArchive != "" {
		if a.Archiver() == nil {
			return fmt.Errorf("--archive needs an archive backend in the config")
		}
		path, err := a.Archiver().Save(ctx, reportArchive, from, to, report)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "archived to %s\n", path)
	}

	if reportReview {
		if a.Coach() == nil {
			return fmt.Errorf("--review needs review.enabled and an llm provider in the config")
		}
		if out.Review, err = a.Coach().Review(ctx, report); err != nil {
			return err
		}
	}

	return render(cmd.OutOrStdout(), out)
}

// parseWindow parses optional from/to bounds.
func parseWindow(fromStr, toStr string) (from, to time.Time, err error) {
	if fromStr != "" {
		if from, err = core.ParseDate(fromStr); err != nil {
			return from, to, fmt.Errorf("--from: %w", err)
		}
	}
	if toStr = strings.TrimSpace(toStr); toStr != "" {
		if to, err = core.ParseDate(toStr); err != nil {
			return from, to, fmt.Errorf("--to: %w", err)
		}
		if len(toStr) == len("2006-01-02") {
			to = core.EndOfDay(to)
		}
	}
	return from, to, nil
}

func renderer(format string) (func(io.Writer, reportOutput) error, error) {
	switch strings.ToLower(format) {
	case "table", "":
		return writeTable, nil
	case "json":
		return func(w io.Writer, out reportOutput) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}, nil
	case "yaml":
		return func(w io.Writer, out reportOutput) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(out)
		}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: want table, json or yaml", format)
	}
}

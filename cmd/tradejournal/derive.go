package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/newthinker/tradejournal/internal/core"
	"github.com/newthinker/tradejournal/internal/derive"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Preview the derived metrics of a trade without storing it",
	Example: `  tradejournal derive --direction long --entry 100 --stop 95 --tp 110 --exit 107.5 \
    --risk 1 --balance 5000`,
	Args: cobra.NoArgs,
	RunE: runDerive,
}

// deriveFloats maps flag names to derive.Input fields.
var deriveFloats = []struct {
	name  string
	usage string
	field func(*derive.Input) **float64
}{
	{"entry", "entry price", func(in *derive.Input) **float64 { return &in.EntryPrice }},
	{"stop", "stop-loss price", func(in *derive.Input) **float64 { return &in.StopLoss }},
	{"tp", "take-profit price", func(in *derive.Input) **float64 { return &in.TakeProfit }},
	{"exit", "exit price", func(in *derive.Input) **float64 { return &in.ExitPrice }},
	{"risk", "risk percent of balance", func(in *derive.Input) **float64 { return &in.RiskPercent }},
	{"balance", "account balance", func(in *derive.Input) **float64 { return &in.AccountBalance }},
	{"fee", "total fees", func(in *derive.Input) **float64 { return &in.Fee }},
	{"size", "manual position size", func(in *derive.Input) **float64 { return &in.PositionSize }},
}

func init() {
	registerDeriveFlags(deriveCmd.Flags())
	_ = deriveCmd.MarkFlagRequired("direction")

	rootCmd.AddCommand(deriveCmd)
}

func runDerive(cmd *cobra.Command, args []string) error {
	in, err := deriveInput(cmd.Flags())
	if err != nil {
		return err
	}
	writeDerivation(cmd.OutOrStdout(), derive.Derive(in))
	return nil
}

func registerDeriveFlags(fs *pflag.FlagSet) {
	fs.String("direction", "", "long or short")
	fs.String("result", "", "result hint used when it cannot be derived")
	for _, f := range deriveFloats {
		fs.Float64(f.name, 0, f.usage)
	}
}

// deriveInput reads only the flags that were set; the rest stay nil.
func deriveInput(flags *pflag.FlagSet) (derive.Input, error) {
	var in derive.Input

	dir, _ := flags.GetString("direction")
	if in.Direction = core.ParseDirection(dir); in.Direction == "" {
		return in, fmt.Errorf("--direction must be long or short, got %q", dir)
	}

	if hint, _ := flags.GetString("result"); hint != "" {
		if in.Result = core.ParseResult(hint); in.Result == "" {
			return in, fmt.Errorf("unknown --result %q", hint)
		}
	}

	for _, f := range deriveFloats {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetFloat64(f.name)
		if err != nil {
			return in, err
		}
		*f.field(&in) = core.Float(v)
	}
	return in, nil
}

func writeDerivation(w io.Writer, out derive.Output) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "RR ratio\t%s\n", orDash(out.RRRatio))
	fmt.Fprintf(tw, "Position size\t%s\n", floatOrDash(out.PositionSize))
	fmt.Fprintf(tw, "Actual RR\t%s\n", floatOrDash(out.ActualRR))
	fmt.Fprintf(tw, "Profit/loss\t%s\n", floatOrDash(out.ProfitLoss))

	result := "-"
	if out.Result != nil {
		result = string(*out.Result)
	}
	fmt.Fprintf(tw, "Result\t%s\n", result)

	if out.ActualRR != nil {
		fmt.Fprintf(tw, "Preview result\t%s\n", derive.PreviewResult(*out.ActualRR))
	}
	if !out.Computed() {
		fmt.Fprintln(tw, "\nnothing derived: direction, entry and a stop distinct from entry are required")
	}
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func floatOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

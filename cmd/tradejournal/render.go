package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/newthinker/tradejournal/internal/analytics"
	"github.com/newthinker/tradejournal/internal/review"
)

// tableBreakdowns are the categories the table format prints.
var tableBreakdowns = []analytics.Category{
	analytics.CategoryWeekday,
	analytics.CategorySymbol,
	analytics.CategorySession,
	analytics.CategorySetup,
}

func writeTable(w io.Writer, out reportOutput) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	r := out.Report
	s := r.Summary

	fmt.Fprintln(tw, "=== Summary ===")
	fmt.Fprintf(tw, "Trades\t%d\t(W %d / L %d / BE %d)\n", s.TotalTrades, s.Wins, s.Losses, s.Breakevens)
	fmt.Fprintf(tw, "Win rate\t%.2f%%\n", s.WinRate)
	fmt.Fprintf(tw, "Total P&L\t%.2f\n", s.TotalPL)
	fmt.Fprintf(tw, "Profit factor\t%.2f\n", s.ProfitFactor)
	fmt.Fprintf(tw, "Expectancy\t%.2f\n", s.Expectancy)
	fmt.Fprintf(tw, "Avg RR\t%.2f\n", s.AvgRR)
	fmt.Fprintf(tw, "Max drawdown\t%.2f\n", s.MaxDrawdown)
	fmt.Fprintf(tw, "Streaks\t%d win / %d loss\n", s.MaxWinStreak, s.MaxLossStreak)

	fmt.Fprintln(tw, "\n=== Radar ===")
	for _, m := range r.Radar {
		fmt.Fprintf(tw, "%s\t%.2f\t/ %.0f\n", m.Metric, m.Value, m.FullMark)
	}

	for _, c := range tableBreakdowns {
		items := r.Breakdowns.Get(c)
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(tw, "\n=== By %s ===\n", c)
		fmt.Fprintln(tw, "Name\tTrades\tW\tL\tBE\tWin%\tP&L\tAvg RR")
		for _, it := range items {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.2f\t%.2f\t%.2f\n",
				it.Name, it.Trades, it.Wins, it.Losses, it.Breakevens, it.WinRate, it.TotalPL, it.AvgRR)
		}
	}

	if len(r.Equity) > 0 {
		fmt.Fprintln(tw, "\n=== Equity ===")
		fmt.Fprintln(tw, "Date\tTrades\tDaily\tEquity")
		for _, p := range r.Equity {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\n", p.Key, p.Trades, p.Daily, p.Equity)
		}
	}

	if out.Review != nil {
		writeReview(tw, out.Review)
	}
	return tw.Flush()
}

func writeReview(w io.Writer, rv *review.Review) {
	fmt.Fprintln(w, "\n=== Review ===")
	if rv.Summary != "" {
		fmt.Fprintln(w, rv.Summary)
	}
	for _, group := range []struct {
		title string
		items []string
	}{
		{"Strengths", rv.Strengths},
		{"Weaknesses", rv.Weaknesses},
		{"Suggestions", rv.Suggestions},
	} {
		if len(group.items) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", group.title)
		for _, item := range group.items {
			fmt.Fprintf(w, "  - %s\n", item)
		}
	}
}

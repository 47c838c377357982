package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/newthinker/tradejournal/internal/analytics"
	"github.com/newthinker/tradejournal/internal/core"
	"github.com/newthinker/tradejournal/internal/derive"
	"github.com/newthinker/tradejournal/internal/review"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parseDeriveFlags(t *testing.T, args ...string) (derive.Input, error) {
	t.Helper()
	fs := pflag.NewFlagSet("derive", pflag.ContinueOnError)
	registerDeriveFlags(fs)
	require.NoError(t, fs.Parse(args))
	return deriveInput(fs)
}

func TestDeriveInput_OnlySetFlags(t *testing.T) {
	in, err := parseDeriveFlags(t, "--direction", "SELL", "--entry", "1.1", "--stop", "0", "--result", "partial")
	require.NoError(t, err)

	assert.Equal(t, core.DirectionShort, in.Direction)
	assert.Equal(t, core.ResultPartial, in.Result)
	require.NotNil(t, in.EntryPrice)
	assert.Equal(t, 1.1, *in.EntryPrice)
	require.NotNil(t, in.StopLoss, "an explicit zero is still set")
	assert.Equal(t, 0.0, *in.StopLoss)
	assert.Nil(t, in.TakeProfit)
	assert.Nil(t, in.PositionSize)
}

func TestDeriveInput_Rejects(t *testing.T) {
	_, err := parseDeriveFlags(t, "--direction", "up")
	assert.Error(t, err)

	_, err = parseDeriveFlags(t, "--direction", "long", "--result", "maybe")
	assert.Error(t, err)
}

func TestWriteDerivation(t *testing.T) {
	in, err := parseDeriveFlags(t,
		"--direction", "long", "--entry", "100", "--stop", "95", "--tp", "110",
		"--exit", "107.5", "--risk", "1", "--balance", "5000")
	require.NoError(t, err)

	var buf bytes.Buffer
	writeDerivation(&buf, derive.Derive(in))
	out := buf.String()

	assert.Regexp(t, `RR ratio\s+1:2`, out)
	assert.Regexp(t, `Position size\s+10\n`, out)
	assert.Regexp(t, `Actual RR\s+1.5\n`, out)
	assert.Regexp(t, `Profit/loss\s+75\n`, out)
	assert.Regexp(t, `Result\s+Win`, out)
	assert.Regexp(t, `Preview result\s+Win`, out)
}

func TestWriteDerivation_Degenerate(t *testing.T) {
	in, err := parseDeriveFlags(t, "--direction", "long", "--entry", "100", "--stop", "100")
	require.NoError(t, err)

	var buf bytes.Buffer
	writeDerivation(&buf, derive.Derive(in))

	assert.Contains(t, buf.String(), "nothing derived")
	assert.NotContains(t, buf.String(), "Preview result")
}

func TestParseWindow(t *testing.T) {
	from, to, err := parseWindow("2026-02-01", "2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, core.EndOfDay(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)), to)

	_, to, err = parseWindow("", "2026-02-28T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC), to, "timestamps are kept as given")

	_, _, err = parseWindow("last week", "")
	assert.Error(t, err)
}

func sampleOutput() reportOutput {
	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return reportOutput{
		Report: analytics.BuildReport([]core.Trade{
			{Date: day, Pair: "EURUSD", Result: core.ResultWin, ProfitLoss: core.Float(120), ActualRR: core.Float(2)},
			{Date: day, Pair: "GBPUSD", Result: core.ResultLoss, ProfitLoss: core.Float(-60), ActualRR: core.Float(-1)},
		}),
		Review: &review.Review{Summary: "Solid week.", Suggestions: []string{"size down on Mondays"}},
	}
}

func TestRenderer_Formats(t *testing.T) {
	out := sampleOutput()

	render, err := renderer("json")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, render(&buf, out))
	var decoded reportOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 60.0, decoded.Report.Summary.TotalPL)
	assert.Equal(t, "Solid week.", decoded.Review.Summary)

	render, err = renderer("YAML")
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, render(&buf, out))
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Contains(t, buf.String(), "totalPL: 60")

	render, err = renderer("table")
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, render(&buf, out))
	table := buf.String()
	assert.Contains(t, table, "=== Summary ===")
	assert.Contains(t, table, "=== By symbol ===")
	assert.Contains(t, table, "EURUSD")
	assert.Contains(t, table, "2026-03-02")
	assert.Contains(t, table, "  - size down on Mondays")

	_, err = renderer("xml")
	assert.Error(t, err)
}

func TestWriteTable_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, reportOutput{Report: analytics.BuildReport(nil)}))

	out := buf.String()
	assert.Contains(t, out, "Trades")
	assert.False(t, strings.Contains(out, "=== Equity ==="), "no equity section without trades")
	assert.False(t, strings.Contains(out, "=== Review ==="))
}

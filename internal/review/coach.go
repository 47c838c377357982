// Package review asks an LLM for coaching notes on an analytics report.
package review

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/newthinker/tradejournal/internal/analytics"
	"github.com/newthinker/tradejournal/internal/core"
	"github.com/newthinker/tradejournal/internal/llm"
	"github.com/newthinker/tradejournal/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Review is the coach's structured feedback.
type Review struct {
	Strengths   []string `json:"strengths" yaml:"strengths"`
	Weaknesses  []string `json:"weaknesses" yaml:"weaknesses"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
	Summary     string   `json:"summary" yaml:"summary"`
}

// Options tune a Coach.
type Options struct {
	MaxTokens         int     // <= 0 uses the provider default
	RequestsPerMinute float64 // <= 0 disables throttling
}

// Coach turns reports into LLM reviews.
type Coach struct {
	provider  llm.Provider
	logger    *zap.Logger
	maxTokens int
	limiter   *rate.Limiter
}

// promptCategories are the breakdowns whose extremes go into the prompt.
var promptCategories = []analytics.Category{
	analytics.CategorySymbol,
	analytics.CategorySession,
	analytics.CategorySetup,
	analytics.CategoryWeekday,
	analytics.CategoryEmotion,
}

// NewCoach creates a coach.
func NewCoach(provider llm.Provider, logger *zap.Logger, opts Options) *Coach {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Coach{provider: provider, logger: logger, maxTokens: opts.MaxTokens}
	if opts.RequestsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerMinute/60), 1)
	}
	return c
}

// Review sends report to the LLM and parses its feedback. When the coach is
// throttled Review blocks until a request slot frees up or ctx is done.
func (c *Coach) Review(ctx context.Context, report analytics.Report) (_ *Review, err error) {
	ctx, span := tracing.Start(ctx, "review.Review",
		attribute.String("provider", c.provider.Name()),
		attribute.Int("trades", report.Summary.TotalTrades))
	defer func() { tracing.End(span, err) }()

	if report.Empty() {
		return nil, core.ErrNoTrades
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, core.WrapError(core.ErrLLMFailed, err)
		}
	}

	resp, err := c.provider.Chat(ctx, llm.ChatRequest{
		SystemPrompt: coachSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPrompt(report)},
		},
		MaxTokens:   c.maxTokens,
		Temperature: 0.3,
		JSONMode:    true,
	})
	if err != nil {
		c.logger.Warn("review request failed",
			zap.String("provider", c.provider.Name()),
			zap.Error(err))
		return nil, core.WrapError(core.ErrLLMFailed, err)
	}

	c.logger.Debug("review received",
		zap.String("provider", c.provider.Name()),
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens))

	var review Review
	if err := json.Unmarshal([]byte(llm.ExtractJSON(resp.Content)), &review); err != nil {
		c.logger.Debug("review is not JSON, using raw content", zap.Error(err))
		return &Review{Summary: strings.TrimSpace(resp.Content)}, nil
	}
	return &review, nil
}

func buildPrompt(report analytics.Report) string {
	var sb strings.Builder
	s := report.Summary

	sb.WriteString("## Summary\n")
	fmt.Fprintf(&sb, "- Trades: %d (wins %d, losses %d, breakevens %d)\n",
		s.TotalTrades, s.Wins, s.Losses, s.Breakevens)
	fmt.Fprintf(&sb, "- Win rate: %.2f%%\n", s.WinRate)
	fmt.Fprintf(&sb, "- Total P&L: %.2f, expectancy %.2f per trade\n", s.TotalPL, s.Expectancy)
	fmt.Fprintf(&sb, "- Profit factor: %.2f, average RR: %.2f\n", s.ProfitFactor, s.AvgRR)
	fmt.Fprintf(&sb, "- Max drawdown: %.2f, longest win/loss streak: %d/%d\n\n",
		s.MaxDrawdown, s.MaxWinStreak, s.MaxLossStreak)

	sb.WriteString("## Radar (0-100)\n")
	for _, m := range report.Radar {
		fmt.Fprintf(&sb, "- %s: %.2f\n", m.Metric, m.Value)
	}
	sb.WriteString("\n")

	sb.WriteString("## Best and worst buckets\n")
	for _, cat := range promptCategories {
		best, worst, ok := extremes(report.Breakdowns.Get(cat))
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "- %s: best %s (%.2f over %d trades), worst %s (%.2f over %d trades)\n",
			cat, best.Name, best.TotalPL, best.Trades, worst.Name, worst.TotalPL, worst.Trades)
	}

	sb.WriteString("\nReview this trading journal. Respond with JSON containing: strengths, weaknesses, suggestions, summary.\n")
	return sb.String()
}

// extremes returns the highest and lowest P&L buckets that hold trades.
func extremes(items []analytics.BreakdownItem) (best, worst analytics.BreakdownItem, ok bool) {
	for _, it := range items {
		if it.Trades == 0 {
			continue
		}
		if !ok {
			best, worst, ok = it, it, true
			continue
		}
		if it.TotalPL > best.TotalPL {
			best = it
		}
		if it.TotalPL < worst.TotalPL {
			worst = it
		}
	}
	return best, worst, ok
}

const coachSystemPrompt = `You are a trading performance coach reviewing a trader's journal statistics.

Focus on:
1. Edge - where the trader makes and loses money
2. Risk management - drawdowns, streaks and reward-to-risk
3. Psychology - discipline, confidence and plan adherence scores

Always respond with valid JSON:
{
  "strengths": ["..."],
  "weaknesses": ["..."],
  "suggestions": ["concrete, actionable change"],
  "summary": "two or three sentences"
}

Refer to the numbers you were given. Do not invent trades.`

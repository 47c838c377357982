package analytics

import (
	"strings"

	"github.com/newthinker/tradejournal/internal/core"
)

type outcome int

const (
	outcomeNeutral outcome = iota
	outcomeWin
	outcomeLoss
)

// classify maps a stored result to its win-rate contribution. Partial counts
// as a win; Breakeven, Pending and anything unrecognized count as neither.
func classify(r core.Result) outcome {
	switch core.Result(strings.TrimSpace(string(r))) {
	case core.ResultWin, core.ResultPartial:
		return outcomeWin
	case core.ResultLoss:
		return outcomeLoss
	default:
		return outcomeNeutral
	}
}

func winRate(wins, losses int) float64 {
	resolved := wins + losses
	if resolved == 0 {
		return 0
	}
	return float64(wins) / float64(resolved) * 100
}

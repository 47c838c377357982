package derive

import "github.com/newthinker/tradejournal/internal/core"

// Live-preview thresholds. These only drive the interactive preview and are
// never used for persisted results, which use the zero-threshold rule in Derive.
const (
	PreviewWinThreshold  = 0.1
	PreviewLossThreshold = -0.9
)

// PreviewResult classifies a realized RR for display while a trade is being entered.
func PreviewResult(actualRR float64) core.Result {
	switch {
	case !core.IsFinite(actualRR):
		return core.ResultPending
	case actualRR >= PreviewWinThreshold:
		return core.ResultWin
	case actualRR <= PreviewLossThreshold:
		return core.ResultLoss
	default:
		return core.ResultBreakeven
	}
}

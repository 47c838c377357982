// Package derive computes the stored, derived metrics of a journal trade:
// planned and realized risk/reward, position size, P&L and result.
package derive

import (
	"strconv"
	"strings"

	"github.com/newthinker/tradejournal/internal/core"
)

// NormalizeRRRatio canonicalizes a risk:reward expression to "1:x".
// Malformed input is returned trimmed but otherwise unchanged.
func NormalizeRRRatio(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 2 {
			return s
		}
		left, okL := parseSide(parts[0])
		right, okR := parseSide(parts[1])
		if !okL || !okR || left == 0 || right <= 0 {
			return s
		}
		multiple := right / left
		if !core.IsFinite(multiple) {
			return s
		}
		return "1:" + core.Trim2(multiple)
	}

	multiple, err := strconv.ParseFloat(s, 64)
	if err != nil || !core.IsFinite(multiple) || multiple <= 0 {
		return s
	}
	return "1:" + core.Trim2(multiple)
}

// NormalizeRRMultiple formats a reward multiple as "1:x".
func NormalizeRRMultiple(x float64) string {
	if !core.IsFinite(x) || x <= 0 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return "1:" + core.Trim2(x)
}

// NormalizeRRValue accepts loosely typed input (decoded JSON, CSV cells).
func NormalizeRRValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return NormalizeRRRatio(x)
	case *string:
		if x == nil {
			return ""
		}
		return NormalizeRRRatio(*x)
	case float64:
		return NormalizeRRMultiple(x)
	case *float64:
		if x == nil {
			return ""
		}
		return NormalizeRRMultiple(*x)
	case float32:
		return NormalizeRRMultiple(float64(x))
	case int:
		return NormalizeRRMultiple(float64(x))
	case int64:
		return NormalizeRRMultiple(float64(x))
	default:
		return ""
	}
}

// parseSide parses one side of "a:b". An empty side reads as zero.
func parseSide(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !core.IsFinite(v) {
		return 0, false
	}
	return v, true
}

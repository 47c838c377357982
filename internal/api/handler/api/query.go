package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/newthinker/tradejournal/internal/core"
	"github.com/newthinker/tradejournal/internal/storage/trade"
)

const defaultLimit = 50

// parseFilter reads from, to, pair, direction, result, limit and offset.
// A bare YYYY-MM-DD "to" covers the whole day.
func parseFilter(q url.Values) (trade.ListFilter, error) {
	var filter trade.ListFilter

	if from := q.Get("from"); from != "" {
		t, err := core.ParseDate(from)
		if err != nil {
			return filter, core.WrapError(core.ErrInvalidQuery, err)
		}
		filter.From = t
	}

	if to := strings.TrimSpace(q.Get("to")); to != "" {
		t, err := core.ParseDate(to)
		if err != nil {
			return filter, core.WrapError(core.ErrInvalidQuery, err)
		}
		if len(to) == len("2006-01-02") {
			t = core.EndOfDay(t)
		}
		filter.To = t
	}

	filter.Pair = core.NormalizePair(q.Get("pair"))

	if d := q.Get("direction"); d != "" {
		filter.Direction = core.ParseDirection(d)
		if filter.Direction == "" {
			return filter, core.WrapError(core.ErrInvalidQuery, fmt.Errorf("unknown direction %q", d))
		}
	}

	if r := q.Get("result"); r != "" {
		filter.Result = core.ParseResult(r)
		if filter.Result == "" {
			return filter, core.WrapError(core.ErrInvalidQuery, fmt.Errorf("unknown result %q", r))
		}
	}

	var err error
	if filter.Limit, err = nonNegative(q, "limit"); err != nil {
		return filter, err
	}
	if filter.Offset, err = nonNegative(q, "offset"); err != nil {
		return filter, err
	}
	return filter, nil
}

func nonNegative(q url.Values, key string) (int, error) {
	s := q.Get(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, core.WrapError(core.ErrInvalidQuery, fmt.Errorf("%s must be a non-negative integer", key))
	}
	return n, nil
}

package api

import (
	"context"
	"net/http"

	"github.com/newthinker/tradejournal/internal/analytics"
	"github.com/newthinker/tradejournal/internal/api/response"
	"github.com/newthinker/tradejournal/internal/storage/trade"
)

// AnalyticsService is the read side of journal.Service.
type AnalyticsService interface {
	Report(ctx context.Context, filter trade.ListFilter) (analytics.Report, error)
	Breakdown(ctx context.Context, filter trade.ListFilter, category analytics.Category) ([]analytics.BreakdownItem, error)
	Equity(ctx context.Context, filter trade.ListFilter) ([]analytics.EquityPoint, error)
	Radar(ctx context.Context, filter trade.ListFilter) ([]analytics.RadarMetric, error)
}

// AnalyticsHandler serves the analytics views over a date window.
type AnalyticsHandler struct {
	svc AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(svc AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// Report returns the full report.
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		response.Fail(w, err)
		return
	}
	report, err := h.svc.Report(r.Context(), filter)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, report)
}

// Breakdown returns one category breakdown, selected by ?category=.
func (h *AnalyticsHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := parseFilter(q)
	if err != nil {
		response.Fail(w, err)
		return
	}
	category := analytics.Category(q.Get("category"))
	items, err := h.svc.Breakdown(r.Context(), filter, category)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"category": category,
		"items":    items,
	})
}

// Equity returns the daily equity curve.
func (h *AnalyticsHandler) Equity(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		response.Fail(w, err)
		return
	}
	points, err := h.svc.Equity(r.Context(), filter)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, points)
}

// Radar returns the five behavioral scores.
func (h *AnalyticsHandler) Radar(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		response.Fail(w, err)
		return
	}
	metrics, err := h.svc.Radar(r.Context(), filter)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, metrics)
}

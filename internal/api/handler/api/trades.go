package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/newthinker/tradejournal/internal/api/response"
	"github.com/newthinker/tradejournal/internal/core"
	"github.com/newthinker/tradejournal/internal/journal"
	"github.com/newthinker/tradejournal/internal/storage/trade"
)

// TradeService is the slice of journal.Service the trade endpoints use.
type TradeService interface {
	Create(ctx context.Context, in journal.Input) (*core.Trade, error)
	Update(ctx context.Context, id string, in journal.Input) (*core.Trade, error)
	Get(ctx context.Context, id string) (*core.Trade, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter trade.ListFilter) ([]core.Trade, error)
	Count(ctx context.Context, filter trade.ListFilter) (int, error)
}

// TradesHandler handles trade CRUD requests.
type TradesHandler struct {
	svc TradeService
}

// NewTradesHandler creates a new trades handler.
func NewTradesHandler(svc TradeService) *TradesHandler {
	return &TradesHandler{svc: svc}
}

// List returns trades matching query parameters.
func (h *TradesHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		response.Fail(w, err)
		return
	}
	if filter.Limit == 0 {
		filter.Limit = defaultLimit
	}

	trades, err := h.svc.List(r.Context(), filter)
	if err != nil {
		response.Fail(w, err)
		return
	}
	if trades == nil {
		trades = []core.Trade{}
	}

	total, err := h.svc.Count(r.Context(), filter)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"trades": trades,
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// Create derives and stores a new trade.
func (h *TradesHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}
	t, err := h.svc.Create(r.Context(), in)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, t)
}

// Get returns a single trade.
func (h *TradesHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, t)
}

// Update replaces a trade's raw fields and re-derives its metrics.
func (h *TradesHandler) Update(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}
	t, err := h.svc.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, t)
}

// Delete removes a trade.
func (h *TradesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"deleted": true,
	})
}

func decodeInput(w http.ResponseWriter, r *http.Request) (journal.Input, bool) {
	var in journal.Input
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrInvalidTrade, err))
		return in, false
	}
	return in, true
}

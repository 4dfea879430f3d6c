package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/deckgenhq/deckgen/internal/domain/history"
)

// HistoryService interface for dependency injection.
type HistoryService interface {
	List(ctx context.Context, limit int) ([]history.Entry, error)
}

// HistoryHandler serves the recent-generations view.
type HistoryHandler struct {
	service HistoryService
}

// NewHistoryHandler creates a new handler.
func NewHistoryHandler(service HistoryService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

const maxHistoryLimit = 200

// List handles GET /api/v1/history?limit=N.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if lim, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && lim > 0 {
		if lim > maxHistoryLimit {
			lim = maxHistoryLimit
		}
		limit = lim
	}

	entries, err := h.service.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": entries})
}

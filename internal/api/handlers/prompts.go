package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/deckgenhq/deckgen/internal/domain/prompt"
	"github.com/deckgenhq/deckgen/internal/infra/promptstore"
)

// PromptStore interface for dependency injection.
type PromptStore interface {
	LoadExisting() (prompt.Config, error)
	Save(cfg prompt.Config) (prompt.Config, error)
}

// PromptsHandler manages the operator-editable prompt configuration.
type PromptsHandler struct {
	store PromptStore
}

// NewPromptsHandler creates a new handler.
func NewPromptsHandler(store PromptStore) *PromptsHandler {
	return &PromptsHandler{store: store}
}

// Get handles GET /api/v1/admin/prompts. A missing prompts file is 404 so
// the admin UI can distinguish "never saved" from the built-in defaults.
func (h *PromptsHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.LoadExisting()
	if errors.Is(err, promptstore.ErrNotFound) {
		writeError(w, http.StatusNotFound, "prompt configuration not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load prompt configuration")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": cfg})
}

// Put handles PUT /api/v1/admin/prompts. All three fields are required.
func (h *PromptsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var cfg prompt.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := h.store.Save(cfg)
	if errors.Is(err, promptstore.ErrIncomplete) {
		writeError(w, http.StatusBadRequest, "all prompt fields are required")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save prompt configuration")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": saved})
}

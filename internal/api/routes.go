// Route registration and go-chi router setup.
package api

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/deckgenhq/deckgen/internal/api/handlers"
	"github.com/deckgenhq/deckgen/internal/domain/extract"
	"github.com/deckgenhq/deckgen/internal/domain/generate"
	"github.com/deckgenhq/deckgen/internal/domain/history"
	"github.com/deckgenhq/deckgen/internal/domain/upload"
	"github.com/deckgenhq/deckgen/internal/infra/config"
	"github.com/deckgenhq/deckgen/internal/infra/eventbus"
	"github.com/deckgenhq/deckgen/internal/infra/llm"
	"github.com/deckgenhq/deckgen/internal/infra/promptstore"
)

// NewRouter creates and configures a new chi router with all routes.
func NewRouter(db *sql.DB, cfg config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check — unauthenticated, used by load balancers and health probes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Shared app services
		bus := eventbus.New()
		store := promptstore.New(cfg.PromptsFile)
		uploadSvc := upload.New(db, cfg.UploadDir)
		router := newProviderRouter(cfg)

		opts := generate.DefaultOptions()
		opts.DummyMode = cfg.DummyMode
		generateSvc := generate.NewService(store, extract.New(), router, bus, opts)

		recorder := history.NewRecorder(db)
		recorder.Start(context.Background(), bus)

		uploadHandler := handlers.NewUploadHandler(uploadSvc)
		generateHandler := handlers.NewGenerateHandler(generateSvc, uploadSvc)
		promptsHandler := handlers.NewPromptsHandler(store)
		historyHandler := handlers.NewHistoryHandler(history.NewLister(db))

		r.Post("/upload", uploadHandler.Upload)       // POST /api/v1/upload
		r.Post("/generate", generateHandler.Generate) // POST /api/v1/generate
		r.Get("/history", historyHandler.List)        // GET  /api/v1/history

		r.Route("/admin/prompts", func(r chi.Router) {
			r.Get("/", promptsHandler.Get) // GET /api/v1/admin/prompts
			r.Put("/", promptsHandler.Put) // PUT /api/v1/admin/prompts
		})
	})

	return r
}

// newProviderRouter builds the LLM provider set from config. Both adapters
// are always registered; the configured provider is the default.
func newProviderRouter(cfg config.Config) *llm.Router {
	providers := map[string]llm.LLMProvider{
		"openai": llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel),
		"ollama": llm.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaChatModel),
	}
	return llm.NewRouter(providers, cfg.LLMProvider)
}

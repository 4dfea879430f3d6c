package llm

import "errors"

// Sentinel errors used by the generation orchestrator to classify a failed
// completion call. Adapters wrap these so errors.Is works across layers.
var (
	// ErrMissingAPIKey means the provider was constructed without usable
	// credentials (empty key or an explicit 401 from the API). The
	// orchestrator substitutes the deterministic placeholder deck.
	ErrMissingAPIKey = errors.New("missing or invalid api key")

	// ErrQuotaExceeded maps HTTP 429 responses.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrEmptyPrompt guards against blank prompts reaching the API.
	ErrEmptyPrompt = errors.New("prompt is empty")
)

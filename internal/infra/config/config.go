// Package config provides application-wide configuration loaded from env vars.
// All fields have safe defaults so the binary runs locally without any env setup.
// Business logic never reads the environment directly; everything below is
// resolved once here and handed to constructors.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for deckgen.
type Config struct {
	// Storage
	DBPath      string `yaml:"dbPath"`      // DECKGEN_DB_PATH — default: "./deckgen.db"
	UploadDir   string `yaml:"uploadDir"`   // DECKGEN_UPLOAD_DIR — default: "./uploads"
	PromptsFile string `yaml:"promptsFile"` // DECKGEN_PROMPTS_FILE — default: "./config/prompts.json"

	// LLM
	LLMProvider     string `yaml:"llmProvider"`     // LLM_PROVIDER — default: "openai"
	OpenAIAPIKey    string `yaml:"openaiApiKey"`    // OPENAI_API_KEY — default: "" (placeholder decks)
	OpenAIBaseURL   string `yaml:"openaiBaseUrl"`   // OPENAI_BASE_URL — default: "https://api.openai.com"
	OpenAIModel     string `yaml:"openaiModel"`     // OPENAI_MODEL — default: "gpt-4.1"
	OllamaBaseURL   string `yaml:"ollamaBaseUrl"`   // OLLAMA_BASE_URL — default: "http://localhost:11434"
	OllamaChatModel string `yaml:"ollamaChatModel"` // OLLAMA_CHAT_MODEL — default: "llama3.2:3b"

	// DummyMode skips the LLM call entirely and serves the deterministic
	// placeholder deck. Useful for demos and offline development.
	DummyMode bool `yaml:"dummyMode"` // DECKGEN_DUMMY_MODE — default: false
}

const (
	envKeyDBPath          = "DECKGEN_DB_PATH"
	envKeyUploadDir       = "DECKGEN_UPLOAD_DIR"
	envKeyPromptsFile     = "DECKGEN_PROMPTS_FILE"
	envKeyLLMProvider     = "LLM_PROVIDER"
	envKeyOpenAIAPIKey    = "OPENAI_API_KEY"
	envKeyOpenAIBaseURL   = "OPENAI_BASE_URL"
	envKeyOpenAIModel     = "OPENAI_MODEL"
	envKeyOllamaBaseURL   = "OLLAMA_BASE_URL"
	envKeyOllamaChatModel = "OLLAMA_CHAT_MODEL"
	envKeyDummyMode       = "DECKGEN_DUMMY_MODE"
)

// Load reads configuration from environment variables, applying defaults for missing values.
func Load() Config {
	dummy, _ := strconv.ParseBool(envOr(envKeyDummyMode, "false"))
	return Config{
		DBPath:          envOr(envKeyDBPath, "./deckgen.db"),
		UploadDir:       envOr(envKeyUploadDir, "./uploads"),
		PromptsFile:     envOr(envKeyPromptsFile, "./config/prompts.json"),
		LLMProvider:     envOr(envKeyLLMProvider, "openai"),
		OpenAIAPIKey:    envOr(envKeyOpenAIAPIKey, ""),
		OpenAIBaseURL:   envOr(envKeyOpenAIBaseURL, "https://api.openai.com"),
		OpenAIModel:     envOr(envKeyOpenAIModel, "gpt-4.1"),
		OllamaBaseURL:   envOr(envKeyOllamaBaseURL, "http://localhost:11434"),
		OllamaChatModel: envOr(envKeyOllamaChatModel, "llama3.2:3b"),
		DummyMode:       dummy,
	}
}

// LoadFile parses a YAML config file and fills any blank field from the
// environment defaults. Env vars win for fields the file leaves empty, so a
// checked-in config.yaml never has to carry the API key.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return merge(cfg, Load()), nil
}

// merge returns cfg with every empty string field replaced by the
// corresponding field of fallback. DummyMode is true if either side set it.
func merge(cfg, fallback Config) Config {
	pick := func(v, fb string) string {
		if v != "" {
			return v
		}
		return fb
	}
	return Config{
		DBPath:          pick(cfg.DBPath, fallback.DBPath),
		UploadDir:       pick(cfg.UploadDir, fallback.UploadDir),
		PromptsFile:     pick(cfg.PromptsFile, fallback.PromptsFile),
		LLMProvider:     pick(cfg.LLMProvider, fallback.LLMProvider),
		OpenAIAPIKey:    pick(cfg.OpenAIAPIKey, fallback.OpenAIAPIKey),
		OpenAIBaseURL:   pick(cfg.OpenAIBaseURL, fallback.OpenAIBaseURL),
		OpenAIModel:     pick(cfg.OpenAIModel, fallback.OpenAIModel),
		OllamaBaseURL:   pick(cfg.OllamaBaseURL, fallback.OllamaBaseURL),
		OllamaChatModel: pick(cfg.OllamaChatModel, fallback.OllamaChatModel),
		DummyMode:       cfg.DummyMode || fallback.DummyMode,
	}
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

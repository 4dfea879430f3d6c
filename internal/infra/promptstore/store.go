// Package promptstore persists the operator-editable prompt configuration
// as a single JSON file. The file is the source of truth; built-in defaults
// are served whenever it is missing or unreadable so generation never fails
// for lack of configuration.
package promptstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/deckgenhq/deckgen/internal/domain/prompt"
)

var (
	// ErrNotFound is returned by LoadExisting when the prompts file does not exist.
	ErrNotFound = errors.New("prompt configuration file not found")
	// ErrIncomplete is returned by Save when any template field is empty.
	ErrIncomplete = errors.New("all prompt fields are required")
)

// Store reads and writes the prompt configuration file.
type Store struct {
	path string
	now  func() time.Time
}

// New creates a Store backed by the JSON file at path.
func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Load returns the current configuration, falling back to the built-in
// defaults when the file is missing or cannot be parsed. It never fails:
// a broken prompts file must not take generation down with it.
func (s *Store) Load() prompt.Config {
	cfg, err := s.LoadExisting()
	if err != nil {
		return prompt.Defaults()
	}
	return cfg
}

// LoadExisting returns the stored configuration, or ErrNotFound when the
// file does not exist. A file that exists but cannot be parsed is an error;
// callers that want defaults instead use Load.
func (s *Store) LoadExisting() (prompt.Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return prompt.Config{}, ErrNotFound
		}
		return prompt.Config{}, fmt.Errorf("promptstore: read %q: %w", s.path, err)
	}
	var cfg prompt.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return prompt.Config{}, fmt.Errorf("promptstore: parse %q: %w", s.path, err)
	}
	return cfg, nil
}

// Save validates and persists cfg, stamping UpdatedAt with the current time.
// The write goes through a temp file + rename so a concurrent Load never
// observes a partially written configuration.
func (s *Store) Save(cfg prompt.Config) (prompt.Config, error) {
	if !cfg.IsComplete() {
		return prompt.Config{}, ErrIncomplete
	}

	now := s.now().UTC()
	cfg.UpdatedAt = &now

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return prompt.Config{}, fmt.Errorf("promptstore: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return prompt.Config{}, fmt.Errorf("promptstore: mkdir %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".prompts-*.json")
	if err != nil {
		return prompt.Config{}, fmt.Errorf("promptstore: create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return prompt.Config{}, fmt.Errorf("promptstore: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return prompt.Config{}, fmt.Errorf("promptstore: close temp: %w", err)
	}
	// Atomic replace on POSIX; readers see either the old or the new file.
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return prompt.Config{}, fmt.Errorf("promptstore: rename: %w", err)
	}

	return cfg, nil
}

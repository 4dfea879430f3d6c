// Package history records completed generations. A Recorder consumes
// deck.generated events from the bus and inserts one row per generation; the
// HTTP layer lists them for the history view.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/deckgenhq/deckgen/internal/domain/generate"
	"github.com/deckgenhq/deckgen/internal/infra/eventbus"
)

// Entry is one recorded generation.
type Entry struct {
	ID         string    `json:"id"`
	InputKind  string    `json:"inputKind"`
	Purpose    string    `json:"purpose"`
	Audience   string    `json:"audience"`
	SlideCount int       `json:"slideCount"`
	DeckTitle  string    `json:"deckTitle"`
	Status     string    `json:"status"`
	DurationMS int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Recorder persists generation events.
type Recorder struct {
	db *sql.DB
}

// NewRecorder creates a Recorder writing to db.
func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db}
}

// Start subscribes to deck.generated and consumes events until ctx is done.
// It runs in its own goroutine; a failed insert is logged and skipped so the
// recorder never stalls the bus.
func (r *Recorder) Start(ctx context.Context, bus eventbus.EventBus) {
	ch := bus.Subscribe(generate.TopicDeckGenerated)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-ch:
				if !ok {
					return
				}
				payload, ok := evt.Payload.(generate.GeneratedEvent)
				if !ok {
					continue
				}
				if err := r.record(ctx, payload); err != nil {
					log.Printf("history: record generation: %v", err)
				}
			}
		}
	}()
}

func (r *Recorder) record(ctx context.Context, evt generate.GeneratedEvent) error {
	const q = `INSERT INTO generations (id, input_kind, purpose, audience, slide_count, deck_title, status, duration_ms, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		evt.ID, string(evt.InputKind), evt.Purpose, evt.Audience,
		evt.SlideCount, evt.DeckTitle, evt.Status,
		evt.Duration.Milliseconds(), evt.OccurredAt.Format(time.RFC3339Nano),
	)
	return err
}

// Lister reads recorded generations, newest first.
type Lister struct {
	db *sql.DB
}

// NewLister creates a Lister reading from db.
func NewLister(db *sql.DB) *Lister {
	return &Lister{db: db}
}

const defaultListLimit = 50

// List returns up to limit entries ordered by creation time descending.
// limit <= 0 uses the default of 50.
func (l *Lister) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	const q = `SELECT id, input_kind, purpose, audience, slide_count, deck_title, status, duration_ms, created_at
	           FROM generations ORDER BY created_at DESC LIMIT ?`
	rows, err := l.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			e         Entry
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.InputKind, &e.Purpose, &e.Audience,
			&e.SlideCount, &e.DeckTitle, &e.Status, &e.DurationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: rows: %w", err)
	}
	return entries, nil
}

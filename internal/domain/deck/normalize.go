package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed means the raw LLM output could not be normalized into a Deck:
// empty payload, invalid JSON, missing title, or no usable slides. Callers
// surface it as a retryable "try again" failure.
var ErrMalformed = errors.New("malformed deck response")

// wireSlide accepts both the canonical slide shape and the older
// title/content spelling some models still emit.
type wireSlide struct {
	ID       string          `json:"id"`
	MainCopy string          `json:"mainCopy"`
	Title    string          `json:"title"` // legacy alias for mainCopy
	SubCopy  string          `json:"subCopy"`
	Body     json.RawMessage `json:"body"`
	Content  json.RawMessage `json:"content"` // legacy alias for body
	Visual   stringList      `json:"visualSuggestion"`
	Script   string          `json:"script"`
	Type     string          `json:"type"`
}

type wireDeck struct {
	Title    string      `json:"title"`
	Purpose  string      `json:"purpose"`
	Audience string      `json:"audience"`
	Slides   []wireSlide `json:"slides"`
}

// stringList unmarshals either a single string or an array of strings.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one != "" {
			*s = []string{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

// Parse normalizes raw model output into a Deck. It is strict: anything that
// cannot be mapped onto the canonical schema fails with ErrMalformed rather
// than producing a partially-filled deck.
func Parse(raw string) (*Deck, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("empty response: %w", ErrMalformed)
	}

	var wire wireDeck
	if err := json.Unmarshal([]byte(trimmed), &wire); err != nil {
		return nil, fmt.Errorf("decode response: %v: %w", err, ErrMalformed)
	}
	if strings.TrimSpace(wire.Title) == "" {
		return nil, fmt.Errorf("deck title missing: %w", ErrMalformed)
	}
	if len(wire.Slides) == 0 {
		return nil, fmt.Errorf("deck has no slides: %w", ErrMalformed)
	}

	deck := &Deck{
		Title:    strings.TrimSpace(wire.Title),
		Purpose:  strings.TrimSpace(wire.Purpose),
		Audience: strings.TrimSpace(wire.Audience),
		Slides:   make([]Slide, 0, len(wire.Slides)),
	}

	seen := make(map[string]bool, len(wire.Slides))
	for i, ws := range wire.Slides {
		slide, err := normalizeSlide(ws, i)
		if err != nil {
			return nil, err
		}
		if seen[slide.ID] {
			return nil, fmt.Errorf("duplicate slide id %q: %w", slide.ID, ErrMalformed)
		}
		seen[slide.ID] = true
		deck.Slides = append(deck.Slides, slide)
	}
	return deck, nil
}

// normalizeSlide maps one wire slide onto the canonical shape. idx is the
// zero-based position, used to mint positional ids when the model omits them.
func normalizeSlide(ws wireSlide, idx int) (Slide, error) {
	headline := strings.TrimSpace(ws.MainCopy)
	if headline == "" {
		headline = strings.TrimSpace(ws.Title)
	}
	if headline == "" {
		return Slide{}, fmt.Errorf("slide %d has no headline: %w", idx+1, ErrMalformed)
	}

	id := strings.TrimSpace(ws.ID)
	if id == "" {
		id = fmt.Sprintf("slide-%d", idx+1)
	}

	body, err := normalizeBody(ws.Body, ws.Content, idx)
	if err != nil {
		return Slide{}, err
	}

	st := SlideType(strings.ToLower(strings.TrimSpace(ws.Type)))
	if !knownSlideTypes[st] {
		st = SlideTypePoints
	}

	return Slide{
		ID:                id,
		MainCopy:          headline,
		SubCopy:           strings.TrimSpace(ws.SubCopy),
		Body:              body,
		VisualSuggestions: ws.Visual,
		Script:            strings.TrimSpace(ws.Script),
		Type:              st,
	}, nil
}

// normalizeBody decodes the body field, which may be the canonical
// []BulletPoint, a bare []string (each string becomes a Point), or absent.
// The legacy content field is consulted only when body is missing.
func normalizeBody(body, legacy json.RawMessage, idx int) ([]BulletPoint, error) {
	raw := body
	if len(raw) == 0 || string(raw) == "null" {
		raw = legacy
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var points []BulletPoint
	if err := json.Unmarshal(raw, &points); err == nil {
		return points, nil
	}

	var lines []string
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("slide %d body unreadable: %w", idx+1, ErrMalformed)
	}
	points = make([]BulletPoint, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		points = append(points, BulletPoint{Point: strings.TrimSpace(line)})
	}
	return points, nil
}

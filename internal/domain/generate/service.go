// Package generate orchestrates a slide deck generation request: it loads
// the prompt configuration, extracts text when the input is a file, renders
// the prompt templates, races the LLM call against a wall-clock deadline and
// normalizes the raw response into a deck. Credential failures degrade to a
// deterministic placeholder deck instead of an error.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofrs/uuid"

	"github.com/deckgenhq/deckgen/internal/domain/deck"
	"github.com/deckgenhq/deckgen/internal/domain/extract"
	"github.com/deckgenhq/deckgen/internal/domain/prompt"
	"github.com/deckgenhq/deckgen/internal/infra/eventbus"
	"github.com/deckgenhq/deckgen/internal/infra/llm"
)

// InputKind says whether the request carries raw text or a previously
// uploaded file.
type InputKind string

const (
	InputText InputKind = "text"
	InputFile InputKind = "file"
)

// Tone is the requested speaking register for the generated copy.
type Tone string

const (
	ToneFormal       Tone = "formal"
	ToneCasual       Tone = "casual"
	ToneProfessional Tone = "professional"
)

// Request is a single generation request after HTTP decoding.
type Request struct {
	Kind             InputKind
	RawText          string
	FilePath         string
	OriginalFileName string
	Purpose          string
	Audience         string
	SlideCount       int
	Tone             Tone
	Language         string
	IncludeScript    bool
}

// Result is a successful generation. Placeholder is true when the deck is
// the deterministic stand-in served on credential failure or in dummy mode.
type Result struct {
	Deck        *deck.Deck
	Placeholder bool
	Duration    time.Duration
	Warnings    []string
}

// Status values recorded on the deck.generated event.
const (
	StatusOK          = "ok"
	StatusPlaceholder = "placeholder"
)

// TopicDeckGenerated is published on the event bus after every successful
// generation; the history recorder consumes it.
const TopicDeckGenerated = "deck.generated"

// GeneratedEvent is the payload of a deck.generated event.
type GeneratedEvent struct {
	ID         string
	InputKind  InputKind
	Purpose    string
	Audience   string
	SlideCount int
	DeckTitle  string
	Status     string
	Duration   time.Duration
	OccurredAt time.Time
}

// PromptLoader supplies the current prompt configuration. It is consulted on
// every call so admin edits apply without a restart.
type PromptLoader interface {
	Load() prompt.Config
}

// Extractor pulls plain text out of an uploaded file.
type Extractor interface {
	Extract(ctx context.Context, path, originalName string) (*extract.Content, error)
}

// ProviderRouter picks the LLM provider for a request.
type ProviderRouter interface {
	Route(ctx context.Context) (llm.LLMProvider, error)
}

// Options tune the orchestrator.
type Options struct {
	// Timeout is the wall-clock budget for one completion call. When it
	// elapses the call is abandoned, not cancelled.
	Timeout time.Duration
	// Temperature and MaxOutputTokens are forwarded to the provider.
	Temperature     float32
	MaxOutputTokens int
	// DummyMode short-circuits every request to the placeholder deck,
	// for local development without credentials.
	DummyMode bool
}

// DefaultOptions returns the production tuning.
func DefaultOptions() Options {
	return Options{
		Timeout:         45 * time.Second,
		Temperature:     0.7,
		MaxOutputTokens: 2500,
	}
}

const (
	defaultPurpose    = "일반 발표"
	defaultAudience   = "일반 청중"
	defaultSlideCount = 5
	maxSlideCount     = 20
)

// Service is the generation orchestrator.
type Service struct {
	prompts   PromptLoader
	extractor Extractor
	router    ProviderRouter
	bus       eventbus.EventBus
	opts      Options
	now       func() time.Time
}

// NewService wires the orchestrator. bus may be nil in tests that do not
// care about history events.
func NewService(prompts PromptLoader, extractor Extractor, router ProviderRouter, bus eventbus.EventBus, opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	return &Service{
		prompts:   prompts,
		extractor: extractor,
		router:    router,
		bus:       bus,
		opts:      opts,
		now:       time.Now,
	}
}

// Generate runs one request end to end. Every failure is a *Error whose Kind
// tells the HTTP layer how to respond.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	start := s.now()

	if err := normalizeRequest(&req); err != nil {
		return nil, err
	}

	cfg := s.prompts.Load()

	userPrompt, warnings, sourceHint, err := s.buildUserPrompt(ctx, cfg, req)
	if err != nil {
		return nil, err
	}

	if s.opts.DummyMode {
		return s.placeholderResult(req, sourceHint, warnings, start), nil
	}

	provider, err := s.router.Route(ctx)
	if err != nil {
		return nil, newError(KindUnknown, "슬라이드 생성 중 오류가 발생했습니다", err)
	}

	outcome := s.raceCompletion(ctx, provider, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: cfg.SystemMessage},
			{Role: "user", Content: userPrompt},
		},
		Temperature: s.opts.Temperature,
		MaxTokens:   s.opts.MaxOutputTokens,
		JSONOnly:    true,
	})

	switch {
	case outcome.timedOut:
		return nil, newError(KindTimeout, "생성 시간이 초과되었습니다. 더 짧은 텍스트나 작은 파일로 다시 시도해주세요", context.DeadlineExceeded)
	case outcome.err != nil:
		if errors.Is(outcome.err, llm.ErrMissingAPIKey) {
			return s.placeholderResult(req, sourceHint, warnings, start), nil
		}
		if errors.Is(outcome.err, llm.ErrQuotaExceeded) {
			return nil, newError(KindQuotaExceeded, "요청이 많아 잠시 후 다시 시도해주세요", outcome.err)
		}
		return nil, newError(KindUnknown, "슬라이드 생성 중 오류가 발생했습니다", outcome.err)
	}

	d, err := deck.Parse(outcome.resp.Content)
	if err != nil {
		return nil, newError(KindMalformedResponse, "응답을 해석할 수 없습니다. 다시 시도해주세요", err)
	}
	if d.Purpose == "" {
		d.Purpose = req.Purpose
	}
	if d.Audience == "" {
		d.Audience = req.Audience
	}

	res := &Result{
		Deck:     d,
		Duration: s.now().Sub(start),
		Warnings: warnings,
	}
	s.publish(req, res, StatusOK)
	return res, nil
}

// normalizeRequest validates the input shape and fills defaults in place.
func normalizeRequest(req *Request) error {
	switch req.Kind {
	case InputText:
		if strings.TrimSpace(req.RawText) == "" {
			return newError(KindInvalidRequest, "입력 텍스트가 비어 있습니다", nil)
		}
	case InputFile:
		if strings.TrimSpace(req.FilePath) == "" {
			return newError(KindInvalidRequest, "파일이 지정되지 않았습니다", nil)
		}
	default:
		return newError(KindInvalidRequest, "입력 텍스트나 파일이 필요합니다", nil)
	}

	if strings.TrimSpace(req.Purpose) == "" {
		req.Purpose = defaultPurpose
	}
	if strings.TrimSpace(req.Audience) == "" {
		req.Audience = defaultAudience
	}
	if req.SlideCount <= 0 {
		req.SlideCount = defaultSlideCount
	}
	if req.SlideCount > maxSlideCount {
		req.SlideCount = maxSlideCount
	}
	if req.Tone == "" {
		req.Tone = ToneProfessional
	}
	if req.Language == "" {
		req.Language = "ko"
	}
	return nil
}

// buildUserPrompt renders the file or text template. For file input it runs
// extraction first; extraction degrades rather than fails except when the
// file itself is unreadable.
func (s *Service) buildUserPrompt(ctx context.Context, cfg prompt.Config, req Request) (userPrompt string, warnings []string, sourceHint string, err error) {
	vars := map[string]string{
		"purpose":           req.Purpose,
		"audience":          req.Audience,
		"slideCount":        strconv.Itoa(req.SlideCount),
		"tone":              toneLabel(req.Tone),
		"language":          languageLabel(req.Language),
		"includeScript":     strconv.FormatBool(req.IncludeScript),
		"scriptInstruction": scriptInstruction(req.IncludeScript),
	}

	if req.Kind == InputFile {
		content, exErr := s.extractor.Extract(ctx, req.FilePath, req.OriginalFileName)
		if exErr != nil {
			if errors.Is(exErr, fs.ErrNotExist) {
				return "", nil, "", newError(KindNotFound, "파일을 찾을 수 없습니다", exErr)
			}
			return "", nil, "", newError(KindExtraction, "파일에서 텍스트를 추출하지 못했습니다", exErr)
		}
		vars["fileName"] = req.OriginalFileName
		vars["fileExtension"] = strings.ToUpper(strings.TrimPrefix(fileExt(req.OriginalFileName), "."))
		vars["extractedText"] = content.Text
		return prompt.Render(cfg.FileTemplate, vars), content.Warnings, req.OriginalFileName, nil
	}

	vars["inputText"] = req.RawText
	hint := fmt.Sprintf("텍스트 입력 (%d자)", utf8.RuneCountInString(req.RawText))
	return prompt.Render(cfg.TextTemplate, vars), nil, hint, nil
}

// completionOutcome is the explicit result of racing a chat call against the
// generation deadline. When timedOut is set the in-flight call keeps running
// unobserved; only its result is discarded.
type completionOutcome struct {
	timedOut bool
	resp     *llm.ChatResponse
	err      error
}

func (s *Service) raceCompletion(ctx context.Context, provider llm.LLMProvider, req llm.ChatRequest) completionOutcome {
	ch := make(chan completionOutcome, 1)
	go func() {
		resp, err := provider.ChatCompletion(ctx, req)
		ch <- completionOutcome{resp: resp, err: err}
	}()

	timer := time.NewTimer(s.opts.Timeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		return out
	case <-timer.C:
		return completionOutcome{timedOut: true}
	}
}

// placeholderResult builds the credential-failure stand-in and records it.
func (s *Service) placeholderResult(req Request, sourceHint string, warnings []string, start time.Time) *Result {
	res := &Result{
		Deck: deck.Placeholder(deck.PlaceholderInput{
			Purpose:    req.Purpose,
			Audience:   req.Audience,
			SourceHint: sourceHint,
		}),
		Placeholder: true,
		Duration:    s.now().Sub(start),
		Warnings:    warnings,
	}
	s.publish(req, res, StatusPlaceholder)
	return res
}

// publish emits the deck.generated event. Best effort: a full bus buffer or
// a failed id mint never affects the response.
func (s *Service) publish(req Request, res *Result, status string) {
	if s.bus == nil {
		return
	}
	id := ""
	if v, err := uuid.NewV7(); err == nil {
		id = v.String()
	}
	s.bus.Publish(TopicDeckGenerated, GeneratedEvent{
		ID:         id,
		InputKind:  req.Kind,
		Purpose:    req.Purpose,
		Audience:   req.Audience,
		SlideCount: len(res.Deck.Slides),
		DeckTitle:  res.Deck.Title,
		Status:     status,
		Duration:   res.Duration,
		OccurredAt: s.now().UTC(),
	})
}

// toneLabel maps the API tone onto the Korean phrasing the templates expect.
func toneLabel(t Tone) string {
	switch t {
	case ToneFormal:
		return "격식있고 공식적인"
	case ToneCasual:
		return "친근하고 편안한"
	default:
		return "전문적이고 신뢰감 있는"
	}
}

// languageLabel maps the language code onto the template wording.
func languageLabel(code string) string {
	if strings.EqualFold(code, "en") {
		return "영어"
	}
	return "한국어"
}

// scriptInstruction is the optional narration request appended to prompts.
func scriptInstruction(include bool) string {
	if !include {
		return ""
	}
	return "각 슬라이드마다 3~7문장 분량의 발표 대본을 script 필드에 작성해주세요.\n"
}

// fileExt returns the lowercase extension of name including the dot.
func fileExt(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx:])
}

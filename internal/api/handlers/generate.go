package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/deckgenhq/deckgen/internal/domain/deck"
	"github.com/deckgenhq/deckgen/internal/domain/generate"
	"github.com/deckgenhq/deckgen/internal/domain/upload"
)

// GenerateService interface for dependency injection.
type GenerateService interface {
	Generate(ctx context.Context, req generate.Request) (*generate.Result, error)
}

// UploadLookup resolves an upload id to its stored record.
type UploadLookup interface {
	Get(ctx context.Context, id string) (*upload.Upload, error)
}

// GenerateHandler handles deck generation requests.
type GenerateHandler struct {
	service GenerateService
	uploads UploadLookup
}

// NewGenerateHandler creates a new handler.
func NewGenerateHandler(service GenerateService, uploads UploadLookup) *GenerateHandler {
	return &GenerateHandler{service: service, uploads: uploads}
}

// GenerateRequest is the JSON body for POST /api/v1/generate.
type GenerateRequest struct {
	InputType     string `json:"inputType"` // "text" or "file"
	Text          string `json:"text,omitempty"`
	UploadID      string `json:"uploadId,omitempty"`
	Purpose       string `json:"purpose"`
	Audience      string `json:"audience"`
	SlideCount    int    `json:"slideCount"`
	Tone          string `json:"tone"`
	Language      string `json:"language"`
	IncludeScript bool   `json:"includeScript"`
}

// GenerateResponse is the success envelope.
type GenerateResponse struct {
	Success     bool       `json:"success"`
	Data        *deck.Deck `json:"data"`
	Placeholder bool       `json:"placeholder,omitempty"`
	Warnings    []string   `json:"warnings,omitempty"`
	DurationMS  int64      `json:"durationMs"`
}

// Generate handles POST /api/v1/generate.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	domReq, ok := h.toDomainRequest(r.Context(), w, req)
	if !ok {
		return
	}

	res, err := h.service.Generate(r.Context(), domReq)
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{
		Success:     true,
		Data:        res.Deck,
		Placeholder: res.Placeholder,
		Warnings:    res.Warnings,
		DurationMS:  res.Duration.Milliseconds(),
	})
}

// toDomainRequest maps the wire request onto the domain request, resolving
// the upload id for file input. Writes the error response itself on failure.
func (h *GenerateHandler) toDomainRequest(ctx context.Context, w http.ResponseWriter, req GenerateRequest) (generate.Request, bool) {
	domReq := generate.Request{
		Kind:          generate.InputKind(req.InputType),
		RawText:       req.Text,
		Purpose:       req.Purpose,
		Audience:      req.Audience,
		SlideCount:    req.SlideCount,
		Tone:          generate.Tone(req.Tone),
		Language:      req.Language,
		IncludeScript: req.IncludeScript,
	}

	if domReq.Kind != generate.InputFile {
		return domReq, true
	}

	if req.UploadID == "" {
		writeError(w, http.StatusBadRequest, "uploadId is required for file input")
		return generate.Request{}, false
	}
	up, err := h.uploads.Get(ctx, req.UploadID)
	if errors.Is(err, upload.ErrNotFound) {
		writeError(w, http.StatusNotFound, "upload not found")
		return generate.Request{}, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve upload")
		return generate.Request{}, false
	}
	domReq.FilePath = up.StoragePath
	domReq.OriginalFileName = up.OriginalName
	return domReq, true
}

// writeGenerateError maps the classified generation error onto an HTTP status.
func writeGenerateError(w http.ResponseWriter, err error) {
	var ge *generate.Error
	if !errors.As(err, &ge) {
		writeError(w, http.StatusInternalServerError, "슬라이드 생성 중 오류가 발생했습니다")
		return
	}
	switch ge.Kind {
	case generate.KindInvalidRequest, generate.KindValidation:
		writeError(w, http.StatusBadRequest, ge.Message)
	case generate.KindNotFound:
		writeError(w, http.StatusNotFound, ge.Message)
	default:
		writeError(w, http.StatusInternalServerError, ge.Message)
	}
}

package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/deckgenhq/deckgen/internal/domain/upload"
)

// UploadService interface for dependency injection.
type UploadService interface {
	Save(ctx context.Context, originalName, contentType string, declaredSize int64, r io.Reader) (*upload.Upload, error)
}

// UploadHandler handles source document uploads.
type UploadHandler struct {
	service UploadService
}

// NewUploadHandler creates a new handler.
func NewUploadHandler(service UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// UploadResponse is the success envelope for POST /api/v1/upload.
type UploadResponse struct {
	Success       bool   `json:"success"`
	FileID        string `json:"fileId"`
	FileName      string `json:"fileName"`
	SavedFileName string `json:"savedFileName"`
	SizeBytes     int64  `json:"sizeBytes"`
	CreatedAt     string `json:"createdAt"`
}

// Upload handles POST /api/v1/upload (multipart/form-data, field "file").
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Cap the multipart parse at the upload ceiling plus form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxFileSize+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusBadRequest, "file exceeds the 10MB size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if !upload.AllowedExtension(header.Filename) {
		writeError(w, http.StatusBadRequest, "unsupported file type (allowed: .txt .docx .doc .pdf .hwp)")
		return
	}

	up, err := h.service.Save(r.Context(), header.Filename, header.Header.Get(headerContentType), header.Size, file)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, UploadResponse{
		Success:       true,
		FileID:        up.ID,
		FileName:      up.OriginalName,
		SavedFileName: up.SavedName,
		SizeBytes:     up.SizeBytes,
		CreatedAt:     up.CreatedAt.Format(timeFormatISO),
	})
}

func writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, upload.ErrTooLarge):
		writeError(w, http.StatusBadRequest, "file exceeds the 10MB size limit")
	case errors.Is(err, upload.ErrUnsupportedType):
		writeError(w, http.StatusBadRequest, "unsupported file type (allowed: .txt .docx .doc .pdf .hwp)")
	default:
		writeError(w, http.StatusInternalServerError, "failed to store upload")
	}
}

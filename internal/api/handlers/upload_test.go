package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deckgenhq/deckgen/internal/domain/upload"
)

type stubUploadService struct {
	up  *upload.Upload
	err error

	gotName string
}

func (s *stubUploadService) Save(_ context.Context, originalName, _ string, _ int64, _ io.Reader) (*upload.Upload, error) {
	s.gotName = originalName
	return s.up, s.err
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func postUpload(t *testing.T, h *UploadHandler, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set(headerContentType, contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)
	return rec
}

func TestUploadHandlerSuccess(t *testing.T) {
	svc := &stubUploadService{up: &upload.Upload{
		ID:           "u1",
		OriginalName: "제안서.txt",
		SavedName:    "u1.txt",
		SizeBytes:    12,
		CreatedAt:    time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
	}}
	h := NewUploadHandler(svc)

	rec := postUpload(t, h, "제안서.txt", "문서 내용")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.FileID != "u1" || resp.FileName != "제안서.txt" || resp.SavedFileName != "u1.txt" {
		t.Errorf("resp = %+v", resp)
	}
	if svc.gotName != "제안서.txt" {
		t.Errorf("service got name %q", svc.gotName)
	}
}

func TestUploadHandlerRejectsUnsupportedExtension(t *testing.T) {
	h := NewUploadHandler(&stubUploadService{})
	rec := postUpload(t, h, "malware.exe", "data")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestUploadHandlerMissingFileField(t *testing.T) {
	h := NewUploadHandler(&stubUploadService{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", bytes.NewReader(nil))
	req.Header.Set(headerContentType, "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	h.Upload(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestUploadHandlerOversizedBodyNamesSizeLimit(t *testing.T) {
	// A body past the request cap fails inside FormFile; the error must
	// name the size limit, not claim the file field is missing.
	h := NewUploadHandler(&stubUploadService{})
	content := strings.Repeat("x", int(upload.MaxFileSize)+2<<20)
	rec := postUpload(t, h, "huge.txt", content)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "10MB") {
		t.Errorf("body = %s, want the size-limit message", rec.Body.String())
	}
}

func TestUploadHandlerTooLargeIs400(t *testing.T) {
	h := NewUploadHandler(&stubUploadService{err: upload.ErrTooLarge})
	rec := postUpload(t, h, "big.pdf", "x")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestUploadHandlerStorageFailureIs500(t *testing.T) {
	h := NewUploadHandler(&stubUploadService{err: io.ErrUnexpectedEOF})
	rec := postUpload(t, h, "doc.txt", "x")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

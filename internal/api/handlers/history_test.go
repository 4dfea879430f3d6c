package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deckgenhq/deckgen/internal/domain/history"
)

type stubHistoryService struct {
	entries []history.Entry
	err     error

	gotLimit int
}

func (s *stubHistoryService) List(_ context.Context, limit int) ([]history.Entry, error) {
	s.gotLimit = limit
	return s.entries, s.err
}

func TestHistoryList(t *testing.T) {
	svc := &stubHistoryService{entries: []history.Entry{
		{ID: "g1", DeckTitle: "보고 프레젠테이션", Status: "ok"},
	}}
	h := NewHistoryHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=10", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.gotLimit != 10 {
		t.Errorf("limit = %d", svc.gotLimit)
	}
	var resp struct {
		Data []history.Entry `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "g1" {
		t.Errorf("data = %+v", resp.Data)
	}
}

func TestHistoryListCapsLimit(t *testing.T) {
	svc := &stubHistoryService{}
	h := NewHistoryHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=99999", nil)
	h.List(httptest.NewRecorder(), req)
	if svc.gotLimit != maxHistoryLimit {
		t.Errorf("limit = %d, want %d", svc.gotLimit, maxHistoryLimit)
	}
}

func TestHistoryListFailureIs500(t *testing.T) {
	h := NewHistoryHandler(&stubHistoryService{err: errors.New("db gone")})
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

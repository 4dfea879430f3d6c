package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIChatCompletion(t *testing.T) {
	var gotReq openaiChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("auth header = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set(headerContentType, mimeJSON)
		w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "{\"title\":\"x\"}"}, "finish_reason": "stop"}],
			"usage": {"total_tokens": 42}
		}`)) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", srv.URL, "gpt-4.1")
	resp, err := p.ChatCompletion(context.Background(), ChatRequest{
		Messages:    []Message{{Role: "user", Content: "hello"}},
		Temperature: 0.7,
		MaxTokens:   2500,
		JSONOnly:    true,
	})
	if err != nil {
		t.Fatalf("ChatCompletion returned error: %v", err)
	}
	if resp.Content != `{"title":"x"}` || resp.StopReason != "stop" || resp.Tokens != 42 {
		t.Errorf("resp = %+v", resp)
	}

	if gotReq.Model != "gpt-4.1" || gotReq.Temperature != 0.7 || gotReq.MaxTokens != 2500 {
		t.Errorf("request = %+v", gotReq)
	}
	if gotReq.ResponseFormat == nil || gotReq.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format = %+v", gotReq.ResponseFormat)
	}
}

func TestOpenAIEmptyKeyFailsFast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request must reach the API without a key")
	}))
	defer srv.Close()

	p := NewOpenAIProvider("   ", srv.URL, "gpt-4.1")
	_, err := p.ChatCompletion(context.Background(), ChatRequest{
		Messages: []Message{{Role: "user", Content: "hello"}},
	})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("got %v, want ErrMissingAPIKey", err)
	}
}

func TestOpenAIStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrMissingAPIKey},
		{http.StatusForbidden, ErrMissingAPIKey},
		{http.StatusTooManyRequests, ErrQuotaExceeded},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		p := NewOpenAIProvider("key", srv.URL, "gpt-4.1")
		_, err := p.ChatCompletion(context.Background(), ChatRequest{
			Messages: []Message{{Role: "user", Content: "hi"}},
		})
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: got %v, want %v", tc.status, err, tc.want)
		}
		srv.Close()
	}
}

func TestOpenAIServerErrorIncludesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "model overloaded"}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewOpenAIProvider("key", srv.URL, "gpt-4.1")
	_, err := p.ChatCompletion(context.Background(), ChatRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err == nil || !strings.Contains(err.Error(), "model overloaded") {
		t.Fatalf("err = %v", err)
	}
}

func TestOpenAIRejectsEmptyMessages(t *testing.T) {
	p := NewOpenAIProvider("key", "http://unused", "gpt-4.1")
	if _, err := p.ChatCompletion(context.Background(), ChatRequest{}); !errors.Is(err, ErrEmptyPrompt) {
		t.Fatalf("got %v, want ErrEmptyPrompt", err)
	}
}

package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiProviderExtractsCandidateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "models/fast-model:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("expected JSON response mime type, got %q", req.GenerationConfig.ResponseMimeType)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]string{{"text": `{"question":"Why channels?"}`}},
				},
			}},
		})
	}))
	defer server.Close()

	provider := NewGeminiProvider(server.URL, "test-key", "fast-model")
	raw, err := provider.Generate(context.Background(), "prompt", GenerateConfig{Temperature: 0.7})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(raw) != `{"question":"Why channels?"}` {
		t.Fatalf("unexpected payload: %s", raw)
	}
}

func TestGeminiProviderSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "quota exhausted"}}`))
	}))
	defer server.Close()

	provider := NewGeminiProvider(server.URL, "test-key", "fast-model")
	if _, err := provider.Generate(context.Background(), "prompt", GenerateConfig{}); err == nil || !strings.Contains(err.Error(), "quota exhausted") {
		t.Fatalf("expected quota error, got %v", err)
	}
}

func TestGeminiProviderRejectsEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	provider := NewGeminiProvider(server.URL, "test-key", "fast-model")
	if _, err := provider.Generate(context.Background(), "prompt", GenerateConfig{}); err == nil {
		t.Fatalf("expected error for empty candidates")
	}
}

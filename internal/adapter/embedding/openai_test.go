package embedding

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ragjournal/config"
)

func TestNewEmbedder_Mock(t *testing.T) {
	e, err := NewEmbedder(config.EmbeddingConfig{Provider: "mock", Dimension: 8})
	if err != nil {
		t.Fatalf("NewEmbedder failed: %v", err)
	}
	if e.Dimension() != 8 {
		t.Errorf("Dimension = %d, want 8", e.Dimension())
	}

	vectors, err := e.Embed([]string{"abc", "abc", "xyz"})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vectors) != 3 {
		t.Fatalf("Got %d vectors, want 3", len(vectors))
	}
	// Deterministic: same text, same vector.
	for i := range vectors[0] {
		if vectors[0][i] != vectors[1][i] {
			t.Fatal("Mock embedding is not deterministic")
		}
	}
}

func TestNewEmbedder_UnknownProvider(t *testing.T) {
	_, err := NewEmbedder(config.EmbeddingConfig{Provider: "semaphore"})
	if err == nil {
		t.Error("Expected error for unknown provider without base_url")
	}
}

func TestEmbed_BatchesRequests(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		var req embeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Bad request body: %v", err)
		}
		if len(req.Input) > 2 {
			t.Errorf("Batch of %d inputs exceeds batch size 2", len(req.Input))
		}

		resp := embeddingResponse{Data: make([]embeddingData, len(req.Input))}
		for i := range req.Input {
			resp.Data[i] = embeddingData{Index: i, Embedding: []float32{float32(len(req.Input[i]))}}
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	e := &OpenAIEmbedder{
		apiKey:    "k",
		model:     "m",
		baseURL:   srv.URL,
		batchSize: 2,
		client:    &http.Client{Timeout: 5 * time.Second},
	}

	vectors, err := e.Embed([]string{"a", "bb", "ccc", "dddd", "eeeee"})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if requests != 3 {
		t.Errorf("Made %d requests, want 3 batches of size <= 2", requests)
	}
	if len(vectors) != 5 {
		t.Fatalf("Got %d vectors, want 5", len(vectors))
	}
	for i, want := range []float32{1, 2, 3, 4, 5} {
		if vectors[i][0] != want {
			t.Errorf("vectors[%d] = %v, want [%v]", i, vectors[i], want)
		}
	}
}

func TestEmbed_ReordersByIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Data arrives out of order; Index assigns the slot.
		fmt.Fprint(w, `{"data": [
			{"index": 1, "embedding": [2.0]},
			{"index": 0, "embedding": [1.0]}
		]}`)
	}))
	defer srv.Close()

	e := &OpenAIEmbedder{
		apiKey:    "k",
		model:     "m",
		baseURL:   srv.URL,
		batchSize: 10,
		client:    &http.Client{Timeout: 5 * time.Second},
	}

	vectors, err := e.Embed([]string{"first", "second"})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if vectors[0][0] != 1.0 || vectors[1][0] != 2.0 {
		t.Errorf("Vectors not reordered by index: %v", vectors)
	}
}

func TestEmbed_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error": {"message": "quota exceeded", "type": "rate_limit"}}`)
	}))
	defer srv.Close()

	e := &OpenAIEmbedder{
		apiKey:    "k",
		model:     "m",
		baseURL:   srv.URL,
		batchSize: 10,
		client:    &http.Client{Timeout: 5 * time.Second},
	}

	if _, err := e.Embed([]string{"x"}); err == nil {
		t.Error("Expected error from API error payload")
	}
}

func TestEmbed_EmptyInput(t *testing.T) {
	e := NewMockEmbedder(4)
	vectors, err := e.Embed(nil)
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vectors) != 0 {
		t.Errorf("Got %d vectors for empty input", len(vectors))
	}
}

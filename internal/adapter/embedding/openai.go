package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"ragjournal/config"
)

// OpenAIEmbedder talks to any OpenAI-compatible /embeddings endpoint.
type OpenAIEmbedder struct {
	apiKey    string
	model     string
	baseURL   string
	dimension int
	batchSize int
	client    *http.Client
}

type embeddingRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type embeddingResponse struct {
	Data  []embeddingData `json:"data"`
	Error *apiError       `json:"error,omitempty"`
}

type embeddingData struct {
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

var providerBaseURLs = map[string]string{
	"openai": "https://api.openai.com/v1",
	"jina":   "https://api.jina.ai/v1",
	"ollama": "http://localhost:11434/v1",
}

// NewEmbedder creates an embedder from configuration. The "mock"
// provider needs no network and no API key.
func NewEmbedder(cfg config.EmbeddingConfig) (Embedder, error) {
	if cfg.Provider == "mock" {
		return NewMockEmbedder(cfg.Dimension), nil
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		var ok bool
		baseURL, ok = providerBaseURLs[cfg.Provider]
		if !ok {
			return nil, fmt.Errorf("unknown embedding provider: %s (set base_url for custom endpoints)", cfg.Provider)
		}
	}

	apiKey := "ollama"
	if cfg.Provider != "ollama" {
		apiKey = os.Getenv(cfg.APIKeyEnv)
		if apiKey == "" {
			return nil, fmt.Errorf("API key not found in environment variable: %s", cfg.APIKeyEnv)
		}
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	return &OpenAIEmbedder{
		apiKey:    apiKey,
		model:     cfg.Model,
		baseURL:   baseURL,
		dimension: cfg.Dimension,
		batchSize: batchSize,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// Embedder matches port.Embedder; declared here so the factory does not
// import internal packages and stays usable from external tooling.
type Embedder interface {
	Embed(texts []string) ([][]float32, error)
	Dimension() int
	ModelName() string
}

func (e *OpenAIEmbedder) Embed(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var allEmbeddings [][]float32
	for i := 0; i < len(texts); i += e.batchSize {
		end := i + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		embeddings, err := e.embedBatch(texts[i:end])
		if err != nil {
			return nil, err
		}
		allEmbeddings = append(allEmbeddings, embeddings...)
	}

	return allEmbeddings, nil
}

func (e *OpenAIEmbedder) embedBatch(texts []string) ([][]float32, error) {
	reqBody := embeddingRequest{
		Input: texts,
		Model: e.model,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", e.baseURL+"/embeddings", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var embResp embeddingResponse
	if err := json.Unmarshal(body, &embResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if embResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", embResp.Error.Message)
	}

	embeddings := make([][]float32, len(texts))
	for _, data := range embResp.Data {
		if data.Index < len(embeddings) {
			embeddings[data.Index] = data.Embedding
		}
	}

	return embeddings, nil
}

func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

func (e *OpenAIEmbedder) ModelName() string {
	return e.model
}

// MockEmbedder produces deterministic pseudo-embeddings for tests.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) Embed(texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i := range texts {
		embeddings[i] = make([]float32, e.dimension)

		for j, r := range texts[i] {
			if j < e.dimension {
				embeddings[i][j] = float32(r) / 1000.0
			}
		}
	}
	return embeddings, nil
}

func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}

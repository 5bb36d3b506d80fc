package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"

	"ragjournal/config"
	"ragjournal/internal/domain"
)

// Client is a generic OpenAI-compatible chat completions client with
// function calling support.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	client      *http.Client
}

var providerBaseURLs = map[string]string{
	"openai":   "https://api.openai.com/v1",
	"deepseek": "https://api.deepseek.com/v1",
	"local":    "http://localhost:11434/v1",
}

// NewClient creates a completion provider from configuration.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		var ok bool
		baseURL, ok = providerBaseURLs[cfg.Provider]
		if !ok {
			return nil, fmt.Errorf("unknown LLM provider: %s (set base_url for custom endpoints)", cfg.Provider)
		}
	}

	apiKey := ""
	if cfg.Provider != "local" {
		apiKey = os.Getenv(cfg.APIKeyEnv)
		if apiKey == "" {
			return nil, fmt.Errorf("API key not found in environment variable: %s", cfg.APIKeyEnv)
		}
	}

	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// Wire types for the chat completions endpoint.

type chatMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []wireToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
	Name       string         `json:"name,omitempty"`
}

type wireToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function wireFunction `json:"function"`
}

type wireFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type wireTool struct {
	Type     string           `json:"type"`
	Function wireFunctionSpec `json:"function"`
}

type wireFunctionSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Tools       []wireTool    `json:"tools,omitempty"`
	ToolChoice  string        `json:"tool_choice,omitempty"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateWithTools sends the conversation and the tool catalog and
// decodes the model's reply into content plus requested tool calls.
func (c *Client) GenerateWithTools(messages []domain.Turn, tools []domain.ToolSpec) (*domain.ToolResponse, error) {
	req := chatRequest{
		Model:       c.model,
		Messages:    encodeMessages(messages),
		Tools:       encodeTools(tools),
		ToolChoice:  "auto",
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	resp, err := c.complete(req)
	if err != nil {
		return nil, err
	}

	choice := resp.Choices[0]
	out := &domain.ToolResponse{
		Content:      choice.Message.Content,
		ToolCalls:    make([]domain.ToolCall, 0, len(choice.Message.ToolCalls)),
		FinishReason: choice.FinishReason,
	}

	for _, tc := range choice.Message.ToolCalls {
		params := make(map[string]any)
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &params); err != nil {
				return nil, fmt.Errorf("malformed tool arguments for %s: %w", tc.Function.Name, err)
			}
		}
		out.ToolCalls = append(out.ToolCalls, domain.ToolCall{
			ID:         tc.ID,
			Name:       tc.Function.Name,
			Parameters: params,
		})
	}

	return out, nil
}

// Generate is plain single-prompt generation, used for summarization.
func (c *Client) Generate(prompt string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	resp, err := c.complete(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *Client) ModelName() string {
	return c.model
}

func (c *Client) complete(req chatRequest) (*chatResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response (status %d): %w", resp.StatusCode, err)
	}

	if chatResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", chatResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no response from LLM")
	}

	return &chatResp, nil
}

func encodeMessages(messages []domain.Turn) []chatMessage {
	out := make([]chatMessage, 0, len(messages))
	for _, m := range messages {
		msg := chatMessage{
			Role:       string(m.Role),
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
			Name:       m.Name,
		}
		for _, tc := range m.ToolCalls {
			args, err := json.Marshal(tc.Parameters)
			if err != nil {
				args = []byte("{}")
			}
			msg.ToolCalls = append(msg.ToolCalls, wireToolCall{
				ID:   tc.ID,
				Type: "function",
				Function: wireFunction{
					Name:      tc.Name,
					Arguments: string(args),
				},
			})
		}
		out = append(out, msg)
	}
	return out
}

func encodeTools(tools []domain.ToolSpec) []wireTool {
	out := make([]wireTool, 0, len(tools))
	for _, tool := range tools {
		properties := make(map[string]any, len(tool.Parameters))
		required := make([]string, 0, len(tool.Parameters))
		for name, param := range tool.Parameters {
			prop := map[string]any{
				"type":        param.Type,
				"description": param.Description,
			}
			if param.Type == "array" {
				prop["items"] = map[string]any{"type": "string"}
			}
			properties[name] = prop
			if !param.Optional {
				required = append(required, name)
			}
		}
		sort.Strings(required)
		out = append(out, wireTool{
			Type: "function",
			Function: wireFunctionSpec{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters: map[string]any{
					"type":       "object",
					"properties": properties,
					"required":   required,
				},
			},
		})
	}
	return out
}

package port

import "ragjournal/internal/domain"

// LLM is the completion provider consumed by the agent core.
type LLM interface {
	// GenerateWithTools generates a response given the conversation and
	// the tool catalog. A final answer is represented by an empty
	// ToolCalls slice on the response.
	GenerateWithTools(messages []domain.Turn, tools []domain.ToolSpec) (*domain.ToolResponse, error)

	// Generate generates plain text from a prompt; used for history
	// summarization. maxTokens <= 0 means the provider default.
	Generate(prompt string, maxTokens int) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}

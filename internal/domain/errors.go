package domain

import (
	"errors"
	"fmt"
)

// ErrNoEmbeddings reports that semantic search found no article carrying
// an embedding. It is returned to the model as a structured payload,
// never surfaced as a run failure.
var ErrNoEmbeddings = errors.New("no articles with embeddings found")

// ValidationError reports a missing or malformed tool parameter. The
// dispatch layer converts it into a structured error result so the
// model can correct itself on the next iteration.
type ValidationError struct {
	Param   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Param, e.Message)
}

// NewValidationError creates a ValidationError for the given parameter.
func NewValidationError(param, message string) *ValidationError {
	return &ValidationError{Param: param, Message: message}
}

// UnknownToolError reports a tool name with no registry entry.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}

package domain

// Role identifies who produced a conversation turn. The set is closed:
// system, user, assistant, tool.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Turn is one entry in a conversation. Only assistant turns carry tool
// calls; only tool turns carry a ToolCallID and tool Name.
type Turn struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

func SystemTurn(content string) Turn {
	return Turn{Role: RoleSystem, Content: content}
}

func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

// AssistantToolTurn echoes an assistant response that requested tool calls.
func AssistantToolTurn(content string, calls []ToolCall) Turn {
	return Turn{Role: RoleAssistant, Content: content, ToolCalls: calls}
}

// ToolTurn pairs a serialized tool result with the call that produced it.
func ToolTurn(callID, name, content string) Turn {
	return Turn{Role: RoleTool, Content: content, ToolCallID: callID, Name: name}
}

// ToolCall is a tool invocation requested by the completion provider.
type ToolCall struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

// ToolResponse is one completion provider reply: text content plus zero
// or more requested tool calls. An empty ToolCalls slice means the
// content is the final answer.
type ToolResponse struct {
	Content      string     `json:"content"`
	ToolCalls    []ToolCall `json:"tool_calls"`
	FinishReason string     `json:"finish_reason"`
}

// ParamSpec describes one tool parameter.
type ParamSpec struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Optional    bool   `json:"optional,omitempty"`
}

// ToolSpec describes one tool exposed to the completion provider.
type ToolSpec struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Parameters  map[string]ParamSpec `json:"parameters"`
}

// ToolCallRecord is one executed tool call as reported to the caller.
type ToolCallRecord struct {
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters"`
	Result     any            `json:"result"`
}

// RunResult is the caller-facing outcome of one agent run.
type RunResult struct {
	Answer     string           `json:"answer"`
	ToolCalls  []ToolCallRecord `json:"tool_calls"`
	Iterations int              `json:"iterations"`
}

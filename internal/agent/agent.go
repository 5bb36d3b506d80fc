package agent

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"ragjournal/internal/domain"
	"ragjournal/internal/port"
)

// systemPrompt steers the model's tool use over the article corpus.
const systemPrompt = `You are an assistant that answers questions about a collection of journal articles.

You have access to tools for searching and analyzing the articles. Use them strategically:

**Search strategies:**
- For questions about CONTENT ("what does X say about Y?"): use search_by_content to find relevant articles, then get_article_details to read their full text
- For questions about WHO wrote what: use search_by_author or search_by_metadata
- For COUNTING articles: use count_articles
- You may make MULTIPLE tool calls when needed, and combine results from several tools

**Important rules:**
1. Base answers ONLY on the articles you find - NEVER invent information
2. If you find no relevant information in the articles, say so clearly
3. ALWAYS cite the title and author of articles you use as sources
4. If many articles are relevant, pick the most pertinent ones (at most 5-7) and read them in full
5. For questions about people mentioned in articles (not authors), use search_by_content

**Answer format:**
- Answer clearly and with structure, building on the article contents
- Always end by citing your sources`

// fallbackAnswer is returned when a run exhausts its iteration limit.
const fallbackAnswer = "I reached the iteration limit. Try rephrasing your question."

// Agent is the orchestration loop: it feeds context and the tool
// catalog to the completion provider, dispatches the tool calls the
// provider requests, and loops until a final answer or the iteration
// cap.
type Agent struct {
	llm           port.LLM
	tools         *Toolset
	history       *History
	maxIterations int
	logger        *slog.Logger
}

// New creates an agent. maxIterations <= 0 falls back to 10.
func New(llm port.LLM, tools *Toolset, history *History, maxIterations int, logger *slog.Logger) *Agent {
	if maxIterations <= 0 {
		maxIterations = 10
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		llm:           llm,
		tools:         tools,
		history:       history,
		maxIterations: maxIterations,
		logger:        logger,
	}
}

// Query answers a single question without touching session history.
func (a *Agent) Query(userQuery string) (*domain.RunResult, error) {
	conversation := []domain.Turn{
		domain.SystemTurn(systemPrompt),
		domain.UserTurn(userQuery),
	}
	return a.run(conversation)
}

// Chat answers within the ongoing session. The working context of the
// run stays separate from the persistent history: tool exchanges are
// discarded with the run, and only the final assistant answer is
// committed, so a failed run cannot pollute later turns.
func (a *Agent) Chat(userQuery string) (*domain.RunResult, error) {
	if a.history.MaybeCompress() {
		a.logger.Info("compressed chat history", "turns", a.history.Len())
	}

	a.history.Append(domain.UserTurn(userQuery))

	conversation := make([]domain.Turn, 0, a.history.Len()+1)
	conversation = append(conversation, domain.SystemTurn(systemPrompt))
	conversation = append(conversation, a.history.History()...)

	result, err := a.run(conversation)
	if err != nil {
		return nil, err
	}

	a.history.Append(domain.AssistantTurn(result.Answer))
	return result, nil
}

// ResetChat clears the session history.
func (a *Agent) ResetChat() {
	a.history.Reset()
}

// ChatHistory returns a copy of the session history.
func (a *Agent) ChatHistory() []domain.Turn {
	return a.history.History()
}

// run executes the bounded tool-calling loop over a working context.
// A completion provider failure is fatal to the run and is not retried;
// every tool-level problem comes back as a structured result the model
// can react to on its next turn.
func (a *Agent) run(conversation []domain.Turn) (*domain.RunResult, error) {
	var records []domain.ToolCallRecord

	for iteration := 1; iteration <= a.maxIterations; iteration++ {
		a.logger.Info("agent iteration", "iteration", iteration, "context_turns", len(conversation))

		response, err := a.llm.GenerateWithTools(conversation, a.tools.Specs())
		if err != nil {
			return nil, fmt.Errorf("completion provider failed: %w", err)
		}

		if len(response.ToolCalls) == 0 {
			a.logger.Info("answer generated", "iterations", iteration, "tool_calls", len(records))
			return &domain.RunResult{
				Answer:     response.Content,
				ToolCalls:  records,
				Iterations: iteration,
			}, nil
		}

		// One assistant turn echoing the request, then exactly one
		// result turn per call, all before the next provider call.
		conversation = append(conversation, domain.AssistantToolTurn(response.Content, response.ToolCalls))

		for _, call := range response.ToolCalls {
			a.logger.Info("tool call", "tool", call.Name, "parameters", call.Parameters)

			result := a.tools.Dispatch(call.Name, call.Parameters)
			records = append(records, domain.ToolCallRecord{
				Tool:       call.Name,
				Parameters: call.Parameters,
				Result:     result,
			})

			conversation = append(conversation, domain.ToolTurn(call.ID, call.Name, serializeResult(result)))
		}
	}

	a.logger.Warn("iteration limit reached", "iterations", a.maxIterations, "tool_calls", len(records))
	return &domain.RunResult{
		Answer:     fallbackAnswer,
		ToolCalls:  records,
		Iterations: a.maxIterations,
	}, nil
}

func serializeResult(result any) string {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf(`{"error": "unserializable tool result: %s"}`, err)
	}
	return string(data)
}

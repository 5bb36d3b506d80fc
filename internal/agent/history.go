package agent

import (
	"fmt"
	"strings"

	"ragjournal/config"
	"ragjournal/internal/domain"
	"ragjournal/internal/port"
)

const (
	// keepRecentTurns is how many turns the summary strategy keeps
	// verbatim: the last three exchanges.
	keepRecentTurns = 6

	// transcriptTurnLimit caps each old turn's contribution to the
	// summarization transcript.
	transcriptTurnLimit = 500

	summaryMaxTokens = 200
)

// History owns one session's conversation turns and their compression.
// It performs no locking; a session belongs to exactly one
// conversational client, and concurrent use is the caller's problem.
type History struct {
	llm             port.LLM
	maxHistoryTurns int
	autoCompress    bool
	strategy        string
	turns           []domain.Turn
}

// NewHistory creates an empty session history. The LLM is only used by
// the "summary" compression strategy.
func NewHistory(llm port.LLM, cfg config.ChatConfig) *History {
	return &History{
		llm:             llm,
		maxHistoryTurns: cfg.MaxHistoryTurns,
		autoCompress:    cfg.AutoCompress,
		strategy:        cfg.CompressionStrategy,
	}
}

// Append adds a turn to the end of the history.
func (h *History) Append(turn domain.Turn) {
	h.turns = append(h.turns, turn)
}

// History returns an independent copy of the stored turns.
func (h *History) History() []domain.Turn {
	out := make([]domain.Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of stored turns.
func (h *History) Len() int {
	return len(h.turns)
}

// Reset clears the history to empty.
func (h *History) Reset() {
	h.turns = nil
}

// MaybeCompress runs the configured compression strategy when the
// history has grown past twice the configured maximum turn count.
// Called before a new user turn is appended. Returns whether
// compression ran.
func (h *History) MaybeCompress() bool {
	if !h.autoCompress || len(h.turns) <= h.maxHistoryTurns*2 {
		return false
	}

	switch h.strategy {
	case "summary":
		h.compressWithSummary()
	case "truncate":
		h.truncate()
	default:
		return false
	}
	return true
}

// compressWithSummary replaces everything but the most recent turns
// with a single synthetic system turn holding an LLM-written summary.
// A summarization failure degrades to keeping only the recent tail; it
// must never block the user's current turn.
func (h *History) compressWithSummary() {
	if len(h.turns) <= keepRecentTurns {
		return
	}

	old := h.turns[:len(h.turns)-keepRecentTurns]
	recent := h.turns[len(h.turns)-keepRecentTurns:]

	var lines []string
	for _, turn := range old {
		if turn.Role != domain.RoleUser && turn.Role != domain.RoleAssistant {
			continue
		}
		content := turn.Content
		if len(content) > transcriptTurnLimit {
			content = content[:transcriptTurnLimit]
		}
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Role, content))
	}

	prompt := fmt.Sprintf(`Briefly summarize this earlier conversation in 2-3 sentences:

%s

Concise summary:`, strings.Join(lines, "\n"))

	summary, err := h.llm.Generate(prompt, summaryMaxTokens)
	if err != nil {
		h.turns = append([]domain.Turn(nil), recent...)
		return
	}

	compressed := make([]domain.Turn, 0, keepRecentTurns+1)
	compressed = append(compressed, domain.SystemTurn(
		fmt.Sprintf("[Earlier conversation context: %s]", summary)))
	compressed = append(compressed, recent...)
	h.turns = compressed
}

// truncate deterministically keeps only the most recent
// 2*maxHistoryTurns turns. No external call.
func (h *History) truncate() {
	keep := h.maxHistoryTurns * 2
	if len(h.turns) > keep {
		h.turns = append([]domain.Turn(nil), h.turns[len(h.turns)-keep:]...)
	}
}

package cli

import (
	"fmt"
	"log/slog"
	"os"

	"ragjournal/config"
	"ragjournal/internal/adapter/embedding"
	"ragjournal/internal/adapter/llm"
	"ragjournal/internal/adapter/store"
	"ragjournal/internal/agent"
)

// openStore opens the article database, requiring it to exist.
func openStore() (*store.BoltStore, error) {
	dbPath := config.DatabasePath(GetRootDir(), GetConfig())
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no article database found at %s. Run 'ragjournal ingest' first", dbPath)
	}
	return store.NewBoltStore(dbPath)
}

// buildAgent wires the full agent: store, embedder, completion
// provider, toolset and session history. The caller owns the store.
func buildAgent() (*agent.Agent, *store.BoltStore, error) {
	cfg := GetConfig()

	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	embedder, err := embedding.NewEmbedder(cfg.Embedding)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	provider, err := llm.NewClient(cfg.LLM)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	toolset := agent.NewToolset(st, embedder, cfg.Retrieval)
	history := agent.NewHistory(provider, cfg.Chat)
	ag := agent.New(provider, toolset, history, cfg.Agent.MaxIterations, slog.Default())

	return ag, st, nil
}

package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the RAG journal tool.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Chat      ChatConfig      `yaml:"chat"`
	Agent     AgentConfig     `yaml:"agent"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DatabaseConfig holds article store configuration.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LLMConfig holds completion provider configuration.
// Any OpenAI-compatible chat completions endpoint works; BaseURL
// overrides the provider default.
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // "openai", "deepseek", "local"
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"` // Environment variable for API key
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // "openai", "jina", "ollama", "mock"
	Model     string `yaml:"model"`    // e.g., "text-embedding-3-small"
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Dimension int    `yaml:"dimension"`
	BatchSize int    `yaml:"batch_size"`
}

// RetrievalConfig holds result caps and the semantic similarity threshold.
type RetrievalConfig struct {
	MaxResults          int     `yaml:"max_results"`          // metadata search cap
	AuthorResults       int     `yaml:"author_results"`       // author search cap
	SemanticTopK        int     `yaml:"semantic_top_k"`       // semantic search result count
	SimilarityThreshold float64 `yaml:"similarity_threshold"` // minimum cosine score for a semantic match
}

// ChatConfig holds conversation history management configuration.
type ChatConfig struct {
	MaxHistoryTurns     int    `yaml:"max_history_turns"`
	AutoCompress        bool   `yaml:"auto_compress"`
	CompressionStrategy string `yaml:"compression_strategy"` // "summary" or "truncate"
}

// AgentConfig holds orchestration loop configuration.
type AgentConfig struct {
	MaxIterations int `yaml:"max_iterations"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: ".ragjournal/articles.db",
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			APIKeyEnv:   "OPENAI_API_KEY",
			MaxTokens:   2000,
			Temperature: 0.1,
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 1536,
			BatchSize: 100,
		},
		Retrieval: RetrievalConfig{
			MaxResults:          100,
			AuthorResults:       50,
			SemanticTopK:        10,
			SimilarityThreshold: 0.3,
		},
		Chat: ChatConfig{
			MaxHistoryTurns:     10,
			AutoCompress:        true,
			CompressionStrategy: "summary",
		},
		Agent: AgentConfig{
			MaxIterations: 10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for ragjournal.yaml).
func LoadFromDir(dir string) (*Config, error) {
	// Try ragjournal.yaml in the directory
	path := filepath.Join(dir, "ragjournal.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Try .ragjournal/config.yaml
	path = filepath.Join(dir, ".ragjournal", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Return defaults
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DatabasePath resolves the article database path relative to dir.
func DatabasePath(dir string, cfg *Config) string {
	if filepath.IsAbs(cfg.Database.Path) {
		return cfg.Database.Path
	}
	return filepath.Join(dir, cfg.Database.Path)
}

// EnsureDataDir ensures the directory holding the database exists.
func EnsureDataDir(dbPath string) error {
	return os.MkdirAll(filepath.Dir(dbPath), 0755)
}

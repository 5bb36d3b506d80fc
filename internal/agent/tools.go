package agent

import (
	"ragjournal/config"
	"ragjournal/internal/domain"
	"ragjournal/internal/port"
)

// toolHandler executes one validated tool call.
type toolHandler func(params map[string]any) (any, error)

// Toolset is the static catalog of retrieval tools exposed to the
// completion provider, plus the dispatch table that runs them. The
// catalog is fixed at construction; the model can never mutate it.
type Toolset struct {
	store    port.ArticleStore
	embedder port.Embedder

	maxResults    int
	authorResults int
	semanticTopK  int
	threshold     float64

	specs    []domain.ToolSpec
	handlers map[string]toolHandler
}

// NewToolset wires the retrieval primitives to a store and embedder.
// Caps and the similarity threshold come from configuration.
func NewToolset(store port.ArticleStore, embedder port.Embedder, cfg config.RetrievalConfig) *Toolset {
	t := &Toolset{
		store:         store,
		embedder:      embedder,
		maxResults:    cfg.MaxResults,
		authorResults: cfg.AuthorResults,
		semanticTopK:  cfg.SemanticTopK,
		threshold:     cfg.SimilarityThreshold,
	}

	t.specs = []domain.ToolSpec{
		{
			Name:        "search_by_content",
			Description: "Search articles by semantic content. Use this when the question is about WHAT the articles say on a specific topic.",
			Parameters: map[string]domain.ParamSpec{
				"query": {
					Type:        "string",
					Description: "Semantic search query (e.g. 'energy policy', 'war in Ukraine')",
				},
			},
		},
		{
			Name:        "search_by_author",
			Description: "Find all articles written by a specific author.",
			Parameters: map[string]domain.ParamSpec{
				"author": {
					Type:        "string",
					Description: "Name of the author to search for",
				},
			},
		},
		{
			Name:        "search_by_metadata",
			Description: "Filter articles by metadata (author, date, categories). Use this for complex queries with multiple filters.",
			Parameters: map[string]domain.ParamSpec{
				"author": {
					Type:        "string",
					Description: "Author name (optional)",
					Optional:    true,
				},
				"date_from": {
					Type:        "string",
					Description: "Start date in YYYY-MM-DD format (optional)",
					Optional:    true,
				},
				"date_to": {
					Type:        "string",
					Description: "End date in YYYY-MM-DD format (optional)",
					Optional:    true,
				},
				"categories": {
					Type:        "array",
					Description: "List of categories (optional)",
					Optional:    true,
				},
			},
		},
		{
			Name:        "count_articles",
			Description: "Count how many articles match the given criteria. Use this for 'how many articles...' questions.",
			Parameters: map[string]domain.ParamSpec{
				"author": {
					Type:        "string",
					Description: "Author name (optional)",
					Optional:    true,
				},
				"date_from": {
					Type:        "string",
					Description: "Start date (optional)",
					Optional:    true,
				},
				"date_to": {
					Type:        "string",
					Description: "End date (optional)",
					Optional:    true,
				},
				"categories": {
					Type:        "array",
					Description: "Categories (optional)",
					Optional:    true,
				},
			},
		},
		{
			Name:        "get_article_details",
			Description: "Retrieve the full content of specific articles. Use this after finding relevant articles to read their content.",
			Parameters: map[string]domain.ParamSpec{
				"article_ids": {
					Type:        "array",
					Description: "List of article_id values to retrieve",
				},
			},
		},
	}

	t.handlers = map[string]toolHandler{
		"search_by_content":   t.searchByContent,
		"search_by_author":    t.searchByAuthor,
		"search_by_metadata":  t.searchByMetadata,
		"count_articles":      t.countArticles,
		"get_article_details": t.getArticleDetails,
	}

	return t
}

// Specs returns the tool catalog in its fixed declaration order.
func (t *Toolset) Specs() []domain.ToolSpec {
	return t.specs
}

// errorResult is the structured error payload fed back to the model.
type errorResult struct {
	Error string `json:"error"`
}

// Dispatch runs the named tool and always returns a result: either the
// tool's payload or a structured error the model can react to. It
// never panics and never propagates an error across the loop boundary.
func (t *Toolset) Dispatch(name string, params map[string]any) any {
	handler, ok := t.handlers[name]
	if !ok {
		return errorResult{Error: (&domain.UnknownToolError{Name: name}).Error()}
	}

	result, err := handler(params)
	if err != nil {
		return errorResult{Error: err.Error()}
	}
	return result
}

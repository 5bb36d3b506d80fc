package port

import "ragjournal/internal/domain"

// ArticleStore holds the article corpus. The query core only reads from
// it; writes happen on the ingest path.
type ArticleStore interface {
	// Find returns articles matching the filter, capped at limit when
	// limit > 0. An empty result is a normal zero-length success.
	Find(filter domain.ArticleFilter, limit int) ([]domain.Article, error)

	// Count returns the number of articles matching the filter without
	// materializing them for the caller.
	Count(filter domain.ArticleFilter) (int, error)

	// GetAll returns every article. Full scan; used by semantic search.
	GetAll() ([]domain.Article, error)

	// GetByIDs fetches articles by id. Missing ids are silently omitted.
	GetByIDs(ids []string) ([]domain.Article, error)

	// Exists reports whether an article id is already stored.
	Exists(id string) (bool, error)

	// Put inserts or replaces one article.
	Put(article domain.Article) error

	// BatchPut inserts or replaces multiple articles.
	BatchPut(articles []domain.Article) error

	// Stats summarizes the collection.
	Stats() (domain.CorpusStats, error)

	Close() error
}

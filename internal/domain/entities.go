package domain

import "time"

// Article is one ingested journal article. Read-only to the query core;
// created only by the ingest path.
type Article struct {
	ArticleID string          `json:"article_id"`
	Metadata  ArticleMetadata `json:"metadata"`
	Content   ArticleContent  `json:"content"`
	Embedding []float32       `json:"embedding,omitempty"`
	URL       string          `json:"url,omitempty"`
	Source    string          `json:"source,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type ArticleMetadata struct {
	Author          string     `json:"author"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	Categories      []string   `json:"categories"`
	Translator      string     `json:"translator,omitempty"`
	Title           string     `json:"title"`
}

type ArticleContent struct {
	FullText  string `json:"full_text"`
	WordCount int    `json:"word_count"`
	Summary   string `json:"summary,omitempty"`
}

// DateString renders the publication date as YYYY-MM-DD, or "N/A" when unset.
func (m ArticleMetadata) DateString() string {
	if m.PublicationDate == nil {
		return "N/A"
	}
	return m.PublicationDate.Format("2006-01-02")
}

// ArticleFilter selects articles by metadata. Zero-value fields are
// not applied. Author matches as a case-insensitive substring, date
// bounds are inclusive, categories match on set intersection.
type ArticleFilter struct {
	Author     string
	DateFrom   *time.Time
	DateTo     *time.Time
	Categories []string
}

// IsZero reports whether the filter applies no constraints.
func (f ArticleFilter) IsZero() bool {
	return f.Author == "" && f.DateFrom == nil && f.DateTo == nil && len(f.Categories) == 0
}

// ScoredArticle attaches a transient similarity score to an article
// during one ranking pass.
type ScoredArticle struct {
	Article Article
	Score   float64
}

// CorpusStats summarizes the article collection.
type CorpusStats struct {
	TotalArticles int        `json:"total_articles"`
	UniqueAuthors int        `json:"unique_authors"`
	WithEmbedding int        `json:"with_embedding"`
	OldestDate    *time.Time `json:"oldest_date,omitempty"`
	NewestDate    *time.Time `json:"newest_date,omitempty"`
}

// ArticleRef is the compact article shape returned by search tools.
type ArticleRef struct {
	ArticleID       string  `json:"article_id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Date            string  `json:"date"`
	URL             string  `json:"url,omitempty"`
	Source          string  `json:"source,omitempty"`
	SimilarityScore float64 `json:"similarity_score,omitempty"`
}

// ArticleDetail is the full-content article shape returned by
// get_article_details.
type ArticleDetail struct {
	ArticleID string `json:"article_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Date      string `json:"date"`
	URL       string `json:"url,omitempty"`
	Source    string `json:"source,omitempty"`
	Content   string `json:"content"`
}

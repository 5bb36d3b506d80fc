package agent

import (
	"fmt"
	"math"
	"time"

	"ragjournal/internal/domain"
)

// SearchResult is the payload of the article search tools.
type SearchResult struct {
	TotalFound  int                 `json:"total_found"`
	FiltersUsed map[string]any      `json:"filters_used,omitempty"`
	Articles    []domain.ArticleRef `json:"articles"`
	Message     string              `json:"message,omitempty"`
}

// CountResult is the payload of count_articles.
type CountResult struct {
	Count       int            `json:"count"`
	FiltersUsed map[string]any `json:"filters_used"`
}

// DetailsResult is the payload of get_article_details.
type DetailsResult struct {
	TotalFound int                    `json:"total_found"`
	Articles   []domain.ArticleDetail `json:"articles"`
}

func (t *Toolset) searchByContent(params map[string]any) (any, error) {
	query, err := stringParam(params, "query")
	if err != nil {
		return nil, err
	}

	embeddings, err := t.embedder.Embed([]string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedding returned empty result")
	}

	all, err := t.store.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to scan articles: %w", err)
	}

	candidates := make([]domain.Article, 0, len(all))
	for _, article := range all {
		if len(article.Embedding) > 0 {
			candidates = append(candidates, article)
		}
	}

	if len(candidates) == 0 {
		return SearchResult{
			Articles: []domain.ArticleRef{},
			Message:  domain.ErrNoEmbeddings.Error(),
		}, nil
	}

	ranked, err := RankBySimilarity(embeddings[0], candidates)
	if err != nil {
		return nil, err
	}

	// Threshold before truncation: the reported count covers qualifying
	// articles only.
	qualifying := make([]domain.ScoredArticle, 0, len(ranked))
	for _, sa := range ranked {
		if sa.Score > t.threshold {
			qualifying = append(qualifying, sa)
		}
	}
	if len(qualifying) > t.semanticTopK {
		qualifying = qualifying[:t.semanticTopK]
	}

	refs := make([]domain.ArticleRef, 0, len(qualifying))
	for _, sa := range qualifying {
		ref := articleRef(sa.Article)
		ref.SimilarityScore = math.Round(sa.Score*1000) / 1000
		refs = append(refs, ref)
	}

	return SearchResult{
		TotalFound: len(refs),
		Articles:   refs,
	}, nil
}

func (t *Toolset) searchByAuthor(params map[string]any) (any, error) {
	author, err := stringParam(params, "author")
	if err != nil {
		return nil, err
	}

	articles, err := t.store.Find(domain.ArticleFilter{Author: author}, t.authorResults)
	if err != nil {
		return nil, fmt.Errorf("author search failed: %w", err)
	}

	return SearchResult{
		TotalFound: len(articles),
		Articles:   articleRefs(articles),
	}, nil
}

func (t *Toolset) searchByMetadata(params map[string]any) (any, error) {
	filter, err := filterFromParams(params)
	if err != nil {
		return nil, err
	}

	articles, err := t.store.Find(filter, t.maxResults)
	if err != nil {
		return nil, fmt.Errorf("metadata search failed: %w", err)
	}

	return SearchResult{
		TotalFound:  len(articles),
		FiltersUsed: params,
		Articles:    articleRefs(articles),
	}, nil
}

func (t *Toolset) countArticles(params map[string]any) (any, error) {
	filter, err := filterFromParams(params)
	if err != nil {
		return nil, err
	}

	count, err := t.store.Count(filter)
	if err != nil {
		return nil, fmt.Errorf("count failed: %w", err)
	}

	return CountResult{
		Count:       count,
		FiltersUsed: params,
	}, nil
}

func (t *Toolset) getArticleDetails(params map[string]any) (any, error) {
	ids, err := stringListParam(params, "article_ids")
	if err != nil {
		return nil, err
	}

	articles, err := t.store.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("detail fetch failed: %w", err)
	}

	details := make([]domain.ArticleDetail, 0, len(articles))
	for _, article := range articles {
		details = append(details, domain.ArticleDetail{
			ArticleID: article.ArticleID,
			Title:     article.Metadata.Title,
			Author:    article.Metadata.Author,
			Date:      article.Metadata.DateString(),
			URL:       article.URL,
			Source:    article.Source,
			Content:   article.Content.FullText,
		})
	}

	// Ids absent from the store are silently omitted; total_found below
	// the requested count is the only signal.
	return DetailsResult{
		TotalFound: len(details),
		Articles:   details,
	}, nil
}

// filterFromParams builds an ArticleFilter from the shared optional
// parameters of search_by_metadata and count_articles.
func filterFromParams(params map[string]any) (domain.ArticleFilter, error) {
	var filter domain.ArticleFilter

	author, err := optionalStringParam(params, "author")
	if err != nil {
		return filter, err
	}
	filter.Author = author

	if from, err := optionalDateParam(params, "date_from"); err != nil {
		return filter, err
	} else if from != nil {
		filter.DateFrom = from
	}

	if to, err := optionalDateParam(params, "date_to"); err != nil {
		return filter, err
	} else if to != nil {
		filter.DateTo = to
	}

	if raw, ok := params["categories"]; ok && raw != nil {
		categories, err := toStringList(raw)
		if err != nil {
			return filter, domain.NewValidationError("categories", err.Error())
		}
		filter.Categories = categories
	}

	return filter, nil
}

func stringParam(params map[string]any, name string) (string, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return "", domain.NewValidationError(name, "required parameter is missing")
	}
	s, ok := raw.(string)
	if !ok {
		return "", domain.NewValidationError(name, fmt.Sprintf("expected a string, got %T", raw))
	}
	if s == "" {
		return "", domain.NewValidationError(name, "must not be empty")
	}
	return s, nil
}

func optionalStringParam(params map[string]any, name string) (string, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", domain.NewValidationError(name, fmt.Sprintf("expected a string, got %T", raw))
	}
	return s, nil
}

func optionalDateParam(params map[string]any, name string) (*time.Time, error) {
	s, err := optionalStringParam(params, name)
	if err != nil || s == "" {
		return nil, err
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, domain.NewValidationError(name, fmt.Sprintf("unparseable date %q, expected YYYY-MM-DD", s))
	}
	return &d, nil
}

func stringListParam(params map[string]any, name string) ([]string, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return nil, domain.NewValidationError(name, "required parameter is missing")
	}
	list, err := toStringList(raw)
	if err != nil {
		return nil, domain.NewValidationError(name, err.Error())
	}
	return list, nil
}

// toStringList accepts both []string and the []any produced by JSON
// decoding of tool arguments.
func toStringList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected a list of strings, got element of type %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list of strings, got %T", raw)
	}
}

func articleRef(a domain.Article) domain.ArticleRef {
	return domain.ArticleRef{
		ArticleID: a.ArticleID,
		Title:     a.Metadata.Title,
		Author:    a.Metadata.Author,
		Date:      a.Metadata.DateString(),
		URL:       a.URL,
		Source:    a.Source,
	}
}

func articleRefs(articles []domain.Article) []domain.ArticleRef {
	refs := make([]domain.ArticleRef, 0, len(articles))
	for _, a := range articles {
		refs = append(refs, articleRef(a))
	}
	return refs
}

package agent

import (
	"strings"
	"testing"
	"time"

	"ragjournal/config"
	"ragjournal/internal/adapter/memstore"
	"ragjournal/internal/domain"
)

// fixedEmbedder returns the same vector for every input text.
type fixedEmbedder struct {
	vector []float32
	err    error
}

func (e *fixedEmbedder) Embed(texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = e.vector
	}
	return out, nil
}

func (e *fixedEmbedder) Dimension() int    { return len(e.vector) }
func (e *fixedEmbedder) ModelName() string { return "fixed" }

func date(s string) *time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &d
}

func testArticle(id, author string, pubDate *time.Time, categories []string, embedding []float32) domain.Article {
	return domain.Article{
		ArticleID: id,
		Metadata: domain.ArticleMetadata{
			Title:           "Title of " + id,
			Author:          author,
			PublicationDate: pubDate,
			Categories:      categories,
		},
		Content:   domain.ArticleContent{FullText: "Full text of " + id},
		Embedding: embedding,
	}
}

func newTestToolset(t *testing.T, articles []domain.Article) *Toolset {
	t.Helper()
	store := memstore.NewMemoryStore()
	if err := store.BatchPut(articles); err != nil {
		t.Fatalf("BatchPut failed: %v", err)
	}
	embedder := &fixedEmbedder{vector: []float32{1, 0}}
	return NewToolset(store, embedder, config.RetrievalConfig{
		MaxResults:          100,
		AuthorResults:       50,
		SemanticTopK:        10,
		SimilarityThreshold: 0.3,
	})
}

func TestSearchByContent_ThresholdAndOrder(t *testing.T) {
	ts := newTestToolset(t, []domain.Article{
		testArticle("exact", "Rossi", nil, nil, []float32{1, 0}),
		testArticle("close", "Bianchi", nil, nil, []float32{0.8, 0.6}),
		testArticle("unrelated", "Verdi", nil, nil, []float32{0, 1}),
	})

	result := ts.Dispatch("search_by_content", map[string]any{"query": "anything"})
	search, ok := result.(SearchResult)
	if !ok {
		t.Fatalf("Got %T, want SearchResult", result)
	}

	// "unrelated" scores 0.0 and falls under the 0.3 threshold.
	if search.TotalFound != 2 {
		t.Errorf("TotalFound = %d, want 2", search.TotalFound)
	}
	want := []string{"exact", "close"}
	for i, id := range want {
		if search.Articles[i].ArticleID != id {
			t.Errorf("Articles[%d] = %s, want %s", i, search.Articles[i].ArticleID, id)
		}
	}
	if search.Articles[0].SimilarityScore != 1.0 {
		t.Errorf("Top score = %f, want 1.0", search.Articles[0].SimilarityScore)
	}
}

func TestSearchByContent_TopKAfterThreshold(t *testing.T) {
	store := memstore.NewMemoryStore()
	articles := []domain.Article{
		testArticle("a", "X", nil, nil, []float32{1, 0}),
		testArticle("b", "X", nil, nil, []float32{0.9, 0.1}),
		testArticle("c", "X", nil, nil, []float32{0.8, 0.2}),
	}
	if err := store.BatchPut(articles); err != nil {
		t.Fatal(err)
	}
	ts := NewToolset(store, &fixedEmbedder{vector: []float32{1, 0}}, config.RetrievalConfig{
		MaxResults:          100,
		AuthorResults:       50,
		SemanticTopK:        2,
		SimilarityThreshold: 0.3,
	})

	result := ts.Dispatch("search_by_content", map[string]any{"query": "q"})
	search := result.(SearchResult)
	if search.TotalFound != 2 {
		t.Errorf("TotalFound = %d, want 2 (top-k cap)", search.TotalFound)
	}
	if search.Articles[0].ArticleID != "a" {
		t.Errorf("Top article = %s, want a", search.Articles[0].ArticleID)
	}
}

func TestSearchByContent_NoEmbeddings(t *testing.T) {
	ts := newTestToolset(t, []domain.Article{
		testArticle("plain", "Rossi", nil, nil, nil),
	})

	result := ts.Dispatch("search_by_content", map[string]any{"query": "q"})
	search, ok := result.(SearchResult)
	if !ok {
		t.Fatalf("Got %T, want SearchResult", result)
	}
	if len(search.Articles) != 0 {
		t.Errorf("Got %d articles, want 0", len(search.Articles))
	}
	if search.Message != domain.ErrNoEmbeddings.Error() {
		t.Errorf("Message = %q, want %q", search.Message, domain.ErrNoEmbeddings.Error())
	}
}

func TestSearchByContent_MissingQuery(t *testing.T) {
	ts := newTestToolset(t, nil)
	result := ts.Dispatch("search_by_content", map[string]any{})
	errRes, ok := result.(errorResult)
	if !ok {
		t.Fatalf("Got %T, want errorResult", result)
	}
	if !strings.Contains(errRes.Error, "query") {
		t.Errorf("Error %q does not name the missing parameter", errRes.Error)
	}
}

func TestSearchByAuthor_SubstringMatch(t *testing.T) {
	ts := newTestToolset(t, []domain.Article{
		testArticle("one", "Maria Rossi", nil, nil, nil),
		testArticle("two", "Paolo Bianchi", nil, nil, nil),
		testArticle("three", "Anna Rossini", nil, nil, nil),
	})

	result := ts.Dispatch("search_by_author", map[string]any{"author": "rossi"})
	search := result.(SearchResult)
	if search.TotalFound != 2 {
		t.Errorf("TotalFound = %d, want 2 (case-insensitive substring)", search.TotalFound)
	}
}

func TestSearchByMetadata_DateAndCategories(t *testing.T) {
	ts := newTestToolset(t, []domain.Article{
		testArticle("old", "Rossi", date("2020-01-15"), []string{"politics"}, nil),
		testArticle("new", "Rossi", date("2023-06-01"), []string{"economy"}, nil),
		testArticle("undated", "Rossi", nil, []string{"economy"}, nil),
	})

	result := ts.Dispatch("search_by_metadata", map[string]any{
		"date_from":  "2022-01-01",
		"categories": []any{"economy"},
	})
	search := result.(SearchResult)
	if search.TotalFound != 1 {
		t.Fatalf("TotalFound = %d, want 1", search.TotalFound)
	}
	if search.Articles[0].ArticleID != "new" {
		t.Errorf("Matched %s, want new", search.Articles[0].ArticleID)
	}
}

func TestSearchByMetadata_BadDate(t *testing.T) {
	ts := newTestToolset(t, nil)
	result := ts.Dispatch("search_by_metadata", map[string]any{"date_from": "June 2023"})
	errRes, ok := result.(errorResult)
	if !ok {
		t.Fatalf("Got %T, want errorResult", result)
	}
	if !strings.Contains(errRes.Error, "date_from") {
		t.Errorf("Error %q does not name the bad parameter", errRes.Error)
	}
}

func TestCountMatchesSearch(t *testing.T) {
	ts := newTestToolset(t, []domain.Article{
		testArticle("one", "Rossi", nil, nil, nil),
		testArticle("two", "Rossi", nil, nil, nil),
		testArticle("three", "Bianchi", nil, nil, nil),
	})

	params := map[string]any{"author": "Rossi"}
	search := ts.Dispatch("search_by_metadata", params).(SearchResult)
	count := ts.Dispatch("count_articles", params).(CountResult)
	if count.Count != search.TotalFound {
		t.Errorf("count_articles = %d, search_by_metadata found %d", count.Count, search.TotalFound)
	}
	if count.Count != 2 {
		t.Errorf("Count = %d, want 2", count.Count)
	}
}

func TestGetArticleDetails_MissingIDsOmitted(t *testing.T) {
	ts := newTestToolset(t, []domain.Article{
		testArticle("present", "Rossi", date("2021-03-02"), nil, nil),
	})

	result := ts.Dispatch("get_article_details", map[string]any{
		"article_ids": []any{"present", "ghost"},
	})
	details, ok := result.(DetailsResult)
	if !ok {
		t.Fatalf("Got %T, want DetailsResult", result)
	}
	if details.TotalFound != 1 {
		t.Errorf("TotalFound = %d, want 1", details.TotalFound)
	}
	if details.Articles[0].Content != "Full text of present" {
		t.Errorf("Content = %q, want full text", details.Articles[0].Content)
	}
	if details.Articles[0].Date != "2021-03-02" {
		t.Errorf("Date = %q, want 2021-03-02", details.Articles[0].Date)
	}
}

func TestDispatch_UnknownTool(t *testing.T) {
	ts := newTestToolset(t, nil)
	result := ts.Dispatch("teleport_articles", nil)
	errRes, ok := result.(errorResult)
	if !ok {
		t.Fatalf("Got %T, want errorResult", result)
	}
	if errRes.Error != "Unknown tool: teleport_articles" {
		t.Errorf("Error = %q, want %q", errRes.Error, "Unknown tool: teleport_articles")
	}
}

func TestSpecs_CatalogOrder(t *testing.T) {
	ts := newTestToolset(t, nil)
	specs := ts.Specs()
	want := []string{
		"search_by_content",
		"search_by_author",
		"search_by_metadata",
		"count_articles",
		"get_article_details",
	}
	if len(specs) != len(want) {
		t.Fatalf("Got %d specs, want %d", len(specs), len(want))
	}
	for i, name := range want {
		if specs[i].Name != name {
			t.Errorf("specs[%d] = %s, want %s", i, specs[i].Name, name)
		}
	}
}

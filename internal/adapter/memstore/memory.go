package memstore

import (
	"sort"
	"sync"

	"ragjournal/internal/domain"
)

// MemoryStore is an in-memory ArticleStore for tests and ephemeral
// corpora. Iteration order is fixed by article id so results are
// deterministic.
type MemoryStore struct {
	mu       sync.RWMutex
	articles map[string]domain.Article
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		articles: make(map[string]domain.Article),
	}
}

func (s *MemoryStore) Put(article domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[article.ArticleID] = article
	return nil
}

func (s *MemoryStore) BatchPut(articles []domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, article := range articles {
		s.articles[article.ArticleID] = article
	}
	return nil
}

func (s *MemoryStore) Exists(id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.articles[id]
	return ok, nil
}

func (s *MemoryStore) Find(filter domain.ArticleFilter, limit int) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var articles []domain.Article
	for _, id := range s.sortedIDs() {
		article := s.articles[id]
		if !filter.Matches(article) {
			continue
		}
		articles = append(articles, article)
		if limit > 0 && len(articles) >= limit {
			break
		}
	}
	return articles, nil
}

func (s *MemoryStore) Count(filter domain.ArticleFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, article := range s.articles {
		if filter.Matches(article) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) GetAll() ([]domain.Article, error) {
	return s.Find(domain.ArticleFilter{}, 0)
}

func (s *MemoryStore) GetByIDs(ids []string) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var articles []domain.Article
	for _, id := range ids {
		if article, ok := s.articles[id]; ok {
			articles = append(articles, article)
		}
	}
	return articles, nil
}

func (s *MemoryStore) Stats() (domain.CorpusStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats domain.CorpusStats
	authors := make(map[string]struct{})
	for _, article := range s.articles {
		stats.TotalArticles++
		if len(article.Embedding) > 0 {
			stats.WithEmbedding++
		}
		if article.Metadata.Author != "" {
			authors[article.Metadata.Author] = struct{}{}
		}
		if pub := article.Metadata.PublicationDate; pub != nil {
			if stats.OldestDate == nil || pub.Before(*stats.OldestDate) {
				d := *pub
				stats.OldestDate = &d
			}
			if stats.NewestDate == nil || pub.After(*stats.NewestDate) {
				d := *pub
				stats.NewestDate = &d
			}
		}
	}
	stats.UniqueAuthors = len(authors)
	return stats, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// sortedIDs must be called with the lock held.
func (s *MemoryStore) sortedIDs() []string {
	ids := make([]string, 0, len(s.articles))
	for id := range s.articles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

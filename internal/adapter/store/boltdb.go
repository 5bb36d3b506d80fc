package store

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
	"ragjournal/internal/domain"
)

var bucketArticles = []byte("articles")

// BoltStore is a bbolt-backed ArticleStore. Articles are stored as JSON
// keyed by article id; filtering is a bucket scan, which is fine for a
// corpus the process holds in memory anyway.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketArticles); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketArticles, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) DB() *bbolt.DB {
	return s.db
}

func (s *BoltStore) Put(article domain.Article) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(article)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketArticles).Put([]byte(article.ArticleID), data)
	})
}

func (s *BoltStore) BatchPut(articles []domain.Article) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketArticles)
		for _, article := range articles {
			data, err := json.Marshal(article)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(article.ArticleID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) Exists(id string) (bool, error) {
	var exists bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		exists = tx.Bucket(bucketArticles).Get([]byte(id)) != nil
		return nil
	})
	return exists, err
}

func (s *BoltStore) Find(filter domain.ArticleFilter, limit int) ([]domain.Article, error) {
	var articles []domain.Article
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketArticles).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var article domain.Article
			if err := json.Unmarshal(v, &article); err != nil {
				return fmt.Errorf("corrupt article %s: %w", k, err)
			}
			if !filter.Matches(article) {
				continue
			}
			articles = append(articles, article)
			if limit > 0 && len(articles) >= limit {
				return nil
			}
		}
		return nil
	})
	return articles, err
}

func (s *BoltStore) Count(filter domain.ArticleFilter) (int, error) {
	count := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketArticles)
		if filter.IsZero() {
			count = b.Stats().KeyN
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var article domain.Article
			if err := json.Unmarshal(v, &article); err != nil {
				return fmt.Errorf("corrupt article %s: %w", k, err)
			}
			if filter.Matches(article) {
				count++
			}
			return nil
		})
	})
	return count, err
}

func (s *BoltStore) GetAll() ([]domain.Article, error) {
	return s.Find(domain.ArticleFilter{}, 0)
}

func (s *BoltStore) GetByIDs(ids []string) ([]domain.Article, error) {
	var articles []domain.Article
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketArticles)
		for _, id := range ids {
			data := b.Get([]byte(id))
			if data == nil {
				continue // missing ids are silently omitted
			}
			var article domain.Article
			if err := json.Unmarshal(data, &article); err != nil {
				return fmt.Errorf("corrupt article %s: %w", id, err)
			}
			articles = append(articles, article)
		}
		return nil
	})
	return articles, err
}

func (s *BoltStore) Stats() (domain.CorpusStats, error) {
	var stats domain.CorpusStats
	authors := make(map[string]struct{})

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketArticles).ForEach(func(k, v []byte) error {
			var article domain.Article
			if err := json.Unmarshal(v, &article); err != nil {
				return fmt.Errorf("corrupt article %s: %w", k, err)
			}
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
			return nil
		})
	})
	stats.UniqueAuthors = len(authors)
	return stats, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

package agent

import (
	"fmt"
	"math"
	"sort"

	"ragjournal/internal/domain"
)

// CosineSimilarity computes dot(a,b) / (|a|*|b|). Mismatched dimensions
// and zero-norm vectors are errors, never coerced to zero.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimension mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero-norm embedding: similarity undefined")
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// RankBySimilarity scores every candidate against the query embedding
// and sorts descending. The sort is stable: equal scores keep the
// candidates' original order. Brute force, no index; the corpus is
// bounded to what the process holds in memory.
func RankBySimilarity(query []float32, candidates []domain.Article) ([]domain.ScoredArticle, error) {
	scored := make([]domain.ScoredArticle, 0, len(candidates))
	for _, article := range candidates {
		score, err := CosineSimilarity(query, article.Embedding)
		if err != nil {
			return nil, fmt.Errorf("ranking article %s: %w", article.ArticleID, err)
		}
		scored = append(scored, domain.ScoredArticle{Article: article, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored, nil
}

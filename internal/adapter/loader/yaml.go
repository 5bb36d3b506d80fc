package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
	"ragjournal/internal/domain"
)

// articleFile is the on-disk YAML shape of one article.
type articleFile struct {
	Title           string    `yaml:"title"`
	URL             string    `yaml:"url"`
	Categories      yaml.Node `yaml:"categories"` // list or single string
	Source          string    `yaml:"source"`
	PublicationDate string    `yaml:"publication_date_source"`
	Author          string    `yaml:"author"`
	Translator      string    `yaml:"translator"`
	Content         string    `yaml:"content"`
}

// DefaultPatterns matches article files under a corpus directory.
var DefaultPatterns = []string{"**/*.yaml", "**/*.yml"}

// Discover returns article file paths under root matching any of the
// glob patterns, in walk order.
func Discover(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		for _, pattern := range patterns {
			matched, err := doublestar.Match(pattern, filepath.ToSlash(relPath))
			if err != nil {
				return fmt.Errorf("bad pattern %q: %w", pattern, err)
			}
			if matched {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// LoadFile parses one article YAML file. The article id is the file
// name without extension. An article without content is rejected.
func LoadFile(path string) (domain.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Article{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw articleFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Article{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if strings.TrimSpace(raw.Content) == "" {
		return domain.Article{}, fmt.Errorf("article %s has no content", path)
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	author := raw.Author
	if author == "" {
		author = "<unknown>"
	}
	title := raw.Title
	if title == "" {
		title = "<untitled>"
	}

	// Unparseable dates degrade to "no date" rather than failing the
	// whole file.
	var pubDate *time.Time
	if raw.PublicationDate != "" {
		if d, err := time.Parse("2006-01-02", raw.PublicationDate); err == nil {
			pubDate = &d
		}
	}

	return domain.Article{
		ArticleID: id,
		Metadata: domain.ArticleMetadata{
			Author:          author,
			PublicationDate: pubDate,
			Categories:      decodeCategories(raw.Categories),
			Translator:      raw.Translator,
			Title:           title,
		},
		Content: domain.ArticleContent{
			FullText:  raw.Content,
			WordCount: len(strings.Fields(raw.Content)),
		},
		URL:       raw.URL,
		Source:    raw.Source,
		CreatedAt: time.Now(),
	}, nil
}

// decodeCategories accepts either a sequence or a single scalar, and
// returns trimmed, deduplicated category names.
func decodeCategories(node yaml.Node) []string {
	var raw []string
	switch node.Kind {
	case yaml.SequenceNode:
		_ = node.Decode(&raw)
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err == nil && s != "" {
			raw = []string{s}
		}
	}

	seen := make(map[string]struct{}, len(raw))
	var categories []string
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		categories = append(categories, c)
	}
	return categories
}

// embeddingPreviewLen bounds how much article text joins the title in
// the embedded representation.
const embeddingPreviewLen = 1000

// EmbeddingText combines title and a content preview into the text the
// article is embedded from.
func EmbeddingText(article domain.Article) string {
	content := article.Content.FullText
	if len(content) > embeddingPreviewLen {
		content = content[:embeddingPreviewLen]
	}
	return fmt.Sprintf("%s. %s", article.Metadata.Title, content)
}

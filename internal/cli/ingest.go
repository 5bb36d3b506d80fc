package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"ragjournal/config"
	"ragjournal/internal/adapter/embedding"
	"ragjournal/internal/adapter/loader"
	"ragjournal/internal/adapter/store"
	"ragjournal/internal/domain"
)

var (
	ingestPatterns []string
	ingestForce    bool
	ingestNoEmbed  bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <dir>",
	Short: "Ingest article YAML files into the store",
	Long: `Load article YAML files from a directory, generate embeddings, and
store them in the article database. Articles already in the store are
skipped unless --force is given.

Examples:
  ragjournal ingest ./data/articles
  ragjournal ingest ./data/articles -p "**/*.yml" --force`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringSliceVarP(&ingestPatterns, "pattern", "p", nil, "glob patterns for article files (default **/*.yaml, **/*.yml)")
	ingestCmd.Flags().BoolVar(&ingestForce, "force", false, "re-ingest articles that already exist")
	ingestCmd.Flags().BoolVar(&ingestNoEmbed, "no-embed", false, "skip embedding generation")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	dbPath := config.DatabasePath(GetRootDir(), cfg)
	if err := config.EnsureDataDir(dbPath); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open article database: %w", err)
	}
	defer st.Close()

	files, err := loader.Discover(args[0], ingestPatterns)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", args[0], err)
	}
	if len(files) == 0 {
		fmt.Println("No article files found.")
		return nil
	}
	fmt.Printf("Found %d article file(s)\n", len(files))

	var articles []domain.Article
	skipped, failed := 0, 0
	for _, path := range files {
		article, err := loader.LoadFile(path)
		if err != nil {
			fmt.Printf("  skipping %s: %v\n", path, err)
			failed++
			continue
		}

		if !ingestForce {
			exists, err := st.Exists(article.ArticleID)
			if err != nil {
				return err
			}
			if exists {
				skipped++
				continue
			}
		}
		articles = append(articles, article)
	}

	if len(articles) == 0 {
		fmt.Printf("Nothing to ingest (%d already present, %d failed to parse).\n", skipped, failed)
		return nil
	}

	if !ingestNoEmbed {
		if err := embedArticles(articles, cfg); err != nil {
			return err
		}
	}

	if err := st.BatchPut(articles); err != nil {
		return fmt.Errorf("failed to store articles: %w", err)
	}

	fmt.Printf("\nIngest complete:\n")
	fmt.Printf("  Articles added:   %d\n", len(articles))
	fmt.Printf("  Already present:  %d\n", skipped)
	fmt.Printf("  Failed to parse:  %d\n", failed)
	return nil
}

// embedArticles fills in embeddings batch by batch, with a progress bar
// over the whole set.
func embedArticles(articles []domain.Article, cfg *config.Config) error {
	embedder, err := embedding.NewEmbedder(cfg.Embedding)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	bar := progressbar.NewOptions(len(articles),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Embedding[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	batchSize := cfg.Embedding.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	for i := 0; i < len(articles); i += batchSize {
		end := i + batchSize
		if end > len(articles) {
			end = len(articles)
		}

		texts := make([]string, 0, end-i)
		for _, article := range articles[i:end] {
			texts = append(texts, loader.EmbeddingText(article))
		}

		vectors, err := embedder.Embed(texts)
		if err != nil {
			return fmt.Errorf("embedding failed: %w", err)
		}
		if len(vectors) != end-i {
			return fmt.Errorf("embedding returned %d vectors for %d texts", len(vectors), end-i)
		}

		for j := range vectors {
			articles[i+j].Embedding = vectors[j]
		}
		bar.Set(end)
	}

	return nil
}

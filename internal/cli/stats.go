package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show article corpus statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats()
	if err != nil {
		return fmt.Errorf("failed to read corpus stats: %w", err)
	}

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println("Corpus statistics")
	fmt.Printf("  Articles:        %d\n", stats.TotalArticles)
	fmt.Printf("  Unique authors:  %d\n", stats.UniqueAuthors)
	fmt.Printf("  With embedding:  %d\n", stats.WithEmbedding)
	if stats.OldestDate != nil && stats.NewestDate != nil {
		fmt.Printf("  Date range:      %s to %s\n",
			stats.OldestDate.Format("2006-01-02"),
			stats.NewestDate.Format("2006-01-02"))
	}
	return nil
}

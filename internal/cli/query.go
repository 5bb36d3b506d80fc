package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var queryJSON bool

var queryCmd = &cobra.Command{
	Use:   "query <question>",
	Short: "Ask a single question",
	Long: `Run one question through the agent without conversation history.

Examples:
  ragjournal query "What does Rossi write about energy policy?"
  ragjournal query --json "How many articles mention the election?"`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
}

func runQuery(cmd *cobra.Command, args []string) error {
	ag, st, err := buildAgent()
	if err != nil {
		return err
	}
	defer st.Close()

	result, err := ag.Query(args[0])
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Println(result.Answer)
	fmt.Printf("\n(%d iteration(s), %d tool call(s))\n", result.Iterations, len(result.ToolCalls))
	return nil
}

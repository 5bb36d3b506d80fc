package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Start an interactive chat session with conversation history.
History is kept in memory for the session and compressed automatically
when it grows long.

Commands inside the session:
  /reset    clear the conversation history
  /history  show the current history
  /quit     leave the session`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ag, st, err := buildAgent()
	if err != nil {
		return err
	}
	defer st.Close()

	fmt.Println("Chat mode - conversation history is kept for this session.")
	fmt.Println("Commands: /reset, /history, /quit")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch input {
		case "/quit", "/exit", "/q":
			fmt.Println("Bye.")
			return nil
		case "/reset":
			ag.ResetChat()
			fmt.Println("History cleared.")
			continue
		case "/history":
			for _, turn := range ag.ChatHistory() {
				content := turn.Content
				if len(content) > 120 {
					content = content[:120] + "..."
				}
				fmt.Printf("  [%s] %s\n", turn.Role, content)
			}
			continue
		}

		result, err := ag.Chat(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		fmt.Printf("\n%s\n", result.Answer)
		fmt.Printf("(%d iteration(s), %d tool call(s))\n\n", result.Iterations, len(result.ToolCalls))
	}
}

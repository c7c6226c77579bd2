package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doc-assist/docassist-cli/internal/core/domain"
)

var (
	askJSON        bool
	askShowContext bool
)

var askCmd = &cobra.Command{
	Use:   "ask [file] [question]",
	Short: "Ask a question about a PDF document",
	Long: `Builds (or reopens) the vector collection for the given PDF and
answers the question grounded only in the document's contents.

The first ask against a document downloads the embedding model if
needed and embeds every chunk; later asks reuse the persisted
collection and only pay for retrieval and generation.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().BoolVar(&askShowContext, "show-context", false, "print the retrieved context chunks")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	question := strings.Join(args[1:], " ")

	ctx := cmd.Context()
	store, collection, err := library.GetOrCreate(ctx, filePath)
	if err != nil {
		return err
	}

	assistant, err := newAssistant(store, collection)
	if err != nil {
		return err
	}

	answer, err := assistant.Ask(ctx, question)
	if err != nil {
		return err
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}
	return outputAnswerText(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer domain.Answer) error {
	payload := struct {
		Question string   `json:"question"`
		Answer   string   `json:"answer"`
		Context  []string `json:"context,omitempty"`
	}{
		Question: answer.Question,
		Answer:   answer.Text,
	}
	if askShowContext {
		for _, chunk := range answer.Context {
			payload.Context = append(payload.Context, chunk.Content)
		}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer domain.Answer) error {
	cmd.Println(answer.Text)

	if askShowContext && len(answer.Context) > 0 {
		cmd.Println()
		cmd.Println("Context:")
		for i, chunk := range answer.Context {
			label := chunk.Source
			if chunk.Page > 0 {
				label = fmt.Sprintf("%s p.%d", label, chunk.Page)
			}
			cmd.Printf("  [%d] %s\n      %s\n", i+1, label, snippet(chunk.Content))
		}
	}
	return nil
}

// snippet trims a chunk to a single display line.
func snippet(content string) string {
	content = strings.Join(strings.Fields(content), " ")
	const max = 120
	if len(content) > max {
		content = content[:max] + "..."
	}
	return content
}

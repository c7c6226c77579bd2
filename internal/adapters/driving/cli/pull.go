package cli

import (
	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the embedding and generation models",
	Long: `Asks the Ollama server to pull both configured models. Pulling is
idempotent; models that are already present are verified and skipped.
The first index or ask pulls the embedding model automatically, so this
command is only a way to front-load the download.`,
	RunE: runPull,
}

func init() {
	rootCmd.AddCommand(pullCmd)
}

func runPull(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cmd.Printf("Pulling embedding model %s...\n", embedderSvc.ModelName())
	if err := embedderSvc.Pull(ctx); err != nil {
		return err
	}

	cmd.Printf("Pulling generation model %s...\n", llmSvc.ModelName())
	if err := llmSvc.Pull(ctx); err != nil {
		return err
	}

	cmd.Println("Done.")
	return nil
}

package cli

import (
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index [file]",
	Short: "Build the vector collection for a PDF without asking anything",
	Long: `Ingests the PDF, chunks it, embeds every chunk, and persists the
collection. If the collection already exists the command reports it and
does nothing; editing the file changes its collection key, so the next
index builds a fresh collection.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	existing, err := library.CollectionName(args[0])
	if err != nil {
		return err
	}
	already := false
	if names, err := library.List(); err == nil {
		for _, name := range names {
			if name == existing {
				already = true
			}
		}
	}

	store, collection, err := library.GetOrCreate(ctx, args[0])
	if err != nil {
		return err
	}

	count, err := store.Count(ctx)
	if err != nil {
		return err
	}

	if already {
		cmd.Printf("Collection %s already built (%d chunks)\n", collection, count)
		return nil
	}
	cmd.Printf("Built collection %s (%d chunks)\n", collection, count)
	return nil
}

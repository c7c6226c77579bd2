package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var collectionsJSON bool

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List persisted vector collections",
	RunE:  runCollections,
}

func init() {
	collectionsCmd.Flags().BoolVar(&collectionsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(collectionsCmd)
}

func runCollections(cmd *cobra.Command, _ []string) error {
	names, err := library.List()
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}

	if collectionsJSON {
		data, err := json.MarshalIndent(names, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling collections: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(names) == 0 {
		cmd.Println("No collections yet. Run 'docassist index <file.pdf>' to build one.")
		return nil
	}
	for _, name := range names {
		cmd.Println(name)
	}
	return nil
}

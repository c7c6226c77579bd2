package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/doc-assist/docassist-cli/internal/core/ports/driven"
)

var addCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Copy a PDF into the documents directory and index it",
	Long: `Copies the PDF into the managed documents directory (docs.dir,
default ~/.docassist/docs) and builds its vector collection. Use this
to keep a stable library of documents independent of where they were
downloaded to.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	docsDir, err := resolveDocsDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		return fmt.Errorf("creating documents directory: %w", err)
	}

	staged := filepath.Join(docsDir, filepath.Base(args[0]))
	if err := copyFile(args[0], staged); err != nil {
		return err
	}
	cmd.Printf("Added %s\n", staged)

	store, collection, err := library.GetOrCreate(cmd.Context(), staged)
	if err != nil {
		return err
	}
	count, err := store.Count(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("Built collection %s (%d chunks)\n", collection, count)
	return nil
}

func resolveDocsDir() (string, error) {
	if dir := configStore.GetString(driven.KeyDocsDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".docassist", "docs"), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	return out.Sync()
}

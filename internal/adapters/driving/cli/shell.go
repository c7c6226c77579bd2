package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/doc-assist/docassist-cli/internal/adapters/driven/watch"
	"github.com/doc-assist/docassist-cli/internal/adapters/driving/shell"
	"github.com/doc-assist/docassist-cli/internal/core/ports/driving"
	"github.com/doc-assist/docassist-cli/internal/logger"
)

var shellCmd = &cobra.Command{
	Use:   "shell [file]",
	Short: "Open an interactive question-answering session for a PDF",
	Long: `Build (or reopen) the vector collection for the given PDF, then open
an interactive shell where each line is answered from the document.

Controls:
  Enter    - Submit question
  ↑/↓      - Scroll history
  Esc      - Quit
  stop     - Typing stop, close, exit, or quit also ends the session

If the source file changes on disk while the shell is open, the collection
is rebuilt in the background and answers switch to the new version.`,
	Args: cobra.ExactArgs(1),
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	// Panic recovery keeps a stack trace visible after the alt screen closes
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in shell: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx := cmd.Context()
	store, collection, err := library.GetOrCreate(ctx, args[0])
	if err != nil {
		return err
	}

	assistant, err := newAssistant(store, collection)
	if err != nil {
		return err
	}

	cfg := shell.Config{
		Assistant:  assistant,
		SourcePath: args[0],
		Ctx:        ctx,
		Rebuild: func(ctx context.Context) (driving.Assistant, error) {
			store, collection, err := library.GetOrCreate(ctx, args[0])
			if err != nil {
				return nil, err
			}
			return newAssistant(store, collection)
		},
	}

	if watcher, err := watch.NewFileWatcher(args[0]); err == nil {
		defer watcher.Close()
		cfg.Changes = watcher.Changes()
	} else {
		logger.Warn("Source watch unavailable: %v", err)
	}

	p := tea.NewProgram(shell.New(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("shell error: %w", err)
	}
	return nil
}

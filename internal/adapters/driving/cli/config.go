package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/doc-assist/docassist-cli/internal/core/ports/driven"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change configuration",
	Long: `Configuration lives in a TOML file (default ~/.docassist/config.toml)
and is read at startup. Keys use dot notation, e.g. embedding.model.`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all known configuration keys and their values",
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// knownKeys are the keys the application reads. Unknown keys can still
// be set; they are kept in the file untouched.
var knownKeys = []string{
	driven.KeyOllamaBaseURL,
	driven.KeyLLMModel,
	driven.KeyEmbeddingModel,
	driven.KeyChunkSize,
	driven.KeyChunkOverlap,
	driven.KeyRetrieverTopK,
	driven.KeyDocsDir,
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	keys := append([]string(nil), knownKeys...)
	sort.Strings(keys)

	cmd.Printf("Config file: %s\n\n", configStore.Path())
	for _, key := range keys {
		value, ok := configStore.Get(key)
		if !ok {
			cmd.Printf("  %s = (default)\n", key)
			continue
		}
		cmd.Printf("  %s = %v\n", key, value)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	cmd.Printf("%v\n", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]

	// Store integers and booleans typed so GetInt/GetBool work.
	var value any = raw
	if n, err := strconv.Atoi(raw); err == nil {
		value = n
	} else if b, err := strconv.ParseBool(raw); err == nil {
		value = b
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	cmd.Printf("%s = %v\n", key, value)
	return nil
}

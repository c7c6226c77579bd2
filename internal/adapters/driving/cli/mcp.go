package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doc-assist/docassist-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Start the MCP server for a PDF document",
	Long: `Build (or reopen) the vector collection for the given PDF, then serve
ask and search tools over the Model Context Protocol.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for Claude Desktop)
  docassist mcp serve policy.pdf

  # HTTP mode (for MCP Inspector, remote access)
  docassist mcp serve policy.pdf --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "docassist": {
        "command": "/path/to/docassist",
        "args": ["mcp", "serve", "/path/to/policy.pdf"]
      }
    }
  }`,
	Args: cobra.ExactArgs(1),
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ctx := cmd.Context()
	store, collection, err := library.GetOrCreate(ctx, args[0])
	if err != nil {
		return err
	}

	assistant, err := newAssistant(store, collection)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Assistant: assistant,
		Library:   library,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

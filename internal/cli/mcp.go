package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mquinn/cstyle/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for style checking",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered
coding assistants check C sources against the style rulebook.

The MCP server:
- Provides the lint_file tool for files on disk
- Provides the lint_source tool for source passed as text
- Communicates via stdio (standard MCP transport)

Example:
  cstyle mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(os.Stderr, "cstyle MCP server")

	s := mcp.NewServer(Version)
	if err := mcp.ServeStdio(s); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}

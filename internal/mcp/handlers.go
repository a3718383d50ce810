// Package mcp exposes the style checker as Model Context Protocol tools,
// so coding assistants can lint C sources over stdio.
package mcp

import (
	"context"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mquinn/cstyle/internal/analyzer"
	"github.com/mquinn/cstyle/internal/lint"
)

// renderReport formats a file's diagnostics the same way the CLI does.
// Clean files get an explicit confirmation so the model is not left
// guessing whether the tool ran.
func renderReport(rep *analyzer.Report) string {
	if len(rep.Diagnostics) == 0 {
		return "No style violations found."
	}
	var sb strings.Builder
	lint.WriteReport(&sb, rep)
	return sb.String()
}

// analysisConfig builds the analyzer configuration for one request,
// honoring an optional max_lines override.
func analysisConfig(request mcp.CallToolRequest) analyzer.Config {
	cfg := analyzer.DefaultConfig()
	if maxLines, err := request.RequireInt("max_lines"); err == nil && maxLines > 0 {
		cfg.MaxFunctionLines = maxLines
	}
	return cfg
}

// lintFileHandler handles requests for the 'lint_file' tool.
func lintFileHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := request.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return mcp.NewToolResultError("Failed to read file: " + err.Error()), nil
	}

	rep, err := analyzer.AnalyzeSource(file, string(data), analysisConfig(request))
	if err != nil {
		return mcp.NewToolResultError("Failed to analyze file: " + err.Error()), nil
	}

	return mcp.NewToolResultText(renderReport(rep)), nil
}

// lintSourceHandler handles requests for the 'lint_source' tool.
func lintSourceHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := request.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Optional display path; positions are reported against it
	path, err := request.RequireString("path")
	if err != nil {
		path = "source.c"
	}

	rep, err := analyzer.AnalyzeSource(path, source, analysisConfig(request))
	if err != nil {
		return mcp.NewToolResultError("Failed to analyze source: " + err.Error()), nil
	}

	return mcp.NewToolResultText(renderReport(rep)), nil
}

// RegisterTools defines all tools on the server and registers their handlers.
func RegisterTools(s *server.MCPServer) {
	// Tool 1: lint a C file on disk.
	lintFileTool := mcp.NewTool("lint_file",
		mcp.WithDescription("Check a C source file on disk against the house style rulebook: no file-scope variables, a comment above every function, a meaningful-line budget per function, consistent snake_case or camelCase per file, and SCREAMING_SNAKE_CASE macro names. Returns one finding per line as path:line:col message `snippet`, with a numbered breakdown under each function that exceeds the line budget."),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path to the C source file to check (e.g. 'src/main.c')")),
		mcp.WithNumber("max_lines", mcp.Description("Override the meaningful-line budget per function (default 10)")),
	)
	s.AddTool(lintFileTool, lintFileHandler)

	// Tool 2: lint C source text directly.
	lintSourceTool := mcp.NewTool("lint_source",
		mcp.WithDescription("Check C source code passed as text against the house style rulebook, without touching the filesystem. Useful for checking edits before writing them out. Returns the same path:line:col findings as lint_file."),
		mcp.WithString("source", mcp.Required(), mcp.Description("The C source code to check")),
		mcp.WithString("path", mcp.Description("Display path used in reported positions (default 'source.c')")),
		mcp.WithNumber("max_lines", mcp.Description("Override the meaningful-line budget per function (default 10)")),
	)
	s.AddTool(lintSourceTool, lintSourceHandler)
}

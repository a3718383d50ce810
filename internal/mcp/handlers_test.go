package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for MCP Handlers:
// - lint_source reports findings for violating source text
// - lint_source confirms clean source explicitly
// - lint_source honors the max_lines override
// - lint_file reads and reports on a file from disk
// - Missing required arguments produce tool errors, not Go errors

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok, "expected text content")
	return tc.Text
}

func TestLintSource_ReportsFindings(t *testing.T) {
	res, err := lintSourceHandler(context.Background(), callRequest(map[string]any{
		"source": "int counter;\n\n// entry\nint main() {\n  return 0;\n}\n",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	out := textOf(t, res)
	assert.Contains(t, out, "source.c:1:1 Global variable `int counter;`")
}

func TestLintSource_CleanSource(t *testing.T) {
	res, err := lintSourceHandler(context.Background(), callRequest(map[string]any{
		"source": "// entry\nint main() {\n  return 0;\n}\n",
		"path":   "ok.c",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "No style violations found.", textOf(t, res))
}

func TestLintSource_MaxLinesOverride(t *testing.T) {
	src := "// doc\nint f(int x) {\n  x = 1;\n  x = 2;\n  return x;\n}\n"

	res, err := lintSourceHandler(context.Background(), callRequest(map[string]any{
		"source":    src,
		"max_lines": 2,
	}))
	require.NoError(t, err)
	assert.Contains(t, textOf(t, res), "more than 2 lines (3)")

	res, err = lintSourceHandler(context.Background(), callRequest(map[string]any{
		"source": src,
	}))
	require.NoError(t, err)
	assert.Equal(t, "No style violations found.", textOf(t, res))
}

func TestLintSource_MissingArgument(t *testing.T) {
	res, err := lintSourceHandler(context.Background(), callRequest(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestLintFile_ReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.c")
	require.NoError(t, os.WriteFile(path, []byte("int counter;\n"), 0644))

	res, err := lintFileHandler(context.Background(), callRequest(map[string]any{
		"file": path,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, textOf(t, res), "Global variable")
}

func TestLintFile_MissingFile(t *testing.T) {
	res, err := lintFileHandler(context.Background(), callRequest(map[string]any{
		"file": "no/such/file.c",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

package lint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mquinn/cstyle/internal/analyzer"
)

// Test Plan for Report Rendering:
// - FormatDiagnostic() renders path:line:col message `snippet`
// - WriteReport() renders children as an indented 1-based enumeration
// - WriteResult() renders reports in stored (path-sorted) order
// - Empty reports render nothing

func TestFormatDiagnostic(t *testing.T) {
	d := analyzer.Diagnostic{
		Path: "src/a.c", Line: 6, Col: 1,
		Message: "Global variable",
		Snippet: "int counter;",
	}
	assert.Equal(t, "src/a.c:6:1 Global variable `int counter;`", FormatDiagnostic(d))
}

func TestWriteReport_ChildrenEnumerated(t *testing.T) {
	rep := &analyzer.Report{
		Path: "a.c",
		Diagnostics: []analyzer.Diagnostic{
			{
				Path: "a.c", Line: 9, Col: 8,
				Message: "Function has more than 10 lines (11)",
				Snippet: "double smooth(void) {",
				Children: []analyzer.Diagnostic{
					{Path: "a.c", Line: 13, Col: 3, Message: "Counted if condition for 1 line", Snippet: "  if (x) {"},
					{Path: "a.c", Line: 14, Col: 5, Message: "Counted expression for 1 line", Snippet: "    x = 1;"},
				},
			},
			{Path: "a.c", Line: 20, Col: 1, Message: "Global variable", Snippet: "int g;"},
		},
	}

	var sb strings.Builder
	require.NoError(t, WriteReport(&sb, rep))

	want := "a.c:9:8 Function has more than 10 lines (11) `double smooth(void) {`\n" +
		"  1) a.c:13:3 Counted if condition for 1 line `  if (x) {`\n" +
		"  2) a.c:14:5 Counted expression for 1 line `    x = 1;`\n" +
		"a.c:20:1 Global variable `int g;`\n"
	assert.Equal(t, want, sb.String())
}

func TestWriteResult_MultipleFiles(t *testing.T) {
	res := &Result{
		Reports: []*analyzer.Report{
			{Path: "a.c", Diagnostics: []analyzer.Diagnostic{
				{Path: "a.c", Line: 1, Col: 1, Message: "Global variable", Snippet: "int a;"},
			}},
			{Path: "b.c"},
			{Path: "c.c", Diagnostics: []analyzer.Diagnostic{
				{Path: "c.c", Line: 2, Col: 1, Message: "Global variable", Snippet: "int c;"},
			}},
		},
	}

	var sb strings.Builder
	require.NoError(t, WriteResult(&sb, res))

	want := "a.c:1:1 Global variable `int a;`\n" +
		"c.c:2:1 Global variable `int c;`\n"
	assert.Equal(t, want, sb.String())
}

func TestWriteReport_EmptyReport(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteReport(&sb, &analyzer.Report{Path: "clean.c"}))
	assert.Empty(t, sb.String())
}

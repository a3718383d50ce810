package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Scanner:
// - Scan() produces identifier, keyword, number, and punctuation tokens with 1-based positions
// - Scan() splits multi-character operators into single punctuation tokens
// - Scan() emits one directive token per preprocessor line, joining backslash continuations
// - Scan() records comment spans and keeps comment text out of the token stream
// - Scan() keeps string and char literal content out of the punctuation stream
// - Scan() errors on unterminated strings, chars, and block comments
// - IsCommentOnlyLine() is true only for lines consisting solely of comments
// - Line() returns the physical line text for snippets

func tokenTexts(f *File) []string {
	var out []string
	for _, t := range f.Tokens {
		out = append(out, t.Text)
	}
	return out
}

func TestScan_BasicTokens(t *testing.T) {
	// Test: identifiers, keywords, numbers, punctuation with positions
	f, err := Scan("int x = 42;")
	require.NoError(t, err)

	require.Len(t, f.Tokens, 5)
	assert.Equal(t, KindKeyword, f.Tokens[0].Kind)
	assert.Equal(t, "int", f.Tokens[0].Text)
	assert.Equal(t, Pos{Line: 1, Col: 1, Offset: 0}, f.Tokens[0].Pos)

	assert.Equal(t, KindIdent, f.Tokens[1].Kind)
	assert.Equal(t, "x", f.Tokens[1].Text)
	assert.Equal(t, 5, f.Tokens[1].Pos.Col)

	assert.Equal(t, KindPunct, f.Tokens[2].Kind)
	assert.Equal(t, KindNumber, f.Tokens[3].Kind)
	assert.Equal(t, "42", f.Tokens[3].Text)
	assert.True(t, f.Tokens[4].IsPunct(";"))
}

func TestScan_PositionsAcrossLines(t *testing.T) {
	// Test: line counter advances, columns reset
	f, err := Scan("int a;\nint bb;\n")
	require.NoError(t, err)

	var b Token
	for _, tok := range f.Tokens {
		if tok.Text == "bb" {
			b = tok
		}
	}
	assert.Equal(t, 2, b.Pos.Line)
	assert.Equal(t, 5, b.Pos.Col)
}

func TestScan_DirectiveToken(t *testing.T) {
	// Test: a preprocessor line becomes one directive token
	f, err := Scan("#define MAX 10\nint x;\n")
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(f.Tokens), 1)
	d := f.Tokens[0]
	assert.Equal(t, KindDirective, d.Kind)
	assert.Equal(t, "#define MAX 10", d.Text)
	assert.Equal(t, 1, d.Pos.Line)
	assert.Equal(t, 1, d.EndLine)
}

func TestScan_DirectiveContinuation(t *testing.T) {
	// Test: backslash continuations join into one logical directive line
	f, err := Scan("#define SUM(a, b) \\\n  ((a) + (b))\nint x;\n")
	require.NoError(t, err)

	d := f.Tokens[0]
	require.Equal(t, KindDirective, d.Kind)
	assert.Contains(t, d.Text, "#define SUM(a, b)")
	assert.Contains(t, d.Text, "((a) + (b))")
	assert.Equal(t, 1, d.Pos.Line)
	assert.Equal(t, 2, d.EndLine)

	// The int declaration still follows on line 3
	var x Token
	for _, tok := range f.Tokens {
		if tok.Text == "x" {
			x = tok
		}
	}
	assert.Equal(t, 3, x.Pos.Line)
}

func TestScan_CommentsExcluded(t *testing.T) {
	// Test: comment text never reaches the token stream
	f, err := Scan("int a; // trailing words\n/* block */ int b;\n")
	require.NoError(t, err)

	texts := tokenTexts(f)
	assert.NotContains(t, texts, "trailing")
	assert.NotContains(t, texts, "block")
	assert.Contains(t, texts, "a")
	assert.Contains(t, texts, "b")
}

func TestScan_StringAndCharLiterals(t *testing.T) {
	// Test: literal content (braces, semicolons) stays inside the literal token
	f, err := Scan(`char *s = "a;{b}"; char c = '{';`)
	require.NoError(t, err)

	braces := 0
	for _, tok := range f.Tokens {
		if tok.IsPunct("{") || tok.IsPunct("}") {
			braces++
		}
	}
	assert.Zero(t, braces)

	var kinds []Kind
	for _, tok := range f.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Contains(t, kinds, KindString)
	assert.Contains(t, kinds, KindChar)
}

func TestScan_EscapedQuotes(t *testing.T) {
	// Test: escaped quotes do not close the literal early
	f, err := Scan(`char *s = "she said \"hi\"";`)
	require.NoError(t, err)

	var str Token
	for _, tok := range f.Tokens {
		if tok.Kind == KindString {
			str = tok
		}
	}
	assert.Equal(t, `"she said \"hi\""`, str.Text)
}

func TestScan_UnterminatedLiterals(t *testing.T) {
	// Test: structural failures surface as *ParseError
	cases := []struct {
		name string
		src  string
	}{
		{"string", "char *s = \"oops;\n"},
		{"char", "char c = 'x\n"},
		{"block comment", "int a; /* never closed\nint b;"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Scan(tc.src)
			require.Error(t, err)
			var pe *ParseError
			assert.ErrorAs(t, err, &pe)
		})
	}
}

func TestIsCommentOnlyLine(t *testing.T) {
	// Test: only pure comment lines qualify; blanks and code lines do not
	src := "// just a comment\nint x; // trailing\n\n  /* indented */\nint y;\n"
	f, err := Scan(src)
	require.NoError(t, err)

	assert.True(t, f.IsCommentOnlyLine(1))
	assert.False(t, f.IsCommentOnlyLine(2), "code with trailing comment is not comment-only")
	assert.False(t, f.IsCommentOnlyLine(3), "blank line is not comment-only")
	assert.True(t, f.IsCommentOnlyLine(4))
	assert.False(t, f.IsCommentOnlyLine(5))
	assert.False(t, f.IsCommentOnlyLine(0))
	assert.False(t, f.IsCommentOnlyLine(99))
}

func TestLine_ReturnsPhysicalLine(t *testing.T) {
	// Test: Line() is 1-based and tolerant of out-of-range input
	f, err := Scan("int a;\nint b;\n")
	require.NoError(t, err)

	assert.Equal(t, "int a;", f.Line(1))
	assert.Equal(t, "int b;", f.Line(2))
	assert.Equal(t, "", f.Line(0))
	assert.Equal(t, "", f.Line(10))
}

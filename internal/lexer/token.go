package lexer

// Kind classifies a token produced by the scanner.
type Kind uint8

const (
	KindIdent Kind = iota
	KindKeyword
	KindNumber
	KindString
	KindChar
	KindPunct
	KindDirective
)

// Pos is a 1-based line/column source position with a byte offset into the
// original file text.
type Pos struct {
	Line   int
	Col    int
	Offset int
}

// Span is an inclusive line range.
type Span struct {
	StartLine int
	EndLine   int
}

// Contains reports whether the given line falls inside the span.
func (s Span) Contains(line int) bool {
	return line >= s.StartLine && line <= s.EndLine
}

// Token is a single lexical unit pointing back to the source. Directive
// tokens carry the full (continuation-joined) directive line in Text.
// Tokens are immutable once produced.
type Token struct {
	Kind Kind
	Text string
	Pos  Pos

	// EndLine is the line the token ends on. It differs from Pos.Line only
	// for directives with backslash continuations.
	EndLine int
}

// cKeywords is the C89/C99 keyword set. Keywords never participate in
// identifier collection or name extraction.
var cKeywords = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true,
	"const": true, "continue": true, "default": true, "do": true,
	"double": true, "else": true, "enum": true, "extern": true,
	"float": true, "for": true, "goto": true, "if": true,
	"inline": true, "int": true, "long": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true,
	"sizeof": true, "static": true, "struct": true, "switch": true,
	"typedef": true, "union": true, "unsigned": true, "void": true,
	"volatile": true, "while": true, "_Bool": true, "_Complex": true,
	"_Imaginary": true,
}

// IsKeyword reports whether name is a C keyword.
func IsKeyword(name string) bool {
	return cKeywords[name]
}

// typeKeywords are keywords that can open a declaration.
var typeKeywords = map[string]bool{
	"auto": true, "char": true, "const": true, "double": true,
	"enum": true, "extern": true, "float": true, "int": true,
	"long": true, "register": true, "short": true, "signed": true,
	"static": true, "struct": true, "union": true, "unsigned": true,
	"void": true, "volatile": true, "_Bool": true, "inline": true,
}

// IsTypeKeyword reports whether name can start a C declaration.
func IsTypeKeyword(name string) bool {
	return typeKeywords[name]
}

// IsPunct reports whether the token is the given punctuation text.
func (t Token) IsPunct(text string) bool {
	return t.Kind == KindPunct && t.Text == text
}

// IsKeywordText reports whether the token is the given keyword.
func (t Token) IsKeywordText(text string) bool {
	return t.Kind == KindKeyword && t.Text == text
}

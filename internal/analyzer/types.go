package analyzer

import "github.com/mquinn/cstyle/internal/lexer"

// Diagnostic is one reported rule violation. Diagnostics are pure values;
// sorting and rendering never mutate the analysis data they came from.
// Children is non-nil only for the function-length rule, which carries one
// child per counted statement in source order.
type Diagnostic struct {
	Path     string
	Line     int
	Col      int
	Message  string
	Snippet  string
	Children []Diagnostic
}

// StatementKind classifies a segmented body statement.
type StatementKind int

const (
	StmtDeclaration StatementKind = iota // no initializer, never counted
	StmtDefinition                       // declaration with initializer
	StmtIfCond
	StmtElse
	StmtWhileCond
	StmtDoWhileCond
	StmtForCond
	StmtSwitchExpr
	StmtCaseLabel
	StmtReturn
	StmtBreak
	StmtContinue
	StmtExpression
	StmtBlock
	StmtOther
)

// Counted reports whether statements of this kind contribute to the
// meaningful-line total.
func (k StatementKind) Counted() bool {
	switch k {
	case StmtDefinition, StmtIfCond, StmtWhileCond, StmtDoWhileCond,
		StmtForCond, StmtSwitchExpr, StmtReturn, StmtBreak, StmtContinue,
		StmtExpression:
		return true
	}
	return false
}

// Label is the human name used in counted-statement child diagnostics.
func (k StatementKind) Label() string {
	switch k {
	case StmtDefinition:
		return "definition"
	case StmtIfCond:
		return "if condition"
	case StmtWhileCond:
		return "while condition"
	case StmtDoWhileCond:
		return "do/while condition"
	case StmtForCond:
		return "for condition"
	case StmtSwitchExpr:
		return "switch expression"
	case StmtReturn:
		return "return statement"
	case StmtBreak:
		return "break statement"
	case StmtContinue:
		return "continue statement"
	case StmtExpression:
		return "expression"
	default:
		return ""
	}
}

// Statement is one segmented unit of a function body. Every statement
// belongs to exactly one function and never overlaps a sibling's range; a
// wrapped statement owns all of its physical lines.
type Statement struct {
	Kind      StatementKind
	Pos       lexer.Pos // anchor: leading keyword or declarator name
	StartLine int
	EndLine   int
}

// LineSpan is the number of physical lines the statement occupies.
func (s Statement) LineSpan() int {
	return s.EndLine - s.StartLine + 1
}

// GlobalVariable is one file-scope variable declaration clause.
type GlobalVariable struct {
	Pos   lexer.Pos // start of the declaration
	Names []string  // declarator names, for the case vote
}

// FunctionDef is a top-level function definition with its brace-balanced
// body. Forward declarations never become FunctionDefs.
type FunctionDef struct {
	Name         string
	NamePos      lexer.Pos
	DeclLine     int // first line of the signature
	OpenLine     int // line of the opening brace
	CloseLine    int // line of the matching closing brace
	CommentAbove bool

	// body is the token range strictly between the braces.
	body []lexer.Token

	Statements []Statement
}

// IdentifierOwner records which construct declared an identifier.
type IdentifierOwner int

const (
	OwnerGlobal IdentifierOwner = iota
	OwnerFunction
	OwnerParam
	OwnerLocal
)

// Identifier is a declared name with its declaration position, collected
// for the file-wide casing vote. Macro names are never Identifiers.
type Identifier struct {
	Name  string
	Pos   lexer.Pos
	Owner IdentifierOwner
}

// CaseSignal is the casing classification of one identifier.
type CaseSignal int

const (
	Neutral CaseSignal = iota
	SnakeSignal
	CamelSignal
)

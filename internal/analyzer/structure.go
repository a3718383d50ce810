package analyzer

import (
	"github.com/mquinn/cstyle/internal/lexer"
)

// Structure is everything the extractor found at file scope: global
// variable clauses, function definitions with their body spans, and the
// identifiers those constructs declare.
type Structure struct {
	Globals     []GlobalVariable
	Functions   []*FunctionDef
	Identifiers []Identifier
}

// ExtractStructure walks the top-level token stream and classifies each
// clause as a global variable declaration, a function definition, a
// forward declaration, or a type definition. Function bodies are the
// brace-balanced token range found with a depth counter; tokens inside
// excluded spans still participate in brace matching but never open a
// clause of their own.
func ExtractStructure(f *lexer.File, pp *lexer.Preproc) (*Structure, error) {
	st := &Structure{}
	toks := f.Tokens
	i := 0

	for i < len(toks) {
		t := toks[i]
		if t.Kind == lexer.KindDirective || pp.ExcludedLine(t.Pos.Line) {
			i++
			continue
		}
		if t.IsPunct(";") || t.IsPunct("}") {
			i++
			continue
		}

		clause, term, next := gatherClause(toks, i)
		if len(clause) == 0 {
			i = next + 1
			continue
		}

		switch term {
		case "{":
			nameIdx := functionNameIndex(toks, clause)
			if nameIdx >= 0 {
				fn, after, err := extractFunction(f, toks, clause, nameIdx, next)
				if err != nil {
					return nil, err
				}
				st.Functions = append(st.Functions, fn)
				st.Identifiers = append(st.Identifiers, Identifier{
					Name: fn.Name, Pos: fn.NamePos, Owner: OwnerFunction,
				})
				for _, p := range paramIdentifiers(toks, clause) {
					st.Identifiers = append(st.Identifiers, p)
				}
				i = after
				continue
			}
			// Type definition body (struct/union/enum). Skip the braces,
			// then look for a trailing instance declarator before ';'.
			close, err := matchBraces(toks, next)
			if err != nil {
				return nil, err
			}
			tail, end := gatherTail(toks, close+1)
			if !clauseStartsWith(toks, clause, "typedef") {
				names := declaratorIdents(toks, tail)
				if len(names) > 0 {
					st.addGlobal(toks, clause, tail)
				}
			}
			i = end
		case ";":
			i = next + 1
			if clauseStartsWith(toks, clause, "typedef") {
				continue
			}
			hasEq := clauseHasTopLevelEq(toks, clause)
			if clauseLooksLikeCall(toks, clause) && !hasEq {
				// Forward declaration or function-pointer prototype:
				// exempt from both the global and comment rules.
				continue
			}
			if names := declaratorNames(toks, clause); len(names) > 0 {
				st.addGlobalClause(toks, clause, names)
			}
		default:
			i = next + 1
		}
	}

	return st, nil
}

func (st *Structure) addGlobalClause(toks []lexer.Token, clause []int, names []namedIdent) {
	g := GlobalVariable{Pos: toks[clause[0]].Pos}
	for _, n := range names {
		g.Names = append(g.Names, n.name)
		st.Identifiers = append(st.Identifiers, Identifier{
			Name: n.name, Pos: n.pos, Owner: OwnerGlobal,
		})
	}
	st.Globals = append(st.Globals, g)
}

func (st *Structure) addGlobal(toks []lexer.Token, clause, tail []int) {
	names := declaratorIdents(toks, tail)
	g := GlobalVariable{Pos: toks[clause[0]].Pos}
	for _, n := range names {
		g.Names = append(g.Names, n.name)
		st.Identifiers = append(st.Identifiers, Identifier{
			Name: n.name, Pos: n.pos, Owner: OwnerGlobal,
		})
	}
	st.Globals = append(st.Globals, g)
}

// gatherClause collects token indices from start until a top-level `;` or
// `{` terminator. Braces that belong to an initializer (after `=`) are
// folded into the clause. Returns the clause, the terminator text ("" at
// end of input), and the index of the terminator token.
func gatherClause(toks []lexer.Token, start int) (clause []int, term string, next int) {
	parens := 0
	sawEq := false
	i := start
	for i < len(toks) {
		t := toks[i]
		if t.Kind == lexer.KindDirective {
			i++
			continue
		}
		switch {
		case t.IsPunct("("):
			parens++
		case t.IsPunct(")"):
			parens--
		case t.IsPunct("=") && parens == 0:
			sawEq = true
		case t.IsPunct(";") && parens == 0:
			return clause, ";", i
		case t.IsPunct("{") && parens == 0:
			if !sawEq {
				return clause, "{", i
			}
			// Initializer list: fold the braced range into the clause.
			close, err := matchBraces(toks, i)
			if err != nil {
				for ; i < len(toks); i++ {
					clause = append(clause, i)
				}
				return clause, "", i
			}
			for ; i <= close; i++ {
				clause = append(clause, i)
			}
			continue
		}
		clause = append(clause, i)
		i++
	}
	return clause, "", i
}

// gatherTail collects tokens after a type-definition body up to `;`.
func gatherTail(toks []lexer.Token, start int) (tail []int, end int) {
	i := start
	for i < len(toks) {
		if toks[i].IsPunct(";") {
			return tail, i + 1
		}
		if toks[i].Kind != lexer.KindDirective {
			tail = append(tail, i)
		}
		i++
	}
	return tail, i
}

// functionNameIndex reports the clause index of the function name for a
// clause terminated by `{`: the identifier directly before a `(` whose
// matching `)` closes the clause. Returns -1 when the clause is not a
// function signature.
func functionNameIndex(toks []lexer.Token, clause []int) int {
	if len(clause) < 3 {
		return -1
	}
	last := toks[clause[len(clause)-1]]
	if !last.IsPunct(")") {
		return -1
	}
	depth := 0
	for ci := len(clause) - 1; ci >= 1; ci-- {
		t := toks[clause[ci]]
		if t.IsPunct(")") {
			depth++
		} else if t.IsPunct("(") {
			depth--
			if depth == 0 {
				name := toks[clause[ci-1]]
				if name.Kind == lexer.KindIdent {
					return ci - 1
				}
				return -1
			}
		}
	}
	return -1
}

func extractFunction(f *lexer.File, toks []lexer.Token, clause []int, nameIdx, braceIdx int) (*FunctionDef, int, error) {
	close, err := matchBraces(toks, braceIdx)
	if err != nil {
		return nil, 0, err
	}
	name := toks[clause[nameIdx]]
	declLine := toks[clause[0]].Pos.Line
	fn := &FunctionDef{
		Name:         name.Text,
		NamePos:      name.Pos,
		DeclLine:     declLine,
		OpenLine:     toks[braceIdx].Pos.Line,
		CloseLine:    toks[close].Pos.Line,
		CommentAbove: f.IsCommentOnlyLine(declLine - 1),
		body:         toks[braceIdx+1 : close],
	}
	return fn, close + 1, nil
}

// paramIdentifiers extracts the declared parameter names from a function
// signature clause: for each comma-separated segment of the outermost
// parameter list, the last identifier outside brackets.
func paramIdentifiers(toks []lexer.Token, clause []int) []Identifier {
	// Locate the outermost parameter list: the final balanced paren group.
	open := -1
	depth := 0
	for ci := len(clause) - 1; ci >= 0; ci-- {
		t := toks[clause[ci]]
		if t.IsPunct(")") {
			depth++
		} else if t.IsPunct("(") {
			depth--
			if depth == 0 {
				open = ci
				break
			}
		}
	}
	if open < 0 {
		return nil
	}

	var out []Identifier
	seg := []int{}
	flush := func() {
		if n, ok := lastIdentOutsideBrackets(toks, seg); ok {
			out = append(out, Identifier{Name: n.name, Pos: n.pos, Owner: OwnerParam})
		}
		seg = seg[:0]
	}
	depth = 0
	for ci := open; ci < len(clause)-1; ci++ {
		idx := clause[ci]
		t := toks[idx]
		switch {
		case t.IsPunct("("):
			depth++
			if depth == 1 {
				continue
			}
		case t.IsPunct(")"):
			depth--
		case t.IsPunct(",") && depth == 1:
			flush()
			continue
		}
		seg = append(seg, idx)
	}
	flush()
	return out
}

type namedIdent struct {
	name string
	pos  lexer.Pos
}

// declaratorNames finds the declared names in a declaration clause: one
// per comma-separated segment, taking the identifier before `=` when an
// initializer is present, otherwise the last identifier outside brackets.
func declaratorNames(toks []lexer.Token, clause []int) []namedIdent {
	var out []namedIdent
	seg := []int{}
	depth := 0
	flush := func() {
		if n, ok := segmentDeclarator(toks, seg); ok {
			out = append(out, n)
		}
		seg = seg[:0]
	}
	for _, idx := range clause {
		t := toks[idx]
		switch {
		case t.IsPunct("("), t.IsPunct("{"), t.IsPunct("["):
			depth++
		case t.IsPunct(")"), t.IsPunct("}"), t.IsPunct("]"):
			depth--
		case t.IsPunct(",") && depth == 0:
			flush()
			continue
		}
		seg = append(seg, idx)
	}
	flush()
	return out
}

// segmentDeclarator picks the declared name out of one declarator segment.
func segmentDeclarator(toks []lexer.Token, seg []int) (namedIdent, bool) {
	upto := seg
	for si, idx := range seg {
		if toks[idx].IsPunct("=") {
			upto = seg[:si]
			break
		}
	}
	return lastIdentOutsideBrackets(toks, upto)
}

func lastIdentOutsideBrackets(toks []lexer.Token, seg []int) (namedIdent, bool) {
	brackets := 0
	found := namedIdent{}
	ok := false
	for _, idx := range seg {
		t := toks[idx]
		switch {
		case t.IsPunct("["):
			brackets++
		case t.IsPunct("]"):
			brackets--
		case t.Kind == lexer.KindIdent && brackets == 0:
			found = namedIdent{name: t.Text, pos: t.Pos}
			ok = true
		}
	}
	return found, ok
}

// declaratorIdents collects every identifier outside brackets, used for
// trailing instance declarators after a type-definition body.
func declaratorIdents(toks []lexer.Token, seg []int) []namedIdent {
	var out []namedIdent
	brackets := 0
	for _, idx := range seg {
		t := toks[idx]
		switch {
		case t.IsPunct("["):
			brackets++
		case t.IsPunct("]"):
			brackets--
		case t.Kind == lexer.KindIdent && brackets == 0:
			out = append(out, namedIdent{name: t.Text, pos: t.Pos})
		}
	}
	return out
}

func clauseStartsWith(toks []lexer.Token, clause []int, kw string) bool {
	return len(clause) > 0 && toks[clause[0]].IsKeywordText(kw)
}

func clauseHasTopLevelEq(toks []lexer.Token, clause []int) bool {
	parens := 0
	for _, idx := range clause {
		t := toks[idx]
		switch {
		case t.IsPunct("("):
			parens++
		case t.IsPunct(")"):
			parens--
		case t.IsPunct("=") && parens == 0:
			return true
		}
	}
	return false
}

// clauseLooksLikeCall reports whether the clause contains an identifier
// directly followed by `(`, the shape of a prototype or call.
func clauseLooksLikeCall(toks []lexer.Token, clause []int) bool {
	for ci := 0; ci+1 < len(clause); ci++ {
		if toks[clause[ci]].Kind == lexer.KindIdent && toks[clause[ci+1]].IsPunct("(") {
			return true
		}
	}
	return false
}

// matchBraces returns the index of the `}` matching the `{` at open,
// counting depth over the token stream. String, char, and comment content
// was already excluded by the scanner, so a plain depth counter suffices.
func matchBraces(toks []lexer.Token, open int) (int, error) {
	depth := 0
	for i := open; i < len(toks); i++ {
		if toks[i].IsPunct("{") {
			depth++
		} else if toks[i].IsPunct("}") {
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, &lexer.ParseError{Pos: toks[open].Pos, Reason: "unbalanced braces"}
}

package analyzer

import (
	"github.com/mquinn/cstyle/internal/lexer"
)

// AnalyzeBody segments a function body into statements, classifies them,
// and measures each one's physical line span. Tokens on excluded lines and
// directive tokens are dropped up front, so excluded content can never
// contribute a statement. The collected local declarator names are
// returned for the identifier-casing vote.
func AnalyzeBody(fn *FunctionDef, pp *lexer.Preproc) []Identifier {
	toks := make([]lexer.Token, 0, len(fn.body))
	for _, t := range fn.body {
		if t.Kind == lexer.KindDirective || pp.ExcludedLine(t.Pos.Line) {
			continue
		}
		toks = append(toks, t)
	}

	p := &bodyParser{toks: toks}
	p.parseStatements(func() bool { return p.done() })
	fn.Statements = p.stmts
	return p.locals
}

// MeaningfulLines sums the line spans of the counted statements.
func MeaningfulLines(fn *FunctionDef) int {
	total := 0
	for _, s := range fn.Statements {
		if s.Kind.Counted() {
			total += s.LineSpan()
		}
	}
	return total
}

type bodyParser struct {
	toks   []lexer.Token
	i      int
	stmts  []Statement
	locals []Identifier
}

func (p *bodyParser) done() bool { return p.i >= len(p.toks) }

func (p *bodyParser) cur() lexer.Token { return p.toks[p.i] }

func (p *bodyParser) peekIs(text string) bool {
	return !p.done() && (p.cur().IsPunct(text) || p.cur().IsKeywordText(text))
}

func (p *bodyParser) record(kind StatementKind, anchor lexer.Pos, endLine int) {
	p.stmts = append(p.stmts, Statement{
		Kind:      kind,
		Pos:       anchor,
		StartLine: anchor.Line,
		EndLine:   endLine,
	})
}

func (p *bodyParser) parseStatements(stop func() bool) {
	for !p.done() && !stop() {
		p.parseStatement()
	}
}

func (p *bodyParser) parseStatement() {
	if p.done() {
		return
	}
	t := p.cur()

	switch {
	case t.IsPunct(";"):
		p.i++
	case t.IsPunct("{"):
		p.parseBlock()
	case t.IsPunct("}"):
		// Stray close; callers normally consume these. Never counted.
		p.i++
	case t.IsKeywordText("if"):
		p.parseIf()
	case t.IsKeywordText("while"):
		p.parseWhile()
	case t.IsKeywordText("do"):
		p.parseDo()
	case t.IsKeywordText("for"):
		p.parseFor()
	case t.IsKeywordText("switch"):
		p.parseSwitch()
	case t.IsKeywordText("return"):
		p.parseReturn()
	case t.IsKeywordText("break"), t.IsKeywordText("continue"):
		p.parseJump(t)
	case t.IsKeywordText("goto"):
		p.skipToSemicolon()
	case t.IsKeywordText("case"), t.IsKeywordText("default"):
		p.parseCaseLabel()
	case t.IsKeywordText("else"):
		// A dangling else outside parseIf; never counted.
		p.i++
		p.record(StmtElse, t.Pos, t.Pos.Line)
		p.parseStatement()
	case p.looksLikeLabel():
		p.i += 2
	case p.looksLikeDeclaration():
		p.parseDeclaration()
	default:
		p.parseExpression()
	}
}

// parseBlock consumes a `{ ... }` region. Bare braces are never counted.
func (p *bodyParser) parseBlock() {
	open := p.cur()
	p.record(StmtBlock, open.Pos, open.Pos.Line)
	p.i++ // '{'
	p.parseStatements(func() bool { return p.peekIs("}") })
	if !p.done() {
		p.i++ // '}'
	}
}

// parseIf counts the `if (...)` header, then the consequence, then any
// else branch. `else if` re-enters here so each condition header in a
// chain is counted; a bare `else` never is.
func (p *bodyParser) parseIf() {
	kw := p.cur()
	p.i++
	end := p.parseParenGroup(kw.Pos.Line)
	p.record(StmtIfCond, kw.Pos, end)

	p.parseStatement() // consequence

	if !p.done() && p.cur().IsKeywordText("else") {
		elseTok := p.cur()
		p.i++
		if !p.done() && p.cur().IsKeywordText("if") {
			p.parseIf()
			return
		}
		p.record(StmtElse, elseTok.Pos, elseTok.Pos.Line)
		p.parseStatement()
	}
}

func (p *bodyParser) parseWhile() {
	kw := p.cur()
	p.i++
	end := p.parseParenGroup(kw.Pos.Line)
	p.record(StmtWhileCond, kw.Pos, end)
	if p.peekIs(";") {
		p.i++
		return
	}
	p.parseStatement()
}

// parseDo consumes the body first; the `do` keyword itself is never
// counted. The trailing `while (...)` is counted as a do/while condition.
func (p *bodyParser) parseDo() {
	p.i++ // 'do'
	p.parseStatement()
	if p.done() || !p.cur().IsKeywordText("while") {
		return
	}
	kw := p.cur()
	p.i++
	end := p.parseParenGroup(kw.Pos.Line)
	p.record(StmtDoWhileCond, kw.Pos, end)
	if p.peekIs(";") {
		p.i++
	}
}

func (p *bodyParser) parseFor() {
	kw := p.cur()
	p.i++
	end := p.parseParenGroup(kw.Pos.Line)
	p.record(StmtForCond, kw.Pos, end)
	p.parseStatement()
}

// parseSwitch counts the `switch (...)` header. Inside the body, case and
// default labels are never counted, and a break that directly ends an arm
// is skipped; breaks nested deeper (inside a loop within an arm) count as
// usual.
func (p *bodyParser) parseSwitch() {
	kw := p.cur()
	p.i++
	end := p.parseParenGroup(kw.Pos.Line)
	p.record(StmtSwitchExpr, kw.Pos, end)

	if p.done() || !p.cur().IsPunct("{") {
		p.parseStatement()
		return
	}
	p.i++ // '{'
	for !p.done() && !p.peekIs("}") {
		t := p.cur()
		switch {
		case t.IsKeywordText("case"), t.IsKeywordText("default"):
			p.parseCaseLabel()
		case t.IsKeywordText("break"):
			p.record(StmtOther, t.Pos, t.Pos.Line)
			p.i++
			if p.peekIs(";") {
				p.i++
			}
		case t.IsPunct("{"):
			p.parseArmBlock()
		default:
			p.parseStatement()
		}
	}
	if !p.done() {
		p.i++ // '}'
	}
}

// parseArmBlock is a braced case arm: its direct breaks are skipped like
// the unbraced form's.
func (p *bodyParser) parseArmBlock() {
	open := p.cur()
	p.record(StmtBlock, open.Pos, open.Pos.Line)
	p.i++ // '{'
	for !p.done() && !p.peekIs("}") {
		t := p.cur()
		if t.IsKeywordText("break") {
			p.record(StmtOther, t.Pos, t.Pos.Line)
			p.i++
			if p.peekIs(";") {
				p.i++
			}
			continue
		}
		p.parseStatement()
	}
	if !p.done() {
		p.i++ // '}'
	}
}

func (p *bodyParser) parseCaseLabel() {
	kw := p.cur()
	p.i++
	for !p.done() && !p.cur().IsPunct(":") {
		p.i++
	}
	if !p.done() {
		p.i++ // ':'
	}
	p.record(StmtCaseLabel, kw.Pos, kw.Pos.Line)
}

func (p *bodyParser) parseReturn() {
	kw := p.cur()
	p.i++
	endLine := kw.Pos.Line
	for !p.done() && !p.cur().IsPunct(";") {
		endLine = p.cur().EndLine
		p.i++
	}
	if !p.done() {
		p.i++ // ';'
	}
	p.record(StmtReturn, kw.Pos, endLine)
}

func (p *bodyParser) parseJump(t lexer.Token) {
	kind := StmtBreak
	if t.Text == "continue" {
		kind = StmtContinue
	}
	p.i++
	if p.peekIs(";") {
		p.i++
	}
	p.record(kind, t.Pos, t.Pos.Line)
}

func (p *bodyParser) skipToSemicolon() {
	start := p.cur()
	for !p.done() && !p.cur().IsPunct(";") {
		p.i++
	}
	if !p.done() {
		p.i++
	}
	p.record(StmtOther, start.Pos, start.Pos.Line)
}

// looksLikeLabel matches `ident :` not followed by another colon.
func (p *bodyParser) looksLikeLabel() bool {
	if p.i+1 >= len(p.toks) {
		return false
	}
	return p.toks[p.i].Kind == lexer.KindIdent && p.toks[p.i+1].IsPunct(":")
}

// looksLikeDeclaration uses shallow shape instead of type knowledge: a
// leading type/storage keyword, or `ident ident`, or `ident * ident`
// (a typedef'd pointer declaration).
func (p *bodyParser) looksLikeDeclaration() bool {
	t := p.cur()
	if t.Kind == lexer.KindKeyword && lexer.IsTypeKeyword(t.Text) {
		return true
	}
	if t.Kind != lexer.KindIdent {
		return false
	}
	if p.i+1 < len(p.toks) && p.toks[p.i+1].Kind == lexer.KindIdent {
		return true
	}
	if p.i+2 < len(p.toks) && p.toks[p.i+1].IsPunct("*") && p.toks[p.i+2].Kind == lexer.KindIdent {
		// Ambiguous with multiplication; a declaration is the harmless
		// reading since it is uncounted unless initialized.
		return p.i+3 < len(p.toks) && (p.toks[p.i+3].IsPunct(";") || p.toks[p.i+3].IsPunct("="))
	}
	return false
}

// parseDeclaration consumes one declaration clause. Each comma-separated
// declarator with an initializer is a counted definition spanning from its
// name to the end of the initializer; declarators without one are
// uncounted. All declarator names join the casing vote.
func (p *bodyParser) parseDeclaration() {
	clause := p.gatherToSemicolon()

	seg := []lexer.Token{}
	depth := 0
	flush := func() {
		p.flushDeclarator(seg)
		seg = seg[:0]
	}
	for _, t := range clause {
		switch {
		case t.IsPunct("("), t.IsPunct("{"), t.IsPunct("["):
			depth++
		case t.IsPunct(")"), t.IsPunct("}"), t.IsPunct("]"):
			depth--
		case t.IsPunct(",") && depth == 0:
			flush()
			continue
		}
		seg = append(seg, t)
	}
	flush()
}

func (p *bodyParser) flushDeclarator(seg []lexer.Token) {
	if len(seg) == 0 {
		return
	}
	eq := -1
	for si, t := range seg {
		if t.IsPunct("=") {
			eq = si
			break
		}
	}

	nameOf := func(part []lexer.Token) (lexer.Token, bool) {
		brackets := 0
		var name lexer.Token
		ok := false
		for _, t := range part {
			switch {
			case t.IsPunct("["):
				brackets++
			case t.IsPunct("]"):
				brackets--
			case t.Kind == lexer.KindIdent && brackets == 0:
				name = t
				ok = true
			}
		}
		return name, ok
	}

	if eq < 0 {
		name, ok := nameOf(seg)
		if !ok {
			return
		}
		p.locals = append(p.locals, Identifier{Name: name.Text, Pos: name.Pos, Owner: OwnerLocal})
		p.record(StmtDeclaration, name.Pos, seg[len(seg)-1].EndLine)
		return
	}

	name, ok := nameOf(seg[:eq])
	if !ok {
		return
	}
	p.locals = append(p.locals, Identifier{Name: name.Text, Pos: name.Pos, Owner: OwnerLocal})
	p.record(StmtDefinition, name.Pos, seg[len(seg)-1].EndLine)
}

func (p *bodyParser) parseExpression() {
	start := p.cur()
	endLine := start.Pos.Line
	depth := 0
	for !p.done() {
		t := p.cur()
		switch {
		case t.IsPunct("("), t.IsPunct("["), t.IsPunct("{"):
			depth++
		case t.IsPunct(")"), t.IsPunct("]"), t.IsPunct("}"):
			depth--
		case t.IsPunct(";") && depth == 0:
			p.i++
			p.record(StmtExpression, start.Pos, endLine)
			return
		}
		endLine = t.EndLine
		p.i++
	}
	p.record(StmtExpression, start.Pos, endLine)
}

// parseParenGroup consumes a balanced `( ... )` group and returns the line
// of the closing paren, so condition headers span from their keyword to
// the end of the condition.
func (p *bodyParser) parseParenGroup(fallbackLine int) int {
	if p.done() || !p.cur().IsPunct("(") {
		return fallbackLine
	}
	depth := 0
	end := fallbackLine
	for !p.done() {
		t := p.cur()
		if t.IsPunct("(") {
			depth++
		} else if t.IsPunct(")") {
			depth--
			if depth == 0 {
				p.i++
				return t.Pos.Line
			}
		}
		end = t.EndLine
		p.i++
	}
	return end
}

// gatherToSemicolon consumes tokens through the terminating `;`, folding
// balanced parens, brackets, and initializer braces.
func (p *bodyParser) gatherToSemicolon() []lexer.Token {
	var clause []lexer.Token
	depth := 0
	for !p.done() {
		t := p.cur()
		switch {
		case t.IsPunct("("), t.IsPunct("["), t.IsPunct("{"):
			depth++
		case t.IsPunct(")"), t.IsPunct("]"), t.IsPunct("}"):
			depth--
		case t.IsPunct(";") && depth == 0:
			p.i++
			return clause
		}
		clause = append(clause, t)
		p.i++
	}
	return clause
}

package lexer

import (
	"fmt"
	"strings"
)

// ParseError is a structural failure (unterminated literal or comment) that
// is fatal for the file being scanned but never for its siblings.
type ParseError struct {
	Pos    Pos
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Reason)
}

// File is the scan result for one source file: the token stream, the
// physical lines, and the comment spans needed by the comment-above rule.
// It is derived once per analysis pass and read-only afterwards.
type File struct {
	Tokens []Token
	Lines  []string

	// comments holds half-open byte ranges [start, end) covering every
	// comment, including the delimiters.
	comments [][2]int

	// lineStarts[i] is the byte offset of 1-based line i+1.
	lineStarts []int
}

// Line returns the text of the given 1-based physical line, or "" when out
// of range. Diagnostics use this for their snippets.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.Lines) {
		return ""
	}
	return f.Lines[n-1]
}

// IsCommentOnlyLine reports whether the 1-based line consists solely of a
// comment, ignoring surrounding whitespace. Blank lines are not
// comment-only.
func (f *File) IsCommentOnlyLine(n int) bool {
	if n < 1 || n > len(f.Lines) {
		return false
	}
	line := f.Lines[n-1]
	if strings.TrimSpace(line) == "" {
		return false
	}
	start := f.lineStarts[n-1]
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == ' ' || c == '\t' || c == '\r' {
			continue
		}
		if !f.inComment(start + i) {
			return false
		}
	}
	return true
}

func (f *File) inComment(offset int) bool {
	for _, span := range f.comments {
		if offset >= span[0] && offset < span[1] {
			return true
		}
	}
	return false
}

type scanner struct {
	src  string
	off  int
	line int
	col  int

	file *File
}

// Scan tokenizes C source text. It skips comments (recording their spans),
// keeps string/char literal content out of the token stream proper, and
// emits preprocessor lines as single directive tokens with their full
// continuation-joined text. An unterminated string, char literal, or block
// comment yields a *ParseError.
func Scan(src string) (*File, error) {
	f := &File{Lines: strings.Split(src, "\n")}
	f.lineStarts = make([]int, len(f.Lines))
	off := 0
	for i, l := range f.Lines {
		f.lineStarts[i] = off
		off += len(l) + 1
	}

	s := &scanner{src: src, line: 1, col: 1, file: f}
	if err := s.run(); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *scanner) pos() Pos {
	return Pos{Line: s.line, Col: s.col, Offset: s.off}
}

func (s *scanner) peek() byte {
	if s.off >= len(s.src) {
		return 0
	}
	return s.src[s.off]
}

func (s *scanner) peekAt(n int) byte {
	if s.off+n >= len(s.src) {
		return 0
	}
	return s.src[s.off+n]
}

// advance consumes one byte, maintaining line/column bookkeeping.
func (s *scanner) advance() byte {
	c := s.src[s.off]
	s.off++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

func (s *scanner) run() error {
	atLineStart := true
	for s.off < len(s.src) {
		c := s.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			s.advance()
		case c == '\n':
			s.advance()
			atLineStart = true
			continue
		case c == '/' && s.peekAt(1) == '/':
			s.scanLineComment()
		case c == '/' && s.peekAt(1) == '*':
			if err := s.scanBlockComment(); err != nil {
				return err
			}
		case c == '#' && atLineStart:
			s.scanDirective()
			atLineStart = true
			continue
		case c == '"':
			if err := s.scanString(); err != nil {
				return err
			}
			atLineStart = false
		case c == '\'':
			if err := s.scanChar(); err != nil {
				return err
			}
			atLineStart = false
		case isIdentStart(c):
			s.scanIdent()
			atLineStart = false
		case c >= '0' && c <= '9':
			s.scanNumber()
			atLineStart = false
		default:
			start := s.pos()
			s.advance()
			s.emit(Token{Kind: KindPunct, Text: string(c), Pos: start, EndLine: start.Line})
			atLineStart = false
		}
	}
	return nil
}

func (s *scanner) emit(t Token) {
	s.file.Tokens = append(s.file.Tokens, t)
}

func (s *scanner) scanLineComment() {
	start := s.off
	for s.off < len(s.src) && s.peek() != '\n' {
		s.advance()
	}
	s.file.comments = append(s.file.comments, [2]int{start, s.off})
}

func (s *scanner) scanBlockComment() error {
	startPos := s.pos()
	start := s.off
	s.advance() // '/'
	s.advance() // '*'
	for s.off < len(s.src) {
		if s.peek() == '*' && s.peekAt(1) == '/' {
			s.advance()
			s.advance()
			s.file.comments = append(s.file.comments, [2]int{start, s.off})
			return nil
		}
		s.advance()
	}
	return &ParseError{Pos: startPos, Reason: "unterminated block comment"}
}

// scanDirective consumes a full preprocessor line, honoring backslash
// continuations, and emits it as one token. The token text has
// continuations replaced by a single space so downstream regexes see a
// single logical line.
func (s *scanner) scanDirective() {
	start := s.pos()
	var b strings.Builder
	for s.off < len(s.src) {
		c := s.peek()
		if c == '\\' && (s.peekAt(1) == '\n' || (s.peekAt(1) == '\r' && s.peekAt(2) == '\n')) {
			s.advance() // backslash
			for s.off < len(s.src) && s.peek() != '\n' {
				s.advance()
			}
			if s.off < len(s.src) {
				s.advance() // newline
			}
			b.WriteByte(' ')
			continue
		}
		if c == '\n' {
			s.advance()
			break
		}
		b.WriteByte(c)
		s.advance()
	}
	end := s.line
	// The newline we consumed already moved s.line forward.
	if s.col == 1 && end > start.Line {
		end--
	}
	s.emit(Token{Kind: KindDirective, Text: strings.TrimRight(b.String(), " \t\r"), Pos: start, EndLine: end})
}

func (s *scanner) scanString() error {
	startPos := s.pos()
	s.advance() // opening quote
	for s.off < len(s.src) {
		c := s.peek()
		if c == '\\' {
			s.advance()
			if s.off < len(s.src) {
				s.advance()
			}
			continue
		}
		if c == '\n' {
			break
		}
		s.advance()
		if c == '"' {
			text := s.src[startPos.Offset:s.off]
			s.emit(Token{Kind: KindString, Text: text, Pos: startPos, EndLine: startPos.Line})
			return nil
		}
	}
	return &ParseError{Pos: startPos, Reason: "unterminated string literal"}
}

func (s *scanner) scanChar() error {
	startPos := s.pos()
	s.advance() // opening quote
	for s.off < len(s.src) {
		c := s.peek()
		if c == '\\' {
			s.advance()
			if s.off < len(s.src) {
				s.advance()
			}
			continue
		}
		if c == '\n' {
			break
		}
		s.advance()
		if c == '\'' {
			text := s.src[startPos.Offset:s.off]
			s.emit(Token{Kind: KindChar, Text: text, Pos: startPos, EndLine: startPos.Line})
			return nil
		}
	}
	return &ParseError{Pos: startPos, Reason: "unterminated char literal"}
}

func (s *scanner) scanIdent() {
	start := s.pos()
	for s.off < len(s.src) && isIdentPart(s.peek()) {
		s.advance()
	}
	text := s.src[start.Offset:s.off]
	kind := KindIdent
	if IsKeyword(text) {
		kind = KindKeyword
	}
	s.emit(Token{Kind: kind, Text: text, Pos: start, EndLine: start.Line})
}

// scanNumber consumes a numeric literal loosely: digits, hex letters,
// suffixes, and decimal points all fold into one token. The rules never
// look inside numbers, only past them.
func (s *scanner) scanNumber() {
	start := s.pos()
	for s.off < len(s.src) {
		c := s.peek()
		if isIdentPart(c) || c == '.' {
			s.advance()
			continue
		}
		break
	}
	s.emit(Token{Kind: KindNumber, Text: s.src[start.Offset:s.off], Pos: start, EndLine: start.Line})
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

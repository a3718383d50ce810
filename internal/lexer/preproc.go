package lexer

import "regexp"

// MacroDef records one #define. Created once, never mutated.
type MacroDef struct {
	Name        string
	Pos         Pos
	Replacement string
}

// IncludeRef is a quoted #include target. System includes (<...>) are not
// tracked; they are never followed.
type IncludeRef struct {
	Path string
	Pos  Pos
}

// Preproc is the result of walking a file's directive tokens: registered
// macros, quoted includes, and the spans excluded from meaningful-line
// counting.
type Preproc struct {
	Macros   []MacroDef
	Includes []IncludeRef

	// Excluded holds the #ifdef <guard> ... #endif regions, inclusive of
	// the directive lines themselves.
	Excluded []Span
}

// ExcludedLine reports whether the 1-based line falls inside any excluded
// span.
func (p *Preproc) ExcludedLine(line int) bool {
	for _, s := range p.Excluded {
		if s.Contains(line) {
			return true
		}
	}
	return false
}

var (
	defineRe  = regexp.MustCompile(`^#\s*define\s+([A-Za-z_][A-Za-z0-9_]*)`)
	condRe    = regexp.MustCompile(`^#\s*(ifdef|ifndef|if)\b\s*(\S*)`)
	endifRe   = regexp.MustCompile(`^#\s*endif\b`)
	includeRe = regexp.MustCompile(`^#\s*include\s+"([^"]+)"`)
)

type condFrame struct {
	excluded  bool
	startLine int
}

// TrackPreprocessor walks the directive tokens of a scanned file in order.
// A conditional whose directive is `ifdef` and whose guard is exactly
// guard (normally "DEBUG") opens an excluded span closed by the matching
// #endif; a span left open at end of file closes on the last line. Every
// #define registers a MacroDef regardless of position.
func TrackPreprocessor(f *File, guard string) *Preproc {
	p := &Preproc{}
	var stack []condFrame

	for _, tok := range f.Tokens {
		if tok.Kind != KindDirective {
			continue
		}
		text := tok.Text

		if m := defineRe.FindStringSubmatchIndex(text); m != nil {
			name := text[m[2]:m[3]]
			rest := ""
			if m[3] < len(text) {
				rest = text[m[3]:]
			}
			p.Macros = append(p.Macros, MacroDef{
				Name:        name,
				Pos:         Pos{Line: tok.Pos.Line, Col: tok.Pos.Col + m[2], Offset: tok.Pos.Offset + m[2]},
				Replacement: rest,
			})
			continue
		}

		if m := includeRe.FindStringSubmatch(text); m != nil {
			p.Includes = append(p.Includes, IncludeRef{Path: m[1], Pos: tok.Pos})
			continue
		}

		if m := condRe.FindStringSubmatch(text); m != nil {
			stack = append(stack, condFrame{
				excluded:  m[1] == "ifdef" && m[2] == guard,
				startLine: tok.Pos.Line,
			})
			continue
		}

		if endifRe.MatchString(text) {
			if len(stack) == 0 {
				continue
			}
			frame := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if frame.excluded {
				p.Excluded = append(p.Excluded, Span{StartLine: frame.startLine, EndLine: tok.Pos.Line})
			}
		}
	}

	// Close any guard left dangling at end of file.
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].excluded {
			p.Excluded = append(p.Excluded, Span{StartLine: stack[i].startLine, EndLine: len(f.Lines)})
		}
	}

	return p
}

// Package analyzer turns raw C text into classified declarations,
// functions, statements, and identifiers, and applies the style rulebook
// to them. Each file is analyzed as a fresh value flow with no state
// shared across files or runs.
package analyzer

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/mquinn/cstyle/internal/lexer"
)

// Config holds the tunable rule parameters.
type Config struct {
	// MaxFunctionLines is the meaningful-line budget per function body.
	MaxFunctionLines int

	// DebugGuard is the #ifdef guard whose regions are excluded from
	// meaningful-line counting.
	DebugGuard string
}

// DefaultConfig returns the rulebook defaults.
func DefaultConfig() Config {
	return Config{MaxFunctionLines: 10, DebugGuard: "DEBUG"}
}

// Report is the ordered diagnostic list for one file.
type Report struct {
	Path        string
	Diagnostics []Diagnostic
}

// At least one letter, uppercase/digits/underscores only.
var screamingRe = regexp.MustCompile(`^[A-Z0-9_]*[A-Z][A-Z0-9_]*$`)

// AnalyzeSource runs the full per-file pipeline: scan, track the
// preprocessor, extract structure, apply the macro/global/comment/length
// rules, and close with the identifier-casing vote. Diagnostics come back
// sorted ascending by (line, column); ties keep rule-run order. A
// structural parse failure aborts this file only.
func AnalyzeSource(path, src string, cfg Config) (*Report, error) {
	f, err := lexer.Scan(src)
	if err != nil {
		return nil, err
	}
	pp := lexer.TrackPreprocessor(f, cfg.DebugGuard)
	st, err := ExtractStructure(f, pp)
	if err != nil {
		return nil, err
	}

	var diags []Diagnostic

	for _, m := range pp.Macros {
		if screamingRe.MatchString(m.Name) {
			continue
		}
		diags = append(diags, Diagnostic{
			Path: path, Line: m.Pos.Line, Col: m.Pos.Col,
			Message: "Macro is not SCREAMING_SNAKE_CASE",
			Snippet: f.Line(m.Pos.Line),
		})
	}

	for _, g := range st.Globals {
		diags = append(diags, Diagnostic{
			Path: path, Line: g.Pos.Line, Col: g.Pos.Col,
			Message: "Global variable",
			Snippet: f.Line(g.Pos.Line),
		})
	}

	idents := append([]Identifier(nil), st.Identifiers...)
	for _, fn := range st.Functions {
		if !fn.CommentAbove {
			diags = append(diags, Diagnostic{
				Path: path, Line: fn.NamePos.Line, Col: fn.NamePos.Col,
				Message: "Missing comment directly above function",
				Snippet: f.Line(fn.NamePos.Line),
			})
		}

		idents = append(idents, AnalyzeBody(fn, pp)...)

		total := MeaningfulLines(fn)
		if total > cfg.MaxFunctionLines {
			diags = append(diags, functionLengthDiagnostic(path, f, fn, total, cfg.MaxFunctionLines))
		}
	}

	diags = append(diags, caseDiagnostics(path, idents)...)

	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Col < diags[j].Col
	})

	return &Report{Path: path, Diagnostics: diags}, nil
}

func functionLengthDiagnostic(path string, f *lexer.File, fn *FunctionDef, total, limit int) Diagnostic {
	var children []Diagnostic
	for _, s := range fn.Statements {
		if !s.Kind.Counted() {
			continue
		}
		span := s.LineSpan()
		unit := "line"
		if span != 1 {
			unit = "lines"
		}
		children = append(children, Diagnostic{
			Path: path, Line: s.Pos.Line, Col: s.Pos.Col,
			Message: fmt.Sprintf("Counted %s for %d %s", s.Kind.Label(), span, unit),
			Snippet: f.Line(s.Pos.Line),
		})
	}
	return Diagnostic{
		Path: path, Line: fn.NamePos.Line, Col: fn.NamePos.Col,
		Message:  fmt.Sprintf("Function has more than %d lines (%d)", limit, total),
		Snippet:  f.Line(fn.NamePos.Line),
		Children: children,
	}
}

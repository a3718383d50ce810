// Package lint runs the analyzer over a set of files and renders the
// aggregated reports.
package lint

import (
	"fmt"
	"io"

	"github.com/mquinn/cstyle/internal/analyzer"
)

// FormatDiagnostic renders one diagnostic line:
//
//	<path>:<line>:<col> <message> `<snippet>`
func FormatDiagnostic(d analyzer.Diagnostic) string {
	return fmt.Sprintf("%s:%d:%d %s `%s`", d.Path, d.Line, d.Col, d.Message, d.Snippet)
}

// WriteReport renders a file's diagnostics in stored order. Children of a
// function-length diagnostic appear as an indented, 1-based enumeration.
func WriteReport(w io.Writer, rep *analyzer.Report) error {
	for _, d := range rep.Diagnostics {
		if _, err := fmt.Fprintln(w, FormatDiagnostic(d)); err != nil {
			return err
		}
		for i, child := range d.Children {
			if _, err := fmt.Fprintf(w, "  %d) %s\n", i+1, FormatDiagnostic(child)); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteResult renders every per-file report in path order.
func WriteResult(w io.Writer, res *Result) error {
	for _, rep := range res.Reports {
		if err := WriteReport(w, rep); err != nil {
			return err
		}
	}
	return nil
}

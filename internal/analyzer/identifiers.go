package analyzer

// Classify returns the casing signal of a declared identifier. A name with
// no underscore and no internal (non-leading) uppercase letter is Neutral.
// A name carrying both signal characters is classified by whichever
// appears first, left to right.
func Classify(name string) CaseSignal {
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' {
			return SnakeSignal
		}
		if i > 0 && c >= 'A' && c <= 'Z' {
			return CamelSignal
		}
	}
	return Neutral
}

const (
	msgSnake = "Snake case identifier contributes to case inconsistency"
	msgCamel = "Camel case identifier contributes to case inconsistency"
)

// caseDiagnostics runs the file-wide consistency vote: only when both
// snake- and camel-signal identifiers coexist is every non-neutral
// identifier flagged, each with the identifier itself as the snippet.
func caseDiagnostics(path string, idents []Identifier) []Diagnostic {
	snake, camel := 0, 0
	signals := make([]CaseSignal, len(idents))
	for i, id := range idents {
		signals[i] = Classify(id.Name)
		switch signals[i] {
		case SnakeSignal:
			snake++
		case CamelSignal:
			camel++
		}
	}
	if snake == 0 || camel == 0 {
		return nil
	}

	var out []Diagnostic
	for i, id := range idents {
		switch signals[i] {
		case SnakeSignal:
			out = append(out, Diagnostic{
				Path: path, Line: id.Pos.Line, Col: id.Pos.Col,
				Message: msgSnake, Snippet: id.Name,
			})
		case CamelSignal:
			out = append(out, Diagnostic{
				Path: path, Line: id.Pos.Line, Col: id.Pos.Col,
				Message: msgCamel, Snippet: id.Name,
			})
		}
	}
	return out
}

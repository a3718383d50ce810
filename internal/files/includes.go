package files

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/dominikbraun/graph"

	"github.com/mquinn/cstyle/internal/lexer"
)

// ExpandIncludes follows quoted #include directives from the seed files,
// resolving each target relative to the including file, and returns the
// deduplicated, sorted union of seeds and discovered files. The include
// relation is kept as a directed acyclic graph; an include that would
// close a cycle is logged and not followed again, so mutually including
// headers cannot recurse forever. System includes (<...>) are never
// followed, and a file that fails to scan is left to the runner to
// report.
func ExpandIncludes(seeds []string) []string {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())

	visited := make(map[string]bool)
	queue := append([]string(nil), seeds...)
	for _, s := range seeds {
		_ = g.AddVertex(s)
	}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		if visited[path] {
			continue
		}
		visited[path] = true

		for _, inc := range quotedIncludes(path) {
			target := filepath.Join(filepath.Dir(path), inc)
			if _, err := os.Stat(target); err != nil {
				continue
			}
			_ = g.AddVertex(target)
			if err := g.AddEdge(path, target); err != nil {
				if errors.Is(err, graph.ErrEdgeCreatesCycle) {
					log.Printf("Warning: include cycle between %s and %s", path, target)
				}
				// Already-known edges need no second visit either.
				if !visited[target] {
					queue = append(queue, target)
				}
				continue
			}
			queue = append(queue, target)
		}
	}

	all := make([]string, 0, len(visited))
	for p := range visited {
		all = append(all, p)
	}
	return dedupe(all)
}

// quotedIncludes scans one file for quoted #include targets. Scan or read
// failures yield no includes; the file itself still gets linted (and its
// failure reported) by the runner.
func quotedIncludes(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	f, err := lexer.Scan(string(data))
	if err != nil {
		return nil
	}
	pp := lexer.TrackPreprocessor(f, "DEBUG")
	out := make([]string, 0, len(pp.Includes))
	for _, inc := range pp.Includes {
		out = append(out, inc.Path)
	}
	return out
}

// Package files resolves the lint set: walking directory arguments with
// glob patterns and following quoted #include directives.
package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery walks directory trees and matches files against include and
// ignore glob patterns.
type Discovery struct {
	includePatterns []compiledPattern
	ignorePatterns  []compiledPattern
}

// NewDiscovery compiles the given glob patterns. Patterns use '/' as the
// separator regardless of platform.
func NewDiscovery(include, ignore []string) (*Discovery, error) {
	d := &Discovery{}
	for _, pattern := range include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.includePatterns = append(d.includePatterns, compiledPattern{pattern: pattern, glob: g})
	}
	for _, pattern := range ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}
	return d, nil
}

// Walk returns every file under root matching an include pattern and no
// ignore pattern, in sorted order.
func (d *Discovery) Walk(root string) ([]string, error) {
	var out []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.matchesAny(relPath, d.ignorePatterns) {
			return nil
		}
		if d.matchesAny(relPath, d.includePatterns) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

func (d *Discovery) matchesAny(relPath string, patterns []compiledPattern) bool {
	for _, p := range patterns {
		if p.glob.Match(relPath) {
			return true
		}
	}

	// A root-level path has no separator, so "**/*.c" would miss "main.c".
	// Retry those patterns with the "**/" prefix stripped.
	if !strings.Contains(relPath, "/") {
		for _, p := range patterns {
			if strings.HasPrefix(p.pattern, "**/") {
				simplified := strings.TrimPrefix(p.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(relPath) {
					return true
				}
			}
		}
	}

	return false
}

// Resolve turns a mix of file and directory arguments into a flat file
// list: files pass through, directories are walked.
func (d *Discovery) Resolve(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			// Leave the path in the set: the runner reports unreadable
			// files once, per path.
			out = append(out, arg)
			continue
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		walked, err := d.Walk(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, walked...)
	}
	return dedupe(out), nil
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	var out []string
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

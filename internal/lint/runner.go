package lint

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/mquinn/cstyle/internal/analyzer"
)

// Failure is a per-file analysis failure: an unreadable path or a
// structural parse error. Failures never abort sibling files.
type Failure struct {
	Path string
	Err  error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

// Result aggregates one run. Reports hold files in sorted path order;
// a file with zero diagnostics still gets a (empty) report so reruns are
// byte-identical.
type Result struct {
	Reports  []*analyzer.Report
	Failures []Failure
}

// HasFindings reports whether the run should exit non-zero: any rule
// diagnostic or any per-file failure.
func (r *Result) HasFindings() bool {
	if len(r.Failures) > 0 {
		return true
	}
	for _, rep := range r.Reports {
		if len(rep.Diagnostics) > 0 {
			return true
		}
	}
	return false
}

// Options configures a run.
type Options struct {
	Config analyzer.Config

	// OnFile, if set, is called once per completed file. Used by the CLI
	// progress bar; may be called from multiple goroutines.
	OnFile func(path string)
}

// Run analyzes the given files concurrently, bounded by GOMAXPROCS. The
// per-file pipelines share no mutable state, so the only ordering
// guarantee needed — reports grouped and sorted by path, diagnostics in
// per-file order — is applied after the wait.
func Run(ctx context.Context, paths []string, opts Options) *Result {
	cfg := opts.Config
	if cfg.MaxFunctionLines == 0 {
		cfg = analyzer.DefaultConfig()
	}

	reports := make([]*analyzer.Report, len(paths))
	failures := make([]*Failure, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for idx, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				failures[idx] = &Failure{Path: path, Err: err}
			} else if rep, err := analyzer.AnalyzeSource(path, string(data), cfg); err != nil {
				failures[idx] = &Failure{Path: path, Err: err}
			} else {
				reports[idx] = rep
			}
			if opts.OnFile != nil {
				opts.OnFile(path)
			}
			return nil
		})
	}
	// Workers only return the context error, which means the run itself
	// was cancelled; per-file problems land in failures.
	_ = g.Wait()

	res := &Result{}
	for _, rep := range reports {
		if rep != nil {
			res.Reports = append(res.Reports, rep)
		}
	}
	sort.Slice(res.Reports, func(i, j int) bool { return res.Reports[i].Path < res.Reports[j].Path })
	for _, f := range failures {
		if f != nil {
			res.Failures = append(res.Failures, *f)
		}
	}
	sort.Slice(res.Failures, func(i, j int) bool { return res.Failures[i].Path < res.Failures[j].Path })
	return res
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mquinn/cstyle/internal/analyzer"
	"github.com/mquinn/cstyle/internal/config"
	"github.com/mquinn/cstyle/internal/files"
	"github.com/mquinn/cstyle/internal/lint"
	"github.com/mquinn/cstyle/internal/watcher"
)

// errFindings is returned by check when violations were reported; it maps
// to a non-zero exit without an extra error line.
var errFindings = errors.New("style violations found")

var (
	quietFlag          bool
	watchFlag          bool
	maxLinesFlag       int
	followIncludesFlag bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check C sources against the style rulebook",
	Long: `Check analyzes the given files and directories (default: the current
directory) and reports every style violation found:

  - global (file-scope) variable declarations
  - missing comments directly above function definitions
  - functions exceeding the meaningful-line budget, with a numbered
    breakdown of every counted line
  - identifier casing that conflicts within a file
  - macro names that are not SCREAMING_SNAKE_CASE

Directories are searched with the configured include/ignore globs, and
quoted #include directives are followed to pull in local headers.

Examples:
  # Check the current directory
  cstyle check

  # Check specific files
  cstyle check src/main.c src/util.c

  # Raise the function budget for one run
  cstyle check --max-lines 20

  # Recheck automatically as files change
  cstyle check --watch
`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress output")
	checkCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes and recheck")
	checkCmd.Flags().IntVar(&maxLinesFlag, "max-lines", 0, "Override the meaningful-line budget per function")
	checkCmd.Flags().BoolVar(&followIncludesFlag, "follow-includes", true, "Follow quoted #include directives")
}

func runCheck(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted! Cancelling check...")
		cancel()
	}()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Flag overrides win over file and environment settings
	if cmd.Flags().Changed("max-lines") {
		cfg.Rules.MaxFunctionLines = maxLinesFlag
	}
	if cmd.Flags().Changed("follow-includes") {
		cfg.Paths.FollowIncludes = followIncludesFlag
	}
	if cmd.Flags().Changed("quiet") {
		cfg.Output.Quiet = quietFlag
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	targets, err := resolveTargets(cfg, args)
	if err != nil {
		return err
	}

	if watchFlag {
		return runWatch(ctx, cfg, args)
	}

	result := checkFiles(ctx, cfg, targets)
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("check cancelled")
	}

	if result.HasFindings() {
		return errFindings
	}
	return nil
}

// resolveTargets expands the command arguments into the concrete file
// list: directory walks through the configured globs, plus any quoted
// includes when follow_includes is on.
func resolveTargets(cfg *config.Config, args []string) ([]string, error) {
	disc, err := files.NewDiscovery(cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return nil, fmt.Errorf("invalid path patterns: %w", err)
	}

	targets, err := disc.Resolve(args)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	if cfg.Paths.FollowIncludes {
		targets = files.ExpandIncludes(targets)
	}
	return targets, nil
}

// checkFiles runs one pass over the targets, printing the report to
// stdout and failures to stderr.
func checkFiles(ctx context.Context, cfg *config.Config, targets []string) *lint.Result {
	progress := NewProgressReporter(cfg.Output.Quiet, len(targets))

	result := lint.Run(ctx, targets, lint.Options{
		Config: analyzer.Config{
			MaxFunctionLines: cfg.Rules.MaxFunctionLines,
			DebugGuard:       cfg.Rules.DebugGuard,
		},
		OnFile: progress.OnFileChecked,
	})
	progress.Finish()

	lint.WriteResult(os.Stdout, result)
	for _, f := range result.Failures {
		fmt.Fprintln(os.Stderr, f.String())
	}
	return result
}

// runWatch checks everything once, then rechecks on each debounced change
// batch until interrupted. Watch mode never exits non-zero on findings.
func runWatch(ctx context.Context, cfg *config.Config, args []string) error {
	// Watch the directories we were pointed at; single-file arguments
	// watch their parent directory.
	dirs := watchRoots(args)

	w, err := watcher.New(dirs, []string{".c", ".h"})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Stop()

	recheck := func() {
		targets, err := resolveTargets(cfg, args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		result := checkFiles(ctx, cfg, targets)
		if !cfg.Output.Quiet {
			n := 0
			for _, rep := range result.Reports {
				n += len(rep.Diagnostics)
			}
			fmt.Fprintf(os.Stderr, "✓ Checked %d files: %d findings\n", len(targets), n)
		}
	}

	recheck()
	if !cfg.Output.Quiet {
		fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")
	}

	if err := w.Start(ctx, func(changed []string) {
		if !cfg.Output.Quiet {
			fmt.Fprintf(os.Stderr, "%d files changed, rechecking\n", len(changed))
		}
		recheck()
	}); err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}

func watchRoots(args []string) []string {
	var dirs []string
	seen := make(map[string]bool)
	for _, arg := range args {
		dir := arg
		if info, err := os.Stat(arg); err != nil || !info.IsDir() {
			dir = filepath.Dir(arg)
		}
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

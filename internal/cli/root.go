package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mquinn/cstyle/internal/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cstyle",
	Short: "cstyle - a style checker for C sources",
	Long: `cstyle checks C source files against a house style rulebook:
no file-scope mutable variables, a comment above every function,
a meaningful-line budget per function, consistent identifier casing
per file, and SCREAMING_SNAKE_CASE macro names.

Findings are printed one per line as path:line:col message, and the
process exits non-zero when any finding is reported.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Findings were already printed by the check command.
		if !errors.Is(err, errFindings) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.cstyle.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig resolves the effective configuration for a command run.
// With --config it loads that exact file; otherwise it searches the
// working directory for .cstyle.yml and falls back to defaults.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.LoadFile(cfgFile)
		if err != nil {
			return nil, err
		}
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", cfgFile)
		}
		return cfg, nil
	}

	rootDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return config.NewLoader(rootDir).Load()
}

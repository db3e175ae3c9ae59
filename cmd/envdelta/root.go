package envdelta

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/envdelta/envdelta/internal/logging"
)

var (
	flagJSON    bool
	flagSARIF   bool
	flagNoColor bool
	flagVerbose bool
	flagFailOn  string

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the envdelta CLI.
var rootCmd = &cobra.Command{
	Use:           "envdelta",
	Short:         "Diff two config snapshots and audit the change for deployment risk",
	Long:          "envdelta compares two configuration snapshots (.env, JSON or YAML) and reports an itemized diff plus risk findings, with sensitive values redacted for display.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Init(os.Stderr, flagVerbose)
	},
}

// Execute runs the envdelta CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log pipeline timings to stderr")
	rootCmd.PersistentFlags().StringVar(&flagFailOn, "fail-on", "high", "exit non-zero on findings at or above low|medium|high|none")
}

// colorDisabled honors the flag and falls back to TTY detection so piped
// output stays clean.
func colorDisabled() bool {
	if flagNoColor {
		return true
	}
	return !term.IsTerminal(int(os.Stdout.Fd()))
}

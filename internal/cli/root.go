// Package cli implements the cobra-based command line for branch-check.
//
// branch-check does exactly one thing, so the root command carries the
// whole behavior and there are no subcommands: resolve the current branch
// name, evaluate it against the allow/deny rule set, and exit 0 or
// non-zero. This file defines the root command, global flags, and the
// error-to-exit-code translation.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gpsgate/pre-commit-hook-branch-check/internal/model"
)

// Global flag variables bound to persistent flags on the root command.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When true, the verdict is emitted as a structured document for
	// machine consumption; otherwise a human-readable line is printed.
	jsonOutput bool

	// verbose enables the debug trace of resolution and evaluation
	// steps on stderr.
	verbose bool
)

// logger writes diagnostic output to stderr. The level is raised to Debug
// by the --verbose flag in the root command's PersistentPreRun; at the
// default Warn level the check is silent apart from its verdict.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Level: log.WarnLevel,
})

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
func NewRootCommand() *cobra.Command {
	flags := &checkFlags{}

	rootCmd := &cobra.Command{
		Use:   "branch-check",
		Short: "Check the current branch name against allow/deny patterns",
		Long: `branch-check validates the name of the currently checked-out Git branch
against a set of allow/deny regular expressions and reports the result as
the process exit status, so it can gate a commit or a CI job.

The branch name is resolved from CI source-branch environment variables
first, then from git itself (with a name-rev fallback for detached HEAD).
A branch name matching any deny pattern is rejected; when allow patterns
are configured it must also match at least one of them. Patterns match
unanchored — anchor with ^ and $ for whole-name matches.

Examples:
  branch-check
  branch-check --deny '^(master|main)$' --allow '^[0-9a-z_./-]+$'
  branch-check -a '^feature/' -a '^hotfix/' --json`,

		// The check takes no positional arguments; the branch name comes
		// from the environment and the repository, never from argv.
		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		// A rejected branch name is not a usage problem.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(flags)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// StringArray (not StringSlice) so pattern text containing commas is
	// not split, and argument order is preserved for diagnostics.
	rootCmd.Flags().StringArrayVarP(&flags.allow, "allow", "a", nil,
		"Regular expression the branch name must match, can be repeated")
	rootCmd.Flags().StringArrayVarP(&flags.deny, "deny", "d", nil,
		"Regular expression the branch name must not match, can be repeated")
	rootCmd.Flags().StringVar(&flags.configPath, "config", "",
		"Path to a rule file (default: .branch-check.yaml/.yml/.json in the working directory)")

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them
// into appropriate OS exit codes. CLIError types carry their own
// exit codes; other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
		} else {
			printError(err.Error(), nil)
		}
		os.Exit(int(exitCodeFor(err)))
	}
}

// exitCodeFor maps a command error to its OS exit code. CLIError types
// carry their own code; anything else came from cobra itself (unknown
// flag, unexpected argument) and is a usage error, not a verdict.
func exitCodeFor(err error) model.ExitCode {
	if cliErr, ok := err.(*model.CLIError); ok {
		return cliErr.Code
	}
	return model.ExitUsageError
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved
		// for the verdict document.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}

// Package main is the entry point for the branch-check CLI.
//
// This binary validates the name of the currently checked-out Git branch
// against allow/deny regular expressions and reports the result via the
// process exit status, so it can gate a commit from a pre-commit hook or
// a CI job. It delegates all functionality to the internal/cli package,
// which defines the cobra command.
//
// Build-time variables (version, commit, date) are injected via ldflags
// by GoReleaser during the release process. During development, they
// default to "dev", "none", and "unknown" respectively.
package main

import (
	"github.com/gpsgate/pre-commit-hook-branch-check/internal/cli"
)

// version, commit, and date are set by GoReleaser at build time
// via ldflags. They provide binary identification for the --version
// flag output.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Inject build-time version info into the CLI package. This
	// decouples the build system (GoReleaser ldflags) from the CLI
	// framework (cobra), keeping main.go minimal.
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}

// Package model defines the domain types and value objects for the
// branch-check CLI.
//
// This package contains pure data structures with no external dependencies.
// Verdict and Reason describe the outcome of evaluating a branch name
// against allow/deny rules; they are constructed by the rules package and
// rendered by the CLI layer.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model

// Package model defines the domain types for the branch-check CLI.
//
// All entities in this package are transient value objects constructed once
// per invocation from CLI arguments and version-control state. Nothing here
// persists across invocations — the tool resolves one branch name, evaluates
// one rule set, and exits.
package model

import (
	"fmt"
	"strings"
)

// ReasonKind classifies why a branch name was rejected.
type ReasonKind string

const (
	// ReasonDeniedBy indicates the branch name matched a deny pattern.
	// Deny matches take precedence over allow patterns, so an explicit
	// denial (e.g. protecting "main") cannot be bypassed by a broad allow.
	ReasonDeniedBy ReasonKind = "denied-by"

	// ReasonNotAllowed indicates allow patterns were configured and the
	// branch name matched none of them.
	ReasonNotAllowed ReasonKind = "not-allowed"
)

// String returns the string representation of ReasonKind.
// This method satisfies the fmt.Stringer interface for CLI output.
func (k ReasonKind) String() string {
	return string(k)
}

// IsValid checks whether the ReasonKind value is one of the
// predefined rejection kinds.
func (k ReasonKind) IsValid() bool {
	switch k {
	case ReasonDeniedBy, ReasonNotAllowed:
		return true
	default:
		return false
	}
}

// ParseReasonKind converts a string to a ReasonKind.
// Returns an error if the string does not match any valid kind.
func ParseReasonKind(s string) (ReasonKind, error) {
	kind := ReasonKind(strings.ToLower(s))
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid reason kind: %q (valid: denied-by, not-allowed)", s)
	}
	return kind, nil
}

// Reason describes a rejection: which kind it is, and for deny matches,
// the source text of the first matching deny pattern in argument order.
type Reason struct {
	// Kind distinguishes deny-match rejections from allow-non-match ones.
	Kind ReasonKind `json:"kind"`

	// Pattern is the original source text of the deny pattern that matched.
	// Empty for ReasonNotAllowed, where no single pattern is responsible.
	Pattern string `json:"pattern,omitempty"`
}

// Verdict is the outcome of evaluating a branch name against a rule set.
// The zero value is a rejection with no reason; use Accept, RejectDeniedBy,
// or RejectNotAllowed to construct meaningful verdicts.
type Verdict struct {
	// Accepted is true when the branch name passed the check.
	Accepted bool `json:"accepted"`

	// Reason is populated only when Accepted is false.
	Reason *Reason `json:"reason,omitempty"`
}

// Accept returns an accepting verdict.
func Accept() Verdict {
	return Verdict{Accepted: true}
}

// RejectDeniedBy returns a rejecting verdict naming the deny pattern
// (original source text) that matched the branch name.
func RejectDeniedBy(pattern string) Verdict {
	return Verdict{Reason: &Reason{Kind: ReasonDeniedBy, Pattern: pattern}}
}

// RejectNotAllowed returns a rejecting verdict for a branch name that
// matched none of the configured allow patterns.
func RejectNotAllowed() Verdict {
	return Verdict{Reason: &Reason{Kind: ReasonNotAllowed}}
}

// Describe renders the verdict for the given branch name as a single
// human-readable line, naming the offending pattern where one exists.
func (v Verdict) Describe(branch string) string {
	if v.Accepted {
		return fmt.Sprintf("branch name %q is valid", branch)
	}
	if v.Reason != nil && v.Reason.Kind == ReasonDeniedBy {
		return fmt.Sprintf("branch name %q matches deny pattern %q", branch, v.Reason.Pattern)
	}
	return fmt.Sprintf("branch name %q does not match any allow pattern", branch)
}

// ExitCode defines the CLI exit codes. Distinct codes let pre-commit hooks
// and CI scripts distinguish a rejected branch name from an environment or
// configuration problem.
type ExitCode int

const (
	// ExitSuccess indicates the branch name was accepted.
	ExitSuccess ExitCode = 0

	// ExitRejected indicates the branch name was rejected by the rule set.
	// This is a negative verdict, not an execution error.
	ExitRejected ExitCode = 1

	// ExitBranchUnresolved indicates no resolution strategy yielded a
	// branch name (no CI variable set and the git queries failed).
	ExitBranchUnresolved ExitCode = 2

	// ExitInvalidPattern indicates a supplied allow/deny pattern failed to
	// compile as a regular expression.
	ExitInvalidPattern ExitCode = 3

	// ExitConfigError indicates the rule configuration file exists but
	// could not be read or parsed.
	ExitConfigError ExitCode = 4

	// ExitUsageError indicates the command line itself was invalid
	// (unknown flag or unexpected argument). Distinct from ExitRejected
	// so scripts can tell a negative verdict from a bad invocation.
	ExitUsageError ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

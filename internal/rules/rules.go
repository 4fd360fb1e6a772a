// Package rules implements the allow/deny rule evaluation for branch names.
//
// A RuleSet holds two ordered lists of compiled regular expressions. A
// branch name is rejected if it matches any deny pattern; otherwise, when
// allow patterns are configured, it must match at least one of them. Deny
// always wins over allow — an explicit denial cannot be bypassed by a broad
// allow pattern.
//
// Matching is unanchored: a pattern matches if it matches any substring of
// the branch name, unless the pattern itself carries ^/$ anchors. Existing
// hook configurations may rely on partial matches, so this is documented
// behavior rather than something to "fix".
package rules

import (
	"fmt"
	"regexp"

	"github.com/gpsgate/pre-commit-hook-branch-check/internal/model"
)

// DefaultAllowPatterns is the allow list used when the user configures no
// rules at all. It accepts conventional branch names
// (https://conventional-branch.github.io/) such as "feature/login-page".
//
// Note that bare "main"/"master" are deliberately absent: the default
// configuration of a commit gate rejects direct commits to long-lived
// branches. Users who want to permit them pass an explicit --allow.
var DefaultAllowPatterns = []string{
	`^(feature|bugfix|hotfix|release|chore)/[a-z0-9/.-]*[a-z0-9]$`,
}

// DefaultDenyPatterns is the deny list used when the user configures no
// rules at all. Empty: the default policy is expressed entirely through
// the allow list.
var DefaultDenyPatterns = []string{}

// Pattern pairs a compiled regular expression with its original source
// text. The source is retained for diagnostics — rejection messages name
// the exact pattern the user supplied, not the compiled form. Immutable
// once constructed.
type Pattern struct {
	// Source is the pattern text exactly as supplied by the user.
	Source string

	re *regexp.Regexp
}

// Matches reports whether the pattern matches the branch name. Matching is
// unanchored unless the pattern source carries its own ^/$ anchors.
func (p Pattern) Matches(branch string) bool {
	return p.re.MatchString(branch)
}

// RuleSet holds the ordered allow and deny patterns for one invocation.
// Order is not significant for matching (any-match semantics) but argument
// order is preserved so diagnostics report the first matching deny pattern
// as the user wrote it.
type RuleSet struct {
	// Allow patterns: the branch name must match at least one, if any
	// are configured. An empty allow list accepts everything that the
	// deny list does not reject.
	Allow []Pattern

	// Deny patterns: a branch name matching any of these is rejected
	// regardless of the allow list.
	Deny []Pattern
}

// NewRuleSet compiles the given allow and deny pattern sources into a
// RuleSet. Any pattern that fails to compile aborts construction with a
// model.CLIError carrying ExitInvalidPattern and naming the offending
// source text. This happens before any branch resolution is attempted, so
// a typo in a pattern is reported without touching the repository.
func NewRuleSet(allow, deny []string) (*RuleSet, error) {
	allowPatterns, err := compileAll(allow)
	if err != nil {
		return nil, err
	}
	denyPatterns, err := compileAll(deny)
	if err != nil {
		return nil, err
	}
	return &RuleSet{Allow: allowPatterns, Deny: denyPatterns}, nil
}

// compileAll compiles each source in order, preserving argument order in
// the result. The first compile failure wins.
func compileAll(sources []string) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(sources))
	for _, src := range sources {
		re, err := regexp.Compile(src)
		if err != nil {
			// Go's regexp errors name the offending subexpression
			// (e.g. "missing closing ]: `[`") rather than a byte
			// offset; together with the source text that pinpoints
			// the problem for the user.
			return nil, model.WrapCLIError(model.ExitInvalidPattern,
				fmt.Sprintf("invalid pattern %q", src), err)
		}
		patterns = append(patterns, Pattern{Source: src, re: re})
	}
	return patterns, nil
}

// Evaluate decides Accepted/Rejected for a branch name. Pure function over
// (branch, RuleSet); evaluated in fixed order, first decisive outcome wins:
//
//  1. Deny check: a branch name matching any deny pattern is rejected,
//     reporting the first matching deny pattern in argument order.
//  2. Allow check: if allow patterns are configured, the branch name must
//     match at least one; otherwise it is rejected as not-allowed.
//  3. Default: with no allow patterns configured and no deny match, the
//     branch name is accepted.
func (rs *RuleSet) Evaluate(branch string) model.Verdict {
	for _, p := range rs.Deny {
		if p.Matches(branch) {
			return model.RejectDeniedBy(p.Source)
		}
	}

	if len(rs.Allow) == 0 {
		return model.Accept()
	}
	for _, p := range rs.Allow {
		if p.Matches(branch) {
			return model.Accept()
		}
	}
	return model.RejectNotAllowed()
}

// Sources returns the original source texts of a pattern slice, in order.
// Used by the CLI layer for verbose output and not-allowed diagnostics.
func Sources(patterns []Pattern) []string {
	sources := make([]string, len(patterns))
	for i, p := range patterns {
		sources[i] = p.Source
	}
	return sources
}

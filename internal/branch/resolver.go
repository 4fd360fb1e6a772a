// Package branch resolves the name of the currently active branch from the
// environment and version-control state.
//
// Resolution tolerates the detached-HEAD states typical of CI merge and
// pull-request builds: providers check out a synthetic merge commit, so
// `git symbolic-ref` fails there even though the build conceptually runs on
// a branch. The provider's source-branch environment variable is therefore
// consulted first, then git itself, then `git name-rev` as a last resort to
// name a detached HEAD.
//
// Design decisions:
//   - We shell out to `git` rather than using a Go Git library (e.g. go-git)
//     so resolution sees exactly what the user's git sees, including
//     worktrees and replacement refs.
//   - Strategies are an ordered slice of named fallible functions, tried
//     until one yields a name. A strategy miss (unset variable, non-zero
//     exit, empty output) is normal control flow, not an error; only the
//     exhaustion of all strategies is fatal.
//   - Git failures during the final error are wrapped in model.CLIError
//     with ExitBranchUnresolved so the CLI layer exits with the right code.
package branch

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/gpsgate/pre-commit-hook-branch-check/internal/model"
)

// ciEnvVars is the fixed, ordered list of CI-provided source-branch
// variables. The first one set to a non-empty value wins, even when git
// itself could also name the branch — CI checkouts are frequently detached
// or on a synthetic merge ref, so the provider's variable is authoritative.
//
// PR-specific variables (head ref / source branch) come before their
// generic counterparts: on a pull-request build both are set, and the
// source branch is the one whose name is being gated.
var ciEnvVars = []string{
	"GITHUB_HEAD_REF",                     // GitHub Actions, pull_request events
	"GITHUB_REF_NAME",                     // GitHub Actions, push events
	"CI_MERGE_REQUEST_SOURCE_BRANCH_NAME", // GitLab CI, merge request pipelines
	"CI_COMMIT_REF_NAME",                  // GitLab CI, branch pipelines
	"BITBUCKET_BRANCH",                    // Bitbucket Pipelines
	"CIRCLE_BRANCH",                       // CircleCI
	"TRAVIS_PULL_REQUEST_BRANCH",          // Travis CI, pull request builds
	"TRAVIS_BRANCH",                       // Travis CI, push builds
	"BUILD_SOURCEBRANCHNAME",              // Azure Pipelines
	"DRONE_SOURCE_BRANCH",                 // Drone CI
	"BRANCH_NAME",                         // Jenkins multibranch pipelines
}

// strategy is one fallible resolution step. It returns the resolved branch
// name and true on success, or "" and false when this step cannot produce
// a name (which is expected, not an error).
type strategy struct {
	// name identifies the step in verbose output and in the final
	// BranchUnresolved error, so a user can see what was attempted.
	name string

	resolve func() (string, bool)
}

// Resolver determines the current branch name for a working copy.
//
// The zero value is not usable; construct with NewResolver. The env lookup
// is injectable so tests can simulate CI environments without mutating the
// process environment of parallel tests.
type Resolver struct {
	// dir is the working copy the git queries run against,
	// passed to git via the -C flag.
	dir string

	// lookupEnv reads an environment variable, os.LookupEnv by default.
	lookupEnv func(string) (string, bool)

	// trace receives one line per attempted strategy when set.
	// Used by the CLI layer for verbose output; nil disables tracing.
	trace func(format string, args ...any)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithEnvLookup replaces the environment lookup function. Tests use this to
// pin down exactly which CI variables are visible.
func WithEnvLookup(lookup func(string) (string, bool)) Option {
	return func(r *Resolver) {
		r.lookupEnv = lookup
	}
}

// WithTrace installs a trace sink that receives one formatted line per
// attempted resolution step.
func WithTrace(trace func(format string, args ...any)) Option {
	return func(r *Resolver) {
		r.trace = trace
	}
}

// NewResolver creates a Resolver for the working copy at dir.
// An empty dir means the current working directory.
func NewResolver(dir string, opts ...Option) *Resolver {
	if dir == "" {
		dir = "."
	}
	r := &Resolver{
		dir:       dir,
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve produces the branch name for this invocation, or a
// model.CLIError with ExitBranchUnresolved naming every strategy that was
// attempted. The returned name is never empty on success. Resolution is
// read-only: no git command invoked here mutates the repository.
func (r *Resolver) Resolve() (string, error) {
	strategies := []strategy{
		{name: "ci-environment", resolve: r.fromCIEnv},
		{name: "symbolic-ref", resolve: r.fromSymbolicRef},
		{name: "name-rev", resolve: r.fromNameRev},
	}

	attempted := make([]string, 0, len(strategies))
	for _, s := range strategies {
		name, ok := s.resolve()
		if ok {
			r.tracef("resolved branch %q via %s", name, s.name)
			return name, nil
		}
		r.tracef("strategy %s yielded no branch name", s.name)
		attempted = append(attempted, s.name)
	}

	return "", model.NewCLIError(model.ExitBranchUnresolved,
		fmt.Sprintf("could not resolve current branch name (attempted: %s); not a git repository, or git is not installed",
			strings.Join(attempted, ", ")))
}

// fromCIEnv consults the known CI source-branch variables in priority
// order. A variable set to the empty string counts as unset.
func (r *Resolver) fromCIEnv() (string, bool) {
	for _, key := range ciEnvVars {
		if value, ok := r.lookupEnv(key); ok && value != "" {
			r.tracef("using CI variable %s", key)
			return value, true
		}
	}
	return "", false
}

// fromSymbolicRef asks git for the branch HEAD points to. This succeeds
// only when HEAD is a direct reference to a branch; on a detached HEAD
// git exits non-zero and the next strategy takes over.
func (r *Resolver) fromSymbolicRef() (string, bool) {
	return r.gitQuery("symbolic-ref", "--short", "HEAD")
}

// fromNameRev resolves a detached HEAD to the nearest symbolic name: a
// branch, a tag (as "tags/v1.2.3"), or a relative description such as
// "main~2". The resulting name is matched against the rules as-is.
//
// When no ref can name the commit at all (e.g. a bare SHA fetched into
// FETCH_HEAD with no branch refs), name-rev exits 0 and prints the literal
// sentinel "undefined". That is not a branch name; treat it as a miss so
// resolution fails instead of evaluating the rules against "undefined".
func (r *Resolver) fromNameRev() (string, bool) {
	name, ok := r.gitQuery("name-rev", "--name-only", "HEAD")
	if !ok || name == "undefined" {
		return "", false
	}
	return name, true
}

// gitQuery runs a read-only git command in the resolver's directory and
// returns its trimmed stdout. Non-zero exit or empty trimmed output means
// the query produced no usable name.
//
// The directory is passed via the -C flag, which causes git to change to
// that directory before doing anything else. This avoids changing the
// process working directory and works correctly with all git subcommands.
func (r *Resolver) gitQuery(args ...string) (string, bool) {
	fullArgs := append([]string{"-C", r.dir}, args...)

	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.Command("git", fullArgs...)

	// Capture stdout and stderr separately: stdout is the candidate
	// branch name, stderr only feeds the verbose trace.
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		r.tracef("git %s failed: %v (%s)",
			strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
		return "", false
	}

	name := strings.TrimSpace(stdout.String())
	if name == "" {
		return "", false
	}
	return name, true
}

// tracef forwards to the configured trace sink, if any.
func (r *Resolver) tracef(format string, args ...any) {
	if r.trace != nil {
		r.trace(format, args...)
	}
}

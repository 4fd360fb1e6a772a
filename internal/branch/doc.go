// Package branch determines the current branch name for the branch-check
// CLI.
//
// All git operations are performed via os/exec calls to the git binary,
// rather than using a Git library like go-git. This approach:
//   - Avoids CGO dependencies (libgit2)
//   - Uses the exact same Git behavior the user sees in their terminal
//   - Works in worktrees, shallow clones, and CI checkout layouts alike
//
// The Resolver tries an ordered list of strategies — CI environment
// variables, `git symbolic-ref`, `git name-rev` — and returns the first
// name produced, or a BranchUnresolved error naming everything attempted.
package branch

// Package cli — check.go implements the branch name check that the root
// command runs.
//
// Orchestration steps:
//  1. Assemble the rule sources (flags > rule file > built-in defaults,
//     independently per list)
//  2. Compile the rule set — an invalid pattern fails here, before any
//     branch resolution is attempted
//  3. Resolve the current branch name (CI env vars, then git)
//  4. Evaluate the rules and report the verdict (text or JSON)
package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gpsgate/pre-commit-hook-branch-check/internal/branch"
	"github.com/gpsgate/pre-commit-hook-branch-check/internal/config"
	"github.com/gpsgate/pre-commit-hook-branch-check/internal/model"
	"github.com/gpsgate/pre-commit-hook-branch-check/internal/rules"
)

// checkFlags holds the flag values for the root command.
// These are bound to cobra flags in NewRootCommand.
type checkFlags struct {
	allow      []string // --allow: repeatable allow patterns, order preserved
	deny       []string // --deny: repeatable deny patterns, order preserved
	configPath string   // --config: explicit rule file path
}

// runCheck is the main orchestration function for the branch name check.
func runCheck(flags *checkFlags) error {
	allowSrc, denySrc, err := ruleSources(flags)
	if err != nil {
		return err
	}
	logger.Debug("rule set assembled", "allow", allowSrc, "deny", denySrc)

	// Compile before resolving: a typo'd pattern must be reported without
	// running a single git command.
	ruleSet, err := rules.NewRuleSet(allowSrc, denySrc)
	if err != nil {
		return err
	}

	resolver := branch.NewResolver("", branch.WithTrace(logger.Debugf))
	name, err := resolver.Resolve()
	if err != nil {
		return err
	}

	verdict := ruleSet.Evaluate(name)
	printVerdict(name, verdict, ruleSet)

	if !verdict.Accepted {
		return model.NewCLIError(model.ExitRejected, rejectionMessage(name, verdict, ruleSet))
	}
	return nil
}

// ruleSources determines the allow and deny pattern sources for this
// invocation. Each list is resolved independently: CLI flags win, then the
// rule file (explicit --config path or the first .branch-check.* found in
// the working directory), then the built-in defaults. This mirrors how the
// original pre-commit hook defaulted each argument list separately.
func ruleSources(flags *checkFlags) (allow, deny []string, err error) {
	allow = flags.allow
	deny = flags.deny

	var cfg *config.Config
	if flags.configPath != "" {
		cfg, err = config.Load(flags.configPath)
	} else if path := config.Find("."); path != "" {
		logger.Debug("using rule file", "path", path)
		cfg, err = config.Load(path)
	}
	if err != nil {
		return nil, nil, err
	}

	if len(allow) == 0 {
		if cfg != nil && len(cfg.Allow) > 0 {
			allow = cfg.Allow
		} else {
			allow = rules.DefaultAllowPatterns
		}
	}
	if len(deny) == 0 {
		if cfg != nil && len(cfg.Deny) > 0 {
			deny = cfg.Deny
		} else {
			deny = rules.DefaultDenyPatterns
		}
	}
	return allow, deny, nil
}

// rejectionMessage builds the human-readable rejection line. A deny match
// names the offending pattern; a not-allowed rejection lists the allow
// patterns that were in effect, so the user can fix the branch name (or
// the rules) without re-reading any source.
func rejectionMessage(name string, verdict model.Verdict, ruleSet *rules.RuleSet) string {
	message := verdict.Describe(name)
	if verdict.Reason != nil && verdict.Reason.Kind == model.ReasonNotAllowed {
		message = fmt.Sprintf("%s (allow patterns: %s)",
			message, strings.Join(rules.Sources(ruleSet.Allow), ", "))
	}
	return message
}

// printVerdict outputs the check result in text or JSON format.
// In text mode only an accepted verdict prints to stdout — rejections are
// reported via the error path on stderr. In JSON mode the full verdict
// document always goes to stdout, accepted or not.
func printVerdict(name string, verdict model.Verdict, ruleSet *rules.RuleSet) {
	if IsJSONOutput() {
		printVerdictJSON(name, verdict, ruleSet)
	} else if verdict.Accepted {
		fmt.Println(verdict.Describe(name))
	}
}

// printVerdictJSON outputs the verdict as a structured JSON document.
func printVerdictJSON(name string, verdict model.Verdict, ruleSet *rules.RuleSet) {
	type resultJSON struct {
		Branch   string        `json:"branch"`
		Accepted bool          `json:"accepted"`
		Reason   *model.Reason `json:"reason,omitempty"`
		Allow    []string      `json:"allow"`
		Deny     []string      `json:"deny"`
	}

	result := resultJSON{
		Branch:   name,
		Accepted: verdict.Accepted,
		Reason:   verdict.Reason,
		Allow:    rules.Sources(ruleSet.Allow),
		Deny:     rules.Sources(ruleSet.Deny),
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

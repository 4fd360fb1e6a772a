// Package config loads the optional per-repository rule file for
// branch-check.
//
// Rules normally arrive as --allow/--deny flags (e.g. from a pre-commit
// hook definition), but a repository can also commit its policy to a
// `.branch-check.yaml` or `.branch-check.json` file so every consumer of
// the repo shares one source of truth. JSON files may contain comments and
// trailing commas: this package uses github.com/tidwall/jsonc to strip them
// before parsing with the standard encoding/json library, the same way
// devcontainer.json tooling does.
//
// Precedence is handled by the CLI layer: flags beat the config file, and
// the config file beats the built-in defaults, independently per list.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/gpsgate/pre-commit-hook-branch-check/internal/model"
)

// candidateFiles are the file names probed, in order, when no explicit
// --config path is given. The first one that exists wins.
var candidateFiles = []string{
	".branch-check.yaml",
	".branch-check.yml",
	".branch-check.json",
}

// Config is the parsed rule file. Both lists are pattern source texts;
// compilation happens later in the rules package so that file-sourced and
// flag-sourced patterns get identical error reporting.
type Config struct {
	// Allow patterns, in file order.
	Allow []string `yaml:"allow" json:"allow"`

	// Deny patterns, in file order.
	Deny []string `yaml:"deny" json:"deny"`
}

// Find probes the candidate file names under dir and returns the path of
// the first one that exists, or "" when the repository has no rule file.
// A missing rule file is a normal condition, not an error.
func Find(dir string) string {
	for _, name := range candidateFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads and parses the rule file at path. The format is chosen by
// file extension: .yaml/.yml parse as YAML, everything else as JSON with
// comments (JSONC). Read or parse failures return a model.CLIError with
// ExitConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read rule file %s", path), err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigError,
				fmt.Sprintf("failed to parse rule file %s", path), err)
		}
	default:
		// jsonc.ToJSON replaces comments and trailing commas with
		// whitespace, preserving offsets, so standard json errors
		// still point at the right place in the original file.
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigError,
				fmt.Sprintf("failed to parse rule file %s", path), err)
		}
	}

	return cfg, nil
}

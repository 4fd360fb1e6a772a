package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpsgate/pre-commit-hook-branch-check/internal/model"
)

// writeFile creates a file with the given content in dir and returns its
// path. Test helper to keep the fixtures inline and readable.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoadYAML verifies YAML parsing and that pattern order is preserved,
// since diagnostics report the first matching deny pattern in order.
func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".branch-check.yaml", `
allow:
  - '^feature/'
  - '^hotfix/'
deny:
  - '^(master|main)$'
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{`^feature/`, `^hotfix/`}, cfg.Allow)
	assert.Equal(t, []string{`^(master|main)$`}, cfg.Deny)
}

// TestLoadJSONC verifies that JSON rule files may carry comments and
// trailing commas, matching what users expect from devcontainer-style
// tooling.
func TestLoadJSONC(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".branch-check.json", `{
  // conventional branches only
  "allow": [
    "^feature/",
    "^bugfix/", // trailing comma below is fine too
  ],
  "deny": ["^(master|main)$"]
}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{`^feature/`, `^bugfix/`}, cfg.Allow)
	assert.Equal(t, []string{`^(master|main)$`}, cfg.Deny)
}

// TestLoadMissingFile verifies that an unreadable path surfaces as a
// config error with the right exit code.
func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Nil(t, cfg)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConfigError, cliErr.Code)
}

// TestLoadMalformed verifies that parse failures are config errors, for
// both supported formats.
func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()

	yamlPath := writeFile(t, dir, ".branch-check.yaml", "allow: [unclosed\n")
	_, err := Load(yamlPath)
	require.Error(t, err)

	jsonPath := writeFile(t, dir, ".branch-check.json", `{"allow": [}`)
	_, err = Load(jsonPath)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConfigError, cliErr.Code)
}

// TestFind verifies the candidate probing order: YAML wins over JSON when
// both exist, and a directory without any rule file yields "".
func TestFind(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, Find(dir), "no rule file should mean no path")

	jsonPath := writeFile(t, dir, ".branch-check.json", `{}`)
	assert.Equal(t, jsonPath, Find(dir))

	yamlPath := writeFile(t, dir, ".branch-check.yaml", ``)
	assert.Equal(t, yamlPath, Find(dir), "yaml should win over json")
}

// TestFindIgnoresDirectories verifies that a directory named like a rule
// file is not picked up.
func TestFindIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".branch-check.yaml"), 0755))
	assert.Empty(t, Find(dir))
}

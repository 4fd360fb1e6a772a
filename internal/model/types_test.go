package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReasonKindValidation tests the IsValid method for all defined
// rejection kinds and rejection of unknown values.
func TestReasonKindValidation(t *testing.T) {
	tests := []struct {
		name  string
		kind  ReasonKind
		valid bool
	}{
		{"denied-by is valid", ReasonDeniedBy, true},
		{"not-allowed is valid", ReasonNotAllowed, true},
		{"empty is invalid", ReasonKind(""), false},
		{"unknown is invalid", ReasonKind("rejected"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.kind.IsValid())
		})
	}
}

// TestParseReasonKind verifies case-insensitive parsing and the error for
// unknown values.
func TestParseReasonKind(t *testing.T) {
	kind, err := ParseReasonKind("DENIED-BY")
	require.NoError(t, err)
	assert.Equal(t, ReasonDeniedBy, kind)

	_, err = ParseReasonKind("whatever")
	assert.Error(t, err)
}

// TestVerdictConstructors verifies the three verdict shapes and their
// invariants: accepted verdicts carry no reason, deny rejections carry the
// pattern, not-allowed rejections do not.
func TestVerdictConstructors(t *testing.T) {
	accepted := Accept()
	assert.True(t, accepted.Accepted)
	assert.Nil(t, accepted.Reason)

	denied := RejectDeniedBy(`^main$`)
	assert.False(t, denied.Accepted)
	require.NotNil(t, denied.Reason)
	assert.Equal(t, ReasonDeniedBy, denied.Reason.Kind)
	assert.Equal(t, `^main$`, denied.Reason.Pattern)

	notAllowed := RejectNotAllowed()
	assert.False(t, notAllowed.Accepted)
	require.NotNil(t, notAllowed.Reason)
	assert.Equal(t, ReasonNotAllowed, notAllowed.Reason.Kind)
	assert.Empty(t, notAllowed.Reason.Pattern)
}

// TestVerdictDescribe verifies the human-readable rendering names the
// branch and, for deny rejections, the offending pattern.
func TestVerdictDescribe(t *testing.T) {
	assert.Equal(t, `branch name "feature/x" is valid`,
		Accept().Describe("feature/x"))

	assert.Equal(t, `branch name "main" matches deny pattern "^main$"`,
		RejectDeniedBy(`^main$`).Describe("main"))

	assert.Equal(t, `branch name "WIP" does not match any allow pattern`,
		RejectNotAllowed().Describe("WIP"))
}

// TestCLIError verifies message formatting with and without an underlying
// error, and unwrapping for errors.Is.
func TestCLIError(t *testing.T) {
	plain := NewCLIError(ExitRejected, "branch rejected")
	assert.Equal(t, "branch rejected", plain.Error())
	assert.Nil(t, plain.Unwrap())

	underlying := fmt.Errorf("exit status 128")
	wrapped := WrapCLIError(ExitBranchUnresolved, "git query failed", underlying)
	assert.Equal(t, "git query failed: exit status 128", wrapped.Error())
	assert.True(t, errors.Is(wrapped, underlying))
	assert.Equal(t, ExitBranchUnresolved, wrapped.Code)
}

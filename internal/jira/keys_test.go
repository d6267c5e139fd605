package jira

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielolaszy/jiralint/pkg/models"
)

func keyOf(project, number string) []models.IssueKey {
	return []models.IssueKey{{Project: project, Number: number}}
}

func TestExtractIssueKeys(t *testing.T) {
	testCases := []struct {
		name     string
		branch   string
		expected []models.IssueKey
	}{
		// key right at the start
		{name: "Bare key", branch: "MOJO-6789", expected: keyOf("MOJO", "6789")},
		{name: "Key then slash", branch: "MOJO-6789/task_with_underscores", expected: keyOf("MOJO", "6789")},
		{name: "Key then dash", branch: "MOJO-6789-task_with_underscores", expected: keyOf("MOJO", "6789")},

		// key after a prefix
		{name: "Feature prefix", branch: "feature/MOJO-6789-some-description", expected: keyOf("MOJO", "6789")},
		{name: "Fix prefix", branch: "fix/ES-43-login-protocol", expected: keyOf("ES", "43")},
		{name: "Chore prefix", branch: "chore/MOJO-6789-task_with_underscores", expected: keyOf("MOJO", "6789")},

		// lower case project keys are normalized
		{name: "Lower case key", branch: "feature/mojo-123-description", expected: keyOf("MOJO", "123")},
		{name: "Lower case long key", branch: "feature/esch-100-new-feature", expected: keyOf("ESCH", "100")},
		{name: "Lower case short key", branch: "fix/es-43-login-fix", expected: keyOf("ES", "43")},

		// project keys with digits
		{name: "Trailing digit in project", branch: "feature/PB2-1-some-task", expected: keyOf("PB2", "1")},
		{name: "Inner digit in project", branch: "feature/P2P-99-peer-update", expected: keyOf("P2P", "99")},

		// numbers later in the branch are ignored
		{name: "Step number", branch: "feature/MOJO-123-add-step-2", expected: keyOf("MOJO", "123")},
		{name: "Second key shape", branch: "feature/MOJO-123-es-43-thing", expected: keyOf("MOJO", "123")},
		{name: "Version in description", branch: "fix/ES-43-update-v2-config", expected: keyOf("ES", "43")},
		{name: "Dotted version without prefix", branch: "MOJO-123-update-node-24-0-3", expected: keyOf("MOJO", "123")},
		{name: "Dotted version with prefix", branch: "feature/MOJO-123-update-node-24-0-3", expected: keyOf("MOJO", "123")},
		{name: "Upgrade range", branch: "chore/GAL-99-migrate-react-18-to-19", expected: keyOf("GAL", "99")},
		{name: "Second key after slash", branch: "MOJO-6789/task_with_underscores-ES-43", expected: keyOf("MOJO", "6789")},
		{name: "Leading zeros kept", branch: "ABC-007", expected: keyOf("ABC", "007")},

		// no key at the start
		{name: "Key after free text with prefix", branch: "feature/newFeature--MOJO-6789", expected: nil},
		{name: "Key at the end with prefix", branch: "fix/login-protocol-ES-43", expected: nil},
		{name: "Key at the end", branch: "nudge-live-chat-users-Es-172", expected: nil},
		{name: "No key", branch: "feature/missingKey", expected: nil},
		{name: "Empty branch", branch: "", expected: nil},
		{name: "Prefix only", branch: "feature/", expected: nil},
		{name: "Two prefixes", branch: "user/feature/MOJO-1-task", expected: nil},
		{name: "Digits glued to number", branch: "MOJO-12abc", expected: nil},
		{name: "Numeric project", branch: "123-456-task", expected: nil},
		{name: "Underscore separator", branch: "MOJO_123", expected: nil},
		{name: "Full-width dash", branch: "MOJO－123", expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExtractIssueKeys(tc.branch))
		})
	}
}

func TestExtractIssueKeysRoundTrip(t *testing.T) {
	for _, branch := range []string{"feature/abc-1-x", "P2P-99", "fix/PB2-0042/more"} {
		keys := ExtractIssueKeys(branch)
		if assert.Len(t, keys, 1, branch) {
			assert.Equal(t, keys, ExtractIssueKeys(keys[0].String()))

			parsed, ok := models.ParseIssueKey(keys[0].String())
			assert.True(t, ok)
			assert.Equal(t, keys[0], parsed)
		}
	}
}

func TestParseIssueKey(t *testing.T) {
	parsed, ok := models.ParseIssueKey("esch-100")
	assert.True(t, ok)
	assert.Equal(t, models.IssueKey{Project: "ESCH", Number: "100"}, parsed)
	assert.Equal(t, "ESCH-100", parsed.String())

	for _, s := range []string{"", "ESCH", "ESCH-", "ESCH-100-x", "1-100", " ESCH-100"} {
		_, ok := models.ParseIssueKey(s)
		assert.False(t, ok, s)
	}

	assert.Empty(t, models.IssueKey{}.String())
}

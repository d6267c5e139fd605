package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/danielolaszy/jiralint/internal/lint"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		_ = keysCmd.Flags().Set("strict", "false")
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestKeysCommand(t *testing.T) {
	out, err := runCommand(t, "keys", "feature/mojo-123-description", "fix/login-protocol-ES-43", "P2P-99")
	require.NoError(t, err)

	assert.Equal(t,
		"feature/mojo-123-description\tMOJO-123\n"+
			"fix/login-protocol-ES-43\t-\n"+
			"P2P-99\tP2P-99\n",
		out)
}

func TestKeysCommandStrict(t *testing.T) {
	_, err := runCommand(t, "keys", "--strict", "feature/missingKey")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feature/missingKey")
}

func TestPrintResultText(t *testing.T) {
	var buf bytes.Buffer
	err := printResult(&buf, lint.Result{
		Repository:         "org/repo",
		PullRequest:        42,
		Branch:             "feature/ABC-123-login",
		IssueKey:           "ABC-123",
		IssueStatus:        "In Progress",
		StatusValid:        true,
		LabelsAdded:        []string{"Alphabet", "Story"},
		DescriptionUpdated: true,
	}, "text")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "org/repo#42")
	assert.Contains(t, out, "ABC-123")
	assert.Contains(t, out, "Alphabet, Story")
	assert.Contains(t, out, "Description updated: true")

	buf.Reset()
	require.NoError(t, printResult(&buf, lint.Result{Branch: "dependabot/x", Skipped: true}, "text"))
	assert.Contains(t, buf.String(), "skipped")
}

func TestPrintResultYAML(t *testing.T) {
	result := lint.Result{
		Repository:  "org/repo",
		PullRequest: 7,
		Branch:      "main",
		StatusValid: false,
	}

	var buf bytes.Buffer
	require.NoError(t, printResult(&buf, result, "yaml"))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "org/repo", decoded["repository"])
	assert.Equal(t, 7, decoded["pull_request"])
	assert.Equal(t, false, decoded["status_valid"])
	assert.NotContains(t, decoded, "issue_key")
}

func TestLintCommandRejectsUnknownOutput(t *testing.T) {
	_, err := runCommand(t, "lint", "--output", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
	_ = lintCmd.Flags().Set("output", "text")
}

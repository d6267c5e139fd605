package jira

import (
	"regexp"
	"strings"

	"github.com/danielolaszy/jiralint/pkg/models"
)

var (
	// branchPrefixPattern matches a single leading branch-type segment such as "feature/".
	branchPrefixPattern = regexp.MustCompile(`^[A-Za-z0-9_.]+/`)

	// branchKeyPattern matches an issue key anchored at the start of the string.
	// The key must be followed by '-', '/' or the end of the string.
	branchKeyPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*)-([0-9]+)(?:[-/]|$)`)
)

// ExtractIssueKeys returns the JIRA issue key a branch name starts with.
//
// At most one prefix segment ("feature/", "fix/", ...) is skipped before the key.
// Keys appearing anywhere else in the branch are ignored, so the result holds
// zero or one element. The project part of the key is upper-cased.
func ExtractIssueKeys(branch string) []models.IssueKey {
	rest := branchPrefixPattern.ReplaceAllString(branch, "")

	m := branchKeyPattern.FindStringSubmatch(rest)
	if m == nil {
		return nil
	}

	return []models.IssueKey{{
		Project: strings.ToUpper(m[1]),
		Number:  m[2],
	}}
}

// Package models defines data structures shared across the application.
package models

import (
	"regexp"
	"strings"
)

// IssueKey identifies a JIRA issue, e.g. "ABC-123".
type IssueKey struct {
	// Project is the upper-cased project key (e.g., "ABC" from "ABC-123")
	Project string

	// Number is the numeric part of the key, kept exactly as written
	Number string
}

var canonicalKeyPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*)-([0-9]+)$`)

// String returns the canonical PROJECT-NUMBER form of the key.
func (k IssueKey) String() string {
	if k.Project == "" || k.Number == "" {
		return ""
	}
	return k.Project + "-" + k.Number
}

// ParseIssueKey parses a string holding exactly one issue key and nothing else.
// The project part is normalized to upper case.
func ParseIssueKey(s string) (IssueKey, bool) {
	m := canonicalKeyPattern.FindStringSubmatch(s)
	if m == nil {
		return IssueKey{}, false
	}
	return IssueKey{Project: strings.ToUpper(m[1]), Number: m[2]}, true
}

// JiraIssueType is the type of a JIRA issue as displayed in the tracker.
type JiraIssueType struct {
	Name    string
	IconURL string
}

// JiraLabel is a JIRA label together with a link to the issues carrying it.
type JiraLabel struct {
	Name string
	URL  string
}

// JiraProject describes the project an issue belongs to.
type JiraProject struct {
	Name string
	URL  string
	Key  string
}

// JiraDetails is the subset of a JIRA issue used to lint and describe a pull request.
type JiraDetails struct {
	// Key is the full JIRA ticket identifier (e.g., "ABC-123")
	Key string

	// URL is the browse link of the issue
	URL string

	// Type is the JIRA issue type (e.g., "Story", "Bug")
	Type JiraIssueType

	// Estimate is the story point estimate, nil when the issue has none
	Estimate *float64

	// Labels are the JIRA labels in the order the tracker returns them
	Labels []JiraLabel

	// Summary is the ticket's summary field
	Summary string

	// Project is the project the ticket belongs to
	Project JiraProject

	// Status is the workflow status name, as defined by the tracker
	Status string
}

// PullRequest represents a GitHub pull request with the fields the linter needs.
type PullRequest struct {
	// Repository is the "owner/repo" the pull request belongs to
	Repository string

	// Number is the pull request number in GitHub (e.g., 42)
	Number int

	// Title is the pull request title
	Title string

	// Body is the pull request description, empty when none was written
	Body string

	// Branch is the name of the head branch
	Branch string

	// Additions is the number of added lines
	Additions int

	// Labels is a slice of label names attached to the pull request
	Labels []string
}

// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultGitHubDomain is used when GITHUB_DOMAIN is not set.
	DefaultGitHubDomain = "github.com"

	// DefaultEstimateField is the JIRA Cloud story points field.
	DefaultEstimateField = "customfield_10016"
)

// Config holds all configuration parameters for the application.
type Config struct {
	GitHub GitHubConfig
	Jira   JiraConfig
	Lint   LintConfig
}

// GitHubConfig holds GitHub specific configuration.
type GitHubConfig struct {
	Token      string
	Domain     string
	Repository string
	EventPath  string
}

// JiraConfig holds JIRA specific configuration.
type JiraConfig struct {
	URL           string
	Username      string
	Token         string
	EstimateField string
}

// LintConfig controls what the linter checks and reports.
type LintConfig struct {
	// SkipBranches is a regular expression; matching branches are not linted.
	SkipBranches string

	// SkipComments disables posting comments on the pull request.
	SkipComments bool

	// PRThreshold is the maximum number of added lines before a pull request
	// is flagged as too large. Zero disables the check.
	PRThreshold int

	// ValidateIssueStatus enables the allowed status check.
	ValidateIssueStatus bool

	// AllowedIssueStatuses are the JIRA statuses accepted when validation is enabled.
	AllowedIssueStatuses []string
}

// LoadConfig loads configuration from environment variables and, when path is
// not empty, from a config file. Environment variables take precedence.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("github.domain", DefaultGitHubDomain)
	v.SetDefault("jira.estimate_field", DefaultEstimateField)

	// Map specific environment variables
	bindings := map[string]string{
		"github.token":                "GITHUB_TOKEN",
		"github.domain":               "GITHUB_DOMAIN",
		"github.repository":           "GITHUB_REPOSITORY",
		"github.event_path":           "GITHUB_EVENT_PATH",
		"jira.url":                    "JIRA_URL",
		"jira.username":               "JIRA_USERNAME",
		"jira.token":                  "JIRA_TOKEN",
		"jira.estimate_field":         "JIRA_ESTIMATE_FIELD",
		"lint.skip_branches":          "SKIP_BRANCHES",
		"lint.skip_comments":          "SKIP_COMMENTS",
		"lint.pr_threshold":           "PR_THRESHOLD",
		"lint.validate_issue_status":  "VALIDATE_ISSUE_STATUS",
		"lint.allowed_issue_statuses": "ALLOWED_ISSUE_STATUSES",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	config := &Config{
		GitHub: GitHubConfig{
			Token:      v.GetString("github.token"),
			Domain:     v.GetString("github.domain"),
			Repository: v.GetString("github.repository"),
			EventPath:  v.GetString("github.event_path"),
		},
		Jira: JiraConfig{
			URL:           strings.TrimRight(v.GetString("jira.url"), "/"),
			Username:      v.GetString("jira.username"),
			Token:         v.GetString("jira.token"),
			EstimateField: v.GetString("jira.estimate_field"),
		},
		Lint: LintConfig{
			SkipBranches:         v.GetString("lint.skip_branches"),
			SkipComments:         v.GetBool("lint.skip_comments"),
			PRThreshold:          v.GetInt("lint.pr_threshold"),
			ValidateIssueStatus:  v.GetBool("lint.validate_issue_status"),
			AllowedIssueStatuses: ParseStatuses(v.Get("lint.allowed_issue_statuses")),
		},
	}

	if config.GitHub.Domain == "" {
		config.GitHub.Domain = DefaultGitHubDomain
	}
	if config.Jira.EstimateField == "" {
		config.Jira.EstimateField = DefaultEstimateField
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ParseStatuses turns the allowed statuses setting into a list. Environment
// variables hold a comma-separated string; config files may hold a list.
// Statuses keep their case since they are compared exactly.
func ParseStatuses(raw any) []string {
	var parts []string
	switch value := raw.(type) {
	case nil:
		return nil
	case string:
		parts = strings.Split(value, ",")
	case []string:
		parts = value
	case []any:
		for _, item := range value {
			parts = append(parts, fmt.Sprint(item))
		}
	default:
		parts = []string{fmt.Sprint(value)}
	}

	var statuses []string
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			statuses = append(statuses, part)
		}
	}
	return statuses
}

// validateConfig checks settings that do not depend on which command runs.
func validateConfig(config *Config) error {
	if config.Lint.SkipBranches != "" {
		if _, err := regexp.Compile(config.Lint.SkipBranches); err != nil {
			return fmt.Errorf("invalid SKIP_BRANCHES pattern: %w", err)
		}
	}

	if config.Lint.PRThreshold < 0 {
		return fmt.Errorf("PR_THRESHOLD must not be negative, got %d", config.Lint.PRThreshold)
	}

	if config.Lint.ValidateIssueStatus && len(config.Lint.AllowedIssueStatuses) == 0 {
		return fmt.Errorf("ALLOWED_ISSUE_STATUSES must be set when VALIDATE_ISSUE_STATUS is enabled")
	}

	return nil
}

// ValidateGitHubConfig validates GitHub-specific configuration.
func ValidateGitHubConfig(config *Config) error {
	if config.GitHub.Token == "" {
		return fmt.Errorf("missing required environment variables: [GITHUB_TOKEN]")
	}
	return nil
}

// ValidateJiraConfig validates JIRA-specific configuration.
func ValidateJiraConfig(config *Config) error {
	var missingVars []string

	if config.Jira.URL == "" {
		missingVars = append(missingVars, "JIRA_URL")
	}
	if config.Jira.Username == "" {
		missingVars = append(missingVars, "JIRA_USERNAME")
	}
	if config.Jira.Token == "" {
		missingVars = append(missingVars, "JIRA_TOKEN")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}

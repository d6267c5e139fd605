// Package lint checks a pull request against the JIRA issue named by its branch.
package lint

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/danielolaszy/jiralint/internal/config"
	"github.com/danielolaszy/jiralint/internal/description"
	"github.com/danielolaszy/jiralint/internal/jira"
	"github.com/danielolaszy/jiralint/internal/logging"
	"github.com/danielolaszy/jiralint/pkg/models"
)

var (
	// ErrNoIssueKey is returned when the branch name does not start with an issue key.
	ErrNoIssueKey = errors.New("no jira issue key found in branch name")

	// ErrInvalidStatus is returned when the issue is not in an allowed status.
	ErrInvalidStatus = errors.New("jira issue is not in an allowed status")
)

// PullRequestService posts the linter's output on a pull request.
type PullRequestService interface {
	AddComment(ctx context.Context, repository string, number int, body string) error
	UpdateDescription(ctx context.Context, repository string, number int, body string) error
	AddLabels(ctx context.Context, repository string, number int, labels ...string) error
}

// IssueFetcher looks up a JIRA issue by key.
type IssueFetcher interface {
	GetIssueDetails(ctx context.Context, key string) (models.JiraDetails, error)
}

// Options control a lint run.
type Options struct {
	config.LintConfig

	// RefreshDescription re-renders the description block even when one is present.
	RefreshDescription bool
}

// Result summarizes what a lint run found and did.
type Result struct {
	Repository         string   `yaml:"repository"`
	PullRequest        int      `yaml:"pull_request"`
	Branch             string   `yaml:"branch"`
	Skipped            bool     `yaml:"skipped,omitempty"`
	IssueKey           string   `yaml:"issue_key,omitempty"`
	IssueStatus        string   `yaml:"issue_status,omitempty"`
	StatusValid        bool     `yaml:"status_valid"`
	HugePR             bool     `yaml:"huge_pr,omitempty"`
	LabelsAdded        []string `yaml:"labels_added,omitempty"`
	CommentsPosted     int      `yaml:"comments_posted"`
	DescriptionUpdated bool     `yaml:"description_updated"`
}

// Runner lints pull requests.
type Runner struct {
	prs    PullRequestService
	issues IssueFetcher
	opts   Options
	skip   *regexp.Regexp
}

// NewRunner creates a Runner. It fails when the skip-branches pattern does not compile.
func NewRunner(prs PullRequestService, issues IssueFetcher, opts Options) (*Runner, error) {
	r := &Runner{prs: prs, issues: issues, opts: opts}
	if opts.SkipBranches != "" {
		skip, err := regexp.Compile(opts.SkipBranches)
		if err != nil {
			return nil, fmt.Errorf("invalid skip branches pattern: %w", err)
		}
		r.skip = skip
	}
	return r, nil
}

// Run lints one pull request. The returned Result is filled in as far as the
// run got, also when an error is returned.
func (r *Runner) Run(ctx context.Context, pr models.PullRequest) (Result, error) {
	result := Result{
		Repository:  pr.Repository,
		PullRequest: pr.Number,
		Branch:      pr.Branch,
	}

	if r.skip != nil && r.skip.MatchString(pr.Branch) {
		logging.Info("skipping branch", "branch", pr.Branch, "pattern", r.opts.SkipBranches)
		result.Skipped = true
		result.StatusValid = true
		return result, nil
	}

	if jira.IsHumongousPR(pr.Additions, r.opts.PRThreshold) {
		result.HugePR = true
		logging.Warn("pull request exceeds size threshold",
			"additions", pr.Additions,
			"threshold", r.opts.PRThreshold)
		if err := r.comment(ctx, pr, &result, jira.HugePRComment(pr.Additions, r.opts.PRThreshold)); err != nil {
			logging.Error("failed to post huge pull request comment", "error", err)
		}
	}

	keys := jira.ExtractIssueKeys(pr.Branch)
	if len(keys) == 0 {
		logging.Warn("no issue key in branch name", "branch", pr.Branch)
		if err := r.comment(ctx, pr, &result, jira.NoIDComment(pr.Branch)); err != nil {
			return result, err
		}
		return result, fmt.Errorf("%w: %s", ErrNoIssueKey, pr.Branch)
	}
	key := keys[0].String()
	result.IssueKey = key
	logging.Info("extracted issue key", "branch", pr.Branch, "key", key)

	details, err := r.issues.GetIssueDetails(ctx, key)
	if err != nil {
		return result, fmt.Errorf("failed to fetch issue %s: %w", key, err)
	}
	result.IssueStatus = details.Status

	if labels := jira.PRLabels(details); len(labels) > 0 {
		if err := r.prs.AddLabels(ctx, pr.Repository, pr.Number, labels...); err != nil {
			logging.Error("failed to add labels", "labels", labels, "error", err)
		} else {
			result.LabelsAdded = labels
		}
	}

	result.StatusValid = jira.IsIssueStatusValid(r.opts.ValidateIssueStatus, r.opts.AllowedIssueStatuses, details)
	if !result.StatusValid {
		logging.Warn("issue status not allowed",
			"key", key,
			"status", details.Status,
			"allowed", r.opts.AllowedIssueStatuses)
		if err := r.comment(ctx, pr, &result, jira.InvalidStatusComment(details.Status, r.opts.AllowedIssueStatuses)); err != nil {
			return result, err
		}
		return result, fmt.Errorf("%w: %s is %q", ErrInvalidStatus, key, details.Status)
	}

	if !description.ShouldUpdate(pr.Body) && !r.opts.RefreshDescription {
		logging.Debug("description already contains issue details", "pull_request", pr.Number)
		return result, nil
	}

	body := jira.PRDescription(pr.Body, details)
	if body == pr.Body {
		return result, nil
	}
	if err := r.prs.UpdateDescription(ctx, pr.Repository, pr.Number, body); err != nil {
		return result, err
	}
	result.DescriptionUpdated = true
	logging.Info("updated pull request description", "pull_request", pr.Number, "key", key)

	return result, nil
}

// comment posts body unless comments are disabled.
func (r *Runner) comment(ctx context.Context, pr models.PullRequest, result *Result, body string) error {
	if r.opts.SkipComments {
		return nil
	}
	if err := r.prs.AddComment(ctx, pr.Repository, pr.Number, body); err != nil {
		return err
	}
	result.CommentsPosted++
	return nil
}

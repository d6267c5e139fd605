// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/danielolaszy/jiralint/internal/config"
	"github.com/danielolaszy/jiralint/internal/logging"
	"github.com/danielolaszy/jiralint/pkg/models"
)

// Client encapsulates the GitHub API client.
type Client struct {
	client *github.Client
}

// APIURL returns the REST API base URL for a GitHub domain. Anything other than
// github.com is treated as a GitHub Enterprise Server instance.
func APIURL(domain string) string {
	if domain == "" || domain == config.DefaultGitHubDomain {
		return "https://api.github.com/"
	}
	return fmt.Sprintf("https://%s/api/v3/", domain)
}

// NewClient creates a GitHub API client authenticated with the configured token.
func NewClient(cfg config.GitHubConfig) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("github token not found in configuration")
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	apiURL := APIURL(cfg.Domain)
	logging.Debug("github configuration",
		"domain", cfg.Domain,
		"api_url", apiURL,
		"token", logging.MaskSensitive(cfg.Token))

	return newClient(tc, apiURL)
}

func newClient(httpClient *http.Client, apiURL string) (*Client, error) {
	client := github.NewClient(httpClient)

	parsedURL, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid github api url: %w", err)
	}
	client.BaseURL = parsedURL
	client.UploadURL = parsedURL

	return &Client{client: client}, nil
}

// SplitRepository splits "owner/repo" into its parts.
func SplitRepository(repository string) (string, string, error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format: %s, expected format: owner/repo", repository)
	}
	return parts[0], parts[1], nil
}

// LoadPullRequestEvent reads the pull_request event payload GitHub Actions
// writes to GITHUB_EVENT_PATH.
func LoadPullRequestEvent(path string) (models.PullRequest, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return models.PullRequest{}, fmt.Errorf("failed to read event payload: %w", err)
	}

	event, err := github.ParseWebHook("pull_request", payload)
	if err != nil {
		return models.PullRequest{}, fmt.Errorf("failed to parse event payload: %w", err)
	}

	prEvent, ok := event.(*github.PullRequestEvent)
	if !ok || prEvent.PullRequest == nil {
		return models.PullRequest{}, fmt.Errorf("event payload at %s is not a pull request event", path)
	}

	pr := toPullRequest(prEvent.GetRepo().GetFullName(), prEvent.PullRequest)
	logging.Debug("loaded pull request event",
		"action", prEvent.GetAction(),
		"repository", pr.Repository,
		"pull_request", pr.Number,
		"branch", pr.Branch)

	return pr, nil
}

// GetPullRequest fetches a pull request by number.
func (c *Client) GetPullRequest(ctx context.Context, repository string, number int) (models.PullRequest, error) {
	owner, repo, err := SplitRepository(repository)
	if err != nil {
		return models.PullRequest{}, err
	}

	pr, _, err := c.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		logging.Error("failed to get pull request",
			"repository", repository,
			"pull_request", number,
			"error", err)
		return models.PullRequest{}, fmt.Errorf("failed to get pull request %s#%d: %w", repository, number, err)
	}

	return toPullRequest(repository, pr), nil
}

// AddComment posts a comment on a pull request.
func (c *Client) AddComment(ctx context.Context, repository string, number int, body string) error {
	owner, repo, err := SplitRepository(repository)
	if err != nil {
		return err
	}

	comment := &github.IssueComment{Body: github.String(body)}
	if _, _, err := c.client.Issues.CreateComment(ctx, owner, repo, number, comment); err != nil {
		logging.Error("failed to add comment",
			"repository", repository,
			"pull_request", number,
			"error", err)
		return fmt.Errorf("failed to add comment to %s#%d: %w", repository, number, err)
	}

	logging.Debug("added comment", "repository", repository, "pull_request", number)
	return nil
}

// UpdateDescription replaces the body of a pull request.
func (c *Client) UpdateDescription(ctx context.Context, repository string, number int, body string) error {
	owner, repo, err := SplitRepository(repository)
	if err != nil {
		return err
	}

	update := &github.PullRequest{Body: github.String(body)}
	if _, _, err := c.client.PullRequests.Edit(ctx, owner, repo, number, update); err != nil {
		logging.Error("failed to update pull request description",
			"repository", repository,
			"pull_request", number,
			"error", err)
		return fmt.Errorf("failed to update description of %s#%d: %w", repository, number, err)
	}

	logging.Debug("updated pull request description", "repository", repository, "pull_request", number)
	return nil
}

// AddLabels adds labels to a pull request. GitHub creates labels that don't
// exist yet in the repository.
func (c *Client) AddLabels(ctx context.Context, repository string, number int, labels ...string) error {
	if len(labels) == 0 {
		return nil
	}

	owner, repo, err := SplitRepository(repository)
	if err != nil {
		return err
	}

	if _, _, err := c.client.Issues.AddLabelsToIssue(ctx, owner, repo, number, labels); err != nil {
		logging.Error("error adding labels",
			"repository", repository,
			"pull_request", number,
			"labels", labels,
			"error", err)
		return fmt.Errorf("failed to add labels to %s#%d: %w", repository, number, err)
	}

	logging.Debug("added labels", "repository", repository, "pull_request", number, "labels", labels)
	return nil
}

func toPullRequest(repository string, pr *github.PullRequest) models.PullRequest {
	labels := make([]string, 0, len(pr.Labels))
	for _, label := range pr.Labels {
		labels = append(labels, label.GetName())
	}

	if repository == "" {
		repository = pr.GetBase().GetRepo().GetFullName()
	}

	return models.PullRequest{
		Repository: repository,
		Number:     pr.GetNumber(),
		Title:      pr.GetTitle(),
		Body:       pr.GetBody(),
		Branch:     pr.GetHead().GetRef(),
		Additions:  pr.GetAdditions(),
		Labels:     labels,
	}
}

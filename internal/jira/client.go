// Package jira extracts JIRA issue keys from branch names, fetches issues and
// renders them for pull requests.
package jira

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	jira "github.com/andygrunwald/go-jira"
	"github.com/danielolaszy/jiralint/internal/config"
	"github.com/danielolaszy/jiralint/internal/logging"
	"github.com/danielolaszy/jiralint/pkg/models"
)

// ErrIssueNotFound is returned when JIRA has no issue for the requested key.
var ErrIssueNotFound = errors.New("jira issue not found")

// Client handles interactions with the JIRA API
type Client struct {
	client        *jira.Client
	baseURL       string
	estimateField string
}

// NewClient creates a new JIRA client authenticated with basic auth (username + API token).
func NewClient(cfg config.JiraConfig) (*Client, error) {
	if err := config.ValidateJiraConfig(&config.Config{Jira: cfg}); err != nil {
		return nil, err
	}

	tp := jira.BasicAuthTransport{
		Username: cfg.Username,
		Password: cfg.Token,
	}

	return newClient(tp.Client(), cfg)
}

func newClient(httpClient *http.Client, cfg config.JiraConfig) (*Client, error) {
	client, err := jira.NewClient(httpClient, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	estimateField := cfg.EstimateField
	if estimateField == "" {
		estimateField = config.DefaultEstimateField
	}

	logging.Debug("jira configuration",
		"url", cfg.URL,
		"username", cfg.Username,
		"token", logging.MaskSensitive(cfg.Token),
		"estimate_field", estimateField)

	return &Client{
		client:        client,
		baseURL:       strings.TrimRight(cfg.URL, "/"),
		estimateField: estimateField,
	}, nil
}

// GetIssueDetails fetches an issue by key and converts it to JiraDetails.
func (c *Client) GetIssueDetails(ctx context.Context, key string) (models.JiraDetails, error) {
	if c.client == nil {
		return models.JiraDetails{}, fmt.Errorf("JIRA client not initialized")
	}

	logging.Debug("fetching jira issue", "key", key)

	issue, resp, err := c.client.Issue.GetWithContext(ctx, key, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return models.JiraDetails{}, fmt.Errorf("%w: %s", ErrIssueNotFound, key)
		}
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		logging.Error("failed to fetch jira issue",
			"key", key,
			"status_code", status,
			"error", err)
		return models.JiraDetails{}, fmt.Errorf("failed to fetch JIRA issue %s: %w", key, err)
	}
	if issue == nil || issue.Fields == nil {
		return models.JiraDetails{}, fmt.Errorf("%w: %s has no fields", ErrIssueNotFound, key)
	}

	return c.toDetails(issue), nil
}

// toDetails maps the go-jira issue onto the fields the linter displays.
func (c *Client) toDetails(issue *jira.Issue) models.JiraDetails {
	fields := issue.Fields

	details := models.JiraDetails{
		Key:     issue.Key,
		URL:     c.browseURL(issue.Key),
		Summary: fields.Summary,
		Type: models.JiraIssueType{
			Name:    fields.Type.Name,
			IconURL: fields.Type.IconURL,
		},
		Project: models.JiraProject{
			Name: fields.Project.Name,
			URL:  c.browseURL(fields.Project.Key),
			Key:  fields.Project.Key,
		},
		Estimate: estimateFromField(fields.Unknowns[c.estimateField]),
	}

	if fields.Status != nil {
		details.Status = fields.Status.Name
	}

	for _, label := range fields.Labels {
		details.Labels = append(details.Labels, models.JiraLabel{
			Name: label,
			URL:  c.labelURL(label),
		})
	}

	return details
}

func (c *Client) browseURL(key string) string {
	return fmt.Sprintf("%s/browse/%s", c.baseURL, key)
}

func (c *Client) labelURL(label string) string {
	jql := fmt.Sprintf("labels = %q", label)
	return fmt.Sprintf("%s/issues/?jql=%s", c.baseURL, url.QueryEscape(jql))
}

// estimateFromField reads a story point custom field. JSON numbers decode as
// float64; anything else is treated as "not estimated".
func estimateFromField(value any) *float64 {
	switch v := value.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	default:
		return nil
	}
}

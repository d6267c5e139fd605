package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/danielolaszy/jiralint/internal/config"
	"github.com/danielolaszy/jiralint/internal/github"
	"github.com/danielolaszy/jiralint/internal/jira"
	"github.com/danielolaszy/jiralint/internal/lint"
	"github.com/danielolaszy/jiralint/internal/logging"
	"github.com/danielolaszy/jiralint/pkg/models"
)

// lintCmd lints one pull request against the JIRA issue named by its branch.
var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Lint a pull request against its JIRA issue",
	Long: `Lint a pull request against the JIRA issue named by its branch.

The pull request is read from the GitHub Actions event payload (GITHUB_EVENT_PATH
or --event), or fetched from the API when --pr is given.

1. Branches matching SKIP_BRANCHES are skipped
2. Pull requests adding more than PR_THRESHOLD lines get a warning comment
3. The branch name must start with an issue key, optionally after one prefix
   segment such as 'feature/'; otherwise a comment is posted and the run fails
4. The issue's project and type are added as labels
5. With VALIDATE_ISSUE_STATUS the issue must be in one of ALLOWED_ISSUE_STATUSES
6. The issue details are added to the pull request description

Example:
  jiralint lint --repository owner/repo --pr 42 --output yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}
		if output != "text" && output != "yaml" {
			return fmt.Errorf("unsupported output format %q, expected text or yaml", output)
		}
		refresh, err := cmd.Flags().GetBool("refresh-description")
		if err != nil {
			return err
		}
		prNumber, err := cmd.Flags().GetInt("pr")
		if err != nil {
			return err
		}

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if repository, _ := cmd.Flags().GetString("repository"); repository != "" {
			cfg.GitHub.Repository = repository
		}
		if eventPath, _ := cmd.Flags().GetString("event"); eventPath != "" {
			cfg.GitHub.EventPath = eventPath
		}
		if err := config.ValidateGitHubConfig(cfg); err != nil {
			return err
		}
		if err := config.ValidateJiraConfig(cfg); err != nil {
			return err
		}

		githubClient, err := github.NewClient(cfg.GitHub)
		if err != nil {
			return fmt.Errorf("failed to initialize github client: %w", err)
		}
		jiraClient, err := jira.NewClient(cfg.Jira)
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		pr, err := loadPullRequest(ctx, githubClient, cfg.GitHub, prNumber)
		if err != nil {
			return err
		}

		logging.Info("linting pull request",
			"repository", pr.Repository,
			"pull_request", pr.Number,
			"branch", pr.Branch)

		runner, err := lint.NewRunner(githubClient, jiraClient, lint.Options{
			LintConfig:         cfg.Lint,
			RefreshDescription: refresh,
		})
		if err != nil {
			return err
		}

		result, runErr := runner.Run(ctx, pr)
		if err := printResult(cmd.OutOrStdout(), result, output); err != nil {
			return err
		}
		return runErr
	},
}

func init() {
	lintCmd.Flags().StringP("repository", "r", "", "GitHub repository (e.g., 'owner/repo'), defaults to GITHUB_REPOSITORY")
	lintCmd.Flags().Int("pr", 0, "Pull request number to fetch instead of reading the event payload")
	lintCmd.Flags().String("event", "", "Path to a pull_request event payload, defaults to GITHUB_EVENT_PATH")
	lintCmd.Flags().StringP("output", "o", "text", "Output format: text or yaml")
	lintCmd.Flags().Bool("refresh-description", false, "Re-render the issue block even when the description already has one")
}

// loadPullRequest fetches the pull request by number when one is given and
// otherwise reads the Actions event payload.
func loadPullRequest(ctx context.Context, client *github.Client, cfg config.GitHubConfig, number int) (models.PullRequest, error) {
	if number > 0 {
		if cfg.Repository == "" {
			return models.PullRequest{}, fmt.Errorf("repository is required with --pr (set --repository or GITHUB_REPOSITORY)")
		}
		return client.GetPullRequest(ctx, cfg.Repository, number)
	}

	if cfg.EventPath == "" {
		return models.PullRequest{}, fmt.Errorf("no pull request given: use --pr or run on a pull_request event")
	}
	pr, err := github.LoadPullRequestEvent(cfg.EventPath)
	if err != nil {
		return models.PullRequest{}, err
	}
	if pr.Repository == "" {
		pr.Repository = cfg.Repository
	}
	return pr, nil
}

// printResult writes the lint result as YAML or as aligned text.
func printResult(w io.Writer, result lint.Result, output string) error {
	if output == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		return enc.Close()
	}

	fmt.Fprintf(w, "Pull request:        %s#%d\n", result.Repository, result.PullRequest)
	fmt.Fprintf(w, "Branch:              %s\n", result.Branch)
	if result.Skipped {
		fmt.Fprintln(w, "Result:              skipped")
		return nil
	}
	fmt.Fprintf(w, "Issue:               %s\n", valueOrNone(result.IssueKey))
	fmt.Fprintf(w, "Status:              %s\n", valueOrNone(result.IssueStatus))
	fmt.Fprintf(w, "Status valid:        %t\n", result.StatusValid)
	fmt.Fprintf(w, "Labels added:        %s\n", valueOrNone(strings.Join(result.LabelsAdded, ", ")))
	fmt.Fprintf(w, "Comments posted:     %d\n", result.CommentsPosted)
	fmt.Fprintf(w, "Description updated: %t\n", result.DescriptionUpdated)
	return nil
}

func valueOrNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

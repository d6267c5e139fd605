package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/jiralint/internal/config"
	"github.com/danielolaszy/jiralint/internal/jira"
	"github.com/danielolaszy/jiralint/pkg/models"
)

// showCmd fetches an issue and prints the block jiralint would add to a pull request.
var showCmd = &cobra.Command{
	Use:   "show KEY|BRANCH",
	Short: "Print the pull request block for a JIRA issue",
	Long: `Fetch a JIRA issue and print the description block jiralint would add to a
pull request, followed by the result of the status check.

The argument is either an issue key or a branch name starting with one.

Example:
  jiralint show feature/ABC-123-login`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, ok := models.ParseIssueKey(args[0])
		if !ok {
			keys := jira.ExtractIssueKeys(args[0])
			if len(keys) == 0 {
				return fmt.Errorf("%q is neither an issue key nor a branch starting with one", args[0])
			}
			key = keys[0]
		}

		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		jiraClient, err := jira.NewClient(cfg.Jira)
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		details, err := jiraClient.GetIssueDetails(ctx, key.String())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, jira.PRDescription("", details))
		fmt.Fprintln(out)
		if jira.IsIssueStatusValid(cfg.Lint.ValidateIssueStatus, cfg.Lint.AllowedIssueStatuses, details) {
			fmt.Fprintf(out, "Status %q is allowed\n", details.Status)
			return nil
		}
		fmt.Fprintln(out, jira.InvalidStatusComment(details.Status, cfg.Lint.AllowedIssueStatuses))
		return fmt.Errorf("issue %s is in status %q", key, details.Status)
	},
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/jiralint/internal/jira"
)

// keysCmd prints the issue key of each branch name without calling any API.
var keysCmd = &cobra.Command{
	Use:   "keys BRANCH...",
	Short: "Print the JIRA issue key each branch name starts with",
	Long: `Print the JIRA issue key each branch name starts with.

Branches without a key are printed with '-'. With --strict the command fails
when any branch has no key.

Example:
  jiralint keys feature/ABC-123-login fix/es-43-typo`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, err := cmd.Flags().GetBool("strict")
		if err != nil {
			return err
		}

		var missing []string
		for _, branch := range args {
			keys := jira.ExtractIssueKeys(branch)
			if len(keys) == 0 {
				missing = append(missing, branch)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t-\n", branch)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", branch, keys[0])
		}

		if strict && len(missing) > 0 {
			return fmt.Errorf("no issue key found in %d branch name(s): %v", len(missing), missing)
		}
		return nil
	},
}

func init() {
	keysCmd.Flags().Bool("strict", false, "Fail when a branch name has no issue key")
}

// Package cmd provides the command-line interface for jiralint.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jiralint",
	Short: "jiralint links pull requests to the JIRA issues named by their branches",
	Long: `jiralint checks that a pull request's branch name starts with a JIRA issue key,
validates the issue's workflow status and adds the issue details to the pull
request description. It is meant to run as a GitHub Actions step on pull_request
events, but every command also works from a terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add persistent flags that will be available to all commands
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file (environment variables take precedence)")

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(showCmd)
}

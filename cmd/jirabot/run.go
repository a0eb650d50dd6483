package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jirabot/internal/bot"
	"jirabot/internal/config"
	"jirabot/internal/jira"
)

var runCmd = &cobra.Command{
	Use:   "run <command text>",
	Short: "Dispatch a single command from the shell",
	Long: `Runs one bot command without Slack, e.g.:

  jirabot run show OPS-12
  jirabot run create fix the build -c infra -a alice`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ValidateConfig(); err != nil {
			return err
		}

		client := jira.NewClient(
			viper.GetString("jira.url"),
			viper.GetString("jira.username"),
			viper.GetString("jira.api_token"),
		)
		b, err := bot.New(client, viper.GetString("jira.project"))
		if err != nil {
			return fmt.Errorf("failed to build command table: %w", err)
		}

		inv := bot.Invocation{
			Text: strings.Join(args, " "),
			User: "cli",
		}
		res := b.Dispatch(cmd.Context(), inv)
		if res.IsError() {
			return fmt.Errorf("%s", res.Err)
		}
		fmt.Println(res.Text())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// A bot command's own flags must reach the dispatcher untouched.
	runCmd.Flags().SetInterspersed(false)
	runCmd.FParseErrWhitelist.UnknownFlags = true
}

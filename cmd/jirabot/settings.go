package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jirabot/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage per-channel defaults",
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <channel> <project-key>[,<project-key>...]",
	Short: "Set a channel's default project keys",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := settings.NewSQLiteStore(viper.GetString("settings.path"))
		if err != nil {
			return fmt.Errorf("failed to open settings store: %w", err)
		}
		defer store.Close()

		var keys []string
		for _, k := range strings.Split(args[1], ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
		if len(keys) == 0 {
			return fmt.Errorf("no project keys given")
		}
		if err := store.SetChannelProjects(cmd.Context(), args[0], keys); err != nil {
			return err
		}
		fmt.Printf("Channel %s now defaults to %s\n", args[0], strings.Join(keys, ", "))
		return nil
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear <channel>",
	Short: "Clear a channel's defaults",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := settings.NewSQLiteStore(viper.GetString("settings.path"))
		if err != nil {
			return fmt.Errorf("failed to open settings store: %w", err)
		}
		defer store.Close()

		if err := store.ClearChannel(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Cleared defaults for channel %s\n", args[0])
		return nil
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show <channel>",
	Short: "Show a channel's defaults",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := settings.NewSQLiteStore(viper.GetString("settings.path"))
		if err != nil {
			return fmt.Errorf("failed to open settings store: %w", err)
		}
		defer store.Close()

		keys, err := store.ChannelProjects(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			fmt.Printf("Channel %s has no defaults\n", args[0])
			return nil
		}
		fmt.Println(strings.Join(keys, ", "))
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd, settingsClearCmd, settingsShowCmd)
	rootCmd.AddCommand(settingsCmd)
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jirabot/internal/bot"
	"jirabot/internal/config"
	"jirabot/internal/jira"
	"jirabot/internal/notify"
	"jirabot/internal/settings"
	"jirabot/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chat bot daemon",
	Long: `Connects to Slack over Socket Mode and answers tracker commands in any
channel the bot is mentioned in. Also serves Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ValidateConfig(); err != nil {
			return err
		}

		client := jira.NewClient(
			viper.GetString("jira.url"),
			viper.GetString("jira.username"),
			viper.GetString("jira.api_token"),
		)

		metrics := telemetry.NewCommandMetrics(prometheus.DefaultRegisterer)
		b, err := bot.New(client, viper.GetString("jira.project"), bot.WithMetrics(metrics))
		if err != nil {
			return fmt.Errorf("failed to build command table: %w", err)
		}

		store, err := settings.NewSQLiteStore(viper.GetString("settings.path"))
		if err != nil {
			return fmt.Errorf("failed to open settings store: %w", err)
		}
		defer store.Close()

		manager := notify.NewManager(b, store)
		if !manager.Connected() {
			return fmt.Errorf("slack is not configured: set SLACK_BOT_USER_TOKEN and SLACK_APP_TOKEN")
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			addr := fmt.Sprintf(":%d", viper.GetInt("metrics_port"))
			if err := telemetry.StartMetricsServer(addr); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()

		slog.Info("jirabot serving", "tracker", viper.GetString("jira.url"))
		return manager.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

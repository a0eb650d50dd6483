package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load initializes the configuration from file and environment variables.
func Load(cfgFile string) {
	// explicit .env loading; a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("JIRABOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// Honor the conventional JIRA_* variables when the prefixed ones are unset
	if os.Getenv("JIRABOT_JIRA_URL") == "" && os.Getenv("JIRA_URL") != "" {
		viper.SetDefault("jira.url", os.Getenv("JIRA_URL"))
	}
	if os.Getenv("JIRABOT_JIRA_USERNAME") == "" && os.Getenv("JIRA_USERNAME") != "" {
		viper.SetDefault("jira.username", os.Getenv("JIRA_USERNAME"))
	}
	if os.Getenv("JIRABOT_JIRA_API_TOKEN") == "" && os.Getenv("JIRA_API_TOKEN") != "" {
		viper.SetDefault("jira.api_token", os.Getenv("JIRA_API_TOKEN"))
	}

	// Set defaults
	viper.SetDefault("jira.project", "")
	viper.SetDefault("settings.path", "jirabot.db")
	viper.SetDefault("metrics_port", 2112)
	viper.SetDefault("verbose", false)

	slackEnabled := os.Getenv("SLACK_BOT_USER_TOKEN") != ""
	viper.SetDefault("slack.enabled", slackEnabled)

	// If a config file is found, read it in; running purely from the
	// environment is supported.
	_ = viper.ReadInConfig()
}

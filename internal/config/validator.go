package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/viper"
)

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	// Tracker credentials are required to do anything useful
	if viper.GetString("jira.url") == "" {
		errors = append(errors, "jira.url is required (set JIRA_URL)")
	} else if u, err := url.Parse(viper.GetString("jira.url")); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("jira.url must be an absolute URL, got: %s", viper.GetString("jira.url")))
	}
	if viper.GetString("jira.username") == "" {
		errors = append(errors, "jira.username is required (set JIRA_USERNAME)")
	}
	if viper.GetString("jira.api_token") == "" {
		errors = append(errors, "jira.api_token is required (set JIRA_API_TOKEN)")
	}

	// Validate metrics_port (if set)
	if viper.IsSet("metrics_port") {
		port := viper.GetInt("metrics_port")
		if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("metrics_port must be between 1 and 65535, got: %d", port))
		}
	}

	// Slack needs both tokens when enabled
	if viper.GetBool("slack.enabled") {
		if os.Getenv("SLACK_BOT_USER_TOKEN") == "" {
			errors = append(errors, "SLACK_BOT_USER_TOKEN is required when slack is enabled")
		}
		if os.Getenv("SLACK_APP_TOKEN") == "" {
			errors = append(errors, "SLACK_APP_TOKEN is required when slack is enabled")
		}
	}

	// If there are any errors, return them
	if len(errors) > 0 {
		errorMsg := errors[0]
		for i := 1; i < len(errors); i++ {
			errorMsg += "\n  " + errors[i]
		}
		return fmt.Errorf("configuration validation failed:\n  %s", errorMsg)
	}

	return nil
}

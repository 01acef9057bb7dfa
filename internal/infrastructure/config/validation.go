package config

import (
	"fmt"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLayout(config)...)
	validationErrors = append(validationErrors, validateFloating(config)...)
	validationErrors = append(validationErrors, validateComponents(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateLayout(config *Config) []string {
	var validationErrors []string
	switch strings.ToLower(config.Layout.Orientation) {
	case "horizontal", "vertical":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"layout.orientation must be one of: horizontal, vertical (got: %s)",
			config.Layout.Orientation,
		))
	}
	if config.Layout.Width < 0 || config.Layout.Height < 0 {
		validationErrors = append(validationErrors, "layout.width and layout.height must be non-negative")
	}
	if config.Layout.MinimumGroupWidth < 0 || config.Layout.MinimumGroupHeight < 0 {
		validationErrors = append(validationErrors, "layout.minimum_group_width and layout.minimum_group_height must be non-negative")
	}
	if config.Layout.DropThresholdPercent < 1 || config.Layout.DropThresholdPercent > 50 {
		validationErrors = append(validationErrors, "layout.drop_threshold_percent must be between 1 and 50")
	}
	return validationErrors
}

func validateFloating(config *Config) []string {
	if config.Layout.Floating.Width <= 0 || config.Layout.Floating.Height <= 0 {
		return []string{"layout.floating.width and layout.floating.height must be positive"}
	}
	return nil
}

func validateComponents(config *Config) []string {
	var validationErrors []string
	seen := make(map[string]struct{}, len(config.Components.Registered))
	for _, name := range config.Components.Registered {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			validationErrors = append(validationErrors, "components.registered must not contain empty names")
			continue
		}
		if _, dup := seen[key]; dup {
			validationErrors = append(validationErrors, fmt.Sprintf("components.registered lists %q twice", name))
		}
		seen[key] = struct{}{}
	}
	if config.Components.Default != "" && !config.IsRegistered(config.Components.Default) {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"components.default %q is not in components.registered", config.Components.Default,
		))
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if config.Logging.MaxAge < 0 {
		validationErrors = append(validationErrors, "logging.max_age must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.EnableFileLog && config.Logging.MaxSizeMB <= 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be positive when file logging is enabled")
	}
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level must be one of: trace, debug, info, warn, error (got: %s)",
			config.Logging.Level,
		))
	}
	switch config.Logging.Format {
	case "json", "console", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format must be one of: json, console (got: %s)",
			config.Logging.Format,
		))
	}
	return validationErrors
}

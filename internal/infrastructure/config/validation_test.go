package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad orientation", mutate: func(c *Config) { c.Layout.Orientation = "diagonal" }, wantKey: "layout.orientation"},
		{name: "negative width", mutate: func(c *Config) { c.Layout.Width = -1 }, wantKey: "layout.width"},
		{name: "negative minimum", mutate: func(c *Config) { c.Layout.MinimumGroupHeight = -5 }, wantKey: "layout.minimum_group_width"},
		{name: "threshold zero", mutate: func(c *Config) { c.Layout.DropThresholdPercent = 0 }, wantKey: "layout.drop_threshold_percent"},
		{name: "threshold too deep", mutate: func(c *Config) { c.Layout.DropThresholdPercent = 51 }, wantKey: "layout.drop_threshold_percent"},
		{name: "empty floating box", mutate: func(c *Config) { c.Layout.Floating.Width = 0 }, wantKey: "layout.floating.width"},
		{name: "empty component name", mutate: func(c *Config) { c.Components.Registered = []string{" "} }, wantKey: "components.registered"},
		{name: "duplicate component", mutate: func(c *Config) { c.Components.Registered = []string{"a", "A"} }, wantKey: "components.registered"},
		{
			name: "unregistered default",
			mutate: func(c *Config) {
				c.Components.Registered = []string{"editor"}
				c.Components.Default = "terminal"
			},
			wantKey: "components.default",
		},
		{name: "default without registry", mutate: func(c *Config) { c.Components.Default = "editor" }},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "fatal" }, wantKey: "logging.level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantKey: "logging.format"},
		{
			name: "file log without size",
			mutate: func(c *Config) {
				c.Logging.EnableFileLog = true
				c.Logging.MaxSizeMB = 0
			},
			wantKey: "logging.max_size_mb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantKey == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}

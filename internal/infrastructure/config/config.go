package config

import (
	"strings"

	"github.com/bnema/dockgrid/internal/domain/entity"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Config represents the complete configuration for dockgrid.
type Config struct {
	Layout     LayoutConfig     `mapstructure:"layout" toml:"layout" json:"layout"`
	Components ComponentsConfig `mapstructure:"components" toml:"components" json:"components"`
	Logging    LoggingConfig    `mapstructure:"logging" toml:"logging" json:"logging"`
	Database   DatabaseConfig   `mapstructure:"database" toml:"database" json:"database"`
}

// LayoutConfig controls how a new docking controller lays out groups.
type LayoutConfig struct {
	// Orientation is the root axis of an empty grid (horizontal, vertical).
	Orientation string `mapstructure:"orientation" toml:"orientation" json:"orientation" jsonschema:"enum=horizontal,enum=vertical"`
	// Width and Height are the initial host extent in pixels.
	Width  int `mapstructure:"width" toml:"width" json:"width" jsonschema:"minimum=0"`
	Height int `mapstructure:"height" toml:"height" json:"height" jsonschema:"minimum=0"`

	// RemoveEmptyGroup deletes a group once its last panel is removed.
	RemoveEmptyGroup bool `mapstructure:"remove_empty_group" toml:"remove_empty_group" json:"remove_empty_group"`

	MinimumGroupWidth  int `mapstructure:"minimum_group_width" toml:"minimum_group_width" json:"minimum_group_width" jsonschema:"minimum=0"`
	MinimumGroupHeight int `mapstructure:"minimum_group_height" toml:"minimum_group_height" json:"minimum_group_height" jsonschema:"minimum=0"`

	// DropThresholdPercent is the depth of the edge zones of a drop target,
	// as a percentage of its width or height.
	DropThresholdPercent int `mapstructure:"drop_threshold_percent" toml:"drop_threshold_percent" json:"drop_threshold_percent" jsonschema:"minimum=1,maximum=50"`

	Floating FloatingConfig `mapstructure:"floating" toml:"floating" json:"floating"`
}

// FloatingConfig is the default box of a new floating group.
type FloatingConfig struct {
	Left   int `mapstructure:"left" toml:"left" json:"left"`
	Top    int `mapstructure:"top" toml:"top" json:"top"`
	Width  int `mapstructure:"width" toml:"width" json:"width" jsonschema:"minimum=1"`
	Height int `mapstructure:"height" toml:"height" json:"height" jsonschema:"minimum=1"`
}

// ComponentsConfig lists the component names a layout may reference.
type ComponentsConfig struct {
	// Registered content and tab component names. Empty accepts any name.
	Registered []string `mapstructure:"registered" toml:"registered" json:"registered"`
	// Default is used for panels whose component is not registered. Empty
	// makes unknown components an error.
	Default string `mapstructure:"default" toml:"default" json:"default"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`

	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
	MaxAge        int    `mapstructure:"max_age" toml:"max_age" json:"max_age" jsonschema:"minimum=0"`
	Compress      bool   `mapstructure:"compress" toml:"compress" json:"compress"`
}

// DatabaseConfig locates the layout store.
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path"`
}

// RootOrientation parses Layout.Orientation, defaulting to horizontal.
func (c *Config) RootOrientation() entity.Orientation {
	o, err := entity.ParseOrientation(c.Layout.Orientation)
	if err != nil {
		return entity.OrientationHorizontal
	}
	return o
}

// FloatingBox returns the default floating group box.
func (c *Config) FloatingBox() entity.Box {
	return entity.Box{
		Left:   c.Layout.Floating.Left,
		Top:    c.Layout.Floating.Top,
		Width:  c.Layout.Floating.Width,
		Height: c.Layout.Floating.Height,
	}
}

// GroupConstraints returns the minimum extent every new group gets.
func (c *Config) GroupConstraints() entity.Constraints {
	return entity.Constraints{
		MinimumWidth:  c.Layout.MinimumGroupWidth,
		MinimumHeight: c.Layout.MinimumGroupHeight,
	}
}

// IsRegistered reports whether name may be used as a component.
func (c *Config) IsRegistered(name string) bool {
	if len(c.Components.Registered) == 0 {
		return true
	}
	for _, r := range c.Components.Registered {
		if strings.EqualFold(r, name) {
			return true
		}
	}
	return false
}

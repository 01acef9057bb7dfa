package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/dockgrid/internal/application/port"
	"github.com/bnema/dockgrid/internal/domain/entity"
)

// Section names for grouping config keys.
const (
	SectionLayout     = "Layout"
	SectionFloating   = "Floating"
	SectionComponents = "Components"
	SectionLogging    = "Logging"
	SectionDatabase   = "Database"
)

// SchemaProvider implements port.ConfigSchemaProvider.
type SchemaProvider struct{}

// NewSchemaProvider creates a new SchemaProvider.
func NewSchemaProvider() *SchemaProvider {
	return &SchemaProvider{}
}

var _ port.ConfigSchemaProvider = (*SchemaProvider)(nil)

// GetSchema returns all configuration keys with their metadata.
func (p *SchemaProvider) GetSchema() []entity.ConfigKeyInfo {
	defaults := DefaultConfig()

	keys := make([]entity.ConfigKeyInfo, 0, 24)
	keys = append(keys, p.getLayoutKeys(defaults)...)
	keys = append(keys, p.getFloatingKeys(defaults)...)
	keys = append(keys, p.getComponentsKeys(defaults)...)
	keys = append(keys, p.getLoggingKeys(defaults)...)
	keys = append(keys, p.getDatabaseKeys()...)
	return keys
}

func (*SchemaProvider) getLayoutKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "layout.orientation",
			Type:        "string",
			Default:     defaults.Layout.Orientation,
			Description: "Root axis of an empty grid",
			Values:      []string{"horizontal", "vertical"},
			Section:     SectionLayout,
		},
		{
			Key:         "layout.width",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Layout.Width),
			Description: "Initial host width in pixels",
			Range:       ">=0",
			Section:     SectionLayout,
		},
		{
			Key:         "layout.height",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Layout.Height),
			Description: "Initial host height in pixels",
			Range:       ">=0",
			Section:     SectionLayout,
		},
		{
			Key:         "layout.remove_empty_group",
			Type:        "bool",
			Default:     strconv.FormatBool(defaults.Layout.RemoveEmptyGroup),
			Description: "Delete a group when its last panel is removed",
			Section:     SectionLayout,
		},
		{
			Key:         "layout.minimum_group_width",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Layout.MinimumGroupWidth),
			Description: "Minimum width of a grid group",
			Range:       ">=0",
			Section:     SectionLayout,
		},
		{
			Key:         "layout.minimum_group_height",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Layout.MinimumGroupHeight),
			Description: "Minimum height of a grid group",
			Range:       ">=0",
			Section:     SectionLayout,
		},
		{
			Key:         "layout.drop_threshold_percent",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Layout.DropThresholdPercent),
			Description: "Depth of the edge drop zones, in percent of the target",
			Range:       "1-50",
			Section:     SectionLayout,
		},
	}
}

func (*SchemaProvider) getFloatingKeys(defaults *Config) []entity.ConfigKeyInfo {
	f := defaults.Layout.Floating
	keys := make([]entity.ConfigKeyInfo, 0, 4)
	for _, field := range []struct {
		name  string
		value int
		desc  string
	}{
		{"left", f.Left, "Left edge of a new floating group"},
		{"top", f.Top, "Top edge of a new floating group"},
		{"width", f.Width, "Width of a new floating group"},
		{"height", f.Height, "Height of a new floating group"},
	} {
		info := entity.ConfigKeyInfo{
			Key:         "layout.floating." + field.name,
			Type:        "int",
			Default:     strconv.Itoa(field.value),
			Description: field.desc,
			Section:     SectionFloating,
		}
		if field.name == "width" || field.name == "height" {
			info.Range = ">=1"
		}
		keys = append(keys, info)
	}
	return keys
}

func (*SchemaProvider) getComponentsKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "components.registered",
			Type:        "[]string",
			Default:     "[" + strings.Join(defaults.Components.Registered, ", ") + "]",
			Description: "Component names a layout may reference (empty accepts any)",
			Section:     SectionComponents,
		},
		{
			Key:         "components.default",
			Type:        "string",
			Default:     defaults.Components.Default,
			Description: "Fallback component for unregistered names (empty rejects them)",
			Section:     SectionComponents,
		},
	}
}

func (*SchemaProvider) getLoggingKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "logging.level",
			Type:        "string",
			Default:     defaults.Logging.Level,
			Description: "Log verbosity level",
			Values:      []string{"trace", "debug", "info", "warn", "error"},
			Section:     SectionLogging,
		},
		{
			Key:         "logging.format",
			Type:        "string",
			Default:     defaults.Logging.Format,
			Description: "Log output format",
			Values:      []string{"console", "json"},
			Section:     SectionLogging,
		},
		{
			Key:         "logging.enable_file_log",
			Type:        "bool",
			Default:     fmt.Sprintf("%t", defaults.Logging.EnableFileLog),
			Description: "Also write logs to a rotated file",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.log_dir",
			Type:        "string",
			Default:     defaults.Logging.LogDir,
			Description: "Directory for log files",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_size_mb",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Logging.MaxSizeMB),
			Description: "Rotate the log file past this size",
			Range:       ">=1",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_backups",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Logging.MaxBackups),
			Description: "Rotated files to keep (0 keeps all)",
			Range:       ">=0",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_age",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Logging.MaxAge),
			Description: "Maximum age of rotated log files in days",
			Range:       ">=0",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.compress",
			Type:        "bool",
			Default:     fmt.Sprintf("%t", defaults.Logging.Compress),
			Description: "Gzip rotated log files",
			Section:     SectionLogging,
		},
	}
}

func (*SchemaProvider) getDatabaseKeys() []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "database.path",
			Type:        "string",
			Default:     "$XDG_DATA_HOME/dockgrid/dockgrid.sqlite",
			Description: "SQLite file holding saved layouts",
			Section:     SectionDatabase,
		},
	}
}

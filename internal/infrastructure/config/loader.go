package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	configDir      string
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
}

// NewManager creates a configuration manager for the XDG config directory.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerAt(configDir)
}

// NewManagerAt creates a configuration manager reading config.toml from dir.
func NewManagerAt(dir string) (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	// DOCKGRID_LAYOUT_WIDTH, DOCKGRID_DATABASE_PATH, ...
	v.SetEnvPrefix("DOCKGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Same names logging.NewFromEnv reads before the config is loaded.
	if err := v.BindEnv("logging.level", "DOCKGRID_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind DOCKGRID_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "DOCKGRID_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind DOCKGRID_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		configDir: dir,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables. A
// missing file is created from the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.configDir, dirPerm); err != nil {
		return fmt.Errorf("failed to ensure config directory: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := ensureDatabasePath(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.ConfigFile(), err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			m.configDir,
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	switch strings.ToLower(strings.TrimSpace(config.Layout.Orientation)) {
	case "vertical":
		config.Layout.Orientation = "vertical"
	case "", "horizontal":
		config.Layout.Orientation = "horizontal"
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Format == "text" {
		config.Logging.Format = "console"
	}

	names := config.Components.Registered[:0]
	for _, name := range config.Components.Registered {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	config.Components.Registered = names
	config.Components.Default = strings.TrimSpace(config.Components.Default)
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	configCopy.Components.Registered = append([]string(nil), m.config.Components.Registered...)
	return &configCopy
}

// Save validates cfg and writes it to disk.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	normalizeConfig(cfg)
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := WriteConfigOrdered(cfg, m.ConfigFile()); err != nil {
		return err
	}

	saved := *cfg
	m.config = &saved
	if m.watching {
		// The watcher sees our own write; it only needs to resync viper.
		m.skipNextReload = true
		return nil
	}
	return m.viper.ReadInConfig()
}

// ConfigFile returns the path of the configuration file.
func (m *Manager) ConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(m.configDir, "config.toml")
}

// createDefaultConfig writes the defaults and the JSON schema next to them.
func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(m.configDir, dirPerm); err != nil {
		return err
	}

	defaults := DefaultConfig()
	if err := WriteConfigOrdered(defaults, filepath.Join(m.configDir, "config.toml")); err != nil {
		return err
	}
	return GenerateSchemaFile(m.configDir)
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setLayoutDefaults(defaults)
	m.setComponentsDefaults(defaults)
	m.setLoggingDefaults(defaults)
}

func (m *Manager) setLayoutDefaults(defaults *Config) {
	m.viper.SetDefault("layout.orientation", defaults.Layout.Orientation)
	m.viper.SetDefault("layout.width", defaults.Layout.Width)
	m.viper.SetDefault("layout.height", defaults.Layout.Height)
	m.viper.SetDefault("layout.remove_empty_group", defaults.Layout.RemoveEmptyGroup)
	m.viper.SetDefault("layout.minimum_group_width", defaults.Layout.MinimumGroupWidth)
	m.viper.SetDefault("layout.minimum_group_height", defaults.Layout.MinimumGroupHeight)
	m.viper.SetDefault("layout.drop_threshold_percent", defaults.Layout.DropThresholdPercent)
	m.viper.SetDefault("layout.floating.left", defaults.Layout.Floating.Left)
	m.viper.SetDefault("layout.floating.top", defaults.Layout.Floating.Top)
	m.viper.SetDefault("layout.floating.width", defaults.Layout.Floating.Width)
	m.viper.SetDefault("layout.floating.height", defaults.Layout.Floating.Height)
}

func (m *Manager) setComponentsDefaults(defaults *Config) {
	m.viper.SetDefault("components.registered", defaults.Components.Registered)
	m.viper.SetDefault("components.default", defaults.Components.Default)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

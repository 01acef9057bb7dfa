package config

// Default configuration constants
const (
	// Layout defaults
	defaultOrientation          = "horizontal"
	defaultWidth                = 1280 // pixels
	defaultHeight               = 800  // pixels
	defaultMinimumGroupWidth    = 100
	defaultMinimumGroupHeight   = 100
	defaultDropThresholdPercent = 20

	// Floating group defaults
	defaultFloatingLeft   = 100
	defaultFloatingTop    = 100
	defaultFloatingWidth  = 300
	defaultFloatingHeight = 300

	// Logging defaults
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
	defaultMaxLogAgeDays = 7 // days
)

// getDefaultLogDir returns the default log directory, falls back to empty string on error
func getDefaultLogDir() string {
	logDir, err := GetLogDir()
	if err != nil {
		return ""
	}
	return logDir
}

// DefaultConfig returns the default configuration values for dockgrid.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			Orientation:          defaultOrientation,
			Width:                defaultWidth,
			Height:               defaultHeight,
			RemoveEmptyGroup:     true,
			MinimumGroupWidth:    defaultMinimumGroupWidth,
			MinimumGroupHeight:   defaultMinimumGroupHeight,
			DropThresholdPercent: defaultDropThresholdPercent,
			Floating: FloatingConfig{
				Left:   defaultFloatingLeft,
				Top:    defaultFloatingTop,
				Width:  defaultFloatingWidth,
				Height: defaultFloatingHeight,
			},
		},
		Components: ComponentsConfig{
			Registered: []string{},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			LogDir:     getDefaultLogDir(),
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAge:     defaultMaxLogAgeDays,
			Compress:   true,
		},
		Database: DatabaseConfig{
			// Path is set dynamically in Load()
		},
	}
}

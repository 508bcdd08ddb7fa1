package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	mapstructure "github.com/go-viper/mapstructure/v2"
	viper "github.com/spf13/viper"
	gotenv "github.com/subosito/gotenv"
	yaml "gopkg.in/yaml.v3"

	"github.com/easel-agent/cli/internal/domain"
	"github.com/easel-agent/cli/internal/logger"
)

// DefaultConfigPath is where `easel config init` writes the config file
const DefaultConfigPath = ".easel/config.yaml"

// Config represents the CLI configuration
type Config struct {
	Gateway     GatewayConfig     `yaml:"gateway" mapstructure:"gateway"`
	Paint       PaintConfig       `yaml:"paint" mapstructure:"paint"`
	Calibration CalibrationConfig `yaml:"calibration" mapstructure:"calibration"`
	Display     DisplayConfig     `yaml:"display" mapstructure:"display"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Sessions    SessionsConfig    `yaml:"sessions" mapstructure:"sessions"`
}

// GatewayConfig contains LLM gateway connection settings
type GatewayConfig struct {
	URL     string `yaml:"url" mapstructure:"url"`
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	Timeout int    `yaml:"timeout" mapstructure:"timeout"`
	// Model is in "provider/model" form, e.g. "google/gemini-2.0-flash"
	Model string `yaml:"model" mapstructure:"model"`
}

// PaintConfig describes the paint application being driven
type PaintConfig struct {
	WindowTitle   string       `yaml:"window_title" mapstructure:"window_title"`
	LaunchCommand string       `yaml:"launch_command" mapstructure:"launch_command"`
	Insets        InsetsConfig `yaml:"insets" mapstructure:"insets"`
	// SettleDelayMs is how long to wait after launching or focusing the
	// window before injecting input
	SettleDelayMs int `yaml:"settle_delay_ms" mapstructure:"settle_delay_ms"`
	// ActionDelayMs is the pause between consecutive GUI primitives
	ActionDelayMs int `yaml:"action_delay_ms" mapstructure:"action_delay_ms"`
}

// InsetsConfig is the border around the window rect that is not canvas
// (toolbars, rulers, status bar)
type InsetsConfig struct {
	Left   int `yaml:"left" mapstructure:"left"`
	Top    int `yaml:"top" mapstructure:"top"`
	Right  int `yaml:"right" mapstructure:"right"`
	Bottom int `yaml:"bottom" mapstructure:"bottom"`
}

// CalibrationConfig contains calibration profile settings
type CalibrationConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Profile string `yaml:"profile" mapstructure:"profile"`
}

// DisplayConfig selects the input-injection backend
type DisplayConfig struct {
	// Backend is "auto", "x11" or "robot"
	Backend string `yaml:"backend" mapstructure:"backend"`
	Name    string `yaml:"name" mapstructure:"name"`
	// TypeDelayMs is the per-keystroke delay when typing text
	TypeDelayMs int `yaml:"type_delay_ms" mapstructure:"type_delay_ms"`
}

// LoggingConfig contains application log settings
type LoggingConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// SessionsConfig contains session recording settings
type SessionsConfig struct {
	Enabled     bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir         string `yaml:"dir" mapstructure:"dir"`
	HistoryPath string `yaml:"history_path" mapstructure:"history_path"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Gateway: GatewayConfig{
			URL:     "http://localhost:8080",
			APIKey:  "",
			Timeout: 60,
			Model:   "google/gemini-2.0-flash",
		},
		Paint: PaintConfig{
			WindowTitle:   "Paint",
			LaunchCommand: "mspaint",
			Insets: InsetsConfig{
				Left:   5,
				Top:    150,
				Right:  25,
				Bottom: 50,
			},
			SettleDelayMs: 2000,
			ActionDelayMs: 500,
		},
		Calibration: CalibrationConfig{
			Dir:     ".easel/profiles",
			Profile: "default",
		},
		Display: DisplayConfig{
			Backend:     "auto",
			Name:        ":0",
			TypeDelayMs: 12,
		},
		Logging: LoggingConfig{
			Dir: ".easel/logs",
		},
		Sessions: SessionsConfig{
			Enabled:     true,
			Dir:         ".easel/sessions",
			HistoryPath: ".easel/history.db",
		},
	}
}

// GetConfigPath resolves the config file location: the --config flag value if
// given, otherwise the working directory, otherwise the home directory.
func GetConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if _, err := os.Stat(DefaultConfigPath); err == nil {
		return DefaultConfigPath
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(homeDir, ".easel", "config.yaml")
		if _, err := os.Stat(homePath); err == nil {
			return homePath
		}
	}

	return DefaultConfigPath
}

// Load reads the configuration from the given path, applying defaults for a
// missing file and environment overrides on top. A .env file in the working
// directory is honored for the API key.
func Load(configPath string) (*Config, error) {
	_ = gotenv.Load()

	config := DefaultConfig()

	if _, err := os.Stat(configPath); err == nil {
		v := viper.New()
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}

		if err := v.Unmarshal(config, func(dc *mapstructure.DecoderConfig) {
			dc.TagName = "mapstructure"
		}); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}

		logger.Debug("Loaded config file", "path", configPath)
	} else {
		logger.Debug("Config file not found, using defaults", "path", configPath)
	}

	if key := os.Getenv("EASEL_API_KEY"); key != "" {
		config.Gateway.APIKey = key
	}
	if url := os.Getenv("EASEL_GATEWAY_URL"); url != "" {
		config.Gateway.URL = url
	}

	return config, nil
}

// Save writes the configuration to the given path
func (c *Config) Save(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	defer func() {
		if err := encoder.Close(); err != nil {
			logger.Error("Failed to close YAML encoder", "error", err)
		}
	}()

	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	logger.Debug("Saved config", "path", configPath)
	return nil
}

// Validate reports configuration problems that make a drawing session
// impossible before any network or display call is made.
func (c *Config) Validate() error {
	if c.Gateway.APIKey == "" {
		return fmt.Errorf("%w: set gateway.api_key in %s or the EASEL_API_KEY environment variable",
			domain.ErrNoAPIKey, DefaultConfigPath)
	}
	if c.Gateway.Model == "" {
		return fmt.Errorf("gateway.model must be set (provider/model form)")
	}
	return nil
}

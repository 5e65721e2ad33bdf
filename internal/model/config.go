package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// PlanConfig holds settings for the floor-plan image and marker rendering.
type PlanConfig struct {
	// ImagePath points at the PNG or JPEG floor plan. The image's intrinsic
	// dimensions define the coordinate space task positions are stored in.
	ImagePath string `mapstructure:"image_path" yaml:"image_path"`

	// MarkerSize is the rendered marker footprint in display pixels.
	MarkerSize float64 `mapstructure:"marker_size" yaml:"marker_size"`

	// MinZoom and MaxZoom bound the plan view's zoom level.
	MinZoom float64 `mapstructure:"min_zoom" yaml:"min_zoom"`
	MaxZoom float64 `mapstructure:"max_zoom" yaml:"max_zoom"`
}

// DisplayConfig holds UI preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DBPath is the SQLite database file location.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	Plan    PlanConfig    `mapstructure:"plan" yaml:"plan"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/plantrack/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "plantrack", "config.yaml")
}

// defaultDBPath keeps the database next to the config file.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "plantrack.db")
	}
	return filepath.Join(home, ".config", "plantrack", "plantrack.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		DBPath: defaultDBPath(),
		Plan: PlanConfig{
			ImagePath:  "plan.png",
			MarkerSize: 26,
			MinZoom:    0.5,
			MaxZoom:    30,
		},
		Display: DisplayConfig{
			Theme: "default",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("db_path", defaultDBPath())
	v.SetDefault("plan.image_path", "plan.png")
	v.SetDefault("plan.marker_size", 26)
	v.SetDefault("plan.min_zoom", 0.5)
	v.SetDefault("plan.max_zoom", 30)
	v.SetDefault("display.theme", "default")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Plan.MarkerSize <= 0 {
		cfg.Plan.MarkerSize = 26
	}
	if cfg.Plan.MinZoom <= 0 {
		cfg.Plan.MinZoom = 0.5
	}
	if cfg.Plan.MaxZoom < cfg.Plan.MinZoom {
		cfg.Plan.MaxZoom = cfg.Plan.MinZoom
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.Set("db_path", cfg.DBPath)
	v.Set("plan.image_path", cfg.Plan.ImagePath)
	v.Set("plan.marker_size", cfg.Plan.MarkerSize)
	v.Set("plan.min_zoom", cfg.Plan.MinZoom)
	v.Set("plan.max_zoom", cfg.Plan.MaxZoom)
	v.Set("display.theme", cfg.Display.Theme)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

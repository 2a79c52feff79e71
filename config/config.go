package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendChipmunk = "chipmunk"
	BackendBox2D    = "box2d"
)

// ViewerConfig sizes the debug viewer window and its world scale.
type ViewerConfig struct {
	Width          int     `mapstructure:"width"`
	Height         int     `mapstructure:"height"`
	PixelsPerMeter float64 `mapstructure:"pixels_per_meter"`
	Paused         bool    `mapstructure:"paused"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// Config holds all runtime configuration for the rube tool.
// Values are populated from .rube.yaml, RUBE_* env vars, and CLI flags.
type Config struct {
	Backend string       `mapstructure:"backend"`
	Verbose bool         `mapstructure:"verbose"`
	Viewer  ViewerConfig `mapstructure:"viewer"`
	Watch   WatchConfig  `mapstructure:"watch"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("backend", BackendChipmunk)
	viper.SetDefault("verbose", false)
	viper.SetDefault("viewer.width", 960)
	viper.SetDefault("viewer.height", 640)
	viper.SetDefault("viewer.pixels_per_meter", 32.0)
	viper.SetDefault("viewer.paused", false)
	viper.SetDefault("watch.debounce", 100*time.Millisecond)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendChipmunk, BackendBox2D:
	default:
		return fmt.Errorf("config: backend %q: want %s or %s", c.Backend, BackendChipmunk, BackendBox2D)
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("config: viewer size %dx%d must be positive", c.Viewer.Width, c.Viewer.Height)
	}
	if c.Viewer.PixelsPerMeter <= 0 {
		return fmt.Errorf("config: viewer.pixels_per_meter %v must be positive", c.Viewer.PixelsPerMeter)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("config: watch.debounce %v must not be negative", c.Watch.Debounce)
	}
	return nil
}

// BindEnv maps RUBE_* variables onto config keys, with RUBE_VIEWER_WIDTH
// standing for viewer.width.
func BindEnv() {
	viper.SetEnvPrefix("RUBE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

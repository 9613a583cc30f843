package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"zoombox/internal/input"
)

// DefaultPath is where Save writes when no explicit path is given, relative to the working directory.
const DefaultPath = "config/zoombox.yaml"

// EnvPrefix prefixes environment overrides: ZOOMBOX_SELECTION_MODIFIER -> selection.modifier.
const EnvPrefix = "ZOOMBOX"

// Config holds viewer and selection preferences. Persisted across runs as YAML.
type Config struct {
	Window    WindowConfig    `mapstructure:"window" yaml:"window"`
	Camera    CameraConfig    `mapstructure:"camera" yaml:"camera"`
	Selection SelectionConfig `mapstructure:"selection" yaml:"selection"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
	Debug     DebugConfig     `mapstructure:"debug" yaml:"debug"`
}

type WindowConfig struct {
	Title      string `mapstructure:"title" yaml:"title"`
	Width      int    `mapstructure:"width" yaml:"width"`
	Height     int    `mapstructure:"height" yaml:"height"`
	Fullscreen bool   `mapstructure:"fullscreen" yaml:"fullscreen"`
	TargetFPS  int    `mapstructure:"target_fps" yaml:"target_fps"`
}

// CameraConfig is the initial view. Angles are degrees, height is meters above the surface.
type CameraConfig struct {
	FovY      float64 `mapstructure:"fovy" yaml:"fovy"`
	Longitude float64 `mapstructure:"longitude" yaml:"longitude"`
	Latitude  float64 `mapstructure:"latitude" yaml:"latitude"`
	Height    float64 `mapstructure:"height" yaml:"height"`
}

type SelectionConfig struct {
	Modifier    string        `mapstructure:"modifier" yaml:"modifier"`
	FlyDuration time.Duration `mapstructure:"fly_duration" yaml:"fly_duration"`
	// Color is #RRGGBB or #RRGGBBAA.
	Color string `mapstructure:"color" yaml:"color"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	// File is appended to in addition to stdout; empty keeps lines in memory only.
	File string `mapstructure:"file" yaml:"file"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set (e.g. ":9090").
type MetricsConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// DebugConfig toggles HUD overlays. All off by default.
type DebugConfig struct {
	ShowFPS    bool `mapstructure:"show_fps" yaml:"show_fps"`
	ShowCamera bool `mapstructure:"show_camera" yaml:"show_camera"`
	ShowLog    bool `mapstructure:"show_log" yaml:"show_log"`
}

// Default returns the built-in configuration: Alt-drag, half-second flights, translucent blue.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "zoombox",
			Width:     1280,
			Height:    800,
			TargetFPS: 60,
		},
		Camera: CameraConfig{
			FovY:   45,
			Height: 20_000_000,
		},
		Selection: SelectionConfig{
			Modifier:    "alt",
			FlyDuration: 500 * time.Millisecond,
			Color:       "#0000FF80",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   "logs/zoombox.txt",
		},
	}
}

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"log-level":    "log.level",
	"log-format":   "log.format",
	"modifier":     "selection.modifier",
	"metrics-addr": "metrics.addr",
	"fullscreen":   "window.fullscreen",
}

// RegisterFlags defines the flags Load understands on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("config", "", "path to a YAML config file (default: ./zoombox.yaml or ./config/zoombox.yaml)")
	fs.String("log-level", d.Log.Level, "debug, info, warn or error")
	fs.String("log-format", d.Log.Format, "text or json")
	fs.String("modifier", d.Selection.Modifier, "key held while dragging a selection: alt, ctrl or shift")
	fs.String("metrics-addr", d.Metrics.Addr, "serve Prometheus metrics on this address (empty disables)")
	fs.Bool("fullscreen", d.Window.Fullscreen, "open the window fullscreen")
}

// Load reads configuration in increasing priority: defaults, config file, .env, environment
// (ZOOMBOX_*), then flags that were set on fs. path selects the config file; empty searches
// ./zoombox.yaml and ./config/zoombox.yaml and tolerates neither existing. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env")
	}

	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	} else {
		v.SetConfigName("zoombox")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "read config")
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.fullscreen", d.Window.Fullscreen)
	v.SetDefault("window.target_fps", d.Window.TargetFPS)
	v.SetDefault("camera.fovy", d.Camera.FovY)
	v.SetDefault("camera.longitude", d.Camera.Longitude)
	v.SetDefault("camera.latitude", d.Camera.Latitude)
	v.SetDefault("camera.height", d.Camera.Height)
	v.SetDefault("selection.modifier", d.Selection.Modifier)
	v.SetDefault("selection.fly_duration", d.Selection.FlyDuration)
	v.SetDefault("selection.color", d.Selection.Color)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("metrics.addr", d.Metrics.Addr)
	v.SetDefault("debug.show_fps", d.Debug.ShowFPS)
	v.SetDefault("debug.show_camera", d.Debug.ShowCamera)
	v.SetDefault("debug.show_log", d.Debug.ShowLog)
}

// Validate checks that every field is usable and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Sprintf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.TargetFPS < 0 {
		errs = append(errs, "window.target_fps must not be negative")
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		errs = append(errs, fmt.Sprintf("camera.fovy must be in (0, 180), got %g", c.Camera.FovY))
	}
	if c.Camera.Latitude < -90 || c.Camera.Latitude > 90 {
		errs = append(errs, fmt.Sprintf("camera.latitude must be in [-90, 90], got %g", c.Camera.Latitude))
	}
	if c.Camera.Height <= 0 {
		errs = append(errs, "camera.height must be positive")
	}
	if m, err := input.ParseModifier(c.Selection.Modifier); err != nil {
		errs = append(errs, "selection.modifier: "+err.Error())
	} else if m == input.None {
		errs = append(errs, "selection.modifier must name a key")
	}
	if c.Selection.FlyDuration < 0 {
		errs = append(errs, "selection.fly_duration must not be negative")
	}
	if _, err := ParseColor(c.Selection.Color); err != nil {
		errs = append(errs, "selection.color: "+err.Error())
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return errors.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Modifier returns the parsed selection modifier. Call after Validate.
func (c *Config) Modifier() input.Modifier {
	m, _ := input.ParseModifier(c.Selection.Modifier)
	return m
}

// OverlayColor returns the parsed selection color. Call after Validate.
func (c *Config) OverlayColor() color.RGBA {
	col, _ := ParseColor(c.Selection.Color)
	return col
}

// ParseColor parses #RRGGBB or #RRGGBBAA. Alpha defaults to opaque.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	var r, g, b uint8
	a := uint8(255)
	var err error
	switch len(hex) {
	case 6:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	case 8:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a)
	default:
		return color.RGBA{}, errors.Errorf("color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "color %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

// Save writes cfg as YAML to path (DefaultPath when empty), creating the directory if needed.
func Save(cfg Config, path string) error {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config dir")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write config")
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	statusview "github.com/hakkabon/StatusView"
)

// Duration is a time.Duration that unmarshals from human-readable
// strings like "500ms", "5s" or "1m30s", or from integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '500ms', '5s', '1m30s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// MarshalYAML renders the duration as a human-readable string; the
// yaml package ignores encoding.TextMarshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the StatusView configuration, loaded from
// ~/.config/statusview/config.toml.
type Config struct {
	Banner    BannerConfig    `toml:"banner"`
	Animation AnimationConfig `toml:"animation"`
	Sound     SoundConfig     `toml:"sound"`
	Log       LogConfig       `toml:"log"`
}

// BannerConfig contains banner appearance and behavior settings.
type BannerConfig struct {
	Position      string   `toml:"position"`       // "top", "top-left", ...
	Width         float64  `toml:"width"`          // maximum banner width
	TextAlignment string   `toml:"text_alignment"` // "left", "center", "right"
	ImageLocation string   `toml:"image_location"` // "left" or "right"
	Opacity       float64  `toml:"opacity"`        // resting opacity, (0, 1]
	TapToDismiss  bool     `toml:"tap_to_dismiss"`
	Exit          string   `toml:"exit"`     // "dequeue", "pop", "slide"
	ShowFor       Duration `toml:"show_for"` // auto-hide delay, "0" disables
}

// AnimationConfig contains animation durations.
type AnimationConfig struct {
	FadeIn  Duration `toml:"fade_in"`
	FadeOut Duration `toml:"fade_out"`
	Show    Duration `toml:"show"`
	Hide    Duration `toml:"hide"`
}

// SoundConfig contains the notification sound cue settings.
type SoundConfig struct {
	Enabled bool   `toml:"enabled"`
	Volume  int    `toml:"volume"` // 0-100
	Path    string `toml:"path"`   // sound file, ~ expands to home
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// Default returns a Config with every field at its default value.
func Default() *Config {
	return &Config{
		Banner: BannerConfig{
			Position:      string(statusview.AnchorTop),
			Width:         statusview.DefaultWidth,
			TextAlignment: string(statusview.AlignCenter),
			ImageLocation: string(statusview.ImageLeft),
			Opacity:       statusview.DefaultOpacity,
			TapToDismiss:  true,
			Exit:          string(statusview.ExitDequeue),
			ShowFor:       Duration(statusview.DefaultShowFor),
		},
		Animation: AnimationConfig{
			FadeIn:  Duration(statusview.DefaultFadeIn),
			FadeOut: Duration(statusview.DefaultFadeOut),
			Show:    Duration(statusview.DefaultShowAnim),
			Hide:    Duration(statusview.DefaultHideAnim),
		},
		Sound: SoundConfig{
			Enabled: true,
			Volume:  80,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "statusview", "config.toml"), nil
}

// Load loads the configuration from the default path. A missing file
// yields the default configuration.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFile(path)
}

// LoadFile loads the configuration from an explicit path. A missing
// file yields the default configuration; file contents overlay the
// defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the default path atomically.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveFile(cfg, path)
}

// SaveFile writes the configuration to an explicit path atomically.
func SaveFile(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !statusview.Anchor(c.Banner.Position).Valid() {
		return fmt.Errorf("invalid position %q, must be one of: %v",
			c.Banner.Position, statusview.ValidAnchors())
	}
	if !statusview.ExitType(c.Banner.Exit).Valid() {
		return fmt.Errorf("invalid exit type %q, must be one of: dequeue, pop, slide", c.Banner.Exit)
	}

	switch statusview.Alignment(c.Banner.TextAlignment) {
	case statusview.AlignLeft, statusview.AlignCenter, statusview.AlignRight:
	default:
		return fmt.Errorf("invalid text alignment %q", c.Banner.TextAlignment)
	}
	switch statusview.ImageLocation(c.Banner.ImageLocation) {
	case statusview.ImageLeft, statusview.ImageRight:
	default:
		return fmt.Errorf("invalid image location %q", c.Banner.ImageLocation)
	}

	if c.Banner.Width < statusview.MinWidth || c.Banner.Width > 1000 {
		return fmt.Errorf("width must be between %v and 1000, got %v", statusview.MinWidth, c.Banner.Width)
	}
	if c.Banner.Opacity <= 0 || c.Banner.Opacity > 1 {
		return fmt.Errorf("opacity must be in (0, 1], got %v", c.Banner.Opacity)
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Sound.Volume)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	return nil
}

// Options maps the configuration onto banner display options.
func (c *Config) Options() statusview.Options {
	o := statusview.DefaultOptions()
	o.Position = statusview.Anchor(c.Banner.Position)
	o.Width = c.Banner.Width
	o.TextAlignment = statusview.Alignment(c.Banner.TextAlignment)
	o.ImageLocation = statusview.ImageLocation(c.Banner.ImageLocation)
	o.ViewOpacity = c.Banner.Opacity
	o.TapToDismiss = c.Banner.TapToDismiss
	o.ExitType = statusview.ExitType(c.Banner.Exit)
	o.SecondsToShow = c.Banner.ShowFor.Duration()
	o.FadeIn = c.Animation.FadeIn.Duration()
	o.FadeOut = c.Animation.FadeOut.Duration()
	o.ShowAnimation = c.Animation.Show.Duration()
	o.HideAnimation = c.Animation.Hide.Duration()
	if c.Sound.Enabled {
		o.SoundPath = SoundPath(c)
	}
	return o
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SoundPath returns the configured sound file path with ~ expanded.
func SoundPath(c *Config) string {
	return expandPath(c.Sound.Path)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Package config provides configuration management for corgi.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/viper"
	"github.com/xvierd/corgi-cli/internal/domain"
)

// EnvPrefix prefixes environment variables that override config keys,
// e.g. CORGI_TIMER_WORK_MINUTES.
const EnvPrefix = "CORGI"

// Config holds all configuration for the corgi application.
type Config struct {
	Timer   TimerConfig  `mapstructure:"timer" toml:"timer"`
	Motion  MotionConfig `mapstructure:"motion" toml:"motion"`
	Log     LogConfig    `mapstructure:"log" toml:"log"`
	Theme   ThemeConfig  `mapstructure:"theme" toml:"theme"`
	Presets []Preset     `mapstructure:"presets" toml:"presets"`
}

// TimerConfig holds the interval lengths used when no preset is chosen.
type TimerConfig struct {
	WorkMinutes  int    `mapstructure:"work_minutes" toml:"work_minutes"`
	BreakMinutes int    `mapstructure:"break_minutes" toml:"break_minutes"`
	Preset       string `mapstructure:"preset" toml:"preset"`
}

// MotionConfig controls the walking corgi.
type MotionConfig struct {
	Mode        string   `mapstructure:"mode" toml:"mode"`
	Frames      int      `mapstructure:"frames" toml:"frames"`
	TrackLength int      `mapstructure:"track_length" toml:"track_length"`
	FrameRate   Duration `mapstructure:"frame_rate" toml:"frame_rate"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
	File  string `mapstructure:"file" toml:"file"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorWork          string `mapstructure:"color_work" toml:"color_work"`
	ColorBreak         string `mapstructure:"color_break" toml:"color_break"`
	ColorStopped       string `mapstructure:"color_stopped" toml:"color_stopped"`
	ColorTitle         string `mapstructure:"color_title" toml:"color_title"`
	ColorTrack         string `mapstructure:"color_track" toml:"color_track"`
	ColorHelp          string `mapstructure:"color_help" toml:"color_help"`
	WorkGradientStart  string `mapstructure:"work_gradient_start" toml:"work_gradient_start"`
	WorkGradientEnd    string `mapstructure:"work_gradient_end" toml:"work_gradient_end"`
	BreakGradientStart string `mapstructure:"break_gradient_start" toml:"break_gradient_start"`
	BreakGradientEnd   string `mapstructure:"break_gradient_end" toml:"break_gradient_end"`
	IconApp            string `mapstructure:"icon_app" toml:"icon_app"`
	IconWalker         string `mapstructure:"icon_walker" toml:"icon_walker"`
	IconGoal           string `mapstructure:"icon_goal" toml:"icon_goal"`
	IconRest           string `mapstructure:"icon_rest" toml:"icon_rest"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorWork:          "#E8914F",
		ColorBreak:         "#4ECDC4",
		ColorStopped:       "#6B7280",
		ColorTitle:         "#6B7280",
		ColorTrack:         "#8B7355",
		ColorHelp:          "#95A5A6",
		WorkGradientStart:  "#E8914F",
		WorkGradientEnd:    "#F6C28B",
		BreakGradientStart: "#4ECDC4",
		BreakGradientEnd:   "#2ECC71",
		IconApp:            "🐕",
		IconWalker:         "🐕",
		IconGoal:           "🦴",
		IconRest:           "💤",
	}
}

// Preset is a named pair of interval lengths.
type Preset struct {
	Name         string `mapstructure:"name" toml:"name"`
	WorkMinutes  int    `mapstructure:"work_minutes" toml:"work_minutes"`
	BreakMinutes int    `mapstructure:"break_minutes" toml:"break_minutes"`
}

// Settings converts the preset to domain settings.
func (p Preset) Settings() domain.Settings {
	return domain.Settings{WorkMinutes: p.WorkMinutes, BreakMinutes: p.BreakMinutes}
}

// DefaultPresets returns the built-in presets.
func DefaultPresets() []Preset {
	return []Preset{
		{Name: "Classic", WorkMinutes: 25, BreakMinutes: 5},
		{Name: "Short", WorkMinutes: 15, BreakMinutes: 3},
		{Name: "Long", WorkMinutes: 50, BreakMinutes: 10},
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	defaults := domain.DefaultSettings()
	return &Config{
		Timer: TimerConfig{
			WorkMinutes:  defaults.WorkMinutes,
			BreakMinutes: defaults.BreakMinutes,
		},
		Motion: MotionConfig{
			Mode:        string(domain.MotionDiscrete),
			Frames:      100,
			TrackLength: 40,
			FrameRate:   Duration(100 * time.Millisecond),
		},
		Log: LogConfig{
			Level: "info",
		},
		Theme:   DefaultThemeConfig(),
		Presets: DefaultPresets(),
	}
}

// Load reads the configuration file at path, or the default path when
// path is empty. A missing file yields the defaults; CORGI_* environment
// variables override both.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(cfg.Presets) == 0 {
		cfg.Presets = DefaultPresets()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the timer cannot run with.
func (c *Config) Validate() error {
	if _, err := domain.ValidateMotionMode(c.Motion.Mode); err != nil {
		return err
	}
	if c.Motion.Frames <= 0 {
		return fmt.Errorf("motion.frames must be positive, got %d", c.Motion.Frames)
	}
	if c.Motion.TrackLength <= 0 {
		return fmt.Errorf("motion.track_length must be positive, got %d", c.Motion.TrackLength)
	}
	if c.Motion.FrameRate <= 0 {
		return fmt.Errorf("motion.frame_rate must be positive, got %s", c.Motion.FrameRate)
	}
	return nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// GetDataDir returns the directory holding the config file and debug log.
func GetDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".corgi"), nil
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("timer.work_minutes", defaults.Timer.WorkMinutes)
	v.SetDefault("timer.break_minutes", defaults.Timer.BreakMinutes)
	v.SetDefault("timer.preset", "")
	v.SetDefault("motion.mode", defaults.Motion.Mode)
	v.SetDefault("motion.frames", defaults.Motion.Frames)
	v.SetDefault("motion.track_length", defaults.Motion.TrackLength)
	v.SetDefault("motion.frame_rate", defaults.Motion.FrameRate.String())
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", "")

	theme := defaults.Theme
	v.SetDefault("theme.color_work", theme.ColorWork)
	v.SetDefault("theme.color_break", theme.ColorBreak)
	v.SetDefault("theme.color_stopped", theme.ColorStopped)
	v.SetDefault("theme.color_title", theme.ColorTitle)
	v.SetDefault("theme.color_track", theme.ColorTrack)
	v.SetDefault("theme.color_help", theme.ColorHelp)
	v.SetDefault("theme.work_gradient_start", theme.WorkGradientStart)
	v.SetDefault("theme.work_gradient_end", theme.WorkGradientEnd)
	v.SetDefault("theme.break_gradient_start", theme.BreakGradientStart)
	v.SetDefault("theme.break_gradient_end", theme.BreakGradientEnd)
	v.SetDefault("theme.icon_app", theme.IconApp)
	v.SetDefault("theme.icon_walker", theme.IconWalker)
	v.SetDefault("theme.icon_goal", theme.IconGoal)
	v.SetDefault("theme.icon_rest", theme.IconRest)
}

// Settings returns the interval lengths to start with: the configured
// preset when one is named, otherwise the timer section.
func (c *Config) Settings() (domain.Settings, error) {
	if c.Timer.Preset != "" {
		p, err := c.FindPreset(c.Timer.Preset)
		if err != nil {
			return domain.Settings{}, err
		}
		return p.Settings(), nil
	}
	return domain.Settings{
		WorkMinutes:  c.Timer.WorkMinutes,
		BreakMinutes: c.Timer.BreakMinutes,
	}, nil
}

// MotionMode returns the validated motion mode.
func (c *Config) MotionMode() domain.MotionMode {
	m, err := domain.ValidateMotionMode(c.Motion.Mode)
	if err != nil {
		return domain.MotionDiscrete
	}
	return m
}

// FindPreset resolves a preset by name. An exact case-insensitive match
// wins; otherwise the best fuzzy match is used.
func (c *Config) FindPreset(query string) (Preset, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return Preset{}, fmt.Errorf("%w: empty name", domain.ErrUnknownPreset)
	}

	names := make([]string, len(c.Presets))
	for i, p := range c.Presets {
		if strings.EqualFold(p.Name, q) {
			return p, nil
		}
		names[i] = strings.ToLower(p.Name)
	}

	matches := fuzzy.Find(strings.ToLower(q), names)
	if len(matches) == 0 {
		return Preset{}, fmt.Errorf("%w %q", domain.ErrUnknownPreset, query)
	}
	return c.Presets[matches[0].Index], nil
}

// Encode writes the configuration as TOML in the layout Load reads.
func (c *Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

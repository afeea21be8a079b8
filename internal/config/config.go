// Package config loads lou-fretboard settings from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chase3718/lou-fretboard/internal/fretboard"
	"github.com/chase3718/lou-fretboard/internal/synth"
)

// Config holds all settings.
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Audio    AudioConfig    `yaml:"audio"`
	MIDI     MIDIConfig     `yaml:"midi"`
	Robot    RobotConfig    `yaml:"robot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DefaultsConfig is the initial fretboard view.
type DefaultsConfig struct {
	Root      string `yaml:"root"`
	Scale     string `yaml:"scale"`
	Highlight string `yaml:"highlight"`
	Spelling  string `yaml:"spelling"`
	Frets     int    `yaml:"frets"`
}

// AudioConfig controls the built-in synth.
type AudioConfig struct {
	Enabled    bool   `yaml:"enabled"`
	SampleRate int    `yaml:"sample_rate"`
	Duration   string `yaml:"duration"`
}

// MIDIConfig controls the MIDI output watcher.
type MIDIConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Channel   int      `yaml:"channel"`
	Velocity  int      `yaml:"velocity"`
	Preferred []string `yaml:"preferred"`
	Excluded  []string `yaml:"excluded"`
}

// RobotConfig controls the serial robot link.
type RobotConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Device   string `yaml:"device"`
	Baud     int    `yaml:"baud"`
	MaxFret  int    `yaml:"max_fret"`
	Duration int    `yaml:"duration"`
}

// LoggingConfig mirrors the --debug and --log-file flags.
type LoggingConfig struct {
	Debug bool   `yaml:"debug"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Root:     "C",
			Scale:    string(fretboard.Major),
			Spelling: string(fretboard.SpellFretted),
			Frets:    fretboard.MaxFret,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Duration:   "4n",
		},
		MIDI: MIDIConfig{
			Velocity: 100,
			Excluded: []string{"Midi Through", "Through Port", "Dummy"},
		},
		Robot: RobotConfig{
			Device:   "/dev/ttyACM0",
			Baud:     115200,
			MaxFret:  11,
			Duration: 20,
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/lou-fretboard/config.yaml, or empty when
// no config directory can be found.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "lou-fretboard", "config.yaml")
}

// Load reads path over the defaults. A missing file yields the defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.Defaults.Root = fretboard.NormalizeRoot(cfg.Defaults.Root)
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LOU_FRETBOARD_ROOT"); v != "" {
		c.Defaults.Root = fretboard.NormalizeRoot(v)
	}
	if v := os.Getenv("LOU_FRETBOARD_SCALE"); v != "" {
		c.Defaults.Scale = v
	}
	if v := os.Getenv("LOU_FRETBOARD_SERIAL"); v != "" {
		c.Robot.Device = v
		c.Robot.Enabled = true
	}
	if v := os.Getenv("LOU_FRETBOARD_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.Debug = b
		}
	}
}

// Validate checks the closed enumerations and numeric ranges.
func (c *Config) Validate() error {
	if !fretboard.ValidRoot(c.Defaults.Root) {
		return fmt.Errorf("defaults.root: %w: %q (valid: %s)", fretboard.ErrUnknownRoot, c.Defaults.Root, strings.Join(fretboard.Roots[:], " "))
	}
	if _, err := fretboard.ParseScaleType(c.Defaults.Scale); err != nil {
		return fmt.Errorf("defaults.scale: %w", err)
	}
	if !fretboard.ValidHighlight(c.Defaults.Highlight) {
		return fmt.Errorf("defaults.highlight: %w: %q", fretboard.ErrUnknownHighlight, c.Defaults.Highlight)
	}
	if _, err := fretboard.ParseSpelling(c.Defaults.Spelling); err != nil {
		return fmt.Errorf("defaults.spelling: %w", err)
	}
	if c.Defaults.Frets < 0 || c.Defaults.Frets > fretboard.MaxFret {
		return fmt.Errorf("defaults.frets must be within 0..%d", fretboard.MaxFret)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be positive")
	}
	if _, err := synth.ParseDuration(c.Audio.Duration, synth.DefaultBPM); err != nil {
		return fmt.Errorf("audio.duration: %w", err)
	}
	if c.MIDI.Channel < 0 || c.MIDI.Channel > 15 {
		return fmt.Errorf("midi.channel must be within 0..15")
	}
	if c.MIDI.Velocity < 1 || c.MIDI.Velocity > 127 {
		return fmt.Errorf("midi.velocity must be within 1..127")
	}
	if c.Robot.Enabled && c.Robot.Device == "" {
		return fmt.Errorf("robot.device is required when the robot is enabled")
	}
	if c.Robot.Baud <= 0 {
		return fmt.Errorf("robot.baud must be positive")
	}
	if c.Robot.MaxFret < 1 || c.Robot.MaxFret > fretboard.MaxFret {
		return fmt.Errorf("robot.max_fret must be within 1..%d", fretboard.MaxFret)
	}
	if c.Robot.Duration < 1 || c.Robot.Duration > 255 {
		return fmt.Errorf("robot.duration must be within 1..255")
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chase3718/lou-fretboard/internal/fretboard"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "C", cfg.Defaults.Root)
	assert.Equal(t, "major", cfg.Defaults.Scale)
	assert.Equal(t, fretboard.MaxFret, cfg.Defaults.Frets)
	assert.True(t, cfg.Audio.Enabled)
	assert.False(t, cfg.MIDI.Enabled)
	assert.False(t, cfg.Robot.Enabled)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
defaults:
  root: A
  scale: Minor Pentatonic
  highlight: "3"
midi:
  enabled: true
  channel: 3
  preferred: [FluidSynth]
robot:
  max_fret: 9
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "A", cfg.Defaults.Root)
	assert.Equal(t, "Minor Pentatonic", cfg.Defaults.Scale)
	assert.Equal(t, "3", cfg.Defaults.Highlight)
	assert.Equal(t, fretboard.MaxFret, cfg.Defaults.Frets, "unset fields keep defaults")
	assert.True(t, cfg.MIDI.Enabled)
	assert.Equal(t, 3, cfg.MIDI.Channel)
	assert.Equal(t, 100, cfg.MIDI.Velocity)
	assert.Equal(t, []string{"FluidSynth"}, cfg.MIDI.Preferred)
	assert.Equal(t, 9, cfg.Robot.MaxFret)
	assert.Equal(t, 115200, cfg.Robot.Baud)
}

func TestLoad_ParseError(t *testing.T) {
	_, err := Load(writeConfig(t, "defaults: [unclosed"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LOU_FRETBOARD_ROOT", "F#")
	t.Setenv("LOU_FRETBOARD_SCALE", "dorian")
	t.Setenv("LOU_FRETBOARD_SERIAL", "/dev/ttyUSB1")
	t.Setenv("LOU_FRETBOARD_DEBUG", "true")

	cfg, err := Load(writeConfig(t, "defaults:\n  root: A\n"))
	require.NoError(t, err)
	assert.Equal(t, "F#", cfg.Defaults.Root)
	assert.Equal(t, "dorian", cfg.Defaults.Scale)
	assert.Equal(t, "/dev/ttyUSB1", cfg.Robot.Device)
	assert.True(t, cfg.Robot.Enabled)
	assert.True(t, cfg.Logging.Debug)
}

func TestRootCaseInsensitive(t *testing.T) {
	t.Setenv("LOU_FRETBOARD_ROOT", "a#")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "A#", cfg.Defaults.Root)
	assert.NoError(t, cfg.Validate())

	t.Setenv("LOU_FRETBOARD_ROOT", "")
	cfg, err = Load(writeConfig(t, "defaults:\n  root: f#\n"))
	require.NoError(t, err)
	assert.Equal(t, "F#", cfg.Defaults.Root)
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverrides_BadBoolIgnored(t *testing.T) {
	t.Setenv("LOU_FRETBOARD_DEBUG", "loud")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Logging.Debug)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		is     error
	}{
		{"flat root", func(c *Config) { c.Defaults.Root = "Bb" }, fretboard.ErrUnknownRoot},
		{"scale", func(c *Config) { c.Defaults.Scale = "bebop" }, fretboard.ErrUnknownScale},
		{"highlight", func(c *Config) { c.Defaults.Highlight = "9" }, fretboard.ErrUnknownHighlight},
		{"spelling", func(c *Config) { c.Defaults.Spelling = "enharmonic" }, nil},
		{"frets", func(c *Config) { c.Defaults.Frets = 16 }, nil},
		{"duration", func(c *Config) { c.Audio.Duration = "3n" }, nil},
		{"channel", func(c *Config) { c.MIDI.Channel = 16 }, nil},
		{"velocity", func(c *Config) { c.MIDI.Velocity = 0 }, nil},
		{"robot device", func(c *Config) { c.Robot.Enabled, c.Robot.Device = true, "" }, nil},
		{"robot frets", func(c *Config) { c.Robot.MaxFret = 0 }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Defaults.Root = "G"
	cfg.MIDI.Preferred = []string{"Launchkey"}
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Penalty mode names
const (
	ModeScore   = "score"
	ModeDefense = "defense"
)

// Config is the runtime configuration of a deployment
type Config struct {
	Mode   string      `toml:"mode"`
	Seed   uint64      `toml:"seed"`
	Field  FieldConfig `toml:"field"`
	Levels []LevelSpec `toml:"levels"`
	Audio  AudioConfig `toml:"audio"`
	HUD    HUDConfig   `toml:"hud"`
}

// FieldConfig sizes the play field in pixels
// Terminal frontends derive the size from the screen and use only the cell scale
type FieldConfig struct {
	Width      int `toml:"width"`
	Height     int `toml:"height"`
	CellWidth  int `toml:"cell_width"`
	CellHeight int `toml:"cell_height"`
}

// AudioConfig controls the sound manager
type AudioConfig struct {
	Enabled      bool    `toml:"enabled"`
	MasterVolume float64 `toml:"master_volume"`
	MusicVolume  float64 `toml:"music_volume"`
	SampleRate   int     `toml:"sample_rate"`
}

// HUDConfig controls the spectator scoreboard feed; empty Addr disables it
type HUDConfig struct {
	Addr     string        `toml:"addr"`
	Interval time.Duration `toml:"interval"`
}

// Default returns the defense deployment with the stock level table
func Default() *Config {
	return &Config{
		Mode: ModeDefense,
		Field: FieldConfig{
			Width:      800,
			Height:     600,
			CellWidth:  8,
			CellHeight: 16,
		},
		Levels: DefaultLevels(),
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.5,
			MusicVolume:  0.3,
			SampleRate:   44100,
		},
		HUD: HUDConfig{
			Interval: 250 * time.Millisecond,
		},
	}
}

// Load builds the configuration: defaults, then the TOML file when path is set, then env overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		var file Config
		md, err := toml.DecodeFile(path, &file)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg.merge(&file, md)
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// merge copies keys present in the file over the defaults
func (c *Config) merge(file *Config, md toml.MetaData) {
	if md.IsDefined("mode") {
		c.Mode = file.Mode
	}
	if md.IsDefined("seed") {
		c.Seed = file.Seed
	}
	if md.IsDefined("levels") {
		c.Levels = file.Levels
	}
	if md.IsDefined("field", "width") {
		c.Field.Width = file.Field.Width
	}
	if md.IsDefined("field", "height") {
		c.Field.Height = file.Field.Height
	}
	if md.IsDefined("field", "cell_width") {
		c.Field.CellWidth = file.Field.CellWidth
	}
	if md.IsDefined("field", "cell_height") {
		c.Field.CellHeight = file.Field.CellHeight
	}
	if md.IsDefined("audio", "enabled") {
		c.Audio.Enabled = file.Audio.Enabled
	}
	if md.IsDefined("audio", "master_volume") {
		c.Audio.MasterVolume = file.Audio.MasterVolume
	}
	if md.IsDefined("audio", "music_volume") {
		c.Audio.MusicVolume = file.Audio.MusicVolume
	}
	if md.IsDefined("audio", "sample_rate") {
		c.Audio.SampleRate = file.Audio.SampleRate
	}
	if md.IsDefined("hud", "addr") {
		c.HUD.Addr = file.HUD.Addr
	}
	if md.IsDefined("hud", "interval") {
		c.HUD.Interval = file.HUD.Interval
	}
}

// ApplyEnv overrides fields from MATHFALL_* variables; malformed values are ignored
func (c *Config) ApplyEnv() {
	if mode := os.Getenv("MATHFALL_MODE"); mode != "" {
		c.Mode = strings.ToLower(mode)
	}

	if enabled := os.Getenv("MATHFALL_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			c.Audio.Enabled = val
		}
	}

	// Volume is 0-100
	if volume := os.Getenv("MATHFALL_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			c.Audio.MasterVolume = float64(val) / 100.0
			if c.Audio.MasterVolume < 0 {
				c.Audio.MasterVolume = 0
			}
			if c.Audio.MasterVolume > 1 {
				c.Audio.MasterVolume = 1
			}
		}
	}

	if addr, ok := os.LookupEnv("MATHFALL_HUD_ADDR"); ok {
		c.HUD.Addr = addr
	}

	if seed := os.Getenv("MATHFALL_SEED"); seed != "" {
		if val, err := strconv.ParseUint(seed, 10, 64); err == nil {
			c.Seed = val
		}
	}
}

// Validate reports the first inconsistency
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeScore, ModeDefense:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}

	if _, err := NewLevelTable(c.Levels); err != nil {
		return fmt.Errorf("levels: %w", err)
	}

	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return errors.New("field size must be positive")
	}
	if c.Field.CellWidth <= 0 || c.Field.CellHeight <= 0 {
		return errors.New("cell size must be positive")
	}

	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return fmt.Errorf("master volume %.2f outside 0-1", c.Audio.MasterVolume)
	}
	if c.Audio.MusicVolume < 0 || c.Audio.MusicVolume > 1 {
		return fmt.Errorf("music volume %.2f outside 0-1", c.Audio.MusicVolume)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("sample rate %d must be positive", c.Audio.SampleRate)
	}

	if c.HUD.Addr != "" && c.HUD.Interval <= 0 {
		return errors.New("hud interval must be positive")
	}
	return nil
}

// LevelTable returns the validated level table
func (c *Config) LevelTable() LevelTable {
	t, err := NewLevelTable(c.Levels)
	if err != nil {
		panic(fmt.Sprintf("config: level table not validated: %v", err))
	}
	return t
}

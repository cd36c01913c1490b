package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vancomm/quantum-mines/internal/circuit"
	"github.com/vancomm/quantum-mines/internal/mines"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil

	default:
		return errors.New("invalid duration")
	}
}

// [Duration] implements [yaml.Unmarshaler]
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

type LogConfig struct {
	Level      string `json:"level" yaml:"level"`
	File       string `json:"file" yaml:"file"`
	MaxSizeMB  int    `json:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
}

type GameConfig struct {
	Width      int    `json:"width" yaml:"width"`
	Height     int    `json:"height" yaml:"height"`
	MineCount  int    `json:"mine_count" yaml:"mine_count"`
	Difficulty string `json:"difficulty" yaml:"difficulty"`
}

type Config struct {
	Mode            string     `json:"mode" yaml:"mode"`
	Addr            string     `json:"addr" yaml:"addr"`
	AllowedOrigins  []string   `json:"allowed_origins" yaml:"allowed_origins"`
	ShutdownTimeout Duration   `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	Log             LogConfig  `json:"log" yaml:"log"`
	Game            GameConfig `json:"game" yaml:"game"`
}

// Default is a beginner-sized researcher game served on APP_PORT.
func Default() Config {
	mode := "production"
	if Development() {
		mode = "development"
	}
	return Config{
		Mode:            mode,
		Addr:            ":" + Port(),
		ShutdownTimeout: Duration{5 * time.Second},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Game: GameConfig{
			Width:      9,
			Height:     9,
			MineCount:  10,
			Difficulty: string(circuit.Researcher),
		},
	}
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":             c.Mode,
		"addr":             c.Addr,
		"allowed_origins":  strings.Join(c.AllowedOrigins, ","),
		"shutdown_timeout": c.ShutdownTimeout.Duration.String(),
		"log_level":        c.Log.Level,
		"log_file":         c.Log.File,
		"game_width":       c.Game.Width,
		"game_height":      c.Game.Height,
		"game_mine_count":  c.Game.MineCount,
		"game_difficulty":  c.Game.Difficulty,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

// LogLevel is the configured level, or debug in development when none is
// set.
func (c Config) LogLevel() (logrus.Level, error) {
	if c.Log.Level == "" {
		if c.Development() {
			return logrus.DebugLevel, nil
		}
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(c.Log.Level)
}

func (c Config) Validate() error {
	var errs []error
	if c.Game.Width < 1 || c.Game.Height < 1 || c.Game.Width > mines.MaxCells/c.Game.Height {
		errs = append(errs, fmt.Errorf("%w: %dx%d", mines.ErrInvalidDimensions, c.Game.Width, c.Game.Height))
	}
	if c.Game.MineCount < 0 {
		errs = append(errs, fmt.Errorf("mine_count must not be negative, got %d", c.Game.MineCount))
	}
	if !circuit.Difficulty(c.Game.Difficulty).Valid() {
		errs = append(errs, fmt.Errorf("unknown difficulty %q", c.Game.Difficulty))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.ShutdownTimeout.Duration < 0 {
		errs = append(errs, fmt.Errorf("shutdown_timeout must not be negative"))
	}
	return errors.Join(errs...)
}

// Params turns the game section into grid parameters with the given seed.
func (c Config) Params(seed uint64) mines.Params {
	return mines.Params{
		Width:      c.Game.Width,
		Height:     c.Game.Height,
		MineCount:  c.Game.MineCount,
		Seed:       seed,
		Difficulty: c.Game.Difficulty,
	}
}

// ReadConfig overlays the file at path onto config. Files ending in .yaml or
// .yml are read as YAML, anything else as JSON.
func ReadConfig(path string, config *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, config)
	default:
		err = json.Unmarshal(b, config)
	}
	if err != nil {
		return fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	return nil
}

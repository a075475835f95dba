// Package config loads the oodakit CLI configuration: built-in defaults,
// overlaid by ~/.oodakit/config.yaml, overlaid by OODAKIT_* variables.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/oodakit/internal/format"
	"github.com/ppiankov/oodakit/internal/logging"
	"github.com/ppiankov/oodakit/internal/model"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfig    = "OODAKIT_CONFIG"
	EnvLogLevel  = "OODAKIT_LOG_LEVEL"
	EnvLogFormat = "OODAKIT_LOG_FORMAT"
	EnvArchive   = "OODAKIT_ARCHIVE"
	EnvJournal   = "OODAKIT_JOURNAL"
)

// ErrInvalid is wrapped by Validate.
var ErrInvalid = errors.New("invalid config")

// LogConfig selects the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// GameConfig holds defaults for new games.
type GameConfig struct {
	Posture      string        `yaml:"posture"`
	Monotonic    bool          `yaml:"monotonic"`
	TurnInterval time.Duration `yaml:"turn_interval"`
}

// RenderConfig controls terminal tables and the dashboard watcher.
type RenderConfig struct {
	Table    string        `yaml:"table"`
	Debounce time.Duration `yaml:"debounce"`
}

// Config is the full CLI configuration.
type Config struct {
	Log      LogConfig    `yaml:"log"`
	Registry string       `yaml:"registry"`
	Archive  string       `yaml:"archive"`
	Journal  string       `yaml:"journal"`
	Game     GameConfig   `yaml:"game"`
	Render   RenderConfig `yaml:"render"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-"`
	// Hash is "sha256:<hex>" of the raw file, or of empty input.
	Hash string `yaml:"-"`
}

// Dir returns ~/.oodakit, or .oodakit when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".oodakit"
	}
	return filepath.Join(home, ".oodakit")
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the built-in configuration.
func Default() *Config {
	dir := Dir()
	h := sha256.Sum256(nil)
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Archive: filepath.Join(dir, "archive.db"),
		Journal: filepath.Join(dir, "journal.jsonl"),
		Game: GameConfig{
			Posture:      model.Peacetime.String(),
			TurnInterval: 4 * time.Hour,
		},
		Render: RenderConfig{
			Table:    "ascii",
			Debounce: 200 * time.Millisecond,
		},
		Hash: "sha256:" + hex.EncodeToString(h[:]),
	}
}

// Load reads configuration from path. Empty path falls back to
// $OODAKIT_CONFIG, then DefaultPath. A missing file returns defaults;
// invalid YAML returns an error. Environment overrides are not applied.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Fields absent from the file keep their defaults.
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	h := sha256.Sum256(data)
	cfg.Source = path
	cfg.Hash = "sha256:" + hex.EncodeToString(h[:])
	return cfg, nil
}

// ApplyEnv overlays OODAKIT_* variables read through getenv. Unset or empty
// variables leave the field alone.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Log.Level, EnvLogLevel)
	set(&c.Log.Format, EnvLogFormat)
	set(&c.Archive, EnvArchive)
	set(&c.Journal, EnvJournal)
}

// Validate checks values that are otherwise only caught at first use.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	if _, err := model.ParseROEPosture(c.Game.Posture); err != nil {
		return fmt.Errorf("%w: game.posture: %v", ErrInvalid, err)
	}
	if c.Game.TurnInterval <= 0 {
		return fmt.Errorf("%w: game.turn_interval must be positive", ErrInvalid)
	}
	switch c.Render.Table {
	case "ascii", "md", "markdown":
	default:
		return fmt.Errorf("%w: render.table %q", ErrInvalid, c.Render.Table)
	}
	if c.Render.Debounce < 0 {
		return fmt.Errorf("%w: render.debounce must not be negative", ErrInvalid)
	}
	return nil
}

// Posture returns the configured default posture. Call Validate first.
func (c *Config) Posture() model.ROEPostureName {
	p, err := model.ParseROEPosture(c.Game.Posture)
	if err != nil {
		return model.Peacetime
	}
	return p
}

// TableMode returns the configured table mode.
func (c *Config) TableMode() format.Mode {
	return format.ParseMode(c.Render.Table)
}

// Resolve loads the full configuration: file, then environment, then
// validation.
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

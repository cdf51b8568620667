// Package config loads runtime settings from the environment and optional
// .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every environment variable name
const Prefix = "DOUBLESTATE_"

// MaxTPS bounds the tick rate to something a frame loop can keep up with
const MaxTPS = 1000

// ErrParsingConfig is returned when environment variables cannot be parsed into Config
var ErrParsingConfig = errors.New("failed to parse environment variables into config")

// Config holds the host settings
type Config struct {
	WindowWidth  int    `env:"WINDOW_WIDTH" envDefault:"1280"`
	WindowHeight int    `env:"WINDOW_HEIGHT" envDefault:"720"`
	WindowTitle  string `env:"WINDOW_TITLE" envDefault:"Double State"`

	// Ticks per second for both the window and the headless loop
	TPS int `env:"TPS" envDefault:"60"`

	PlayerSpeed float64 `env:"PLAYER_SPEED" envDefault:"4"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Optional declaration file replacing the embedded game mode table
	StatesFile string `env:"STATES_FILE"`
}

// Load reads .env files (missing files are skipped) and then parses the
// environment. Variables already set in the process win over file values.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges the environment parser cannot express
func (c Config) Validate() error {
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight)
	}
	if c.TPS <= 0 || c.TPS > MaxTPS {
		return fmt.Errorf("tps must be between 1 and %d, got %d", MaxTPS, c.TPS)
	}
	if c.PlayerSpeed <= 0 {
		return fmt.Errorf("player speed must be positive, got %v", c.PlayerSpeed)
	}
	return nil
}

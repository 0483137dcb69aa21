// Package config loads game settings from the environment and command-line
// flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/plus3/tetris/engine"
)

// Config holds the settings shared by every command.
type Config struct {
	BoardWidth     int           `env:"TETRIS_BOARD_WIDTH" envDefault:"10"`
	BoardHeight    int           `env:"TETRIS_BOARD_HEIGHT" envDefault:"20"`
	NextPieces     int           `env:"TETRIS_NEXT_PIECES" envDefault:"4"`
	Seed           uint64        `env:"TETRIS_SEED" envDefault:"0"`
	DBPath         string        `env:"TETRIS_DB_PATH"`
	PersistTimeout time.Duration `env:"TETRIS_PERSIST_TIMEOUT" envDefault:"2s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Parse loads Config from the environment, then applies flag overrides
// registered on fs. Callers may register their own flags on fs first.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.IntVar(&cfg.BoardWidth, "width", cfg.BoardWidth, "Board width in cells")
	fs.IntVar(&cfg.BoardHeight, "height", cfg.BoardHeight, "Board height in cells")
	fs.IntVar(&cfg.NextPieces, "next", cfg.NextPieces, "Length of the next-piece queue")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Piece seed, 0 for random")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path, empty for in-memory storage")
	fs.DurationVar(&cfg.PersistTimeout, "persist-timeout", cfg.PersistTimeout, "Timeout for store calls made by the engine")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings the engine would reject.
func (c Config) Validate() error {
	if c.BoardWidth < engine.MinBoardWidth || c.BoardHeight < engine.MinBoardHeight {
		return fmt.Errorf("board must be at least %dx%d, got %dx%d",
			engine.MinBoardWidth, engine.MinBoardHeight, c.BoardWidth, c.BoardHeight)
	}
	if c.NextPieces < 1 {
		return fmt.Errorf("next pieces must be at least 1, got %d", c.NextPieces)
	}
	if c.PersistTimeout <= 0 {
		return fmt.Errorf("persist timeout must be positive, got %s", c.PersistTimeout)
	}
	return nil
}

// EngineOptions converts the settings into engine options.
func (c Config) EngineOptions() []engine.Option {
	opts := []engine.Option{
		engine.WithBoardSize(c.BoardWidth, c.BoardHeight),
		engine.WithNextPieces(c.NextPieces),
		engine.WithPersistTimeout(c.PersistTimeout),
	}
	if c.Seed != 0 {
		opts = append(opts, engine.WithSeed(c.Seed))
	}
	return opts
}

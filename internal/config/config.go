// Package config reads keysynth and keyprobe defaults from the environment.
//
// A .env file in the working directory is loaded first when present.
// Variables already set in the process environment take precedence over it.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KromDaniel/keysynth/internal/synth"
)

var (
	// ErrLoadingEnvFile is returned when an explicitly named .env file cannot be read.
	ErrLoadingEnvFile = errors.New("failed to load env file")

	// ErrParsingConfig is returned when environment variables cannot be parsed into Config.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidConfig is returned when parsed values are out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds the defaults both CLIs start from. Flags override them.
type Config struct {
	Count        int                `env:"KEYSYNTH_COUNT" envDefault:"100"`
	Seed         uint64             `env:"KEYSYNTH_SEED" envDefault:"223554"`
	Distribution synth.Distribution `env:"KEYSYNTH_DISTRIBUTION" envDefault:"uniform"`
	Verbose      bool               `env:"KEYSYNTH_VERBOSE" envDefault:"false"`

	Hashes     []string `env:"KEYPROBE_HASHES" envSeparator:"," envDefault:"xxh3,xxhash,murmur3,fnv1a"`
	BucketBits int      `env:"KEYPROBE_BUCKET_BITS" envDefault:"16"`
}

// Load parses the environment into a Config. With no paths it loads ./.env
// if it exists; named paths must exist.
func Load(paths ...string) (Config, error) {
	if len(paths) == 0 {
		// Ignore errors - the .env file might not exist and that's ok
		_ = godotenv.Load()
	} else if err := godotenv.Load(paths...); err != nil {
		return Config{}, errors.Join(ErrLoadingEnvFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges env tags cannot express.
func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("%w: KEYSYNTH_COUNT must not be negative, got %d", ErrInvalidConfig, c.Count)
	}
	if c.BucketBits < 0 {
		return fmt.Errorf("%w: KEYPROBE_BUCKET_BITS must not be negative, got %d", ErrInvalidConfig, c.BucketBits)
	}
	return nil
}

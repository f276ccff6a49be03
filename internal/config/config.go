package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// TokenEnv is the environment variable holding the bot token.
const TokenEnv = "BOT_TOKEN"

// ErrNoToken is returned by Load when TokenEnv is unset or empty.
var ErrNoToken = errors.New("save your token in the " + TokenEnv + " env variable!")

type Config struct {
	DiscordToken string `env:"BOT_TOKEN"`

	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"!"`
	SongsDir      string `env:"SONGS_DIR" envDefault:"songs"`
	AudioExt      string `env:"AUDIO_EXT" envDefault:".mp3"`
	FFmpegPath    string `env:"FFMPEG_PATH" envDefault:"ffmpeg"`

	StoragePath string `env:"STORAGE_PATH" envDefault:"datastore.json"`

	LogFile       string `env:"LOG_FILE"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"10"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"30"`

	// CommandRate is the sustained number of commands per second a single
	// user may issue; CommandBurst is how many may arrive at once. A rate of
	// zero turns the limit off.
	CommandRate  float64 `env:"COMMAND_RATE" envDefault:"0"`
	CommandBurst int     `env:"COMMAND_BURST" envDefault:"5"`
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment. It reports whether a file was found; variables already set
// in the environment win.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Load parses the configuration from the environment. A missing token yields
// ErrNoToken together with the rest of the parsed configuration.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.DiscordToken == "" {
		return &cfg, ErrNoToken
	}
	if cfg.CommandPrefix == "" {
		return nil, errors.New("COMMAND_PREFIX must not be empty")
	}
	return &cfg, nil
}

package main

import (
	"errors"
	"os"

	"github.com/keshon/voicebot/internal/config"
	"github.com/keshon/voicebot/internal/discord"
	"github.com/keshon/voicebot/internal/docs"
	"github.com/keshon/voicebot/internal/logger"
)

// Regenerates README.md from README.md.tmpl and the registered commands.
// Run from the repository root; no token or connection is needed.
func main() {
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrNoToken) {
		logger.Errorf("Invalid configuration: %v", err)
		os.Exit(1)
	}

	bot, err := discord.NewBot(cfg, nil)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	if err := docs.UpdateReadme(".", cfg.CommandPrefix, bot.Registry()); err != nil {
		logger.Errorf("Failed to update README: %v", err)
		os.Exit(1)
	}
}

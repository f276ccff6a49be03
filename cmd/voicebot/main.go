// cmd/voicebot/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/keshon/voicebot/internal/config"
	"github.com/keshon/voicebot/internal/discord"
	"github.com/keshon/voicebot/internal/logger"
	"github.com/keshon/voicebot/internal/storage"
)

// exitNoToken is the status used when no bot token is configured.
const exitNoToken = 255

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoToken) {
		logger.Log(err.Error(), logger.LevelError)
		os.Exit(exitNoToken)
	}
	if err != nil {
		logger.Errorf("Invalid configuration: %v", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(logger.Options{
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	defer log.Close()
	logger.SetDefault(log)

	if err := run(cfg); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	logger.Infof("Discord bot exited cleanly")
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.New(ctx, cfg.StoragePath)
	if err != nil {
		return err
	}
	defer func() {
		cancel()
		if err := store.Close(); err != nil {
			logger.Warningf("Failed to save datastore: %v", err)
		}
	}()

	bot, err := discord.NewBot(cfg, store)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Infof("Received signal %s, shutting down...", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	// Wait for Run to disconnect voice and close the session.
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/voicebot/internal/command"
	"github.com/keshon/voicebot/internal/config"
	"github.com/keshon/voicebot/internal/logger"
	"github.com/keshon/voicebot/internal/music/library"
	"github.com/keshon/voicebot/internal/music/player"
	"github.com/keshon/voicebot/internal/music/stream"
	"github.com/keshon/voicebot/internal/storage"
	"github.com/keshon/voicebot/internal/voice"
	"github.com/keshon/voicebot/pkg/cmd"
	"github.com/keshon/voicebot/pkg/ratelimit"
)

// Bot is a Discord bot
type Bot struct {
	dg         *discordgo.Session
	cfg        *config.Config
	storage    *storage.Storage
	dialer     voice.Dialer
	voice      *voice.Manager
	library    *library.Library
	limiter    *ratelimit.Keyed
	registry   *cmd.Registry
	dispatcher *command.Dispatcher
	ctx        context.Context
}

// Option customizes a Bot.
type Option func(*Bot)

// WithSession uses dg instead of creating a session from the configured token.
func WithSession(dg *discordgo.Session) Option {
	return func(b *Bot) { b.dg = dg }
}

// WithDialer replaces the voice dialer.
func WithDialer(d voice.Dialer) Option {
	return func(b *Bot) { b.dialer = d }
}

// NewBot builds a bot and registers its commands and event handlers. It does
// not connect; see Run. store may be nil to disable command history.
func NewBot(cfg *config.Config, store *storage.Storage, opts ...Option) (*Bot, error) {
	b := &Bot{
		cfg:     cfg,
		storage: store,
		library: library.New(cfg.SongsDir, cfg.AudioExt),
		ctx:     context.Background(),
	}
	if cfg.CommandRate > 0 {
		b.limiter = ratelimit.New(cfg.CommandRate, cfg.CommandBurst)
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.dg == nil {
		dg, err := discordgo.New("Bot " + cfg.DiscordToken)
		if err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		b.dg = dg
	}
	if b.dialer == nil {
		b.dialer = voice.SessionDialer{Session: b.dg}
	}

	decoder := &stream.FFmpeg{Path: cfg.FFmpegPath}
	b.voice = voice.NewManager(b.dialer, func() *player.Player {
		return player.New(decoder)
	})

	b.registry = b.registerCommands()
	b.dispatcher = &command.Dispatcher{Prefix: cfg.CommandPrefix, Registry: b.registry}

	b.configureIntents()
	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onMessageCreate)
	b.dg.AddHandler(b.onVoiceStateUpdate)

	return b, nil
}

// Run connects to Discord and serves events until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	logger.Infof("Shutdown signal received. Cleaning up...")
	b.voice.DisconnectAll()
	return nil
}

// configureIntents configures the Discord intents
func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsAll
}

// onReady is called when the bot is ready
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	logger.Log(fmt.Sprintf("logged on as <%s>", r.User.String()), logger.LevelInfo)
}

// onMessageCreate is called when a message is created
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	selfID := ""
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}
	b.handleMessage(selfID, s, m)
}

func (b *Bot) handleMessage(selfID string, sess command.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == selfID {
		return
	}

	logger.Log(fmt.Sprintf("message from <%s>: %q", m.Author.String(), m.Content), logger.LevelDebug)
	b.dispatcher.Dispatch(b.ctx, sess, m)
}

// Registry returns the registered commands.
func (b *Bot) Registry() *cmd.Registry { return b.registry }

package discord

import (
	"github.com/keshon/voicebot/internal/command"
	"github.com/keshon/voicebot/internal/command/core"
	"github.com/keshon/voicebot/internal/command/music"
	"github.com/keshon/voicebot/internal/command/roll"
	"github.com/keshon/voicebot/internal/middleware"
	"github.com/keshon/voicebot/pkg/cmd"
)

// registerCommands builds the command registry. Voice commands only make sense
// inside a guild; the rest also answer direct messages.
func (b *Bot) registerCommands() *cmd.Registry {
	r := cmd.NewRegistry()

	var history middleware.HistoryStore
	if b.storage != nil {
		history = b.storage
	}

	common := []cmd.Middleware{
		middleware.WithCommandLogger(history),
		middleware.WithRateLimit(b.limiter),
	}
	guildOnly := append([]cmd.Middleware{middleware.WithGuildOnly()}, common...)

	command.RegisterCommand(r, &roll.RollCommand{}, common...)
	command.RegisterCommand(r, &music.JoinCommand{Voice: b.voice, States: b}, guildOnly...)
	command.RegisterCommand(r, &music.LeaveCommand{Voice: b.voice}, guildOnly...)
	command.RegisterCommand(r, &music.PlayCommand{Voice: b.voice, Library: b.library}, guildOnly...)
	command.RegisterCommand(r, &music.ListCommand{Library: b.library}, common...)
	command.RegisterCommand(r, &music.ScramCommand{Voice: b.voice}, guildOnly...)
	command.RegisterCommand(r, &core.HelpCommand{Registry: r}, common...)

	return r
}

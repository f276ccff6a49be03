package middleware

import (
	"context"
	"time"

	"github.com/keshon/voicebot/internal/logger"
	"github.com/keshon/voicebot/internal/storage"
	"github.com/keshon/voicebot/pkg/cmd"
)

// HistoryStore records command invocations.
type HistoryStore interface {
	AppendCommand(guildID string, entry storage.CommandHistory) error
}

// WithCommandLogger wraps a command to record its execution in store.
// Direct messages are not recorded.
func WithCommandLogger(store HistoryStore) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			err := c.Run(ctx, inv)

			mc, ok := messageContext(inv)
			if !ok || store == nil || mc.GuildID() == "" || mc.Author() == nil {
				return err
			}

			entry := storage.CommandHistory{
				ChannelID: mc.Event.ChannelID,
				GuildID:   mc.GuildID(),
				UserID:    mc.Author().ID,
				Username:  mc.Author().Username,
				Command:   c.Name(),
				Args:      inv.Args,
				Datetime:  time.Now(),
			}
			if e := store.AppendCommand(mc.GuildID(), entry); e != nil {
				logger.Warningf("Failed to log command %s: %v", c.Name(), e)
			}
			return err
		})
	}
}

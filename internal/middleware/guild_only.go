package middleware

import (
	"context"

	"github.com/keshon/voicebot/internal/logger"
	"github.com/keshon/voicebot/pkg/cmd"
)

// WithGuildOnly wraps a command so it silently ignores direct messages.
func WithGuildOnly() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			if mc, ok := messageContext(inv); ok && mc.GuildID() == "" {
				logger.Debugf("Ignoring %s outside of a guild", c.Name())
				return nil
			}
			return c.Run(ctx, inv)
		})
	}
}

package middleware

import (
	"context"

	"github.com/keshon/voicebot/internal/logger"
	"github.com/keshon/voicebot/pkg/cmd"
	"github.com/keshon/voicebot/pkg/ratelimit"
)

// WithRateLimit drops invocations from users who exceed lim. A nil lim
// disables the check; the bot passes nil unless COMMAND_RATE is set.
func WithRateLimit(lim *ratelimit.Keyed) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			mc, ok := messageContext(inv)
			if !ok || lim == nil || mc.Author() == nil {
				return c.Run(ctx, inv)
			}
			if !lim.Allow(mc.Author().ID) {
				logger.Debugf("Rate limited %s for <%s>", c.Name(), mc.Author().Username)
				return nil
			}
			return c.Run(ctx, inv)
		})
	}
}

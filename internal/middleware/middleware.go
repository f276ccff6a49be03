// Package middleware holds cmd.Middleware implementations shared by the
// Discord message commands.
package middleware

import (
	"github.com/keshon/voicebot/internal/command"
	"github.com/keshon/voicebot/pkg/cmd"
)

// messageContext returns the Discord message context of inv, if it carries one.
func messageContext(inv *cmd.Invocation) (*command.MessageContext, bool) {
	mc, ok := command.MessageContextFrom(inv)
	if !ok || mc == nil || mc.Event == nil || mc.Event.Message == nil {
		return nil, false
	}
	return mc, true
}

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/voicebot/internal/logger"
	"github.com/keshon/voicebot/pkg/cmd"
)

// Dispatcher routes prefixed messages to registered commands.
type Dispatcher struct {
	Prefix   string
	Registry *cmd.Registry
}

// Dispatch runs the command named by m, if any, and relays its failure to the
// channel. It reports whether a command was found. Messages from bot accounts
// never run commands.
func (d *Dispatcher) Dispatch(ctx context.Context, s Session, m *discordgo.MessageCreate) bool {
	if m.Author != nil && m.Author.Bot {
		return false
	}

	name, args, ok := cmd.Parse(d.Prefix, m.Content)
	if !ok {
		return false
	}

	c := d.Registry.Get(name)
	if c == nil {
		logger.Debugf("Command %q is not found", name)
		return false
	}

	inv := &cmd.Invocation{
		Name: name,
		Args: args,
		Data: &MessageContext{Session: s, Event: m, Args: args, Prefix: d.Prefix},
	}

	if err := c.Run(ctx, inv); err != nil {
		d.relay(s, m.ChannelID, name, err)
	}
	return true
}

// relay reports a command failure to the channel. Argument errors are shown
// verbatim; anything else is also logged.
func (d *Dispatcher) relay(s Session, channelID, name string, err error) {
	var argErr *cmd.ArgError
	msg := err.Error()
	if !errors.As(err, &argErr) {
		logger.Errorf("Error running command %s: %v", name, err)
		msg = fmt.Sprintf("Error running command: %v", err)
	}

	if _, sendErr := s.ChannelMessageSend(channelID, msg); sendErr != nil {
		logger.Warningf("Failed to relay error for %s: %v", name, sendErr)
	}
}

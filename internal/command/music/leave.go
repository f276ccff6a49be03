package music

import (
	"context"
	"errors"

	"github.com/keshon/voicebot/internal/command"
	"github.com/keshon/voicebot/internal/voice"
)

const notConnectedReply = "I am not connected to any voice channel!"

type LeaveCommand struct {
	Voice *voice.Manager
}

func (c *LeaveCommand) Name() string        { return "leave" }
func (c *LeaveCommand) Description() string { return "Leave the voice channel" }
func (c *LeaveCommand) Group() string       { return "voice" }
func (c *LeaveCommand) Category() string    { return "🎵 Music" }
func (c *LeaveCommand) Usage() string       { return "" }

func (c *LeaveCommand) Run(ctx context.Context, mc *command.MessageContext) error {
	return disconnect(c.Voice, mc, "Disconnected from the voice channel.")
}

type ScramCommand struct {
	Voice *voice.Manager
}

func (c *ScramCommand) Name() string        { return "scram" }
func (c *ScramCommand) Description() string { return "Immediately disconnect from the voice channel" }
func (c *ScramCommand) Group() string       { return "voice" }
func (c *ScramCommand) Category() string    { return "🎵 Music" }
func (c *ScramCommand) Usage() string       { return "" }

func (c *ScramCommand) Run(ctx context.Context, mc *command.MessageContext) error {
	return disconnect(c.Voice, mc, "Scrammed from the voice channel.")
}

func disconnect(m *voice.Manager, mc *command.MessageContext, done string) error {
	err := m.Disconnect(mc.GuildID())
	if errors.Is(err, voice.ErrNotConnected) {
		return mc.Reply(notConnectedReply)
	}
	if err != nil {
		return err
	}
	return mc.Reply(done)
}

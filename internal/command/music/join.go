package music

import (
	"context"
	"errors"
	"fmt"

	"github.com/keshon/voicebot/internal/command"
	"github.com/keshon/voicebot/internal/voice"
)

type JoinCommand struct {
	Voice  *voice.Manager
	States command.VoiceLocator
}

func (c *JoinCommand) Name() string        { return "join" }
func (c *JoinCommand) Description() string { return "Join a voice channel" }
func (c *JoinCommand) Group() string       { return "voice" }
func (c *JoinCommand) Category() string    { return "🎵 Music" }
func (c *JoinCommand) Usage() string       { return "" }

func (c *JoinCommand) Run(ctx context.Context, mc *command.MessageContext) error {
	vs, err := c.States.FindUserVoiceState(mc.GuildID(), mc.Author().ID)
	if errors.Is(err, command.ErrNotInVoice) {
		return mc.Reply("You are not connected to a voice channel!")
	}
	if err != nil {
		return err
	}

	if _, err := c.Voice.Connect(mc.GuildID(), vs.ChannelID); err != nil {
		return err
	}
	return mc.Reply(fmt.Sprintf("Joined %s!", vs.ChannelName))
}

package music

import (
	"context"
	"errors"
	"fmt"

	"github.com/keshon/voicebot/internal/command"
	"github.com/keshon/voicebot/internal/logger"
	"github.com/keshon/voicebot/internal/music/library"
	"github.com/keshon/voicebot/internal/voice"
	"github.com/keshon/voicebot/pkg/cmd"
)

type PlayCommand struct {
	Voice   *voice.Manager
	Library *library.Library
}

func (c *PlayCommand) Name() string        { return "play" }
func (c *PlayCommand) Description() string { return "Play a local audio file from the songs directory" }
func (c *PlayCommand) Group() string       { return "music" }
func (c *PlayCommand) Category() string    { return "🎵 Music" }
func (c *PlayCommand) Usage() string       { return "<filename>" }

func (c *PlayCommand) Run(ctx context.Context, mc *command.MessageContext) error {
	if len(mc.Args) == 0 {
		return cmd.MissingArg(c.Name(), "filename")
	}
	filename := mc.Args[0]

	client, ok := c.Voice.Client(mc.GuildID())
	if !ok {
		return mc.Reply(fmt.Sprintf("I need to be in a voice channel to play audio. Use the %sjoin command.", mc.Prefix))
	}

	if client.IsPlaying() {
		_ = client.Stop()
	}

	path, err := c.Library.Resolve(filename)
	if errors.Is(err, library.ErrNotFound) {
		return mc.Reply(fmt.Sprintf("File '%s' not found in the '%s' directory.", filename, c.Library.Dir))
	}
	if err != nil {
		return mc.Reply(fmt.Sprintf("Error playing file: %v", err))
	}

	if err := client.Play(path); err != nil {
		logger.Warningf("[Player] Failed to start %q: %v", filename, err)
		return mc.Reply(fmt.Sprintf("Error playing file: %v", err))
	}
	return mc.Reply(fmt.Sprintf("Now playing: %s", filename))
}

package music

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshon/voicebot/internal/command"
	"github.com/keshon/voicebot/internal/music/library"
)

type ListCommand struct {
	Library *library.Library
}

func (c *ListCommand) Name() string        { return "list" }
func (c *ListCommand) Description() string { return "List all available MP3 files in the songs directory" }
func (c *ListCommand) Group() string       { return "music" }
func (c *ListCommand) Category() string    { return "🎵 Music" }
func (c *ListCommand) Usage() string       { return "" }

func (c *ListCommand) Run(ctx context.Context, mc *command.MessageContext) error {
	names, err := c.Library.List()
	if err != nil {
		return mc.Reply(fmt.Sprintf("Error listing files: %v", err))
	}

	if len(names) == 0 {
		kind := strings.ToUpper(strings.TrimPrefix(c.Library.Ext, "."))
		return mc.Reply(fmt.Sprintf("No %s files found in the '%s' directory.", kind, c.Library.Dir))
	}
	return mc.Reply("Available songs:\n" + strings.Join(names, "\n"))
}

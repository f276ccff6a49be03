package command

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/voicebot/pkg/cmd"
)

// Session is the part of *discordgo.Session that handlers reply through.
type Session interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// MessageContext is what the Discord runtime passes when executing a prefixed
// message command.
type MessageContext struct {
	Session Session
	Event   *discordgo.MessageCreate
	Args    []string
	Prefix  string
}

// GuildID returns the guild the message was posted in, or "" for DMs.
func (c *MessageContext) GuildID() string { return c.Event.GuildID }

// Author returns the message author.
func (c *MessageContext) Author() *discordgo.User { return c.Event.Author }

// Reply sends content to the channel the command was invoked in.
func (c *MessageContext) Reply(content string) error {
	_, err := c.Session.ChannelMessageSend(c.Event.ChannelID, content)
	return err
}

// ErrNotInVoice is returned by VoiceLocator when the user has no voice state.
var ErrNotInVoice = errors.New("user not in any voice channel")

// VoiceState holds minimal voice channel state for a user.
type VoiceState struct {
	ChannelID   string
	ChannelName string
	UserID      string
}

// VoiceLocator finds where a user is connected to voice.
type VoiceLocator interface {
	FindUserVoiceState(guildID, userID string) (*VoiceState, error)
}

// DiscordMeta is exposed by the Discord adapter so help and middleware can read
// presentation details without depending on concrete command types.
type DiscordMeta interface {
	Group() string
	Category() string
	Usage() string
}

// DiscordCommand is what individual message commands implement.
type DiscordCommand interface {
	Name() string
	Description() string
	Group() string
	Category() string
	Usage() string
	Run(ctx context.Context, mc *MessageContext) error
}

// DiscordAdapter adapts a DiscordCommand to cmd.Command so it can live in the
// registry.
type DiscordAdapter struct {
	Cmd DiscordCommand
}

func (a *DiscordAdapter) Name() string        { return a.Cmd.Name() }
func (a *DiscordAdapter) Description() string { return a.Cmd.Description() }
func (a *DiscordAdapter) Group() string       { return a.Cmd.Group() }
func (a *DiscordAdapter) Category() string    { return a.Cmd.Category() }
func (a *DiscordAdapter) Usage() string       { return a.Cmd.Usage() }

func (a *DiscordAdapter) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, ok := inv.Data.(*MessageContext)
	if !ok {
		return nil
	}
	mc.Args = inv.Args
	return a.Cmd.Run(ctx, mc)
}

// RegisterCommand adds a Discord command to r, wrapped in mws.
func RegisterCommand(r *cmd.Registry, discordCmd DiscordCommand, mws ...cmd.Middleware) {
	r.Register(cmd.Apply(&DiscordAdapter{Cmd: discordCmd}, mws...))
}

// Meta returns the presentation details of a registered command, looking
// through middleware wrappers.
func Meta(c cmd.Command) (DiscordMeta, bool) {
	m, ok := cmd.Root(c).(DiscordMeta)
	return m, ok
}

// MessageContextFrom extracts the message context from an invocation.
func MessageContextFrom(inv *cmd.Invocation) (*MessageContext, bool) {
	mc, ok := inv.Data.(*MessageContext)
	return mc, ok
}

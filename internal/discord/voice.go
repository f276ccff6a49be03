package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/voicebot/internal/command"
	"github.com/keshon/voicebot/internal/logger"
	"github.com/keshon/voicebot/internal/voice"
)

// FindUserVoiceState finds the voice state of a user
func (b *Bot) FindUserVoiceState(guildID, userID string) (*command.VoiceState, error) {
	state := b.dg.State
	guild, err := state.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving guild: %w", err)
	}

	state.RLock()
	var found *discordgo.VoiceState
	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID && vs.ChannelID != "" {
			found = vs
			break
		}
	}
	state.RUnlock()

	if found == nil {
		return nil, command.ErrNotInVoice
	}

	vs := &command.VoiceState{ChannelID: found.ChannelID, ChannelName: found.ChannelID, UserID: found.UserID}
	if ch, err := state.Channel(found.ChannelID); err == nil {
		vs.ChannelName = ch.Name
	}
	return vs, nil
}

// onVoiceStateUpdate is called when a member joins, leaves or moves between
// voice channels
func (b *Bot) onVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	selfID := ""
	if s.State.User != nil {
		selfID = s.State.User.ID
	}
	b.handleVoiceStateUpdate(s.State, selfID, v)
}

func (b *Bot) handleVoiceStateUpdate(state *discordgo.State, selfID string, v *discordgo.VoiceStateUpdate) {
	if v.VoiceState == nil {
		return
	}

	// Disconnected from outside, e.g. kicked by a moderator.
	if v.UserID == selfID && v.ChannelID == "" {
		if _, ok := b.voice.Client(v.GuildID); ok {
			b.leave(v.GuildID, "bot was removed from voice")
		}
		return
	}

	if !voice.ShouldAutoLeave(isBot(state, v.VoiceState), v.ChannelID, occupants(state, v.GuildID, v.ChannelID)) {
		return
	}
	b.leave(v.GuildID, "bot is alone in the voice channel")
}

func (b *Bot) leave(guildID, reason string) {
	err := b.voice.Disconnect(guildID)
	switch {
	case err == nil:
		logger.Infof("[Voice] Left guild %s: %s", guildID, reason)
	case errors.Is(err, voice.ErrNotConnected):
	default:
		logger.Warningf("[Voice] Failed to leave guild %s: %v", guildID, err)
	}
}

func isBot(state *discordgo.State, vs *discordgo.VoiceState) bool {
	if vs.Member != nil && vs.Member.User != nil {
		return vs.Member.User.Bot
	}
	m, err := state.Member(vs.GuildID, vs.UserID)
	if err != nil || m.User == nil {
		return false
	}
	return m.User.Bot
}

// occupants counts the members currently in channelID.
func occupants(state *discordgo.State, guildID, channelID string) int {
	if channelID == "" {
		return 0
	}
	guild, err := state.Guild(guildID)
	if err != nil {
		return 0
	}

	state.RLock()
	defer state.RUnlock()
	n := 0
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID == channelID {
			n++
		}
	}
	return n
}

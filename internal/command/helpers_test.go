package command

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

type sentMessage struct {
	ChannelID string
	Content   string
}

type recordingSession struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (r *recordingSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMessage{channelID, content})
	if r.err != nil {
		return nil, r.err
	}
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func newMessage(content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ChannelID: "chan-1",
		GuildID:   "guild-1",
		Content:   content,
		Author:    &discordgo.User{ID: "user-1", Username: "alice"},
	}}
}

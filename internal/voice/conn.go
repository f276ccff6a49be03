package voice

import (
	"github.com/bwmarrin/discordgo"

	"github.com/keshon/voicebot/internal/music/stream"
)

// Conn is an open voice connection in one guild.
type Conn interface {
	stream.Sink
	ChannelID() string
	ChangeChannel(channelID string) error
	Disconnect() error
}

// Dialer opens voice connections.
type Dialer interface {
	Dial(guildID, channelID string) (Conn, error)
}

// SessionDialer joins voice channels through a discordgo session.
type SessionDialer struct {
	Session *discordgo.Session
}

func (d SessionDialer) Dial(guildID, channelID string) (Conn, error) {
	vc, err := d.Session.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return nil, err
	}
	return discordConn{vc: vc}, nil
}

// discordConn adapts *discordgo.VoiceConnection to Conn.
type discordConn struct {
	vc *discordgo.VoiceConnection
}

func (c discordConn) ChannelID() string {
	c.vc.RLock()
	defer c.vc.RUnlock()
	return c.vc.ChannelID
}

func (c discordConn) ChangeChannel(channelID string) error {
	return c.vc.ChangeChannel(channelID, false, true)
}

func (c discordConn) Disconnect() error {
	return c.vc.Disconnect()
}

func (c discordConn) Speaking(b bool) error {
	return c.vc.Speaking(b)
}

func (c discordConn) Frames() chan<- []byte {
	return c.vc.OpusSend
}

// Package voice tracks the bot's voice connections: at most one per guild,
// each with its own player.
package voice

import (
	"errors"
	"fmt"
	"sync"

	"github.com/keshon/voicebot/internal/logger"
	"github.com/keshon/voicebot/internal/music/player"
)

// ErrNotConnected is returned when the bot has no voice connection in a guild.
var ErrNotConnected = errors.New("not connected to a voice channel")

// Client is the bot's voice presence in one guild.
type Client struct {
	GuildID string
	conn    Conn
	player  *player.Player
}

// ChannelID returns the channel the connection is in.
func (c *Client) ChannelID() string { return c.conn.ChannelID() }

// IsPlaying reports whether audio is streaming.
func (c *Client) IsPlaying() bool { return c.player.IsPlaying() }

// Stop halts the current audio, if any.
func (c *Client) Stop() error { return c.player.Stop() }

// Play streams the file at path, replacing whatever is playing.
func (c *Client) Play(path string) error { return c.player.Play(path, c.conn) }

type Manager struct {
	mu        sync.Mutex
	dialer    Dialer
	newPlayer func() *player.Player
	clients   map[string]*Client
}

// NewManager returns a Manager that dials through d and gives every new
// connection a player from newPlayer.
func NewManager(d Dialer, newPlayer func() *player.Player) *Manager {
	return &Manager{
		dialer:    d,
		newPlayer: newPlayer,
		clients:   make(map[string]*Client),
	}
}

// Client returns the guild's voice client, if connected.
func (m *Manager) Client(guildID string) (*Client, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[guildID]
	return c, ok
}

// Connect joins channelID, or moves the guild's existing connection there.
func (m *Manager) Connect(guildID, channelID string) (*Client, error) {
	if c, ok := m.Client(guildID); ok {
		if c.ChannelID() == channelID {
			return c, nil
		}
		if err := c.conn.ChangeChannel(channelID); err != nil {
			return nil, fmt.Errorf("failed to move to channel %s: %w", channelID, err)
		}
		logger.Infof("[Voice] Moved to channel %s on guild %s", channelID, guildID)
		return c, nil
	}

	conn, err := m.dialer.Dial(guildID, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to join voice channel: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.clients[guildID]; ok {
		// Lost a race with another join; keep the first connection.
		if c.conn != conn {
			_ = conn.Disconnect()
		}
		return c, nil
	}

	c := &Client{GuildID: guildID, conn: conn, player: m.newPlayer()}
	m.clients[guildID] = c
	logger.Infof("[Voice] Joined channel %s on guild %s", channelID, guildID)
	return c, nil
}

// Disconnect stops playback and closes the guild's connection.
func (m *Manager) Disconnect(guildID string) error {
	m.mu.Lock()
	c, ok := m.clients[guildID]
	delete(m.clients, guildID)
	m.mu.Unlock()

	if !ok {
		return ErrNotConnected
	}

	_ = c.player.Stop()
	if err := c.conn.Disconnect(); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	logger.Infof("[Voice] Disconnected from guild %s", guildID)
	return nil
}

// DisconnectAll closes every connection. Used on shutdown.
func (m *Manager) DisconnectAll() {
	m.mu.Lock()
	ids := make([]string, 0, len(m.clients))
	for id := range m.clients {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		if err := m.Disconnect(id); err != nil && !errors.Is(err, ErrNotConnected) {
			logger.Warningf("[Voice] Failed to disconnect guild %s: %v", id, err)
		}
	}
}

// ShouldAutoLeave reports whether a voice state change leaves a bot alone in
// its channel: the member is a bot, it is in a channel, and that channel has
// exactly one occupant. Any bot account qualifies, not only this one.
func ShouldAutoLeave(memberIsBot bool, channelID string, occupants int) bool {
	return memberIsBot && channelID != "" && occupants == 1
}

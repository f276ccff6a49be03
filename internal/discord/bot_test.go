package discord

import (
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/voicebot/internal/command"
	"github.com/keshon/voicebot/internal/config"
	"github.com/keshon/voicebot/internal/voice"
)

type recordingSession struct {
	mu   sync.Mutex
	sent []string
}

func (r *recordingSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, content)
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

type fakeConn struct {
	channelID    string
	disconnected bool
}

func (c *fakeConn) ChannelID() string                    { return c.channelID }
func (c *fakeConn) ChangeChannel(channelID string) error { c.channelID = channelID; return nil }
func (c *fakeConn) Disconnect() error                    { c.disconnected = true; return nil }
func (c *fakeConn) Speaking(bool) error                  { return nil }
func (c *fakeConn) Frames() chan<- []byte                { return nil }

type fakeDialer struct {
	conns []*fakeConn
}

func (d *fakeDialer) Dial(guildID, channelID string) (voice.Conn, error) {
	c := &fakeConn{channelID: channelID}
	d.conns = append(d.conns, c)
	return c, nil
}

const (
	guildID = "guild-1"
	selfID  = "bot-self"
)

func newTestBot(t *testing.T) (*Bot, *fakeDialer) {
	t.Helper()
	dg, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatal(err)
	}
	dg.State.User = &discordgo.User{ID: selfID, Username: "voicebot", Bot: true}
	if err := dg.State.GuildAdd(&discordgo.Guild{
		ID: guildID,
		Channels: []*discordgo.Channel{
			{ID: "vc-1", GuildID: guildID, Name: "General", Type: discordgo.ChannelTypeGuildVoice},
			{ID: "vc-2", GuildID: guildID, Name: "Music", Type: discordgo.ChannelTypeGuildVoice},
		},
	}); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		DiscordToken:  "test-token",
		CommandPrefix: "!",
		SongsDir:      t.TempDir(),
		AudioExt:      ".mp3",
		FFmpegPath:    "ffmpeg",
		CommandRate:   100,
		CommandBurst:  100,
	}
	d := &fakeDialer{}
	b, err := NewBot(cfg, nil, WithSession(dg), WithDialer(d))
	if err != nil {
		t.Fatal(err)
	}
	return b, d
}

func setVoiceStates(t *testing.T, b *Bot, states ...*discordgo.VoiceState) {
	t.Helper()
	guild, err := b.dg.State.Guild(guildID)
	if err != nil {
		t.Fatal(err)
	}
	b.dg.State.Lock()
	guild.VoiceStates = states
	b.dg.State.Unlock()
}

func message(authorID, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ChannelID: "text-1",
		GuildID:   guildID,
		Content:   content,
		Author:    &discordgo.User{ID: authorID, Username: "user-" + authorID},
	}}
}

func TestNewBot_RegistersCommands(t *testing.T) {
	b, _ := newTestBot(t)
	for _, name := range []string{"roll", "join", "leave", "play", "list", "scram", "help"} {
		if b.registry.Get(name) == nil {
			t.Errorf("command %q is not registered", name)
		}
	}
	if b.dg.Identify.Intents != discordgo.IntentsAll {
		t.Errorf("intents = %v", b.dg.Identify.Intents)
	}
}

func TestHandleMessage(t *testing.T) {
	t.Run("ignores own messages", func(t *testing.T) {
		b, _ := newTestBot(t)
		s := &recordingSession{}
		b.handleMessage(selfID, s, message(selfID, "!roll 1"))
		if len(s.sent) != 0 {
			t.Errorf("sent = %v", s.sent)
		}
	})

	t.Run("dispatches commands", func(t *testing.T) {
		b, _ := newTestBot(t)
		s := &recordingSession{}
		b.handleMessage(selfID, s, message("u1", "!roll 1"))
		if len(s.sent) != 1 || s.sent[0] != "1" {
			t.Errorf("sent = %v, want [1]", s.sent)
		}
	})

	t.Run("relays roll errors", func(t *testing.T) {
		b, _ := newTestBot(t)
		s := &recordingSession{}
		b.handleMessage(selfID, s, message("u1", "!roll 0"))
		if len(s.sent) != 1 || s.sent[0] != "argument <max_val> must be at least 1" {
			t.Errorf("sent = %v", s.sent)
		}
	})

	t.Run("nil author", func(t *testing.T) {
		b, _ := newTestBot(t)
		s := &recordingSession{}
		m := message("u1", "!roll 1")
		m.Author = nil
		b.handleMessage(selfID, s, m)
		if len(s.sent) != 0 {
			t.Errorf("sent = %v", s.sent)
		}
	})
}

func TestFindUserVoiceState(t *testing.T) {
	b, _ := newTestBot(t)
	setVoiceStates(t, b, &discordgo.VoiceState{GuildID: guildID, ChannelID: "vc-2", UserID: "u1"})

	vs, err := b.FindUserVoiceState(guildID, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if vs.ChannelID != "vc-2" || vs.ChannelName != "Music" {
		t.Errorf("voice state = %+v", vs)
	}

	if _, err := b.FindUserVoiceState(guildID, "u2"); err != command.ErrNotInVoice {
		t.Errorf("err = %v, want ErrNotInVoice", err)
	}
	if _, err := b.FindUserVoiceState("unknown-guild", "u1"); err == nil {
		t.Error("unknown guild must fail")
	}
}

func TestJoinThroughBot(t *testing.T) {
	b, d := newTestBot(t)
	setVoiceStates(t, b, &discordgo.VoiceState{GuildID: guildID, ChannelID: "vc-1", UserID: "u1"})

	s := &recordingSession{}
	b.handleMessage(selfID, s, message("u1", "!join"))
	if len(s.sent) != 1 || s.sent[0] != "Joined General!" {
		t.Fatalf("sent = %v", s.sent)
	}
	if len(d.conns) != 1 || d.conns[0].channelID != "vc-1" {
		t.Errorf("conns = %+v", d.conns)
	}
}

func TestHandleVoiceStateUpdate(t *testing.T) {
	member := func(id string, bot bool) *discordgo.Member {
		return &discordgo.Member{GuildID: guildID, User: &discordgo.User{ID: id, Bot: bot}}
	}
	update := func(userID, channelID string, bot bool) *discordgo.VoiceStateUpdate {
		return &discordgo.VoiceStateUpdate{VoiceState: &discordgo.VoiceState{
			GuildID:   guildID,
			UserID:    userID,
			ChannelID: channelID,
			Member:    member(userID, bot),
		}}
	}

	tests := []struct {
		name      string
		states    []*discordgo.VoiceState
		update    *discordgo.VoiceStateUpdate
		wantLeave bool
	}{
		{
			name:      "bot alone",
			states:    []*discordgo.VoiceState{{GuildID: guildID, ChannelID: "vc-1", UserID: selfID}},
			update:    update(selfID, "vc-1", true),
			wantLeave: true,
		},
		{
			name: "bot with company",
			states: []*discordgo.VoiceState{
				{GuildID: guildID, ChannelID: "vc-1", UserID: selfID},
				{GuildID: guildID, ChannelID: "vc-1", UserID: "u1"},
			},
			update: update(selfID, "vc-1", true),
		},
		{
			name:   "human alone",
			states: []*discordgo.VoiceState{{GuildID: guildID, ChannelID: "vc-2", UserID: "u1"}},
			update: update("u1", "vc-2", false),
		},
		{
			// Any bot account triggers the rule, not only this one.
			name:      "other bot alone",
			states:    []*discordgo.VoiceState{{GuildID: guildID, ChannelID: "vc-2", UserID: "other-bot"}},
			update:    update("other-bot", "vc-2", true),
			wantLeave: true,
		},
		{
			name:      "bot removed from voice",
			update:    update(selfID, "", true),
			wantLeave: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, d := newTestBot(t)
			if _, err := b.voice.Connect(guildID, "vc-1"); err != nil {
				t.Fatal(err)
			}
			setVoiceStates(t, b, tt.states...)

			b.handleVoiceStateUpdate(b.dg.State, selfID, tt.update)

			_, connected := b.voice.Client(guildID)
			if connected == tt.wantLeave {
				t.Errorf("connected = %v, want leave = %v", connected, tt.wantLeave)
			}
			if d.conns[0].disconnected != tt.wantLeave {
				t.Errorf("disconnected = %v", d.conns[0].disconnected)
			}
		})
	}

	t.Run("not connected is a no-op", func(t *testing.T) {
		b, _ := newTestBot(t)
		setVoiceStates(t, b, &discordgo.VoiceState{GuildID: guildID, ChannelID: "vc-1", UserID: selfID})
		b.handleVoiceStateUpdate(b.dg.State, selfID, update(selfID, "vc-1", true))
		if _, ok := b.voice.Client(guildID); ok {
			t.Error("no client expected")
		}
	})
}

func TestNewBot_RateLimitOffByDefault(t *testing.T) {
	dg, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{CommandPrefix: "!", SongsDir: t.TempDir(), AudioExt: ".mp3", CommandBurst: 1}
	b, err := NewBot(cfg, nil, WithSession(dg), WithDialer(&fakeDialer{}))
	if err != nil {
		t.Fatal(err)
	}
	if b.limiter != nil {
		t.Fatal("limiter must be off when CommandRate is zero")
	}

	s := &recordingSession{}
	for i := 0; i < 10; i++ {
		b.handleMessage(selfID, s, message("u1", "!roll 1"))
	}
	if len(s.sent) != 10 {
		t.Errorf("answered %d of 10 commands", len(s.sent))
	}
}

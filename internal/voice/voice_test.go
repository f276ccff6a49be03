package voice

import (
	"errors"
	"testing"

	"github.com/keshon/voicebot/internal/music/player"
)

type fakeConn struct {
	channelID    string
	moves        []string
	disconnected bool
	frames       chan []byte
}

func (c *fakeConn) ChannelID() string { return c.channelID }
func (c *fakeConn) ChangeChannel(channelID string) error {
	c.moves = append(c.moves, channelID)
	c.channelID = channelID
	return nil
}
func (c *fakeConn) Disconnect() error     { c.disconnected = true; return nil }
func (c *fakeConn) Speaking(bool) error   { return nil }
func (c *fakeConn) Frames() chan<- []byte { return c.frames }

type fakeDialer struct {
	dials []string
	conns []*fakeConn
	err   error
}

func (d *fakeDialer) Dial(guildID, channelID string) (Conn, error) {
	d.dials = append(d.dials, guildID+"/"+channelID)
	if d.err != nil {
		return nil, d.err
	}
	c := &fakeConn{channelID: channelID}
	d.conns = append(d.conns, c)
	return c, nil
}

func newTestManager(d Dialer) *Manager {
	return NewManager(d, func() *player.Player { return player.New(nil) })
}

func TestManager_ConnectAndMove(t *testing.T) {
	d := &fakeDialer{}
	m := newTestManager(d)

	if _, ok := m.Client("g1"); ok {
		t.Fatal("no client expected before connect")
	}

	c, err := m.Connect("g1", "c1")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if c.ChannelID() != "c1" {
		t.Errorf("ChannelID = %q", c.ChannelID())
	}

	moved, err := m.Connect("g1", "c2")
	if err != nil {
		t.Fatalf("Connect (move): %v", err)
	}
	if moved != c {
		t.Error("move must reuse the existing client")
	}
	if len(d.dials) != 1 {
		t.Errorf("dialed %d times, want 1", len(d.dials))
	}
	if len(d.conns[0].moves) != 1 || d.conns[0].moves[0] != "c2" {
		t.Errorf("moves = %v", d.conns[0].moves)
	}

	if _, err := m.Connect("g1", "c2"); err != nil {
		t.Fatal(err)
	}
	if len(d.conns[0].moves) != 1 {
		t.Error("connecting to the current channel must not move")
	}
}

func TestManager_ConnectError(t *testing.T) {
	m := newTestManager(&fakeDialer{err: errors.New("timeout waiting for voice")})

	if _, err := m.Connect("g1", "c1"); err == nil {
		t.Fatal("expected dial error")
	}
	if _, ok := m.Client("g1"); ok {
		t.Error("failed dial must not register a client")
	}
}

func TestManager_Disconnect(t *testing.T) {
	d := &fakeDialer{}
	m := newTestManager(d)

	if err := m.Disconnect("g1"); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("Disconnect without connection = %v, want ErrNotConnected", err)
	}

	if _, err := m.Connect("g1", "c1"); err != nil {
		t.Fatal(err)
	}
	if err := m.Disconnect("g1"); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	if !d.conns[0].disconnected {
		t.Error("connection was not closed")
	}
	if _, ok := m.Client("g1"); ok {
		t.Error("client still registered after disconnect")
	}
}

func TestManager_DisconnectAll(t *testing.T) {
	d := &fakeDialer{}
	m := newTestManager(d)
	for _, g := range []string{"g1", "g2", "g3"} {
		if _, err := m.Connect(g, "c"); err != nil {
			t.Fatal(err)
		}
	}

	m.DisconnectAll()

	for i, c := range d.conns {
		if !c.disconnected {
			t.Errorf("conn %d still open", i)
		}
	}
}

func TestShouldAutoLeave(t *testing.T) {
	tests := []struct {
		name      string
		isBot     bool
		channelID string
		occupants int
		want      bool
	}{
		{"bot alone", true, "c1", 1, true},
		{"bot with company", true, "c1", 2, false},
		{"channel empty", true, "c1", 0, false},
		{"bot left channel", true, "", 1, false},
		{"human alone", false, "c1", 1, false},
		// Any bot account triggers the rule, including ones that are not us.
		{"other bot alone", true, "c9", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldAutoLeave(tt.isBot, tt.channelID, tt.occupants); got != tt.want {
				t.Errorf("ShouldAutoLeave = %v, want %v", got, tt.want)
			}
		})
	}
}

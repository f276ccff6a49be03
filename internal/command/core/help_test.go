package core

import (
	"context"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/voicebot/internal/command"
	"github.com/keshon/voicebot/internal/command/roll"
	"github.com/keshon/voicebot/pkg/cmd"
)

type recordingSession struct {
	sent []string
}

func (r *recordingSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	r.sent = append(r.sent, content)
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func runHelp(t *testing.T, args ...string) string {
	t.Helper()
	reg := cmd.NewRegistry()
	command.RegisterCommand(reg, &roll.RollCommand{})
	command.RegisterCommand(reg, &HelpCommand{Registry: reg})

	s := &recordingSession{}
	mc := &command.MessageContext{
		Session: s,
		Event:   &discordgo.MessageCreate{Message: &discordgo.Message{ChannelID: "c"}},
		Args:    args,
		Prefix:  "!",
	}
	if err := (&HelpCommand{Registry: reg}).Run(context.Background(), mc); err != nil {
		t.Fatal(err)
	}
	if len(s.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(s.sent))
	}
	return s.sent[0]
}

func TestHelp(t *testing.T) {
	t.Run("overview", func(t *testing.T) {
		out := runHelp(t)
		for _, want := range []string{
			"🎲 Gameplay:",
			"roll Generate random number between 1 and <arg>",
			"help Shows this message",
			"Type !help <command> for more info on a command.",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("help output missing %q:\n%s", want, out)
			}
		}
		if strings.Index(out, "Gameplay") > strings.Index(out, "Information") {
			t.Errorf("categories out of order:\n%s", out)
		}
	})

	t.Run("single command", func(t *testing.T) {
		out := runHelp(t, "roll")
		want := "```\n!roll <max_val>\n\nGenerate random number between 1 and <arg>\n```"
		if out != want {
			t.Errorf("got %q, want %q", out, want)
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		if out := runHelp(t, "dance"); out != `No command called "dance" found.` {
			t.Errorf("got %q", out)
		}
	})
}

package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/keshon/voicebot/internal/command"
	"github.com/keshon/voicebot/internal/config"
	"github.com/keshon/voicebot/pkg/cmd"
)

type HelpCommand struct {
	Registry *cmd.Registry
}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Shows this message" }
func (c *HelpCommand) Group() string       { return "core" }
func (c *HelpCommand) Category() string    { return "🕯️ Information" }
func (c *HelpCommand) Usage() string       { return "[command]" }

func (c *HelpCommand) Run(ctx context.Context, mc *command.MessageContext) error {
	if len(mc.Args) > 0 {
		name := mc.Args[0]
		found := c.Registry.Get(name)
		if found == nil {
			return mc.Reply(fmt.Sprintf("No command called %q found.", name))
		}
		return mc.Reply(buildCommandHelp(mc.Prefix, found))
	}
	return mc.Reply(buildHelpByCategory(mc.Prefix, c.Registry.GetAll()))
}

func buildCommandHelp(prefix string, c cmd.Command) string {
	usage := prefix + c.Name()
	if meta, ok := command.Meta(c); ok && meta.Usage() != "" {
		usage += " " + meta.Usage()
	}
	return fmt.Sprintf("```\n%s\n\n%s\n```", usage, c.Description())
}

func buildHelpByCategory(prefix string, all []cmd.Command) string {
	categoryMap := make(map[string][]cmd.Command)
	width := 0
	for _, c := range all {
		cat := "No Category"
		if meta, ok := command.Meta(c); ok && meta.Category() != "" {
			cat = meta.Category()
		}
		categoryMap[cat] = append(categoryMap[cat], c)
		if n := len(c.Name()); n > width {
			width = n
		}
	}

	cats := make([]string, 0, len(categoryMap))
	for cat := range categoryMap {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		wi, wj := weight(cats[i]), weight(cats[j])
		if wi != wj {
			return wi < wj
		}
		return cats[i] < cats[j]
	})

	var sb strings.Builder
	sb.WriteString("```\n")
	for _, cat := range cats {
		sb.WriteString(cat + ":\n")
		for _, c := range categoryMap[cat] {
			fmt.Fprintf(&sb, "  %-*s %s\n", width, c.Name(), c.Description())
		}
	}
	fmt.Fprintf(&sb, "\nType %shelp <command> for more info on a command.\n```", prefix)
	return sb.String()
}

// weight places unknown categories last.
func weight(category string) int {
	if w, ok := config.CategoryWeights[category]; ok {
		return w
	}
	return 1000
}

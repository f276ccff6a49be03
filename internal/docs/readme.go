// Package docs renders the command reference into README.md.
package docs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/keshon/voicebot/internal/command"
	"github.com/keshon/voicebot/internal/config"
	"github.com/keshon/voicebot/internal/logger"
	"github.com/keshon/voicebot/pkg/cmd"
)

// CommandSections renders one markdown section per category, ordered by
// config.CategoryWeights.
func CommandSections(prefix string, commands []cmd.Command) string {
	commands = append([]cmd.Command(nil), commands...)
	sort.SliceStable(commands, func(i, j int) bool {
		wi, wj := categoryWeight(category(commands[i])), categoryWeight(category(commands[j]))
		if wi == wj {
			return commands[i].Name() < commands[j].Name()
		}
		return wi < wj
	})

	var buf bytes.Buffer
	currentCategory := ""
	for _, c := range commands {
		cat := category(c)
		if cat != currentCategory {
			if currentCategory != "" {
				buf.WriteString("\n")
			}
			currentCategory = cat
			fmt.Fprintf(&buf, "### %s\n\n", currentCategory)
		}

		usage := prefix + c.Name()
		if meta, ok := command.Meta(c); ok && meta.Usage() != "" {
			usage += " " + meta.Usage()
		}
		fmt.Fprintf(&buf, "- **`%s`** - %s\n", usage, c.Description())
	}
	return buf.String()
}

// UpdateReadme renders dir/README.md.tmpl into dir/README.md.
func UpdateReadme(dir, prefix string, registry *cmd.Registry) error {
	tmpl, err := template.ParseFiles(filepath.Join(dir, "README.md.tmpl"))
	if err != nil {
		return err
	}

	data := struct {
		CommandSections string
	}{
		CommandSections: CommandSections(prefix, registry.GetAll()),
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), out.Bytes(), 0o644); err != nil {
		return err
	}

	logger.Infof("README.md updated with current commands")
	return nil
}

func category(c cmd.Command) string {
	if meta, ok := command.Meta(c); ok && meta.Category() != "" {
		return meta.Category()
	}
	return "Other"
}

func categoryWeight(cat string) int {
	if w, ok := config.CategoryWeights[cat]; ok {
		return w
	}
	return 1000
}

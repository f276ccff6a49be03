package cmd

import (
	"fmt"
	"sort"
)

// Registry maps command names to commands. It is built once at startup and is
// read-only afterwards, so lookups need no locking.
type Registry struct {
	commands map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds commands. Registering the same name twice is a programming
// error and panics.
func (r *Registry) Register(cmds ...Command) {
	for _, c := range cmds {
		if _, dup := r.commands[c.Name()]; dup {
			panic(fmt.Sprintf("cmd: command %q registered twice", c.Name()))
		}
		r.commands[c.Name()] = c
	}
}

// Get returns the command with the given name, or nil.
func (r *Registry) Get(name string) Command {
	return r.commands[name]
}

// GetAll returns all registered commands, sorted by name.
func (r *Registry) GetAll() []Command {
	list := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}

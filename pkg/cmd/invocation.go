// Package cmd provides a transport-agnostic command core: a command is something
// with a name, a one-line description and Run(ctx, invocation). How commands are
// parsed out of incoming text and how their replies reach a user is defined by
// adapters that wrap this.
package cmd

import "context"

// Invocation carries the minimal input any command runner can pass: the
// arguments after the command name and an opaque payload. The Discord adapter
// sets Data to its message context.
type Invocation struct {
	Name string
	Args []string
	Data interface{}
}

// Arg returns the i-th argument and whether it was supplied.
func (inv *Invocation) Arg(i int) (string, bool) {
	if i < 0 || i >= len(inv.Args) {
		return "", false
	}
	return inv.Args[i], true
}

// Command is the universal contract: identity plus execution.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}

package cmd

import "fmt"

// ArgError reports that a command was invoked with bad arguments. Adapters
// relay Msg to the user verbatim instead of treating it as a failure.
type ArgError struct {
	Command string
	Msg     string
}

func (e *ArgError) Error() string { return e.Msg }

// ArgErrorf builds an ArgError for the named command.
func ArgErrorf(command, format string, args ...any) *ArgError {
	return &ArgError{Command: command, Msg: fmt.Sprintf(format, args...)}
}

// MissingArg is the ArgError for a required parameter that was not supplied.
func MissingArg(command, param string) *ArgError {
	return ArgErrorf(command, "%s is a required argument that is missing.", param)
}

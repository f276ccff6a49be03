package cmd

import (
	"strings"
	"unicode"
)

// Parse splits content of the form "<prefix><name> [args...]" into the command
// name and its arguments. ok is false when content does not start with prefix
// or no name follows it.
func Parse(prefix, content string) (name string, args []string, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	rest := content[len(prefix):]
	if rest == "" || unicode.IsSpace(rune(rest[0])) {
		return "", nil, false
	}
	fields := SplitArgs(rest)
	if len(fields) == 0 {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}

// SplitArgs splits s on whitespace. A double-quoted run is kept as one
// argument without its quotes; an unterminated quote runs to the end of s.
func SplitArgs(s string) []string {
	var (
		out     []string
		cur     strings.Builder
		quoted  bool
		started bool
	)
	flush := func() {
		if started {
			out = append(out, cur.String())
			cur.Reset()
			started = false
		}
	}
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case unicode.IsSpace(r) && !quoted:
			flush()
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	flush()
	return out
}

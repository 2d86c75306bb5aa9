package syntax

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// LexError reports a character that does not start any token.
type LexError struct {
	Line int
	Char rune   // utf8.RuneError for bytes that are not valid UTF-8
	Raw  string // source bytes of the character
}

func (e *LexError) Error() string {
	if e.Char == utf8.RuneError && !utf8.ValidString(e.Raw) {
		var b strings.Builder
		for i := 0; i < len(e.Raw); i++ {
			fmt.Fprintf(&b, "\\x%02x", e.Raw[i])
		}
		return fmt.Sprintf("Line %d: Invalid character: '%s'", e.Line, b.String())
	}
	return fmt.Sprintf("Line %d: Invalid character: '%c'", e.Line, e.Char)
}

// SyntaxError is a single line-tagged parse diagnostic. Token is the
// offending token's text, or empty if the diagnostic does not name one.
type SyntaxError struct {
	Line  int
	Msg   string
	Token string
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("Line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("Line %d: %s: Unmatched token: %s", e.Line, e.Msg, e.Token)
}

// ErrorList holds the diagnostics of a failed parse, most recent first.
type ErrorList []*SyntaxError

// Error renders every diagnostic, one per line.
func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	lines := make([]string, len(l))
	for i, e := range l {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// Err returns l as an error, or nil if l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// internalError aborts on a broken parser or AST contract. These are bugs
// in the caller, not parse failures.
func internalError(format string, args ...interface{}) {
	panic("internal error: " + fmt.Sprintf(format, args...))
}

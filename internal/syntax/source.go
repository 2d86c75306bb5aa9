package syntax

import "unicode/utf8"

// source is a character reader with line tracking and one character of
// lookahead over an in-memory buffer.
type source struct {
	buf  []byte
	line int  // current line number (1-based)
	ch   rune // current character, -1 at end of input
	pos  int  // byte offset of ch
	offs int  // byte offset just past ch
}

func newSource(buf []byte) *source {
	s := &source{buf: buf, line: 1, ch: -1}
	s.nextch()
	return s
}

// nextch reads the next character. Sets s.ch to -1 at end of input.
// The line counter is advanced by the scanner, which owns newline handling.
func (s *source) nextch() {
	s.pos = s.offs
	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}
	r, width := utf8.DecodeRune(s.buf[s.offs:])
	s.ch = r
	s.offs += width
}

// raw returns the source bytes of s.ch.
func (s *source) raw() string {
	return string(s.buf[s.pos:s.offs])
}

// peek returns the character after s.ch without consuming it, or -1.
func (s *source) peek() rune {
	if s.offs >= len(s.buf) {
		return -1
	}
	r, _ := utf8.DecodeRune(s.buf[s.offs:])
	return r
}

// isLetter reports whether r can start an identifier (a-z, A-Z, or _).
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

// isDigit reports whether r is a decimal digit (0-9).
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isWhitespace reports whether r is discarded between tokens.
// Newline is not included; it produces a token of its own.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

func isSpecial(r rune) bool {
	switch r {
	case '[', ']', '(', ')', '{', '}', ';', ',', ':':
		return true
	}
	return false
}

func isOperatorStart(r rune) bool {
	switch r {
	case '-', '+', '/', '*', '%', '=', '<', '>', '!', '&', '|', '.':
		return true
	}
	return false
}

package syntax

import "strings"

// Scanner turns source text into a token sequence. Scanning stops at the
// first character that does not start any token.
type Scanner struct {
	source

	toks   []Token
	litBuf strings.Builder
}

// NewScanner creates a Scanner over src.
func NewScanner(src []byte) *Scanner {
	return &Scanner{source: *newSource(src)}
}

// Scan tokenizes src. The result always ends with a single EOF token.
// On an unexpected character it returns a *LexError and no tokens.
func Scan(src []byte) ([]Token, error) {
	return NewScanner(src).Scan()
}

// Scan runs the scanner to completion.
func (s *Scanner) Scan() ([]Token, error) {
	for s.ch >= 0 {
		var err error
		switch {
		case isSpecial(s.ch):
			err = s.scanSpecial()

		case isOperatorStart(s.ch):
			s.scanOperator()

		case isLetter(s.ch):
			s.scanIdent()

		case isDigit(s.ch):
			s.scanNumber()

		case isWhitespace(s.ch):
			s.nextch()

		case s.ch == '\n':
			s.emit("\n")
			s.line++
			s.nextch()

		case s.ch == '#':
			s.skipLineComment()

		default:
			err = s.unexpected()
		}
		if err != nil {
			return nil, err
		}
	}
	s.toks = append(s.toks, Token{Kind: EOF, Line: s.line})
	return s.toks, nil
}

func (s *Scanner) emit(lit string) {
	s.toks = append(s.toks, Token{Lit: lit, Kind: classify(lit), Line: s.line})
}

func (s *Scanner) unexpected() error {
	return &LexError{Line: s.line, Char: s.ch, Raw: s.raw()}
}

// scanSpecial scans a single-character delimiter or the :: operator.
// A lone ':' is not a token.
func (s *Scanner) scanSpecial() error {
	if s.ch == ':' {
		if s.peek() != ':' {
			return s.unexpected()
		}
		s.nextch()
		s.nextch()
		s.emit("::")
		return nil
	}
	s.emit(string(s.ch))
	s.nextch()
	return nil
}

// scanOperator scans a one- or two-character operator, preferring the
// longer match.
func (s *Scanner) scanOperator() {
	lit := string(s.ch)
	if next := s.peek(); next >= 0 && twoCharOperators[lit+string(next)] {
		lit += string(next)
		s.nextch()
	}
	s.nextch()
	s.emit(lit)
}

// scanIdent scans an identifier or keyword.
func (s *Scanner) scanIdent() {
	s.litBuf.Reset()
	for isLetter(s.ch) || isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.emit(s.litBuf.String())
}

// scanNumber scans a run of decimal digits.
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	for isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.emit(s.litBuf.String())
}

// skipLineComment skips from # up to, but not including, the newline.
func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}

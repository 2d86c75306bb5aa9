// Package syntax implements lexical and syntactic analysis for minic.
package syntax

import "fmt"

// Kind classifies a token by the shape of its lexeme.
type Kind uint8

const (
	EOF      Kind = iota // end of token stream
	Newline              // line boundary, skipped by the parser
	Name                 // identifier or keyword: foo, _x1, while
	Literal              // numeric literal: 0, 42
	Operator             // - + * / % = < > ! & | . and two-char forms
	Special              // [ ] ( ) { } ; , ::

	kindCount
)

var kindNames = [...]string{
	EOF:      "EOF",
	Newline:  "NEWLINE",
	Name:     "NAME",
	Literal:  "LITERAL",
	Operator: "OPERATOR",
	Special:  "SPECIAL",
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Token is a single lexeme together with its derived kind and the line it
// starts on. Tokens are values and are never modified after scanning.
type Token struct {
	Lit  string
	Kind Kind
	Line int
}

// String returns the lexeme, with the sentinels spelled out.
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case Newline:
		return `\n`
	}
	return t.Lit
}

// twoCharOperators lists the operators matched greedily by the scanner.
var twoCharOperators = map[string]bool{
	"!=": true,
	"&&": true,
	"||": true,
	"->": true,
	"==": true,
	"++": true,
	"--": true,
	"<=": true,
	">=": true,
}

// keywords is the reserved-word set. Reserved words have the Name kind but
// are never accepted where an identifier is expected.
var keywords = map[string]struct{}{
	"var":    {},
	"int":    {},
	"void":   {},
	"struct": {},
	"func":   {},
	"if":     {},
	"else":   {},
	"while":  {},
	"for":    {},
	"return": {},
	"let":    {},
}

// IsKeyword reports whether lit is a reserved word.
func IsKeyword(lit string) bool {
	_, ok := keywords[lit]
	return ok
}

// classify derives the kind of a non-sentinel lexeme.
func classify(lit string) Kind {
	switch {
	case lit == "\n":
		return Newline
	case lit == "::" || len(lit) == 1 && isSpecial(rune(lit[0])):
		return Special
	case isLetter(rune(lit[0])):
		return Name
	case isDigit(rune(lit[0])):
		return Literal
	}
	return Operator
}

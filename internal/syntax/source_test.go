package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceBasic(t *testing.T) {
	src := newSource([]byte("ab"))
	assert.Equal(t, 'a', src.ch)
	assert.Equal(t, 1, src.line)
	assert.Equal(t, 'b', src.peek())

	src.nextch()
	assert.Equal(t, 'b', src.ch)
	assert.Equal(t, rune(-1), src.peek())

	src.nextch()
	assert.Equal(t, rune(-1), src.ch)

	// Reading past the end stays at -1.
	src.nextch()
	assert.Equal(t, rune(-1), src.ch)
}

func TestSourceEmpty(t *testing.T) {
	src := newSource(nil)
	assert.Equal(t, rune(-1), src.ch)
	assert.Equal(t, rune(-1), src.peek())
}

func TestSourceUTF8(t *testing.T) {
	src := newSource([]byte("λx"))
	assert.Equal(t, 'λ', src.ch)
	assert.Equal(t, 'x', src.peek())
	src.nextch()
	assert.Equal(t, 'x', src.ch)
}

func TestCharClasses(t *testing.T) {
	for _, r := range "azAZ_" {
		assert.True(t, isLetter(r), string(r))
	}
	for _, r := range "09λ-#" {
		assert.False(t, isLetter(r), string(r))
	}
	for _, r := range "0123456789" {
		assert.True(t, isDigit(r), string(r))
	}
	for _, r := range " \t\r" {
		assert.True(t, isWhitespace(r))
	}
	assert.False(t, isWhitespace('\n'))
	for _, r := range "[](){};,:" {
		assert.True(t, isSpecial(r), string(r))
	}
	for _, r := range "-+/*%=<>!&|." {
		assert.True(t, isOperatorStart(r), string(r))
	}
	for _, r := range "@$?\"'#" {
		assert.False(t, isSpecial(r) || isOperatorStart(r), string(r))
	}
}

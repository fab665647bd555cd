package asm

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/quanta/isa"
)

func TestLex(t *testing.T) {
	assert := assert.New(t)

	tokens, err := Lex(isa.Default(), "loop: li $a, 0x1F ; comment\n\tj loop\r\n")
	assert.NoError(err)

	expected := []Token{
		{Pos: Pos{1, 1}, Kind: TOKEN_IDENTIFIER, Text: "loop"},
		{Pos: Pos{1, 5}, Kind: TOKEN_COLON, Text: ":"},
		{Pos: Pos{1, 7}, Kind: TOKEN_MNEMONIC, Text: "li"},
		{Pos: Pos{1, 10}, Kind: TOKEN_DOLLAR, Text: "$"},
		{Pos: Pos{1, 11}, Kind: TOKEN_IDENTIFIER, Text: "a"},
		{Pos: Pos{1, 12}, Kind: TOKEN_COMMA, Text: ","},
		{Pos: Pos{1, 14}, Kind: TOKEN_NUMBER, Text: "0x1F", Value: 0x1f},
		{Pos: Pos{2, 2}, Kind: TOKEN_MNEMONIC, Text: "j"},
		{Pos: Pos{2, 4}, Kind: TOKEN_IDENTIFIER, Text: "loop"},
		{Pos: Pos{3, 1}, Kind: TOKEN_EOF},
	}

	assert.Equal(expected, tokens)
}

func TestLexNumbers(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		text  string
		kinds []TokenKind
		value uint64
	}{
		{"0", []TokenKind{TOKEN_NUMBER}, 0},
		{"65535", []TokenKind{TOKEN_NUMBER}, 65535},
		{"010", []TokenKind{TOKEN_NUMBER}, 10},
		{"0x10", []TokenKind{TOKEN_NUMBER}, 16},
		{"0XfF", []TokenKind{TOKEN_NUMBER}, 255},
		{"0b101", []TokenKind{TOKEN_NUMBER}, 5},
		{"0B1", []TokenKind{TOKEN_NUMBER}, 1},
		{"0xg", []TokenKind{TOKEN_NUMBER, TOKEN_IDENTIFIER}, 0},
		{"0b2", []TokenKind{TOKEN_NUMBER, TOKEN_IDENTIFIER}, 0},
		{"12abc", []TokenKind{TOKEN_NUMBER, TOKEN_IDENTIFIER}, 12},
		{"99999999999999999999999", []TokenKind{TOKEN_NUMBER}, math.MaxUint64},
	}

	for _, entry := range table {
		tokens, err := Lex(isa.Default(), entry.text)
		assert.NoError(err, entry.text)

		var kinds []TokenKind
		for _, tok := range tokens[:len(tokens)-1] {
			kinds = append(kinds, tok.Kind)
		}
		assert.Equal(entry.kinds, kinds, entry.text)
		assert.Equal(entry.value, tokens[0].Value, entry.text)
	}
}

func TestLexErrors(t *testing.T) {
	assert := assert.New(t)

	tokens, err := Lex(isa.Default(), "li $0, 5 #\nadd @ $0,% $1")

	var list ErrLexicalList
	if !assert.ErrorAs(err, &list) {
		return
	}
	assert.Equal(3, len(list))

	var positions []Pos
	var chars []rune
	for _, e := range list {
		var lex *ErrLexical
		if assert.True(errors.As(e, &lex)) {
			positions = append(positions, lex.Pos)
			chars = append(chars, lex.Char)
		}
	}
	assert.Equal([]Pos{{1, 10}, {2, 5}, {2, 10}}, positions)
	assert.Equal([]rune{'#', '@', '%'}, chars)

	// Bad characters are skipped, and scanning continues.
	assert.Equal(TOKEN_EOF, tokens[len(tokens)-1].Kind)
	assert.Equal(12, len(tokens))
}

func TestTokenString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("'add'", Token{Kind: TOKEN_MNEMONIC, Text: "add"}.String())
	assert.Equal("end of input", Token{Kind: TOKEN_EOF}.String())
	assert.Equal("3:7", Pos{3, 7}.String())

	line, column := Pos{3, 7}.Position()
	assert.Equal(3, line)
	assert.Equal(7, column)
}

package asm

import (
	"fmt"
)

// TokenKind is the lexical class of a token.
type TokenKind int

//go:generate go tool stringer -linecomment -type=TokenKind
const (
	TOKEN_EOF        = TokenKind(0) // end of input
	TOKEN_COMMA      = TokenKind(1) // comma
	TOKEN_DOLLAR     = TokenKind(2) // dollar
	TOKEN_COLON      = TokenKind(3) // colon
	TOKEN_IDENTIFIER = TokenKind(4) // identifier
	TOKEN_MNEMONIC   = TokenKind(5) // mnemonic
	TOKEN_NUMBER     = TokenKind(6) // number
)

// Pos is a source position. Line and Column are 1-based, and Column
// counts runes from the start of the line.
type Pos struct {
	Line   int
	Column int
}

// Position returns the line and column.
func (pos Pos) Position() (line, column int) {
	return pos.Line, pos.Column
}

func (pos Pos) String() string {
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}

// Token is a lexical token.
type Token struct {
	Pos
	Kind  TokenKind // Lexical class.
	Text  string    // Source text of the token.
	Value uint64    // Value of a TOKEN_NUMBER.
}

func (tok Token) String() string {
	if tok.Kind == TOKEN_EOF {
		return tok.Kind.String()
	}
	return fmt.Sprintf("'%v'", tok.Text)
}

package asm

import (
	"errors"
	"math"
	"strconv"

	"github.com/ezrec/quanta/isa"
)

// lexer holds the state of a single scan over a source text.
type lexer struct {
	arch   *isa.ISA
	src    []rune
	pos    int // index of the next rune
	line   int
	column int

	tokens []Token
	errs   ErrLexicalList
}

// Lex splits source text into tokens, always ending with a TOKEN_EOF.
// Unrecognized characters are skipped one at a time, and reported together
// as an ErrLexicalList.
func Lex(arch *isa.ISA, src string) (tokens []Token, err error) {
	lx := &lexer{
		arch:   arch,
		src:    []rune(src),
		line:   1,
		column: 1,
	}

	lx.scan()

	tokens = lx.tokens
	if len(lx.errs) != 0 {
		err = lx.errs
	}

	return
}

func (lx *lexer) peek() rune {
	return lx.peekAt(0)
}

func (lx *lexer) peekAt(offset int) rune {
	if lx.pos+offset >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+offset]
}

func (lx *lexer) advance() (r rune) {
	r = lx.peek()
	lx.pos++
	if r == '\n' {
		lx.line++
		lx.column = 1
	} else {
		lx.column++
	}
	return
}

func (lx *lexer) here() Pos {
	return Pos{Line: lx.line, Column: lx.column}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdent(r rune) bool {
	return isIdentStart(r) || isDigit(r, 10)
}

func isDigit(r rune, base int) bool {
	switch base {
	case 2:
		return r == '0' || r == '1'
	case 16:
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	default:
		return r >= '0' && r <= '9'
	}
}

func (lx *lexer) scan() {
	for lx.pos < len(lx.src) {
		r := lx.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			lx.advance()
		case r == ';':
			for lx.pos < len(lx.src) && lx.peek() != '\n' {
				lx.advance()
			}
		case r == ',':
			lx.single(TOKEN_COMMA)
		case r == '$':
			lx.single(TOKEN_DOLLAR)
		case r == ':':
			lx.single(TOKEN_COLON)
		case isIdentStart(r):
			lx.scanIdent()
		case isDigit(r, 10):
			lx.scanNumber()
		default:
			lx.errs = append(lx.errs, &ErrLexical{Pos: lx.here(), Char: r})
			lx.advance()
		}
	}

	lx.tokens = append(lx.tokens, Token{Pos: lx.here(), Kind: TOKEN_EOF})
}

func (lx *lexer) single(kind TokenKind) {
	pos := lx.here()
	r := lx.advance()
	lx.tokens = append(lx.tokens, Token{Pos: pos, Kind: kind, Text: string(r)})
}

// scanIdent collects an identifier, classifying it as a mnemonic if the
// ISA defines it.
func (lx *lexer) scanIdent() {
	pos := lx.here()
	start := lx.pos
	for lx.pos < len(lx.src) && isIdent(lx.peek()) {
		lx.advance()
	}

	text := string(lx.src[start:lx.pos])
	kind := TOKEN_IDENTIFIER
	if _, ok := lx.arch.Instruction(text); ok {
		kind = TOKEN_MNEMONIC
	}

	lx.tokens = append(lx.tokens, Token{Pos: pos, Kind: kind, Text: text})
}

// scanNumber collects a decimal, 0x hexadecimal or 0b binary literal. A
// prefix not followed by a digit of its base is left for the next token.
// Values too large for 64 bits saturate, and so never fit a field.
func (lx *lexer) scanNumber() {
	pos := lx.here()
	start := lx.pos

	base := 10
	if lx.peek() == '0' {
		switch lx.peekAt(1) {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		}
		if base != 10 && isDigit(lx.peekAt(2), base) {
			lx.advance()
			lx.advance()
		} else {
			base = 10
		}
	}

	digits := lx.pos
	for lx.pos < len(lx.src) && isDigit(lx.peek(), base) {
		lx.advance()
	}

	text := string(lx.src[start:lx.pos])
	value, err := strconv.ParseUint(string(lx.src[digits:lx.pos]), base, 64)
	if errors.Is(err, strconv.ErrRange) {
		value = math.MaxUint64
	}

	lx.tokens = append(lx.tokens, Token{Pos: pos, Kind: TOKEN_NUMBER, Text: text, Value: value})
}

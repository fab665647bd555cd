package asm

import (
	"fmt"
	"strings"

	"github.com/ezrec/quanta/isa"
)

// Operand is a parsed instruction operand: a *Number, *Register or *Label.
type Operand interface {
	Position() (line, column int)
	String() string
	operand()
}

// Number is an integer literal operand.
type Number struct {
	Pos
	Text  string // Source text of the literal.
	Value uint64
}

func (num *Number) operand() {}

func (num *Number) String() string {
	return num.Text
}

// Register is a register operand, by index or by alias.
type Register struct {
	Pos
	Alias string // Alias name, if the register was named.
	Index uint64 // Register index, if the register was numbered.
}

func (reg *Register) operand() {}

func (reg *Register) String() string {
	if len(reg.Alias) != 0 {
		return "$" + reg.Alias
	}
	return fmt.Sprintf("$%d", reg.Index)
}

// Label is a label reference operand.
type Label struct {
	Pos
	Name string
}

func (lab *Label) operand() {}

func (lab *Label) String() string {
	return lab.Name
}

// Line is a parsed source production: either a label declaration, or an
// instruction with its operands.
type Line struct {
	Pos
	Label    string    // Declared label name, for a label declaration.
	Mnemonic string    // Instruction mnemonic, empty for a label declaration.
	Operands []Operand // Operands in source order.
}

// Declaration returns true if the line declares a label.
func (line *Line) Declaration() bool {
	return len(line.Mnemonic) == 0
}

func (line *Line) String() string {
	if line.Declaration() {
		return line.Label + ":"
	}

	if len(line.Operands) == 0 {
		return line.Mnemonic
	}

	ops := make([]string, len(line.Operands))
	for n, op := range line.Operands {
		ops[n] = op.String()
	}

	return line.Mnemonic + " " + strings.Join(ops, ", ")
}

// parser is a recursive descent parser over a token list.
type parser struct {
	arch   *isa.ISA
	tokens []Token
	pos    int

	lines []Line
	errs  ErrSyntaxList
}

// Parse parses a token list, as produced by Lex, into lines. After a syntax
// error the parser resynchronizes on a later source line, so that every
// syntax error is reported together as an ErrSyntaxList.
func Parse(arch *isa.ISA, tokens []Token) (lines []Line, err error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TOKEN_EOF {
		tokens = append(tokens[:len(tokens):len(tokens)], Token{Kind: TOKEN_EOF})
	}

	p := &parser{
		arch:   arch,
		tokens: tokens,
	}

	for p.peek().Kind != TOKEN_EOF {
		start := p.pos
		line, e := p.parseLine()
		if e != nil {
			p.errs = append(p.errs, e)
			p.recover(start)
			continue
		}
		p.lines = append(p.lines, line)
	}

	if len(p.errs) != 0 {
		err = p.errs
		return
	}

	lines = p.lines
	return
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

// advance consumes the current token. TOKEN_EOF is never consumed.
func (p *parser) advance() (tok Token) {
	tok = p.tokens[p.pos]
	if tok.Kind != TOKEN_EOF {
		p.pos++
	}
	return
}

// unexpected reports the current token, which is left unconsumed.
func (p *parser) unexpected(expected string) error {
	tok := p.peek()
	return &ErrSyntax{Pos: tok.Pos, Token: tok, Expected: expected}
}

func (p *parser) expect(kind TokenKind) (tok Token, err error) {
	if p.peek().Kind != kind {
		err = p.unexpected(kind.String())
		return
	}
	tok = p.advance()
	return
}

// recover skips past the failed production starting at token index start.
// When the offending token opens a later line than the production, parsing
// resumes at it. Otherwise the rest of its line is skipped.
func (p *parser) recover(start int) {
	if p.pos > start && p.peek().Line > p.tokens[start].Line {
		return
	}

	line := p.peek().Line
	for p.peek().Kind != TOKEN_EOF && p.peek().Line == line {
		p.advance()
	}
}

// parseLine parses a label declaration or an instruction.
func (p *parser) parseLine() (line Line, err error) {
	tok := p.peek()

	switch tok.Kind {
	case TOKEN_IDENTIFIER:
		p.advance()
		if _, err = p.expect(TOKEN_COLON); err != nil {
			return
		}
		line = Line{Pos: tok.Pos, Label: tok.Text}
	case TOKEN_MNEMONIC:
		p.advance()
		inst, ok := p.arch.Instruction(tok.Text)
		if !ok {
			err = &ErrInstruction{Pos: tok.Pos, Mnemonic: tok.Text}
			return
		}
		line = Line{Pos: tok.Pos, Mnemonic: tok.Text}
		for n, arg := range inst.Format.Operands() {
			if n > 0 {
				if _, err = p.expect(TOKEN_COMMA); err != nil {
					return
				}
			}
			var op Operand
			op, err = p.parseOperand(arg)
			if err != nil {
				return
			}
			line.Operands = append(line.Operands, op)
		}
	default:
		err = p.unexpected(f("label or instruction"))
	}

	return
}

// parseOperand parses the operand for a format field.
func (p *parser) parseOperand(arg *isa.ArgType) (op Operand, err error) {
	switch arg.Kind {
	case isa.ARG_IMMEDIATE:
		tok := p.peek()
		if tok.Kind != TOKEN_NUMBER || !arg.Match(tok.Text) {
			err = p.unexpected(arg.Kind.String())
			return
		}
		p.advance()
		op = &Number{Pos: tok.Pos, Text: tok.Text, Value: tok.Value}
	case isa.ARG_TARGET:
		tok := p.peek()
		if tok.Kind == TOKEN_IDENTIFIER {
			p.advance()
			op = &Label{Pos: tok.Pos, Name: tok.Text}
			return
		}
		if tok.Kind != TOKEN_DOLLAR {
			err = p.unexpected(f("register or label"))
			return
		}
		op, err = p.parseRegister()
	default:
		op, err = p.parseRegister()
	}

	return
}

// parseRegister parses '$' followed by a register number or alias.
func (p *parser) parseRegister() (op Operand, err error) {
	dollar := p.peek()
	if dollar.Kind != TOKEN_DOLLAR {
		err = p.unexpected(f("register"))
		return
	}
	p.advance()

	tok := p.peek()
	switch tok.Kind {
	case TOKEN_NUMBER:
		p.advance()
		op = &Register{Pos: dollar.Pos, Index: tok.Value}
	case TOKEN_IDENTIFIER, TOKEN_MNEMONIC:
		p.advance()
		op = &Register{Pos: tok.Pos, Alias: tok.Text}
	default:
		err = p.unexpected(f("register number or alias"))
	}

	return
}

package asm

import (
	"errors"
	"strings"

	"github.com/ezrec/quanta/translate"
)

var f = translate.From

var (
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrLexical is an unrecognized source character.
type ErrLexical struct {
	Pos
	Char rune
}

func (err *ErrLexical) Error() string {
	return f("line %d column %d: unexpected character %q", err.Line, err.Column, err.Char)
}

func (err *ErrLexical) Kind() DiagnosticKind {
	return DIAG_LEXICAL
}

// ErrSyntax is a token that does not fit the grammar.
type ErrSyntax struct {
	Pos
	Token    Token
	Expected string // What the grammar expected, if known.
}

func (err *ErrSyntax) Error() string {
	if len(err.Expected) == 0 {
		return f("line %d column %d: unexpected %v", err.Line, err.Column, err.Token)
	}
	return f("line %d column %d: unexpected %v, expected %v", err.Line, err.Column, err.Token, err.Expected)
}

func (err *ErrSyntax) Kind() DiagnosticKind {
	return DIAG_SYNTAX
}

// ErrLabelDuplicate is a second declaration of a label.
type ErrLabelDuplicate struct {
	Pos
	Label string
	First Pos // Position of the first declaration.
}

func (err *ErrLabelDuplicate) Error() string {
	return f("line %d column %d: label '%v' duplicated, first declared on line %d", err.Line, err.Column, err.Label, err.First.Line)
}

func (err *ErrLabelDuplicate) Kind() DiagnosticKind {
	return DIAG_LABEL_DUPLICATE
}

// ErrLabelMissing is a reference to an undeclared label.
type ErrLabelMissing struct {
	Pos
	Label string
}

func (err *ErrLabelMissing) Error() string {
	return f("line %d column %d: label '%v' missing", err.Line, err.Column, err.Label)
}

func (err *ErrLabelMissing) Kind() DiagnosticKind {
	return DIAG_LABEL_MISSING
}

// ErrRegisterAlias is a register alias unknown to the ISA.
type ErrRegisterAlias struct {
	Pos
	Alias string
}

func (err *ErrRegisterAlias) Error() string {
	return f("line %d column %d: register alias '$%v' unknown", err.Line, err.Column, err.Alias)
}

func (err *ErrRegisterAlias) Kind() DiagnosticKind {
	return DIAG_REGISTER_ALIAS
}

// ErrFieldOverflow is an operand value too wide for its field.
type ErrFieldOverflow struct {
	Pos
	Field string
	Value uint64
	Width int
}

func (err *ErrFieldOverflow) Error() string {
	return f("line %d column %d: value %d does not fit the %d bit field '%v'", err.Line, err.Column, err.Value, err.Width, err.Field)
}

func (err *ErrFieldOverflow) Kind() DiagnosticKind {
	return DIAG_FIELD_OVERFLOW
}

// ErrInstruction is a parsed line the encoder cannot handle. The parser
// never produces one.
type ErrInstruction struct {
	Pos
	Mnemonic string
}

func (err *ErrInstruction) Error() string {
	return f("line %d column %d: %v '%v'", err.Line, err.Column, ErrInstructionInvalid, err.Mnemonic)
}

func (err *ErrInstruction) Unwrap() error {
	return ErrInstructionInvalid
}

func (err *ErrInstruction) Kind() DiagnosticKind {
	return DIAG_INTERNAL
}

// ErrLexicalList holds every lexical error of a run.
type ErrLexicalList []error

func (err ErrLexicalList) Error() string {
	return joinErrors(err)
}

func (err ErrLexicalList) Unwrap() []error {
	return err
}

// ErrSyntaxList holds every syntax error of a run.
type ErrSyntaxList []error

func (err ErrSyntaxList) Error() string {
	return joinErrors(err)
}

func (err ErrSyntaxList) Unwrap() []error {
	return err
}

func joinErrors(errs []error) string {
	text := make([]string, len(errs))
	for n, err := range errs {
		text[n] = err.Error()
	}
	return strings.Join(text, "\n")
}

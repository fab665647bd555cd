package isa

import (
	"errors"

	"github.com/ezrec/quanta/translate"
)

var f = translate.From

var (
	// Description errors
	ErrDescriptionFormat = errors.New(f("description format unsupported"))
	ErrDescriptionKey    = errors.New(f("description key unknown"))
	ErrStarlarkValue     = errors.New(f("starlark value unsupported"))

	// Model errors
	ErrWordWidth            = errors.New(f("word width invalid"))
	ErrOpcodeWidth          = errors.New(f("opcode width invalid"))
	ErrArgKind              = errors.New(f("argument kind invalid"))
	ErrArgWidth             = errors.New(f("argument width invalid"))
	ErrArgPattern           = errors.New(f("argument pattern invalid"))
	ErrFormatArg            = errors.New(f("format argument unknown"))
	ErrFormatWidth          = errors.New(f("format exceeds word width"))
	ErrFormatTarget         = errors.New(f("format has more than one target"))
	ErrInstructionFormat    = errors.New(f("instruction format unknown"))
	ErrInstructionMnemonic  = errors.New(f("instruction mnemonic invalid"))
	ErrInstructionDuplicate = errors.New(f("instruction duplicated"))
	ErrOpcodeRange          = errors.New(f("opcode exceeds opcode width"))
	ErrOpcodeDuplicate      = errors.New(f("opcode duplicated"))
	ErrRegisterName         = errors.New(f("register alias name invalid"))
	ErrRegisterRange        = errors.New(f("register exceeds register width"))
	ErrLoadImmediate        = errors.New(f("load immediate instruction invalid"))

	// Decode errors
	ErrDecodeWord   = errors.New(f("word is not a binary word of the word width"))
	ErrDecodeOpcode = errors.New(f("opcode unknown"))
)

// ErrDescription locates an error in an ISA description.
type ErrDescription struct {
	Key string
	Err error
}

func (err *ErrDescription) Error() string {
	return f("%v: %v", err.Key, err.Err)
}

func (err *ErrDescription) Unwrap() error {
	return err.Err
}

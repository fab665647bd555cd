package mif

import (
	"errors"

	"github.com/ezrec/quanta/translate"
)

var f = translate.From

var (
	ErrImageFull = errors.New(f("image exceeds depth"))
	ErrHeader    = errors.New(f("header invalid"))
	ErrContent   = errors.New(f("content line invalid"))
	ErrAddress   = errors.New(f("address out of sequence"))
	ErrFraming   = errors.New(f("missing CONTENT BEGIN or END"))
)

// ErrDepth is returned for a depth that is not a power of two.
type ErrDepth int

func (err ErrDepth) Error() string {
	return f("depth %v is not a power of two", int(err))
}

// ErrRadix is returned for an unsupported radix keyword.
type ErrRadix string

func (err ErrRadix) Error() string {
	return f("radix '%v' unsupported", string(err))
}

// ErrWord is returned for a data word that is not a binary string of the
// image width.
type ErrWord struct {
	Address int
	Word    string
}

func (err *ErrWord) Error() string {
	return f("word %v '%v' is not a binary word of the image width", err.Address, err.Word)
}

// ErrSyntax locates a parse error in a memory image.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

package mif

import (
	"math/bits"
	"strconv"
	"strings"
)

// Radix is a MIF address or data radix keyword.
type Radix string

const (
	RADIX_BIN = Radix("BIN") // binary
	RADIX_OCT = Radix("OCT") // octal
	RADIX_HEX = Radix("HEX") // hexadecimal
	RADIX_UNS = Radix("UNS") // unsigned decimal
)

// ParseRadix parses a radix keyword, ignoring case.
func ParseRadix(text string) (radix Radix, err error) {
	radix = Radix(strings.ToUpper(strings.TrimSpace(text)))
	switch radix {
	case RADIX_BIN, RADIX_OCT, RADIX_HEX, RADIX_UNS:
	default:
		err = ErrRadix(text)
	}
	return
}

// Base returns the numeric base of the radix.
func (radix Radix) Base() int {
	switch radix {
	case RADIX_BIN:
		return 2
	case RADIX_OCT:
		return 8
	case RADIX_HEX:
		return 16
	default:
		return 10
	}
}

// Digits returns the number of digits needed to render a value of the given
// bit width. Unsigned decimal values are not padded.
func (radix Radix) Digits(width int) int {
	switch radix {
	case RADIX_BIN:
		return width
	case RADIX_OCT:
		return (width + 2) / 3
	case RADIX_HEX:
		return (width + 3) / 4
	default:
		return 0
	}
}

// Format renders value in the radix, zero filled to the width's digit count.
func (radix Radix) Format(value uint64, width int) string {
	text := strconv.FormatUint(value, radix.Base())
	if radix == RADIX_HEX {
		text = strings.ToUpper(text)
	}
	if pad := radix.Digits(width) - len(text); pad > 0 {
		text = strings.Repeat("0", pad) + text
	}
	return text
}

// Parse reads a value rendered in the radix.
func (radix Radix) Parse(text string) (value uint64, err error) {
	value, err = strconv.ParseUint(text, radix.Base(), 64)
	return
}

// AddressWidth returns the number of address bits for a memory depth.
// The depth must be a power of two.
func AddressWidth(depth int) (width int, err error) {
	if depth <= 0 || depth&(depth-1) != 0 {
		err = ErrDepth(depth)
		return
	}

	width = bits.TrailingZeros(uint(depth))
	return
}

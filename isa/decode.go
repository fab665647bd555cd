package isa

import (
	"fmt"
	"strconv"
	"strings"
)

// Decoded is a word decoded back into its instruction and operand values.
type Decoded struct {
	*Instruction
	Operands []uint64 // Operand field values, in operand order.
}

// String renders the decoded word as assembly source.
func (dec Decoded) String() string {
	var text strings.Builder

	text.WriteString(dec.Mnemonic)
	for n, arg := range dec.Format.Operands() {
		if n == 0 {
			text.WriteString(" ")
		} else {
			text.WriteString(", ")
		}
		if arg.Kind == ARG_IMMEDIATE {
			fmt.Fprintf(&text, "%d", dec.Operands[n])
		} else {
			fmt.Fprintf(&text, "$%d", dec.Operands[n])
		}
	}

	return text.String()
}

// Decode splits a binary word into its instruction and operand values.
// Padding and fill bits are ignored.
func (isa *ISA) Decode(word string) (dec Decoded, err error) {
	if len(word) != isa.WordWidth || strings.Trim(word, "01") != "" {
		err = fmt.Errorf("%w: '%v'", ErrDecodeWord, word)
		return
	}

	opcode, _ := strconv.ParseUint(word[:isa.OpcodeWidth], 2, 64)
	inst, ok := isa.opcodes[opcode]
	if !ok {
		err = fmt.Errorf("%w: %#x", ErrDecodeOpcode, opcode)
		return
	}

	dec.Instruction = inst

	pos := isa.OpcodeWidth
	for _, arg := range inst.Format.Args {
		field := word[pos : pos+arg.Width]
		pos += arg.Width
		if !arg.Operand() {
			continue
		}
		value, _ := strconv.ParseUint(field, 2, 64)
		dec.Operands = append(dec.Operands, value)
	}

	return
}

// Disassemble renders a binary word as assembly source.
func (isa *ISA) Disassemble(word string) (text string, err error) {
	dec, err := isa.Decode(word)
	if err != nil {
		return
	}

	text = dec.String()
	return
}

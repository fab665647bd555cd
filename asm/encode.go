package asm

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/ezrec/quanta/isa"
)

// Word is an instruction word, as a string of binary digits of the ISA
// word width.
type Word string

// Encoder packs parsed lines into instruction words.
type Encoder struct {
	Isa    *isa.ISA   // Instruction set to encode for.
	Labels LabelTable // Resolved label addresses.
}

// field is an operand value bound for a format field.
type field struct {
	Pos
	value uint64
}

// Encode returns the words of a line. A control transfer to a label is
// preceded by a load of the label address into the reserved register, and
// transfers through that register.
func (enc *Encoder) Encode(line *Line) (words []Word, err error) {
	if line.Declaration() {
		return
	}

	inst, ok := enc.Isa.Instruction(line.Mnemonic)
	if !ok {
		err = &ErrInstruction{Pos: line.Pos, Mnemonic: line.Mnemonic}
		return
	}

	args := inst.Format.Operands()
	if len(args) != len(line.Operands) {
		err = &ErrInstruction{Pos: line.Pos, Mnemonic: line.Mnemonic}
		return
	}

	var target *Label
	fields := make([]field, len(args))
	for n, op := range line.Operands {
		arg := args[n]
		pos := Pos{}
		pos.Line, pos.Column = op.Position()
		fields[n].Pos = pos

		switch op := op.(type) {
		case *Number:
			if arg.Kind != isa.ARG_IMMEDIATE {
				err = &ErrInstruction{Pos: line.Pos, Mnemonic: line.Mnemonic}
				return
			}
			fields[n].value = op.Value
		case *Register:
			if arg.Kind != isa.ARG_REGISTER && arg.Kind != isa.ARG_TARGET {
				err = &ErrInstruction{Pos: line.Pos, Mnemonic: line.Mnemonic}
				return
			}
			fields[n].value, err = enc.register(op)
			if err != nil {
				return
			}
		case *Label:
			if arg.Kind != isa.ARG_TARGET {
				err = &ErrInstruction{Pos: line.Pos, Mnemonic: line.Mnemonic}
				return
			}
			target = op
			fields[n].value = enc.Isa.ReservedRegister
		}
	}

	if target != nil {
		var word Word
		word, err = enc.loadTarget(target)
		if err != nil {
			return
		}
		words = append(words, word)
	}

	word, err := enc.word(inst, fields)
	if err != nil {
		words = nil
		return
	}

	words = append(words, word)
	return
}

// register resolves a register operand to its index.
func (enc *Encoder) register(reg *Register) (index uint64, err error) {
	if len(reg.Alias) == 0 {
		index = reg.Index
		return
	}

	index, ok := enc.Isa.Register(reg.Alias)
	if !ok {
		err = &ErrRegisterAlias{Pos: reg.Pos, Alias: reg.Alias}
	}

	return
}

// loadTarget builds the word loading a label address into the reserved
// register.
func (enc *Encoder) loadTarget(lab *Label) (word Word, err error) {
	address, ok := enc.Labels[lab.Name]
	if !ok {
		err = &ErrLabelMissing{Pos: lab.Pos, Label: lab.Name}
		return
	}

	li := enc.Isa.LoadImmediate
	if li == nil {
		err = &ErrInstruction{Pos: lab.Pos, Mnemonic: lab.Name}
		return
	}

	var fields []field
	for _, arg := range li.Format.Operands() {
		value := enc.Isa.ReservedRegister
		if arg.Kind == isa.ARG_IMMEDIATE {
			value = uint64(address)
		}
		fields = append(fields, field{Pos: lab.Pos, value: value})
	}

	word, err = enc.word(li, fields)
	return
}

// word packs the opcode and field values of an instruction, filling the
// rest of the word with zeros.
func (enc *Encoder) word(inst *isa.Instruction, fields []field) (word Word, err error) {
	var text strings.Builder

	fmt.Fprintf(&text, "%0*b", enc.Isa.OpcodeWidth, inst.Opcode)

	n := 0
	for _, arg := range inst.Format.Args {
		if !arg.Operand() {
			text.WriteString(strings.Repeat("0", arg.Width))
			continue
		}
		fd := fields[n]
		n++
		if bits.Len64(fd.value) > arg.Width {
			err = &ErrFieldOverflow{Pos: fd.Pos, Field: arg.Name, Value: fd.value, Width: arg.Width}
			return
		}
		fmt.Fprintf(&text, "%0*b", arg.Width, fd.value)
	}

	text.WriteString(strings.Repeat("0", enc.Isa.WordWidth-text.Len()))

	word = Word(text.String())
	return
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/ezrec/quanta/mif"
)

// ArgKind is the kind of an instruction format field.
type ArgKind int

//go:generate go tool stringer -linecomment -type=ArgKind
const (
	ARG_REGISTER  = ArgKind(0) // register
	ARG_IMMEDIATE = ArgKind(1) // immediate
	ARG_PADDING   = ArgKind(2) // padding
	ARG_TARGET    = ArgKind(3) // target
)

// parseArgKind maps a description kind name to an ArgKind.
func parseArgKind(name string) (kind ArgKind, ok bool) {
	for kind = ARG_REGISTER; kind <= ARG_TARGET; kind++ {
		if kind.String() == name {
			ok = true
			return
		}
	}
	return
}

// ArgType is a named field type of an instruction format.
type ArgType struct {
	Name    string         // Name of the type in the description.
	Kind    ArgKind        // Field kind.
	Width   int            // Field width in bits.
	Pattern *regexp.Regexp // Surface syntax of immediate literals, if set.
}

// Operand returns true if the field is supplied by a source operand.
func (at *ArgType) Operand() bool {
	return at.Kind != ARG_PADDING
}

// Match returns true if a literal's surface text is accepted by the type.
func (at *ArgType) Match(text string) bool {
	return at.Pattern == nil || at.Pattern.MatchString(text)
}

// Format is an instruction word layout: the fields after the opcode.
type Format struct {
	Kind string     // Name of the format.
	Args []*ArgType // Fields in word order.
}

// Operands returns the fields supplied by source operands, in order.
func (fm *Format) Operands() (args []*ArgType) {
	for _, arg := range fm.Args {
		if arg.Operand() {
			args = append(args, arg)
		}
	}
	return
}

// Width returns the total width of the format fields.
func (fm *Format) Width() (width int) {
	for _, arg := range fm.Args {
		width += arg.Width
	}
	return
}

// Transfer returns true if the format has a label-or-register target field,
// and so is a control transfer.
func (fm *Format) Transfer() bool {
	return slices.ContainsFunc(fm.Args, func(arg *ArgType) bool { return arg.Kind == ARG_TARGET })
}

// Instruction is the description of a single mnemonic.
type Instruction struct {
	Mnemonic    string  // Source mnemonic.
	Name        string  // Human friendly name.
	Description string  // Human friendly description.
	Format      *Format // Word layout.
	Opcode      uint64  // Opcode field value.
}

func (inst *Instruction) String() string {
	return fmt.Sprintf("%v (%v, opcode %#02x)", inst.Mnemonic, inst.Format.Kind, inst.Opcode)
}

// ISA is an immutable instruction set model. It is safe for concurrent use.
type ISA struct {
	WordWidth        int              // Word width in bits.
	OpcodeWidth      int              // Opcode field width in bits.
	ReservedRegister uint64           // Register used for transfers to labels.
	LoadImmediate    *Instruction     // Instruction that loads label addresses.
	Depth            int              // Memory image depth in words.
	AddressRadix     mif.Radix        // Memory image address radix.
	DataRadix        mif.Radix        // Memory image data radix.
	args             map[string]*ArgType
	formats          map[string]*Format
	registers        map[string]uint64
	instructions     map[string]*Instruction
	opcodes          map[uint64]*Instruction
	order            []*Instruction
}

var reIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// fits returns true if value is representable in width bits.
func fits(value uint64, width int) bool {
	return width >= 64 || value < (uint64(1)<<width)
}

// New builds an ISA from a description, validating every part of it.
func New(desc *Description) (isa *ISA, err error) {
	model := &ISA{
		WordWidth:        desc.WordWidth,
		OpcodeWidth:      desc.OpcodeWidth,
		ReservedRegister: uint64(desc.ReservedRegister),
		Depth:            desc.Memory.Depth,
		args:             make(map[string]*ArgType, len(desc.Args)),
		formats:          make(map[string]*Format, len(desc.Formats)),
		registers:        make(map[string]uint64, len(desc.Registers)),
		instructions:     make(map[string]*Instruction, len(desc.Instruction)),
		opcodes:          make(map[uint64]*Instruction, len(desc.Instruction)),
	}

	fail := func(key string, e error) {
		err = &ErrDescription{Key: key, Err: e}
	}

	if model.WordWidth < 1 || model.WordWidth > 64 {
		fail("word_width", ErrWordWidth)
		return
	}

	if model.OpcodeWidth < 1 || model.OpcodeWidth >= model.WordWidth {
		fail("opcode_width", ErrOpcodeWidth)
		return
	}

	if _, e := mif.AddressWidth(model.Depth); e != nil {
		fail("memory.depth", e)
		return
	}

	radixes := map[string]*mif.Radix{
		"memory.address_radix": &model.AddressRadix,
		"memory.data_radix":    &model.DataRadix,
	}
	names := map[string]string{
		"memory.address_radix": desc.Memory.AddressRadix,
		"memory.data_radix":    desc.Memory.DataRadix,
	}
	for key, radix := range radixes {
		text := cmp.Or(names[key], string(mif.RADIX_BIN))
		value, e := mif.ParseRadix(text)
		if e != nil {
			fail(key, e)
			return
		}
		*radix = value
	}

	for _, name := range slices.Sorted(maps.Keys(desc.Args)) {
		ad := desc.Args[name]
		key := "args." + name
		kind, ok := parseArgKind(ad.Kind)
		if !ok {
			fail(key+".kind", ErrArgKind)
			return
		}
		if ad.Width < 1 || ad.Width >= model.WordWidth {
			fail(key+".width", ErrArgWidth)
			return
		}
		at := &ArgType{Name: name, Kind: kind, Width: ad.Width}
		if len(ad.Pattern) != 0 {
			re, e := regexp.Compile(ad.Pattern)
			if e != nil {
				fail(key+".pattern", fmt.Errorf("%w: %w", ErrArgPattern, e))
				return
			}
			at.Pattern = re
		}
		model.args[name] = at
	}

	for _, kind := range slices.Sorted(maps.Keys(desc.Formats)) {
		key := "formats." + kind
		fm := &Format{Kind: kind}
		targets := 0
		for _, name := range desc.Formats[kind] {
			at, ok := model.args[name]
			if !ok {
				fail(key, fmt.Errorf("%w: %v", ErrFormatArg, name))
				return
			}
			if at.Kind == ARG_TARGET {
				targets++
			}
			fm.Args = append(fm.Args, at)
		}
		if targets > 1 {
			fail(key, ErrFormatTarget)
			return
		}
		if model.OpcodeWidth+fm.Width() > model.WordWidth {
			fail(key, ErrFormatWidth)
			return
		}
		model.formats[kind] = fm
	}

	for _, name := range slices.Sorted(maps.Keys(desc.Registers)) {
		key := "registers." + name
		if !reIdentifier.MatchString(name) {
			fail(key, ErrRegisterName)
			return
		}
		index := desc.Registers[name]
		if index < 0 || !model.registerFits(uint64(index)) {
			fail(key, ErrRegisterRange)
			return
		}
		model.registers[name] = uint64(index)
	}

	for n, id := range desc.Instruction {
		key := fmt.Sprintf("instruction[%d]", n)
		if !reIdentifier.MatchString(id.Mnemonic) {
			fail(key+".mnemonic", ErrInstructionMnemonic)
			return
		}
		key = fmt.Sprintf("instruction.%v", id.Mnemonic)
		if _, ok := model.instructions[id.Mnemonic]; ok {
			fail(key, ErrInstructionDuplicate)
			return
		}
		fm, ok := model.formats[id.Format]
		if !ok {
			fail(key+".format", fmt.Errorf("%w: %v", ErrInstructionFormat, id.Format))
			return
		}
		if id.Opcode < 0 || !fits(uint64(id.Opcode), model.OpcodeWidth) {
			fail(key+".opcode", ErrOpcodeRange)
			return
		}
		if other, ok := model.opcodes[uint64(id.Opcode)]; ok {
			fail(key+".opcode", fmt.Errorf("%w: %v", ErrOpcodeDuplicate, other.Mnemonic))
			return
		}
		inst := &Instruction{
			Mnemonic:    id.Mnemonic,
			Name:        cmp.Or(id.Name, id.Mnemonic),
			Description: id.Description,
			Format:      fm,
			Opcode:      uint64(id.Opcode),
		}
		model.instructions[inst.Mnemonic] = inst
		model.opcodes[inst.Opcode] = inst
		model.order = append(model.order, inst)
	}

	if desc.ReservedRegister < 0 || !model.registerFits(model.ReservedRegister) {
		fail("reserved_register", ErrRegisterRange)
		return
	}

	if model.hasTransfer() {
		li, ok := model.instructions[desc.LoadImmediate]
		if !ok || !loadsImmediate(li.Format) {
			fail("load_immediate", ErrLoadImmediate)
			return
		}
		model.LoadImmediate = li
	}

	isa = model
	return
}

// registerFits returns true if a register index fits every register field.
func (isa *ISA) registerFits(index uint64) bool {
	for _, at := range isa.args {
		if at.Kind == ARG_REGISTER || at.Kind == ARG_TARGET {
			if !fits(index, at.Width) {
				return false
			}
		}
	}
	return true
}

// hasTransfer returns true if any instruction is a control transfer.
func (isa *ISA) hasTransfer() bool {
	return slices.ContainsFunc(isa.order, func(inst *Instruction) bool { return inst.Format.Transfer() })
}

// loadsImmediate returns true if a format takes exactly a register and an
// immediate operand.
func loadsImmediate(fm *Format) bool {
	var kinds []ArgKind
	for _, arg := range fm.Operands() {
		kinds = append(kinds, arg.Kind)
	}
	slices.Sort(kinds)
	return slices.Equal(kinds, []ArgKind{ARG_REGISTER, ARG_IMMEDIATE})
}

// Instruction looks up an instruction by mnemonic.
func (isa *ISA) Instruction(mnemonic string) (inst *Instruction, ok bool) {
	inst, ok = isa.instructions[mnemonic]
	return
}

// Opcode looks up an instruction by opcode.
func (isa *ISA) Opcode(opcode uint64) (inst *Instruction, ok bool) {
	inst, ok = isa.opcodes[opcode]
	return
}

// Format looks up a format by kind.
func (isa *ISA) Format(kind string) (fm *Format, ok bool) {
	fm, ok = isa.formats[kind]
	return
}

// Register looks up a register alias.
func (isa *ISA) Register(alias string) (index uint64, ok bool) {
	index, ok = isa.registers[alias]
	return
}

// Instructions iterates the instructions in description order.
func (isa *ISA) Instructions() iter.Seq[*Instruction] {
	return slices.Values(isa.order)
}

// Registers iterates the register aliases in name order.
func (isa *ISA) Registers() iter.Seq2[string, uint64] {
	return func(yield func(string, uint64) bool) {
		for _, name := range slices.Sorted(maps.Keys(isa.registers)) {
			if !yield(name, isa.registers[name]) {
				return
			}
		}
	}
}

// String summarizes the instruction set, one instruction per line.
func (isa *ISA) String() string {
	var text strings.Builder
	for inst := range isa.Instructions() {
		fmt.Fprintf(&text, "%-8v %#02x %-12v %v\n", inst.Mnemonic, inst.Opcode, inst.Format.Kind, inst.Name)
	}
	return text.String()
}

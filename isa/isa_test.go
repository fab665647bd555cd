package isa

import (
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/quanta/mif"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	isa := Default()
	assert.Same(isa, Default())

	assert.Equal(32, isa.WordWidth)
	assert.Equal(8, isa.OpcodeWidth)
	assert.Equal(uint64(31), isa.ReservedRegister)
	assert.Equal("li", isa.LoadImmediate.Mnemonic)
	assert.Equal(256, isa.Depth)
	assert.Equal(mif.RADIX_BIN, isa.AddressRadix)
	assert.Equal(mif.RADIX_BIN, isa.DataRadix)

	assert.Equal(23, len(slices.Collect(isa.Instructions())))

	add, ok := isa.Instruction("add")
	assert.True(ok)
	assert.Equal(uint64(0x05), add.Opcode)
	assert.Equal("DOUBLE_REG", add.Format.Kind)
	assert.Equal("Add", add.Name)

	_, ok = isa.Instruction("mul")
	assert.False(ok)

	inst, ok := isa.Opcode(0x12)
	assert.True(ok)
	assert.Equal("j", inst.Mnemonic)

	leds, ok := isa.Register("leds")
	assert.True(ok)
	assert.Equal(uint64(16), leds)

	_, ok = isa.Register("r0")
	assert.False(ok)

	var aliases []string
	for name := range isa.Registers() {
		aliases = append(aliases, name)
	}
	assert.Equal([]string{"a", "hex0", "hex1", "hex2", "leds", "ra", "switches", "zero"}, aliases)
}

func TestDefaultFormats(t *testing.T) {
	assert := assert.New(t)

	isa := Default()

	table := []struct {
		kind     string
		operands []ArgKind
		width    int
		transfer bool
	}{
		{"NOOP", nil, 0, false},
		{"IMMEDIATE", []ArgKind{ARG_REGISTER, ARG_IMMEDIATE}, 24, false},
		{"SINGLE_REG", []ArgKind{ARG_REGISTER}, 5, false},
		{"DOUBLE_REG", []ArgKind{ARG_REGISTER, ARG_REGISTER}, 10, false},
		{"MEMORY", []ArgKind{ARG_REGISTER, ARG_REGISTER}, 10, false},
		{"JUMP", []ArgKind{ARG_TARGET}, 15, true},
		{"BRANCH", []ArgKind{ARG_REGISTER, ARG_REGISTER, ARG_TARGET}, 15, true},
		{"CALL", []ArgKind{ARG_REGISTER, ARG_TARGET}, 15, true},
	}

	for _, entry := range table {
		fm, ok := isa.Format(entry.kind)
		if !assert.True(ok, entry.kind) {
			continue
		}
		var kinds []ArgKind
		for _, arg := range fm.Operands() {
			kinds = append(kinds, arg.Kind)
		}
		assert.Equal(entry.operands, kinds, entry.kind)
		assert.Equal(entry.width, fm.Width(), entry.kind)
		assert.Equal(entry.transfer, fm.Transfer(), entry.kind)
	}

	imm, _ := isa.Format("IMMEDIATE")
	literal := imm.Operands()[1]
	assert.True(literal.Match("65535"))
	assert.True(literal.Match("0x1f"))
	assert.True(literal.Match("0b101"))
	assert.False(literal.Match("0x"))
}

func TestArgKindString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("target", ARG_TARGET.String())
	assert.Equal("ArgKind(9)", ArgKind(9).String())

	kind, ok := parseArgKind("padding")
	assert.True(ok)
	assert.Equal(ARG_PADDING, kind)

	_, ok = parseArgKind("label")
	assert.False(ok)
}

// tinyDescription decodes a fresh copy of the TOML test description.
func tinyDescription(t *testing.T) *Description {
	inf, err := os.Open("testdata/tiny.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer inf.Close()

	desc, err := DecodeDescription("toml", inf)
	if err != nil {
		t.Fatal(err)
	}

	return desc
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	expected := tinyDescription(t)

	for _, ext := range []string{"toml", "yaml", "json", "star"} {
		path := "testdata/tiny." + ext

		inf, err := os.Open(path)
		if !assert.NoError(err, path) {
			continue
		}
		desc, err := DecodeDescription(ext, inf)
		inf.Close()
		assert.NoError(err, path)
		if diff := cmp.Diff(expected, desc, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("%v: description mismatch (-toml +%v):\n%s", path, ext, diff)
		}

		isa, err := Load(path)
		if !assert.NoError(err, path) {
			continue
		}

		assert.Equal(16, isa.WordWidth, path)
		assert.Equal(4, isa.OpcodeWidth, path)
		assert.Equal(64, isa.Depth, path)
		assert.Equal(mif.RADIX_HEX, isa.DataRadix, path)
		assert.Equal("ldi", isa.LoadImmediate.Mnemonic, path)

		jmp, ok := isa.Instruction("jmp")
		assert.True(ok, path)
		assert.Equal(uint64(0xf), jmp.Opcode, path)

		halt, _ := isa.Instruction("halt")
		assert.Equal("halt", halt.Name, path)

		load, _ := isa.Format("LOAD")
		assert.Equal(12, load.Width(), path)

		sp, ok := isa.Register("sp")
		assert.True(ok, path)
		assert.Equal(uint64(6), sp, path)
	}
}

func TestLoadErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Load("testdata/tiny.ini")
	assert.ErrorIs(err, ErrDescriptionFormat)

	_, err = Load("testdata/missing.toml")
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestDecodeDescriptionErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		format string
		text   string
		err    error
	}{
		{"toml", "word_width = 16\ncolour = 1\n", ErrDescriptionKey},
		{"star", "word_width = 16\ncolour = 1\n", ErrDescriptionKey},
		{"star", "word_width = 1.5\n", ErrStarlarkValue},
		{"star", "registers = {1: 2}\n", ErrStarlarkValue},
		{"ini", "word_width = 16\n", ErrDescriptionFormat},
		{"yaml", "colour: 1\n", nil},
		{"json", `{"colour": 1}`, nil},
		{"star", "word_width = \n", nil},
	}

	for _, entry := range table {
		desc, err := DecodeDescription(entry.format, strings.NewReader(entry.text))
		assert.Nil(desc, entry.text)
		assert.Error(err, entry.text)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.text)
		}
	}
}

func TestNewErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name   string
		key    string
		mutate func(desc *Description)
		err    error
	}{
		{"word zero", "word_width", func(d *Description) { d.WordWidth = 0 }, ErrWordWidth},
		{"word wide", "word_width", func(d *Description) { d.WordWidth = 65 }, ErrWordWidth},
		{"opcode wide", "opcode_width", func(d *Description) { d.OpcodeWidth = 16 }, ErrOpcodeWidth},
		{"depth", "memory.depth", func(d *Description) { d.Memory.Depth = 48 }, mif.ErrDepth(48)},
		{"radix", "memory.data_radix", func(d *Description) { d.Memory.DataRadix = "DEC" }, mif.ErrRadix("DEC")},
		{"arg kind", "args.r.kind", func(d *Description) { d.Args["r"] = ArgDescription{Kind: "reg", Width: 3} }, ErrArgKind},
		{"arg width", "args.k.width", func(d *Description) { d.Args["k"] = ArgDescription{Kind: "immediate"} }, ErrArgWidth},
		{"arg pattern", "args.k.pattern", func(d *Description) { d.Args["k"] = ArgDescription{Kind: "immediate", Width: 8, Pattern: "("} }, ErrArgPattern},
		{"format arg", "formats.PAIR", func(d *Description) { d.Formats["PAIR"] = []string{"r", "q"} }, ErrFormatArg},
		{"format width", "formats.PAIR", func(d *Description) { d.Formats["PAIR"] = []string{"k", "k"} }, ErrFormatWidth},
		{"format target", "formats.JUMP", func(d *Description) { d.Formats["JUMP"] = []string{"t", "t"} }, ErrFormatTarget},
		{"register range", "registers.sp", func(d *Description) { d.Registers["sp"] = 8 }, ErrRegisterRange},
		{"register name", "registers.2x", func(d *Description) { d.Registers["2x"] = 1 }, ErrRegisterName},
		{"format unknown", "instruction.jmp.format", func(d *Description) { d.Instruction[3].Format = "JUMPS" }, ErrInstructionFormat},
		{"duplicate", "instruction.halt", func(d *Description) { d.Instruction[2].Mnemonic = "halt" }, ErrInstructionDuplicate},
		{"mnemonic", "instruction[2].mnemonic", func(d *Description) { d.Instruction[2].Mnemonic = "a-b" }, ErrInstructionMnemonic},
		{"opcode range", "instruction.add.opcode", func(d *Description) { d.Instruction[2].Opcode = 16 }, ErrOpcodeRange},
		{"opcode duplicate", "instruction.add.opcode", func(d *Description) { d.Instruction[2].Opcode = 1 }, ErrOpcodeDuplicate},
		{"reserved", "reserved_register", func(d *Description) { d.ReservedRegister = 8 }, ErrRegisterRange},
		{"load shape", "load_immediate", func(d *Description) { d.LoadImmediate = "add" }, ErrLoadImmediate},
		{"load missing", "load_immediate", func(d *Description) { d.LoadImmediate = "nope" }, ErrLoadImmediate},
	}

	for _, entry := range table {
		desc := tinyDescription(t)
		entry.mutate(desc)

		isa, err := New(desc)
		assert.Nil(isa, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)

		var ed *ErrDescription
		if assert.ErrorAs(err, &ed, entry.name) {
			assert.Equal(entry.key, ed.Key, entry.name)
		}
	}
}

func TestNewWithoutTransfer(t *testing.T) {
	assert := assert.New(t)

	desc := tinyDescription(t)
	desc.Instruction = desc.Instruction[:3]
	desc.LoadImmediate = ""

	isa, err := New(desc)
	assert.NoError(err)
	assert.Nil(isa.LoadImmediate)
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	isa := Default()

	table := []struct {
		word string
		text string
	}{
		{"00000000000000000000000000000000", "noop"},
		{"00000001000000000000000000000101", "li $0, 5"},
		{"00000101000000000100000000000000", "add $0, $1"},
		{"00010010000000000011111000000000", "j $31"},
		{"00010011000100000111111000000000", "je $2, $1, $31"},
		{"00010111111100000011111000000000", "call $30, $31"},
		{"00000001111110001111111111111111", "li $31, 65535"},
	}

	for _, entry := range table {
		text, err := isa.Disassemble(entry.word)
		assert.NoError(err, entry.word)
		assert.Equal(entry.text, text, entry.word)
	}

	dec, err := isa.Decode("00000001000000000000000000000101")
	assert.NoError(err)
	assert.Equal("li", dec.Mnemonic)
	assert.Equal([]uint64{0, 5}, dec.Operands)

	_, err = isa.Decode("0101")
	assert.ErrorIs(err, ErrDecodeWord)

	_, err = isa.Decode("0000000100000000000000000000010x")
	assert.ErrorIs(err, ErrDecodeWord)

	_, err = isa.Decode("11111111000000000000000000000000")
	assert.ErrorIs(err, ErrDecodeOpcode)
}

func TestString(t *testing.T) {
	assert := assert.New(t)

	text := Default().String()
	assert.Equal(23, strings.Count(text, "\n"))
	assert.Contains(text, "Arithmetic Shift Right")

	add, _ := Default().Instruction("add")
	assert.Contains(add.String(), "DOUBLE_REG")
}

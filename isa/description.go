package isa

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Description is the declarative form of an ISA, as read from a TOML, YAML,
// JSON or Starlark document.
type Description struct {
	WordWidth        int                       `toml:"word_width" yaml:"word_width" json:"word_width"`
	OpcodeWidth      int                       `toml:"opcode_width" yaml:"opcode_width" json:"opcode_width"`
	ReservedRegister int                       `toml:"reserved_register" yaml:"reserved_register" json:"reserved_register"`
	LoadImmediate    string                    `toml:"load_immediate" yaml:"load_immediate" json:"load_immediate"`
	Memory           MemoryDescription         `toml:"memory" yaml:"memory" json:"memory"`
	Args             map[string]ArgDescription `toml:"args" yaml:"args" json:"args"`
	Formats          map[string][]string       `toml:"formats" yaml:"formats" json:"formats"`
	Registers        map[string]int            `toml:"registers" yaml:"registers" json:"registers"`
	Instruction      []InstructionDescription  `toml:"instruction" yaml:"instruction" json:"instruction"`
}

// MemoryDescription describes the memory image produced for the ISA.
type MemoryDescription struct {
	Depth        int    `toml:"depth" yaml:"depth" json:"depth"`
	AddressRadix string `toml:"address_radix" yaml:"address_radix" json:"address_radix"`
	DataRadix    string `toml:"data_radix" yaml:"data_radix" json:"data_radix"`
}

// ArgDescription describes a field type.
type ArgDescription struct {
	Kind    string `toml:"kind" yaml:"kind" json:"kind"`
	Width   int    `toml:"width" yaml:"width" json:"width"`
	Pattern string `toml:"pattern" yaml:"pattern" json:"pattern"`
}

// InstructionDescription describes a single instruction.
type InstructionDescription struct {
	Mnemonic    string `toml:"mnemonic" yaml:"mnemonic" json:"mnemonic"`
	Name        string `toml:"name" yaml:"name" json:"name"`
	Format      string `toml:"format" yaml:"format" json:"format"`
	Opcode      int    `toml:"opcode" yaml:"opcode" json:"opcode"`
	Description string `toml:"description" yaml:"description" json:"description"`
}

// Formats lists the description document formats understood by Parse.
var Formats = []string{"toml", "yaml", "yml", "json", "star"}

//go:embed quanta.toml
var quantaToml []byte

var quanta = sync.OnceValue(func() *ISA {
	isa, err := Parse("toml", bytes.NewReader(quantaToml))
	if err != nil {
		log.Fatalf("isa: embedded quanta description: %v", err)
	}
	return isa
})

// Default returns the built-in quanta instruction set.
func Default() *ISA {
	return quanta()
}

// DecodeDescription reads a description document of the given format.
func DecodeDescription(format string, input io.Reader) (desc *Description, err error) {
	desc = &Description{}

	switch strings.ToLower(format) {
	case "toml":
		var md toml.MetaData
		md, err = toml.NewDecoder(input).Decode(desc)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) != 0 {
				err = fmt.Errorf("%w: %v", ErrDescriptionKey, undecoded[0])
			}
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(input)
		dec.KnownFields(true)
		err = dec.Decode(desc)
		if err == io.EOF {
			err = nil
		}
	case "json":
		dec := json.NewDecoder(input)
		dec.DisallowUnknownFields()
		err = dec.Decode(desc)
	case "star":
		var data []byte
		data, err = io.ReadAll(input)
		if err == nil {
			desc, err = decodeStarlark("isa.star", data)
		}
	default:
		err = fmt.Errorf("%w: '%v' (not one of %v)", ErrDescriptionFormat, format, Formats)
	}

	if err != nil {
		desc = nil
	}

	return
}

// Parse reads and validates a description document of the given format.
func Parse(format string, input io.Reader) (isa *ISA, err error) {
	desc, err := DecodeDescription(format, input)
	if err != nil {
		return
	}

	isa, err = New(desc)
	return
}

// Load reads and validates a description file, choosing the document format
// from the file extension.
func Load(path string) (isa *ISA, err error) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if !slices.Contains(Formats, strings.ToLower(format)) {
		err = fmt.Errorf("%v: %w: '%v'", path, ErrDescriptionFormat, format)
		return
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	isa, err = Parse(format, inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}

	return
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"io"
	"log"
	"maps"
	"slices"

	"github.com/ezrec/quanta/isa"
)

// Assembler is a two pass assembler for an ISA. An Assembler keeps no state
// between runs, and may be used concurrently.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembled words.
	Isa     *isa.ISA // Instruction set to assemble for.
}

// New returns an assembler for an ISA, or for the default ISA if arch is nil.
func New(arch *isa.ISA) *Assembler {
	if arch == nil {
		arch = isa.Default()
	}

	return &Assembler{Isa: arch}
}

// Assemble assembles source text into a program. Lexical and syntax errors
// are all reported together, as an ErrLexicalList or ErrSyntaxList. No
// program is returned on any error.
func (asm *Assembler) Assemble(src string) (prog *Program, err error) {
	tokens, err := Lex(asm.Isa, src)
	if err != nil {
		return
	}

	lines, err := Parse(asm.Isa, tokens)
	if err != nil {
		return
	}

	labels, err := Resolve(lines)
	if err != nil {
		return
	}

	if asm.Verbose {
		for _, label := range slices.Sorted(maps.Keys(labels)) {
			log.Printf("label %v: %d\n", label, labels[label])
		}
	}

	enc := &Encoder{Isa: asm.Isa, Labels: labels}
	result := &Program{
		Isa:        asm.Isa,
		Statements: make([]Statement, 0, len(lines)),
		Labels:     labels,
	}

	address := 0
	for n := range lines {
		line := &lines[n]

		var words []Word
		words, err = enc.Encode(line)
		if err != nil {
			return
		}

		if len(words) != line.Size() {
			err = &ErrInstruction{Pos: line.Pos, Mnemonic: line.Mnemonic}
			return
		}

		if asm.Verbose {
			log.Printf("%v: %d %v %v\n", line.Line, address, line, words)
		}

		result.Statements = append(result.Statements, Statement{
			Source:  line,
			Address: address,
			Words:   words,
		})
		address += len(words)
	}

	prog = result
	return
}

// Parse reads and assembles a source stream.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	src, err := io.ReadAll(input)
	if err != nil {
		return
	}

	prog, err = asm.Assemble(string(src))
	return
}

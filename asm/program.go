package asm

import (
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/ezrec/quanta/internal"
	"github.com/ezrec/quanta/isa"
	"github.com/ezrec/quanta/mif"
)

// Statement is an assembled line.
type Statement struct {
	Source  *Line  // Parsed source line.
	Address int    // Address of the first word.
	Words   []Word // Assembled words, if any.
}

// Program is the result of an assembly run.
type Program struct {
	Isa        *isa.ISA
	Statements []Statement
	Labels     LabelTable
}

// Debug locates the statement assembling a word address.
type Debug struct {
	*Statement
	Index int // Index of the word within the statement.
}

// Debug returns the statement holding the word at address. The Statement
// is nil if no statement holds it.
func (prog *Program) Debug(address int) (dbg Debug) {
	for n, stmt := range prog.Statements {
		if address >= stmt.Address && address < stmt.Address+len(stmt.Words) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     address - stmt.Address,
			}
			break
		}
	}

	return
}

// Words iterates all program words in address order.
func (prog *Program) Words() iter.Seq[Word] {
	seqs := make([]iter.Seq[Word], len(prog.Statements))
	for n, stmt := range prog.Statements {
		seqs[n] = slices.Values(stmt.Words)
	}
	return internal.IterSeqConcat(seqs...)
}

// Image returns the memory image of the program, using the memory
// geometry of the ISA.
func (prog *Program) Image() (img *mif.Image, err error) {
	image := &mif.Image{
		Width:        prog.Isa.WordWidth,
		Depth:        prog.Isa.Depth,
		AddressRadix: prog.Isa.AddressRadix,
		DataRadix:    prog.Isa.DataRadix,
		Words:        []string{},
	}

	for word := range prog.Words() {
		image.Words = append(image.Words, string(word))
	}

	err = image.Validate()
	if err != nil {
		return
	}

	img = image
	return
}

// Listing writes an address, word, disassembly and source listing of the
// program. Label declarations are listed on their own lines.
func (prog *Program) Listing(w io.Writer) (err error) {
	addressWidth, err := mif.AddressWidth(prog.Isa.Depth)
	if err != nil {
		return
	}

	for _, stmt := range prog.Statements {
		line := stmt.Source
		if line.Declaration() {
			_, err = fmt.Fprintf(w, "%v\n", line)
			if err != nil {
				return
			}
			continue
		}

		for n, word := range stmt.Words {
			address := prog.Isa.AddressRadix.Format(uint64(stmt.Address+n), addressWidth)
			text, _ := prog.Isa.Disassemble(string(word))
			entry := fmt.Sprintf("\t%v:%v  %v", address, word, text)
			if n == len(stmt.Words)-1 {
				entry = fmt.Sprintf("%-*v ; %d: %v", len(address)+len(word)+24, entry, line.Line, line)
			}
			_, err = fmt.Fprintln(w, entry)
			if err != nil {
				return
			}
		}
	}

	return
}

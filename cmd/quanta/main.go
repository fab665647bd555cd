// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ezrec/quanta/asm"
	"github.com/ezrec/quanta/internal"
	"github.com/ezrec/quanta/isa"
	"github.com/ezrec/quanta/mif"
	"github.com/ezrec/quanta/translate"
)

// readInput reads a named file, or stdin for "-".
func readInput(path string) (data []byte, err error) {
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
		return
	}

	data, err = os.ReadFile(path)
	return
}

// createOutput opens a named file, or stdout for "-".
func createOutput(path string) (w io.WriteCloser, err error) {
	if path == "-" {
		w = os.Stdout
		return
	}

	w, err = os.Create(path)
	return
}

// disassemble writes the source form of every word of a memory image.
func disassemble(arch *isa.ISA, img *mif.Image, w io.Writer) (err error) {
	if img.Width != arch.WordWidth {
		err = fmt.Errorf("image WIDTH=%d, ISA word width %d", img.Width, arch.WordWidth)
		return
	}

	addressWidth, err := mif.AddressWidth(img.Depth)
	if err != nil {
		return
	}

	for address, word := range internal.IterSeqEnumerate(slices.Values(img.Words)) {
		addr := img.AddressRadix.Format(uint64(address), addressWidth)
		text, e := arch.Disassemble(word)
		if e != nil {
			_, err = fmt.Fprintf(w, "; %v: %v\n", addr, e)
		} else {
			_, err = fmt.Fprintf(w, "%-24v ; %v\n", text, addr)
		}
		if err != nil {
			return
		}
	}

	return
}

func main() {
	var isaPath string
	var output string
	var decode bool
	var verbose bool

	flag.StringVar(&isaPath, "isa", "", "ISA description file (.toml, .yaml, .json or .star), default is the built-in quanta ISA")
	flag.StringVar(&output, "o", "", "Output file, '-' for stdout (default: input file with a .mif extension)")
	flag.BoolVar(&decode, "d", false, "Disassemble a .mif file instead of assembling")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected one input file, got %v", os.Args[0], flag.Args())
	}

	input := flag.Arg(0)

	arch := isa.Default()
	if len(isaPath) != 0 {
		var err error
		arch, err = isa.Load(isaPath)
		if err != nil {
			log.Fatalf("%v: %v", isaPath, err)
		}
	}

	if verbose {
		log.Printf("isa:\n%v", arch)
	}

	data, err := readInput(input)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	if len(output) == 0 {
		if input == "-" || decode {
			output = "-"
		} else {
			output = strings.TrimSuffix(input, filepath.Ext(input)) + ".mif"
		}
	}

	if decode {
		img, err := mif.Parse(bytes.NewReader(data))
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}

		ouf, err := createOutput(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()

		err = disassemble(arch, img, ouf)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		return
	}

	assembler := asm.New(arch)
	assembler.Verbose = verbose

	src := string(data)
	prog, err := assembler.Assemble(src)
	if err != nil {
		os.Stderr.WriteString(asm.Report(src, err))
		os.Exit(1)
	}

	if verbose {
		err = prog.Listing(os.Stderr)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
	}

	img, err := prog.Image()
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	ouf, err := createOutput(output)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	_, err = img.WriteTo(ouf)
	if err == nil && output != "-" {
		err = ouf.Close()
	}
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	if output != "-" {
		translate.Fprintf(os.Stdout, "Assembler successful.\n")
	}
}

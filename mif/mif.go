// Package mif reads and writes memory initialization files, the addressed
// text memory images consumed by FPGA synthesis and simulation tools.
//
// An image written by this package has the form:
//
//	WIDTH=32;
//	DEPTH=256;
//	ADDRESS_RADIX=BIN;
//	DATA_RADIX=BIN;
//	CONTENT BEGIN
//		00000000:00000001000000000000000000000101;
//	END;
//
// with one content line per word, addressed sequentially from zero.
package mif

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Image is a memory image: a sequence of fixed width words.
type Image struct {
	Width        int      // Word width in bits.
	Depth        int      // Word capacity, a power of two.
	AddressRadix Radix    // Radix of the content addresses.
	DataRadix    Radix    // Radix of the content data.
	Words        []string // Words as binary digit strings of Width length.
}

// Validate checks the image geometry and every word.
func (img *Image) Validate() (err error) {
	if _, err = AddressWidth(img.Depth); err != nil {
		return
	}

	if _, err = ParseRadix(string(img.AddressRadix)); err != nil {
		return
	}

	if _, err = ParseRadix(string(img.DataRadix)); err != nil {
		return
	}

	if img.Width < 1 || img.Width > 64 {
		err = fmt.Errorf("%w: WIDTH=%d", ErrHeader, img.Width)
		return
	}

	if len(img.Words) > img.Depth {
		err = fmt.Errorf("%w: %d > %d", ErrImageFull, len(img.Words), img.Depth)
		return
	}

	for n, word := range img.Words {
		if len(word) != img.Width || strings.Trim(word, "01") != "" {
			err = &ErrWord{Address: n, Word: word}
			return
		}
	}

	return
}

// format renders the content line data for a word.
func (img *Image) format(word string) string {
	if img.DataRadix == RADIX_BIN {
		return word
	}
	value, _ := strconv.ParseUint(word, 2, 64)
	return img.DataRadix.Format(value, img.Width)
}

// WriteTo writes the image in MIF text form.
func (img *Image) WriteTo(w io.Writer) (n int64, err error) {
	err = img.Validate()
	if err != nil {
		return
	}

	addressWidth, _ := AddressWidth(img.Depth)

	var text strings.Builder

	fmt.Fprintf(&text, "WIDTH=%d;\n", img.Width)
	fmt.Fprintf(&text, "DEPTH=%d;\n", img.Depth)
	fmt.Fprintf(&text, "ADDRESS_RADIX=%v;\n", img.AddressRadix)
	fmt.Fprintf(&text, "DATA_RADIX=%v;\n", img.DataRadix)
	text.WriteString("CONTENT BEGIN\n")

	for address, word := range img.Words {
		text.WriteString("\t")
		text.WriteString(img.AddressRadix.Format(uint64(address), addressWidth))
		text.WriteString(":")
		text.WriteString(img.format(word))
		text.WriteString(";\n")
	}

	text.WriteString("END;\n")

	written, err := io.WriteString(w, text.String())
	n = int64(written)
	return
}

// String returns the MIF text form, or an empty string for an invalid image.
func (img *Image) String() string {
	var text strings.Builder
	_, err := img.WriteTo(&text)
	if err != nil {
		return ""
	}
	return text.String()
}

// Parse reads a MIF text image. Only sequential single-address content
// lines are accepted; address ranges are not.
func Parse(input io.Reader) (img *Image, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	image := &Image{
		AddressRadix: RADIX_BIN,
		DataRadix:    RADIX_BIN,
	}

	const (
		inHeader = iota
		inContent
		inTrailer
	)

	state := inHeader
	for scanner.Scan() {
		lineno++
		line = scanner.Text()

		text, _, _ := strings.Cut(line, "--")
		text = strings.TrimSpace(text)
		if len(text) == 0 {
			continue
		}

		switch state {
		case inHeader:
			if strings.EqualFold(text, "CONTENT BEGIN") {
				if image.Width == 0 || image.Depth == 0 {
					err = ErrHeader
					return
				}
				state = inContent
				continue
			}
			err = image.header(text)
			if err != nil {
				return
			}
		case inContent:
			if strings.EqualFold(text, "END;") {
				state = inTrailer
				continue
			}
			err = image.content(text)
			if err != nil {
				return
			}
		default:
			err = ErrContent
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if state != inTrailer {
		err = ErrFraming
		return
	}

	err = image.Validate()
	if err != nil {
		return
	}

	img = image
	return
}

// header parses a single KEY=VALUE; header line.
func (img *Image) header(text string) (err error) {
	body, ok := strings.CutSuffix(text, ";")
	if !ok {
		err = ErrHeader
		return
	}
	key, value, ok := strings.Cut(body, "=")
	if !ok {
		err = ErrHeader
		return
	}
	value = strings.TrimSpace(value)

	switch strings.ToUpper(strings.TrimSpace(key)) {
	case "WIDTH":
		img.Width, err = strconv.Atoi(value)
	case "DEPTH":
		img.Depth, err = strconv.Atoi(value)
	case "ADDRESS_RADIX":
		img.AddressRadix, err = ParseRadix(value)
	case "DATA_RADIX":
		img.DataRadix, err = ParseRadix(value)
	default:
		err = ErrHeader
	}

	return
}

// content parses a single ADDRESS:DATA; content line.
func (img *Image) content(text string) (err error) {
	body, ok := strings.CutSuffix(text, ";")
	if !ok {
		err = ErrContent
		return
	}
	addr, data, ok := strings.Cut(body, ":")
	if !ok {
		err = ErrContent
		return
	}

	address, err := img.AddressRadix.Parse(strings.TrimSpace(addr))
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrContent, err)
		return
	}
	if address != uint64(len(img.Words)) {
		err = ErrAddress
		return
	}

	value, err := img.DataRadix.Parse(strings.TrimSpace(data))
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrContent, err)
		return
	}

	word := RADIX_BIN.Format(value, img.Width)
	if len(word) != img.Width {
		err = &ErrWord{Address: len(img.Words), Word: word}
		return
	}

	img.Words = append(img.Words, word)
	return
}

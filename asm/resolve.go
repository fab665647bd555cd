package asm

// LabelTable maps label names to word addresses.
type LabelTable map[string]int

// Size returns the number of words the line assembles to. A control
// transfer to a label loads the label address into the reserved register
// first, and so takes two words. Declarations take none.
func (line *Line) Size() int {
	if line.Declaration() {
		return 0
	}

	for _, op := range line.Operands {
		if _, ok := op.(*Label); ok {
			return 2
		}
	}

	return 1
}

// Resolve assigns a word address to every declared label, and checks
// that every label reference is declared.
func Resolve(lines []Line) (labels LabelTable, err error) {
	table := LabelTable{}
	first := map[string]Pos{}

	address := 0
	for n := range lines {
		line := &lines[n]
		if line.Declaration() {
			if pos, ok := first[line.Label]; ok {
				err = &ErrLabelDuplicate{Pos: line.Pos, Label: line.Label, First: pos}
				return
			}
			first[line.Label] = line.Pos
			table[line.Label] = address
		}
		address += line.Size()
	}

	for _, line := range lines {
		for _, op := range line.Operands {
			lab, ok := op.(*Label)
			if !ok {
				continue
			}
			if _, ok := table[lab.Name]; !ok {
				err = &ErrLabelMissing{Pos: lab.Pos, Label: lab.Name}
				return
			}
		}
	}

	labels = table
	return
}

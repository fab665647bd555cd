// Package asm implements the assembler for quanta instruction sets.
//
// Assembly runs in four stages: Lex splits the source into tokens, Parse
// builds a list of label declarations and instructions, Resolve assigns an
// address to every label, and an Encoder packs each instruction into words
// of the ISA word width. A control transfer to a label assembles to two
// words: a load of the label address into the ISA reserved register, and the
// transfer through that register.
//
// Source syntax, one instruction or label declaration per production:
//
//	loop:                  ; label declaration
//	    li $0, 5           ; registers by number
//	    add $leds, $0      ; or by alias
//	    jne $0, $zero, loop
package asm

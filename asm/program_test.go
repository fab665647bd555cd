package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog, err := New(nil).Assemble("noop\nloop:\nj loop\nadd $0, $1")
	if err != nil {
		t.Fatal(err)
	}

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Statement)
	assert.Equal(1, dbg.Source.Line)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(1)
	assert.NotNil(dbg.Statement)
	assert.Equal(3, dbg.Source.Line)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(2)
	assert.NotNil(dbg.Statement)
	assert.Equal(3, dbg.Source.Line)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(3)
	assert.Equal("add", dbg.Source.Mnemonic)

	dbg = prog.Debug(4)
	assert.Nil(dbg.Statement)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Listing(t *testing.T) {
	assert := assert.New(t)

	prog, err := New(nil).Assemble("loop:\n  li $0, 5\n  j loop\n")
	if err != nil {
		t.Fatal(err)
	}

	var text strings.Builder
	err = prog.Listing(&text)
	assert.NoError(err)

	lines := strings.Split(strings.TrimSuffix(text.String(), "\n"), "\n")
	if !assert.Equal(4, len(lines)) {
		return
	}

	assert.Equal("loop:", lines[0])
	assert.True(strings.HasPrefix(lines[1], "\t00000000:00000001000000000000000000000101  li $0, 5"))
	assert.True(strings.HasSuffix(lines[1], "; 2: li $0, 5"))
	assert.Equal("\t00000001:00000001111110000000000000000000  li $31, 0", lines[2])
	assert.True(strings.HasPrefix(lines[3], "\t00000010:00010010000000000011111000000000  j $31"))
	assert.True(strings.HasSuffix(lines[3], "; 3: j loop"))
}

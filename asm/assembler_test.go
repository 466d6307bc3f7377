package asm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/usimt/isa"
)

func TestAssemblerEmpty(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Words))
	assert.Equal(KernelConfig{NumBlocks: 1, NumWarpsPerBlock: 1}, prog.Config)
}

func TestAssemblerProgram(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		".blocks 2",
		".warps 4",
		"loop:",
		"    addi x5, x1, 0",
		"    lw x6, 0(x1)",
		"    sw x5, 4(x1)",
		"    sx_slt s1, x5, x6",
		"    halt ; all done",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []isa.Bits{
		0x0000_1281, // addi x5, x1, 0
		0x0000_1316, // lw x6, 0(x1)
		0x000a_1219, // sw x5, 4(x1)
		0x000c_5093, // sx_slt s1, x5, x6
		0x0000_003f, // halt
	}
	assert.Equal(expected, prog.Words)

	assert.Equal(KernelConfig{NumBlocks: 2, NumWarpsPerBlock: 4}, prog.Config)
	assert.Equal(uint32(0), asm.Label["loop"])
}

func TestAssemblerDeterminism(t *testing.T) {
	assert := assert.New(t)

	program := strings.Join([]string{
		".warps 2",
		"top: addi x5, x1, 0",
		"sub x7, x5, x6",
		"sw x5, 0(x1)",
		"addi x6, x1, top",
		"halt",
	}, "\n")

	first, err := (&Assembler{}).Parse(strings.NewReader(program))
	assert.NoError(err)
	second, err := (&Assembler{}).Parse(strings.NewReader(program))
	assert.NoError(err)

	assert.Equal(first.Words, second.Words)
	assert.Equal(first.Config, second.Config)
}

func TestAssemblerLabelResolve(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		"start: addi x5, x1, end",
		"addi x6, x1, start",
		"mid:",
		"addi x7, x1, mid",
		"end: halt",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	// Label references resolve PC-relative to the referencing word.
	assert.Equal(int32(3), prog.Words[0].Imm())
	assert.Equal(int32(-1), prog.Words[1].Imm())
	assert.Equal(int32(0), prog.Words[2].Imm())

	assert.Equal(uint32(0), asm.Label["start"])
	assert.Equal(uint32(2), asm.Label["mid"])
	assert.Equal(uint32(3), asm.Label["end"])
}

func TestAssemblerLabelErrors(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader("dup:\ndup:\n"))
	assert.True(errors.Is(err, ErrLabelDuplicate))

	_, err = asm.Parse(strings.NewReader("addi x5, x1, nowhere\nhalt\n"))
	var missing ErrLabelMissing
	assert.True(errors.As(err, &missing))
	assert.Equal("nowhere", string(missing))
}

func TestAssemblerDirectiveErrors(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader(".blocks 2\n.blocks 3\n"))
	assert.True(errors.Is(err, ErrDirectiveDuplicate))

	_, err = asm.Parse(strings.NewReader(".warps 2\n.warps 2\n"))
	assert.True(errors.Is(err, ErrDirectiveDuplicate))

	// Directives precede the first instruction.
	_, err = asm.Parse(strings.NewReader("halt\n.blocks 2\n"))
	assert.True(errors.Is(err, ErrDirectiveOrder))
}

func TestAssemblerImmediateRange(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader("addi x5, x1, 2047\naddi x5, x1, -2048\n"))
	assert.NoError(err)
	assert.Equal(int32(2047), prog.Words[0].Imm())
	assert.Equal(int32(-2048), prog.Words[1].Imm())

	_, err = asm.Parse(strings.NewReader("addi x5, x1, 2048\n"))
	var immErr ErrImmediateRange
	assert.True(errors.As(err, &immErr))

	_, err = asm.Parse(strings.NewReader("sw x5, -2049(x1)\n"))
	assert.True(errors.As(err, &immErr))
}

func TestAssemblerReservedRegisters(t *testing.T) {
	assert := assert.New(t)

	table := []string{
		"addi x0, x1, 0",
		"addi x1, x1, 0",
		"addi x2, x1, 0",
		"addi x3, x1, 0",
		"add x0, x1, x5",
		"lw x2, 0(x1)",
		"addi.s s0, s4, 0",
	}

	for _, text := range table {
		_, err := (&Assembler{}).Parse(strings.NewReader(text))
		var reserved ErrRegisterReserved
		assert.True(errors.As(err, &reserved), text)
	}

	// Scalar s1 is the execution mask: a legal destination.
	_, err := (&Assembler{}).Parse(strings.NewReader("sx_slti s1, x5, 5\nhalt\n"))
	assert.NoError(err)
}

func TestAssemblerErrSyntax(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		prog string
		line int
	}{
		{"bogus x5", 1},
		{"addi x5, x1\n", 1},
		{"halt\naddi s5, x1, 0\n", 2},
		{".blocks 0", 1},
		{".blocks 2 2", 1},
		{"addi x5, x1, 0 extra", 1},
		{"halt\nhalt\nx99, x1\n", 3},
	}

	for _, entry := range table {
		_, err := (&Assembler{}).Parse(strings.NewReader(entry.prog))
		assert.Error(err, entry.prog)
		var syntax ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.prog) {
			assert.Equal(entry.line, syntax.LineNo, entry.prog)
		}
	}
}

func TestAssemblerErrRendering(t *testing.T) {
	assert := assert.New(t)

	_, err := (&Assembler{}).Parse(strings.NewReader("halt\naddi s5, x1, 0\n"))
	assert.Error(err)
	assert.Contains(err.Error(), "2:6: Register 's5' should be vector")
}

func TestAssemblerCollectsAllLines(t *testing.T) {
	assert := assert.New(t)

	// Both bad lines are reported, not just the first.
	_, err := (&Assembler{}).Parse(strings.NewReader("addi s5, x1, 0\naddi x5, s4, 0\n"))
	assert.Error(err)
	assert.Contains(err.Error(), "'s5' should be vector")
	assert.Contains(err.Error(), "'s4' should be vector")
}

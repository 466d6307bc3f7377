package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func x(n int32) RegisterData { return RegisterData{Type: REG_VECTOR, Number: n} }
func s(n int32) RegisterData { return RegisterData{Type: REG_SCALAR, Number: n} }

func TestLookupMnemonic(t *testing.T) {
	assert := assert.New(t)

	m, ok := LookupMnemonic("addi")
	assert.True(ok)
	assert.Equal(MN_ADDI, m.Name)
	assert.False(m.Scalar)

	m, ok = LookupMnemonic("ADDI.S")
	assert.True(ok)
	assert.Equal(MN_ADDI, m.Name)
	assert.True(m.Scalar)

	m, ok = LookupMnemonic("sx_slti")
	assert.True(ok)
	assert.Equal(MN_SX_SLTI, m.Name)
	assert.False(m.Scalar)

	_, ok = LookupMnemonic("halt.s")
	assert.False(ok)
	_, ok = LookupMnemonic("sx_slt.s")
	assert.False(ok)
	_, ok = LookupMnemonic("mov")
	assert.False(ok)
}

func TestRegisterString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("x5", x(5).String())
	assert.Equal("s1", s(1).String())
	assert.Equal("pc", RegisterData{Type: REG_PC}.String())
}

func TestBitsItype(t *testing.T) {
	assert := assert.New(t)

	word := MakeItype(Mnemonic{Name: MN_ADDI}, x(5), x(1), -1)
	assert.Equal(MN_ADDI, word.Opcode())
	assert.False(word.Scalar())
	assert.Equal(int32(5), word.Rd())
	assert.Equal(int32(1), word.Rs1())
	assert.Equal(int32(-1), word.Imm())
	assert.Equal("addi x5, x1, -1", word.String())

	word = MakeItype(Mnemonic{Name: MN_ADDI, Scalar: true}, s(5), s(4), 7)
	assert.True(word.Scalar())
	assert.Equal("addi.s s5, s4, 7", word.String())

	word = MakeItype(Mnemonic{Name: MN_LW}, x(6), x(1), 0)
	assert.Equal(MN_LW, word.Opcode())
	assert.Equal("lw x6, 0(x1)", word.String())
}

func TestBitsRtype(t *testing.T) {
	assert := assert.New(t)

	word := MakeRtype(Mnemonic{Name: MN_ADD}, x(7), x(6), x(5))
	assert.Equal(MN_ADD, word.Opcode())
	assert.Equal(int32(7), word.Rd())
	assert.Equal(int32(6), word.Rs1())
	assert.Equal(int32(5), word.Rs2())
	assert.Equal("add x7, x6, x5", word.String())

	word = MakeRtype(Mnemonic{Name: MN_SX_SLT}, s(1), x(5), x(6))
	assert.Equal("sx_slt s1, x5, x6", word.String())
}

func TestBitsStype(t *testing.T) {
	assert := assert.New(t)

	// sw x5, -4(x1): rs2 carries the address base, rs1 the value.
	word := MakeStype(Mnemonic{Name: MN_SW}, x(1), x(5), -4)
	assert.Equal(MN_SW, word.Opcode())
	assert.Equal(int32(1), word.Rs1())
	assert.Equal(int32(5), word.Rs2())
	assert.Equal(int32(-4), word.Imm())
	assert.Equal("sw x5, -4(x1)", word.String())

	word = MakeStype(Mnemonic{Name: MN_SW}, x(1), x(5), 2047)
	assert.Equal(int32(2047), word.Imm())

	word = MakeStype(Mnemonic{Name: MN_SW}, x(1), x(5), -2048)
	assert.Equal(int32(-2048), word.Imm())
}

func TestBitsHalt(t *testing.T) {
	assert := assert.New(t)

	word := MakeHalt()
	assert.Equal(MN_HALT, word.Opcode())
	assert.Equal("halt", word.String())
}

func TestBitsWithMask(t *testing.T) {
	assert := assert.New(t)

	word := MakeItype(Mnemonic{Name: MN_LW}, x(1), x(0), 0)
	assert.False(word.Scalar())

	masked := word.WithMask()
	assert.True(masked.Scalar())
	assert.Equal(word.Opcode(), masked.Opcode())
	assert.Equal(word.Rd(), masked.Rd())
	assert.Equal(word.Imm(), masked.Imm())
}

func TestBitsImmRange(t *testing.T) {
	assert := assert.New(t)

	for _, imm := range []int32{Imm12Min, -1, 0, 1, Imm12Max} {
		word := MakeItype(Mnemonic{Name: MN_ADDI}, x(5), x(1), imm)
		assert.Equal(imm, word.Imm(), imm)
		word = MakeStype(Mnemonic{Name: MN_SW}, x(1), x(5), imm)
		assert.Equal(imm, word.Imm(), imm)
	}
}

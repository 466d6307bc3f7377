package isa

import (
	"fmt"
)

// Bits is one encoded 32-bit instruction word.
//
// Field layout:
//
//	[5:0]   opcode
//	[6]     scalar/mask flag
//	[11:7]  rd (I-type, R-type); imm[4:0] (S-type)
//	[16:12] rs1
//	[21:17] rs2 (R-type, S-type)
//	[31:20] imm12 (I-type)
//	[31:25] imm[11:5] (S-type)
type Bits uint32

const (
	// Imm12Min and Imm12Max bound the signed 12-bit immediate field.
	Imm12Min = -2048
	Imm12Max = 2047
)

func makeWord(m Mnemonic) Bits {
	word := Bits(m.Name) & 0x3f
	if m.Scalar {
		word |= 1 << 6
	}
	return word
}

// MakeItype encodes a register-immediate instruction, including loads:
// rd <- rs1 op imm, or rd <- mem[rs1+imm].
func MakeItype(m Mnemonic, rd, rs1 RegisterData, imm int32) Bits {
	return makeWord(m) |
		Bits(rd.Number&0x1f)<<7 |
		Bits(rs1.Number&0x1f)<<12 |
		Bits(uint32(imm)&0xfff)<<20
}

// MakeRtype encodes a register-register instruction: rd <- rs1 op rs2.
func MakeRtype(m Mnemonic, rd, rs1, rs2 RegisterData) Bits {
	return makeWord(m) |
		Bits(rd.Number&0x1f)<<7 |
		Bits(rs1.Number&0x1f)<<12 |
		Bits(rs2.Number&0x1f)<<17
}

// MakeStype encodes a store: mem[rs2+imm] <- rs1. Note the operand
// roles: rs2 carries the address base, rs1 the stored value.
func MakeStype(m Mnemonic, rs1, rs2 RegisterData, imm int32) Bits {
	return makeWord(m) |
		Bits(uint32(imm)&0x1f)<<7 |
		Bits(rs1.Number&0x1f)<<12 |
		Bits(rs2.Number&0x1f)<<17 |
		Bits((uint32(imm)>>5)&0x7f)<<25
}

// MakeHalt encodes the halt instruction.
func MakeHalt() Bits {
	return makeWord(Mnemonic{Name: MN_HALT})
}

// WithMask returns the word with the mask bit set. On a load this turns
// the destination into the scalar file, so a load to register 1 replaces
// the warp execution mask.
func (b Bits) WithMask() Bits {
	return b | 1<<6
}

// Opcode returns the operation name from bits [5:0].
func (b Bits) Opcode() MnemonicName {
	return MnemonicName(b & 0x3f)
}

// Scalar reports the scalar/mask flag, bit 6.
func (b Bits) Scalar() bool {
	return (b>>6)&1 != 0
}

// Rd returns the destination register index.
func (b Bits) Rd() int32 {
	return int32((b >> 7) & 0x1f)
}

// Rs1 returns the first source register index.
func (b Bits) Rs1() int32 {
	return int32((b >> 12) & 0x1f)
}

// Rs2 returns the second source register index.
func (b Bits) Rs2() int32 {
	return int32((b >> 17) & 0x1f)
}

// Imm returns the sign-extended 12-bit immediate. Stores reassemble the
// split field; all other classes read bits [31:20].
func (b Bits) Imm() int32 {
	var imm uint32
	if b.Opcode().IsStore() {
		imm = (uint32(b)>>25)<<5 | (uint32(b)>>7)&0x1f
	} else {
		imm = uint32(b) >> 20
	}
	return int32(imm<<20) >> 20
}

// Mnemonic returns the decoded mnemonic.
func (b Bits) Mnemonic() Mnemonic {
	return Mnemonic{Name: b.Opcode(), Scalar: b.Scalar()}
}

// String returns a disassembly of the word.
func (b Bits) String() string {
	m := b.Mnemonic()
	reg := RegisterData{Type: REG_VECTOR}
	if m.Scalar {
		reg.Type = REG_SCALAR
	}
	rd := RegisterData{Type: reg.Type, Number: b.Rd()}
	rs1 := RegisterData{Type: reg.Type, Number: b.Rs1()}
	rs2 := RegisterData{Type: reg.Type, Number: b.Rs2()}

	switch {
	case m.Name == MN_HALT:
		return m.String()
	case m.Name == MN_SX_SLTI:
		rd.Type = REG_SCALAR
		rs1.Type = REG_VECTOR
		return fmt.Sprintf("%v %v, %v, %d", m, rd, rs1, b.Imm())
	case m.Name == MN_SX_SLT:
		rd.Type = REG_SCALAR
		rs1.Type = REG_VECTOR
		rs2.Type = REG_VECTOR
		return fmt.Sprintf("%v %v, %v, %v", m, rd, rs1, rs2)
	case m.Name.IsItypeArithmetic():
		return fmt.Sprintf("%v %v, %v, %d", m, rd, rs1, b.Imm())
	case m.Name.IsRtype():
		return fmt.Sprintf("%v %v, %v, %v", m, rd, rs1, rs2)
	case m.Name.IsLoad():
		return fmt.Sprintf("%v %v, %d(%v)", m, rd, b.Imm(), rs1)
	case m.Name.IsStore():
		return fmt.Sprintf("%v %v, %d(%v)", m, rs2, b.Imm(), rs1)
	}
	return fmt.Sprintf("Bits(%#08x)", uint32(b))
}

package isa

import (
	"fmt"
	"strings"
)

// MnemonicName identifies one operation of the instruction set. The
// numeric value is the 6-bit opcode field of the encoded word.
type MnemonicName int

//go:generate go tool stringer -linecomment -type=MnemonicName
const (
	MN_ADDI    = MnemonicName(0x01) // addi
	MN_SLTI    = MnemonicName(0x02) // slti
	MN_XORI    = MnemonicName(0x03) // xori
	MN_ORI     = MnemonicName(0x04) // ori
	MN_ANDI    = MnemonicName(0x05) // andi
	MN_SLLI    = MnemonicName(0x06) // slli
	MN_SRLI    = MnemonicName(0x07) // srli
	MN_SRAI    = MnemonicName(0x08) // srai
	MN_SX_SLTI = MnemonicName(0x09) // sx_slti
	MN_ADD     = MnemonicName(0x0a) // add
	MN_SUB     = MnemonicName(0x0b) // sub
	MN_SLL     = MnemonicName(0x0c) // sll
	MN_SLT     = MnemonicName(0x0d) // slt
	MN_XOR     = MnemonicName(0x0e) // xor
	MN_SRL     = MnemonicName(0x0f) // srl
	MN_SRA     = MnemonicName(0x10) // sra
	MN_OR      = MnemonicName(0x11) // or
	MN_AND     = MnemonicName(0x12) // and
	MN_SX_SLT  = MnemonicName(0x13) // sx_slt
	MN_LB      = MnemonicName(0x14) // lb
	MN_LH      = MnemonicName(0x15) // lh
	MN_LW      = MnemonicName(0x16) // lw
	MN_SB      = MnemonicName(0x17) // sb
	MN_SH      = MnemonicName(0x18) // sh
	MN_SW      = MnemonicName(0x19) // sw
	MN_HALT    = MnemonicName(0x3f) // halt
)

// IsItypeArithmetic reports register-immediate arithmetic operations.
func (name MnemonicName) IsItypeArithmetic() bool {
	return name >= MN_ADDI && name <= MN_SX_SLTI
}

// IsRtype reports register-register operations.
func (name MnemonicName) IsRtype() bool {
	return name >= MN_ADD && name <= MN_SX_SLT
}

// IsLoad reports memory load operations.
func (name MnemonicName) IsLoad() bool {
	return name >= MN_LB && name <= MN_LW
}

// IsStore reports memory store operations.
func (name MnemonicName) IsStore() bool {
	return name >= MN_SB && name <= MN_SW
}

// Mnemonic is an operation name plus its width variant. The scalar
// variant of an opcode operates on the scalar register file and encodes
// as bit 6 of the instruction word.
type Mnemonic struct {
	Name   MnemonicName
	Scalar bool
}

// String returns the assembly spelling of the mnemonic.
func (m Mnemonic) String() string {
	if m.Scalar {
		return m.Name.String() + ".s"
	}
	return m.Name.String()
}

// mnemonicMap maps assembly spellings to mnemonics. Scalar forms carry a
// ".s" suffix. HALT and the cross-width opcodes have no scalar form.
var mnemonicMap = map[string]Mnemonic{}

func init() {
	names := []MnemonicName{
		MN_ADDI, MN_SLTI, MN_XORI, MN_ORI, MN_ANDI, MN_SLLI, MN_SRLI, MN_SRAI,
		MN_ADD, MN_SUB, MN_SLL, MN_SLT, MN_XOR, MN_SRL, MN_SRA, MN_OR, MN_AND,
		MN_LB, MN_LH, MN_LW, MN_SB, MN_SH, MN_SW,
	}
	for _, name := range names {
		mnemonicMap[name.String()] = Mnemonic{Name: name}
		mnemonicMap[name.String()+".s"] = Mnemonic{Name: name, Scalar: true}
	}
	mnemonicMap[MN_SX_SLTI.String()] = Mnemonic{Name: MN_SX_SLTI}
	mnemonicMap[MN_SX_SLT.String()] = Mnemonic{Name: MN_SX_SLT}
	mnemonicMap[MN_HALT.String()] = Mnemonic{Name: MN_HALT}
}

// LookupMnemonic finds the mnemonic for an assembly spelling.
// Spellings are case-insensitive.
func LookupMnemonic(word string) (m Mnemonic, ok bool) {
	m, ok = mnemonicMap[strings.ToLower(word)]
	return
}

// RegisterType selects the register file an operand addresses.
type RegisterType int

//go:generate go tool stringer -linecomment -type=RegisterType
const (
	REG_VECTOR = RegisterType(0) // x
	REG_SCALAR = RegisterType(1) // s
	REG_PC     = RegisterType(2) // pc
)

// Register file geometry.
const (
	NUM_REGISTERS = 32 // Registers per file.
	WARP_SIZE     = 32 // Threads per warp.
)

// Reserved register indexes. The hardware provides these; they are not
// writable destinations.
const (
	REG_ZERO       = 0 // Always zero.
	REG_THREAD_ID  = 1 // Vector: per-thread id. Scalar: execution mask.
	REG_BLOCK_ID   = 2 // Block index.
	REG_BLOCK_SIZE = 3 // Threads per block.
)

// RegisterData is a register operand. Number is unused (zero) for PC.
type RegisterData struct {
	Type   RegisterType
	Number int32
}

// String returns the assembly spelling, e.g. "x5", "s1" or "pc".
func (reg RegisterData) String() string {
	if reg.Type == REG_PC {
		return reg.Type.String()
	}
	return fmt.Sprintf("%v%d", reg.Type, reg.Number)
}

// IsScalar reports whether the register addresses the scalar file.
func (reg RegisterData) IsScalar() bool {
	return reg.Type == REG_SCALAR
}

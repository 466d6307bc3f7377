// Package isa defines the μSIMT instruction set: the mnemonic and register
// tables shared by the assembler and the device model, and the 32-bit
// instruction word encoding.
//
// An instruction word packs a 6-bit opcode in bits [5:0] and the
// scalar/mask flag in bit 6. The remaining fields (rd, rs1, rs2, imm12)
// sit at fixed offsets per instruction class. The opcode values here are
// the contract between the assembler and the device decoder.
package isa

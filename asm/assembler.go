// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package asm implements the assembler front-end: a lexer and line
// parser producing a typed line AST, and a two-pass encoder lowering the
// AST into the fixed-width instruction stream plus the kernel launch
// configuration derived from directives.
package asm

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"log"

	"github.com/ezrec/usimt/isa"
)

// KernelConfig is the launch configuration of an assembled program.
type KernelConfig struct {
	NumBlocks            uint32
	NumWarpsPerBlock     uint32
	BaseInstructionsAddr uint32
	BaseDataAddr         uint32
}

// Program is an assembled instruction stream plus its kernel config.
type Program struct {
	Words  []isa.Bits
	Config KernelConfig
}

// Codes iterates the program as (pc, word) pairs.
func (prog *Program) Codes() iter.Seq2[uint32, isa.Bits] {
	return func(yield func(pc uint32, word isa.Bits) bool) {
		for pc, word := range prog.Words {
			if !yield(uint32(pc), word) {
				return
			}
		}
	}
}

// Assembler lowers source text into a Program.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Label map[string]uint32 // Map of labels to instruction indexes.
}

type sourceLine struct {
	lineNo int
	text   string
	line   Line
}

// Parse assembles an input stream. Diagnostics from every line are
// collected and returned joined; the encoder stops at the first error
// of a line but keeps walking the remaining lines.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var entries []sourceLine
	var errs []error

	fail := func(lineNo int, text string, list ...error) {
		for _, e := range list {
			errs = append(errs, ErrSyntax{LineNo: lineNo, Line: text, Err: e})
		}
	}

	scanner := bufio.NewScanner(input)
	lineNo := 0
	for scanner.Scan() {
		text := scanner.Text()
		lineNo++

		if asm.Verbose {
			log.Printf("%v: %v\n", lineNo, text)
		}

		tokens, lexErrs := Lex(text)
		if len(lexErrs) != 0 {
			for _, e := range lexErrs {
				fail(lineNo, text, e)
			}
			continue
		}

		line, parseErrs := ParseLine(tokens)
		if len(parseErrs) != 0 {
			for _, e := range parseErrs {
				fail(lineNo, text, e)
			}
			continue
		}
		if line == nil {
			continue
		}

		entries = append(entries, sourceLine{lineNo: lineNo, text: text, line: line})
	}
	if err = scanner.Err(); err != nil {
		return
	}

	// First pass: assign a PC to every instruction and collect labels.
	asm.Label = make(map[string]uint32, 16)
	pc := uint32(0)
	for _, entry := range entries {
		switch line := entry.line.(type) {
		case JustLabel:
			if _, ok := asm.Label[line.Label]; ok {
				fail(entry.lineNo, entry.text, ErrLabelDuplicate)
				continue
			}
			asm.Label[line.Label] = pc
		case Instruction:
			if line.Label != "" {
				if _, ok := asm.Label[line.Label]; ok {
					fail(entry.lineNo, entry.text, ErrLabelDuplicate)
				} else {
					asm.Label[line.Label] = pc
				}
			}
			pc++
		}
	}

	// Second pass: fold directives into the config and encode.
	config := KernelConfig{NumBlocks: 1, NumWarpsPerBlock: 1}
	var blocksSeen, warpsSeen bool
	var words []isa.Bits
	pc = 0
	for _, entry := range entries {
		switch line := entry.line.(type) {
		case BlocksDirective:
			if blocksSeen {
				fail(entry.lineNo, entry.text, ErrDirectiveDuplicate)
				continue
			}
			if pc != 0 {
				fail(entry.lineNo, entry.text, ErrDirectiveOrder)
				continue
			}
			blocksSeen = true
			config.NumBlocks = line.Number
		case WarpsDirective:
			if warpsSeen {
				fail(entry.lineNo, entry.text, ErrDirectiveDuplicate)
				continue
			}
			if pc != 0 {
				fail(entry.lineNo, entry.text, ErrDirectiveOrder)
				continue
			}
			warpsSeen = true
			config.NumWarpsPerBlock = line.Number
		case Instruction:
			word, encodeErr := asm.encode(line, pc)
			pc++
			if encodeErr != nil {
				fail(entry.lineNo, entry.text, encodeErr)
				continue
			}
			words = append(words, word)
		}
	}

	if len(errs) != 0 {
		err = errors.Join(errs...)
		return
	}

	prog = &Program{Words: words, Config: config}
	return
}

// encode lowers one instruction. It fails fast on the first error.
func (asm *Assembler) encode(instruction Instruction, pc uint32) (word isa.Bits, err error) {
	mnemonic := instruction.Mnemonic

	switch ops := instruction.Operands.(type) {
	case Itype:
		if err = checkWritable(ops.Rd); err != nil {
			return
		}
		var imm int32
		imm, err = asm.resolveImm(ops.Imm, pc)
		if err != nil {
			return
		}
		word = isa.MakeItype(mnemonic, ops.Rd, ops.Rs1, imm)
	case Rtype:
		if err = checkWritable(ops.Rd); err != nil {
			return
		}
		word = isa.MakeRtype(mnemonic, ops.Rd, ops.Rs1, ops.Rs2)
	case Stype:
		var imm int32
		imm, err = asm.resolveImm(ops.Imm, pc)
		if err != nil {
			return
		}
		word = isa.MakeStype(mnemonic, ops.Rs1, ops.Rs2, imm)
	default:
		word = isa.MakeHalt()
	}

	return
}

// resolveImm resolves a label reference to a PC-relative offset and
// range-checks the immediate.
func (asm *Assembler) resolveImm(imm Imm, pc uint32) (value int32, err error) {
	value = imm.Value
	if imm.Label != "" {
		target, ok := asm.Label[imm.Label]
		if !ok {
			err = ErrLabelMissing(imm.Label)
			return
		}
		value = int32(target) - int32(pc)
	}
	if value < isa.Imm12Min || value > isa.Imm12Max {
		err = ErrImmediateRange(value)
	}
	return
}

// checkWritable rejects the reserved destination registers: vector
// x0..x3 carry zero, thread id, block id and block size; scalar s0 is
// zero. Scalar s1 is the execution mask and is a legal destination.
func checkWritable(rd isa.RegisterData) error {
	reserved := false
	switch rd.Type {
	case isa.REG_VECTOR:
		reserved = rd.Number <= isa.REG_BLOCK_SIZE
	case isa.REG_SCALAR:
		reserved = rd.Number == isa.REG_ZERO
	case isa.REG_PC:
		reserved = true
	}
	if reserved {
		return ErrRegisterReserved(rd)
	}
	return nil
}

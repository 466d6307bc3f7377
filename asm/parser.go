package asm

import (
	"fmt"

	"github.com/ezrec/usimt/isa"
)

// Line is one parsed source line: a bare label, a directive, or an
// instruction. The set of variants is closed.
type Line interface {
	isLine()
	String() string
}

// JustLabel is a line holding only a label definition.
type JustLabel struct {
	Label string
}

// BlocksDirective sets the number of blocks in the kernel launch.
type BlocksDirective struct {
	Number uint32
}

// WarpsDirective sets the number of warps per block.
type WarpsDirective struct {
	Number uint32
}

// Imm is an immediate operand: either a literal value, or a label
// reference resolved PC-relative by the assembler.
type Imm struct {
	Value int32
	Label string
}

func (imm Imm) String() string {
	if imm.Label != "" {
		return imm.Label
	}
	return fmt.Sprintf("%d", imm.Value)
}

// Operands holds one of the operand shapes of an instruction.
type Operands interface {
	isOperands()
}

// Itype operands: rd, rs1 and a 12-bit immediate. Used by the
// register-immediate arithmetic operations and by loads.
type Itype struct {
	Rd  isa.RegisterData
	Rs1 isa.RegisterData
	Imm Imm
}

// Rtype operands: rd and two source registers.
type Rtype struct {
	Rd  isa.RegisterData
	Rs1 isa.RegisterData
	Rs2 isa.RegisterData
}

// Stype operands: two source registers and a 12-bit immediate. rs2 is
// written first in assembly; rs1 sits inside the parentheses.
type Stype struct {
	Rs1 isa.RegisterData
	Rs2 isa.RegisterData
	Imm Imm
}

// Instruction is a parsed instruction line, optionally labeled.
// Operands is nil for halt.
type Instruction struct {
	Label    string
	Mnemonic isa.Mnemonic
	Operands Operands
}

func (JustLabel) isLine()       {}
func (BlocksDirective) isLine() {}
func (WarpsDirective) isLine()  {}
func (Instruction) isLine()     {}

func (Itype) isOperands() {}
func (Rtype) isOperands() {}
func (Stype) isOperands() {}

func (line JustLabel) String() string {
	return line.Label + ":"
}

func (line BlocksDirective) String() string {
	return fmt.Sprintf(".blocks %d", line.Number)
}

func (line WarpsDirective) String() string {
	return fmt.Sprintf(".warps %d", line.Number)
}

func (line Instruction) String() (out string) {
	if line.Label != "" {
		out = line.Label + ": "
	}
	name := line.Mnemonic.Name
	switch ops := line.Operands.(type) {
	case Itype:
		if name.IsLoad() {
			out += fmt.Sprintf("%v %v, %v(%v)", line.Mnemonic, ops.Rd, ops.Imm, ops.Rs1)
		} else {
			out += fmt.Sprintf("%v %v, %v, %v", line.Mnemonic, ops.Rd, ops.Rs1, ops.Imm)
		}
	case Rtype:
		out += fmt.Sprintf("%v %v, %v, %v", line.Mnemonic, ops.Rd, ops.Rs1, ops.Rs2)
	case Stype:
		out += fmt.Sprintf("%v %v, %v(%v)", line.Mnemonic, ops.Rs2, ops.Imm, ops.Rs1)
	default:
		out += line.Mnemonic.String()
	}
	return
}

// Parser consumes one line's token stream, accumulating diagnostics
// rather than stopping at the first.
type Parser struct {
	tokens []Token
	errors []Error
}

// ParseLine parses one line's tokens into a Line. An empty token stream
// yields a nil Line. On any diagnostic the Line is dropped and the full
// error list is returned instead.
func ParseLine(tokens []Token) (line Line, errs []Error) {
	parser := &Parser{tokens: tokens}
	line = parser.parseLine()
	if len(parser.errors) != 0 {
		return nil, parser.errors
	}
	return
}

func (p *Parser) chop() (tok Token, ok bool) {
	if len(p.tokens) == 0 {
		return
	}
	tok, ok = p.tokens[0], true
	p.tokens = p.tokens[1:]
	return
}

func (p *Parser) peek() *Token {
	if len(p.tokens) == 0 {
		return nil
	}
	return &p.tokens[0]
}

func (p *Parser) pushErr(message string, column int) {
	p.errors = append(p.errors, Error{Message: message, Column: column})
}

func (p *Parser) unexpectedToken(expected string, unexpected Token) {
	p.pushErr(f("Unexpected token: Expected %v, instead found %v", expected, unexpected), unexpected.Col)
}

func (p *Parser) unexpectedEos(expected string) {
	p.pushErr(f("Unexpected end of stream: Expected %v", expected), 0)
}

func (p *Parser) expect(kind TokenKind) (tok Token, ok bool) {
	if len(p.tokens) == 0 {
		p.unexpectedEos(kind.String())
		return
	}
	if p.tokens[0].Kind != kind {
		p.unexpectedToken(kind.String(), p.tokens[0])
		return
	}
	return p.chop()
}

// expectImm accepts an immediate or a label reference.
func (p *Parser) expectImm() (imm Imm, ok bool) {
	if len(p.tokens) == 0 {
		p.unexpectedEos(TOKEN_IMMEDIATE.String())
		return
	}
	tok := p.tokens[0]
	switch tok.Kind {
	case TOKEN_IMMEDIATE:
		imm = Imm{Value: tok.Value}
	case TOKEN_LABEL_REF:
		imm = Imm{Label: tok.Name}
	default:
		p.unexpectedToken(TOKEN_IMMEDIATE.String(), tok)
		return
	}
	p.chop()
	ok = true
	return
}

// checkRegister validates one operand's register file. Diagnostics
// accumulate; the caller combines the results so that every bad operand
// on a line is reported.
func (p *Parser) checkRegister(tok Token, shouldBeScalar bool) bool {
	reg := tok.Reg
	if reg.Type == isa.REG_PC {
		p.pushErr(f("Register '%v' is read-only", reg), tok.Col)
		return false
	}
	if reg.IsScalar() != shouldBeScalar {
		kind := "vector"
		if shouldBeScalar {
			kind = "scalar"
		}
		p.pushErr(f("Register '%v' should be %v", reg, kind), tok.Col)
		return false
	}
	return true
}

// <mnemonic> <rd>, <rs1>, <imm12>
func (p *Parser) parseItypeArithmetic(mnemonic isa.Mnemonic) *Instruction {
	rd, ok := p.expect(TOKEN_REGISTER)
	if !ok {
		return nil
	}
	if _, ok = p.expect(TOKEN_COMMA); !ok {
		return nil
	}
	rs1, ok := p.expect(TOKEN_REGISTER)
	if !ok {
		return nil
	}
	if _, ok = p.expect(TOKEN_COMMA); !ok {
		return nil
	}
	imm, ok := p.expectImm()
	if !ok {
		return nil
	}

	// The cross-width form reduces a vector comparison to a scalar.
	if mnemonic.Name == isa.MN_SX_SLTI {
		okRd := p.checkRegister(rd, true)
		okRs1 := p.checkRegister(rs1, false)
		ok = okRd && okRs1
	} else {
		okRd := p.checkRegister(rd, mnemonic.Scalar)
		okRs1 := p.checkRegister(rs1, mnemonic.Scalar)
		ok = okRd && okRs1
	}
	if !ok {
		return nil
	}

	return &Instruction{
		Mnemonic: mnemonic,
		Operands: Itype{Rd: rd.Reg, Rs1: rs1.Reg, Imm: imm},
	}
}

// <mnemonic> <rd>, <rs1>, <rs2>
func (p *Parser) parseRtype(mnemonic isa.Mnemonic) *Instruction {
	rd, ok := p.expect(TOKEN_REGISTER)
	if !ok {
		return nil
	}
	if _, ok = p.expect(TOKEN_COMMA); !ok {
		return nil
	}
	rs1, ok := p.expect(TOKEN_REGISTER)
	if !ok {
		return nil
	}
	if _, ok = p.expect(TOKEN_COMMA); !ok {
		return nil
	}
	rs2, ok := p.expect(TOKEN_REGISTER)
	if !ok {
		return nil
	}

	if mnemonic.Name == isa.MN_SX_SLT {
		okRd := p.checkRegister(rd, true)
		okRs1 := p.checkRegister(rs1, false)
		okRs2 := p.checkRegister(rs2, false)
		ok = okRd && okRs1 && okRs2
	} else {
		okRd := p.checkRegister(rd, mnemonic.Scalar)
		okRs1 := p.checkRegister(rs1, mnemonic.Scalar)
		okRs2 := p.checkRegister(rs2, mnemonic.Scalar)
		ok = okRd && okRs1 && okRs2
	}
	if !ok {
		return nil
	}

	return &Instruction{
		Mnemonic: mnemonic,
		Operands: Rtype{Rd: rd.Reg, Rs1: rs1.Reg, Rs2: rs2.Reg},
	}
}

// <mnemonic> <rd>, <imm12>(<rs1>)
func (p *Parser) parseLoad(mnemonic isa.Mnemonic) *Instruction {
	rd, ok := p.expect(TOKEN_REGISTER)
	if !ok {
		return nil
	}
	if _, ok = p.expect(TOKEN_COMMA); !ok {
		return nil
	}
	imm, ok := p.expectImm()
	if !ok {
		return nil
	}
	if _, ok = p.expect(TOKEN_LPAREN); !ok {
		return nil
	}
	rs1, ok := p.expect(TOKEN_REGISTER)
	if !ok {
		return nil
	}
	if _, ok = p.expect(TOKEN_RPAREN); !ok {
		return nil
	}

	okRd := p.checkRegister(rd, mnemonic.Scalar)
	okRs1 := p.checkRegister(rs1, mnemonic.Scalar)
	if !okRd || !okRs1 {
		return nil
	}

	return &Instruction{
		Mnemonic: mnemonic,
		Operands: Itype{Rd: rd.Reg, Rs1: rs1.Reg, Imm: imm},
	}
}

// <mnemonic> <rs2>, <imm12>(<rs1>)
func (p *Parser) parseStore(mnemonic isa.Mnemonic) *Instruction {
	rs2, ok := p.expect(TOKEN_REGISTER)
	if !ok {
		return nil
	}
	if _, ok = p.expect(TOKEN_COMMA); !ok {
		return nil
	}
	imm, ok := p.expectImm()
	if !ok {
		return nil
	}
	if _, ok = p.expect(TOKEN_LPAREN); !ok {
		return nil
	}
	rs1, ok := p.expect(TOKEN_REGISTER)
	if !ok {
		return nil
	}
	if _, ok = p.expect(TOKEN_RPAREN); !ok {
		return nil
	}

	okRs1 := p.checkRegister(rs1, mnemonic.Scalar)
	okRs2 := p.checkRegister(rs2, mnemonic.Scalar)
	if !okRs1 || !okRs2 {
		return nil
	}

	return &Instruction{
		Mnemonic: mnemonic,
		Operands: Stype{Rs1: rs1.Reg, Rs2: rs2.Reg, Imm: imm},
	}
}

func (p *Parser) parseInstruction() *Instruction {
	tok, _ := p.chop()
	mnemonic := tok.Mnemonic

	switch {
	case mnemonic.Name == isa.MN_HALT:
		return &Instruction{Mnemonic: mnemonic}
	case mnemonic.Name.IsItypeArithmetic():
		return p.parseItypeArithmetic(mnemonic)
	case mnemonic.Name.IsRtype():
		return p.parseRtype(mnemonic)
	case mnemonic.Name.IsLoad():
		return p.parseLoad(mnemonic)
	case mnemonic.Name.IsStore():
		return p.parseStore(mnemonic)
	}

	p.pushErr(f("Unknown mnemonic: '%v'", mnemonic), tok.Col)
	return nil
}

func (p *Parser) parseDirective() Line {
	tok, _ := p.chop()

	number, ok := p.expect(TOKEN_IMMEDIATE)
	if !ok {
		return nil
	}
	if number.Value < 1 {
		p.pushErr(f("Invalid number of %v: '%v'", tok, number.Value), number.Col)
		return nil
	}

	// The line ends here.
	if next := p.peek(); next != nil {
		p.unexpectedToken("end of line", *next)
		return nil
	}

	if tok.Kind == TOKEN_BLOCKS {
		return BlocksDirective{Number: uint32(number.Value)}
	}
	return WarpsDirective{Number: uint32(number.Value)}
}

func (p *Parser) parseLine() Line {
	if len(p.tokens) == 0 {
		return nil
	}

	tok := *p.peek()

	if tok.Kind == TOKEN_BLOCKS || tok.Kind == TOKEN_WARPS {
		return p.parseDirective()
	}

	label := ""
	if tok.Kind == TOKEN_LABEL {
		label = tok.Name
		p.chop()

		if len(p.tokens) == 0 {
			return JustLabel{Label: label}
		}
		tok = *p.peek()
	}

	if tok.Kind == TOKEN_MNEMONIC {
		instruction := p.parseInstruction()
		if instruction == nil {
			return nil
		}
		instruction.Label = label

		if next := p.peek(); next != nil {
			p.unexpectedToken("end of line", *next)
			return nil
		}
		return *instruction
	}

	p.pushErr(f("Unexpected token: Expected mnemonic or directive, instead found %v", tok), tok.Col)
	return nil
}

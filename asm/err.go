package asm

import (
	"errors"

	"github.com/ezrec/usimt/isa"
	"github.com/ezrec/usimt/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrDirectiveDuplicate = errors.New(f("directive duplicated"))
	ErrDirectiveOrder     = errors.New(f("directive after first instruction"))
)

// Error is one positioned diagnostic from the lexer or parser.
// Column is 1-based; zero means end of line.
type Error struct {
	Message string
	Column  int
}

func (err Error) Error() string {
	if err.Column == 0 {
		return err.Message
	}
	return f("%d: %v", err.Column, err.Message)
}

// ErrSyntax locates a diagnostic on a source line. It renders as
// "line:col: message" when the wrapped error carries a column.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	var perr Error
	if errors.As(err.Err, &perr) && perr.Column != 0 {
		return f("%d:%d: %v", err.LineNo, perr.Column, perr.Message)
	}
	return f("%d: %v", err.LineNo, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label %v missing", string(err))
}

type ErrImmediateRange int32

func (err ErrImmediateRange) Error() string {
	return f("immediate %v out of range [%v, %v]", int32(err), isa.Imm12Min, isa.Imm12Max)
}

type ErrRegisterReserved isa.RegisterData

func (err ErrRegisterReserved) Error() string {
	return f("register '%v' is read-only", isa.RegisterData(err))
}

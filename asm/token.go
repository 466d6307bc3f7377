package asm

import (
	"fmt"

	"github.com/ezrec/usimt/isa"
)

// TokenKind tags the variant held by a Token.
type TokenKind int

//go:generate go tool stringer -linecomment -type=TokenKind
const (
	TOKEN_MNEMONIC  = TokenKind(0) // mnemonic
	TOKEN_REGISTER  = TokenKind(1) // register
	TOKEN_IMMEDIATE = TokenKind(2) // immediate
	TOKEN_LABEL     = TokenKind(3) // label
	TOKEN_LABEL_REF = TokenKind(4) // label reference
	TOKEN_COMMA     = TokenKind(5) // ','
	TOKEN_LPAREN    = TokenKind(6) // '('
	TOKEN_RPAREN    = TokenKind(7) // ')'
	TOKEN_BLOCKS    = TokenKind(8) // .blocks
	TOKEN_WARPS     = TokenKind(9) // .warps
)

// Token is one lexed element of a source line. Col is the 1-based
// column of the token's first character.
type Token struct {
	Kind     TokenKind
	Col      int
	Mnemonic isa.Mnemonic     // TOKEN_MNEMONIC
	Reg      isa.RegisterData // TOKEN_REGISTER
	Value    int32            // TOKEN_IMMEDIATE
	Name     string           // TOKEN_LABEL, TOKEN_LABEL_REF
}

func (tok Token) String() string {
	switch tok.Kind {
	case TOKEN_MNEMONIC:
		return fmt.Sprintf("mnemonic '%v'", tok.Mnemonic)
	case TOKEN_REGISTER:
		return fmt.Sprintf("register '%v'", tok.Reg)
	case TOKEN_IMMEDIATE:
		return fmt.Sprintf("immediate '%v'", tok.Value)
	case TOKEN_LABEL:
		return fmt.Sprintf("label '%v:'", tok.Name)
	case TOKEN_LABEL_REF:
		return fmt.Sprintf("label '%v'", tok.Name)
	}
	return tok.Kind.String()
}

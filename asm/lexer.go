package asm

import (
	"strings"

	"github.com/ezrec/usimt/isa"
)

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', ';', ',', '(', ')':
		return true
	}
	return false
}

func isIdentifier(word string) bool {
	for n := 0; n < len(word); n++ {
		c := word[n]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case c >= '0' && c <= '9':
			if n == 0 {
				return false
			}
		default:
			return false
		}
	}
	return len(word) != 0
}

// lexRegister recognizes "x<n>", "s<n>" and "pc" (case-insensitive).
// ok is false when the word is not register-shaped at all.
func lexRegister(word string, col int) (tok Token, ok bool, err Error) {
	tok = Token{Kind: TOKEN_REGISTER, Col: col}

	lower := strings.ToLower(word)
	if lower == "pc" {
		tok.Reg = isa.RegisterData{Type: isa.REG_PC}
		ok = true
		return
	}

	switch lower[0] {
	case 'x':
		tok.Reg.Type = isa.REG_VECTOR
	case 's':
		tok.Reg.Type = isa.REG_SCALAR
	default:
		return
	}

	digits := lower[1:]
	if len(digits) == 0 {
		return
	}
	number := int32(0)
	for n := 0; n < len(digits); n++ {
		if digits[n] < '0' || digits[n] > '9' {
			return
		}
		if number < isa.NUM_REGISTERS {
			number = number*10 + int32(digits[n]-'0')
		}
	}

	ok = true
	if number >= isa.NUM_REGISTERS {
		err = Error{Message: f("Invalid register number '%v'", word), Column: col}
		return
	}

	tok.Reg.Number = number
	return
}

// lexWord classifies one delimiter-bounded word.
func lexWord(word string, col int) (tok Token, err Error) {
	tok.Col = col

	switch {
	case word[0] == '.':
		switch strings.ToLower(word) {
		case ".blocks":
			tok.Kind = TOKEN_BLOCKS
		case ".warps":
			tok.Kind = TOKEN_WARPS
		default:
			err = Error{Message: f("Unknown directive '%v'", word), Column: col}
		}
		return

	case strings.HasSuffix(word, ":"):
		name := word[:len(word)-1]
		if !isIdentifier(name) {
			err = Error{Message: f("Invalid label '%v'", word), Column: col}
			return
		}
		tok.Kind = TOKEN_LABEL
		tok.Name = name
		return

	case word[0] == '-' || isNumeric(word[0], 10):
		value, tail, perr := parseNumber(word)
		if perr != nil {
			err = Error{Message: perr.Error(), Column: col}
			return
		}
		if len(tail) != 0 {
			err = Error{Message: f("Unexpected character '%c' in number '%v'", tail[0], word), Column: col}
			return
		}
		tok.Kind = TOKEN_IMMEDIATE
		tok.Value = value
		return
	}

	if mnemonic, ok := isa.LookupMnemonic(word); ok {
		tok.Kind = TOKEN_MNEMONIC
		tok.Mnemonic = mnemonic
		return
	}

	if reg, ok, rerr := lexRegister(word, col); ok {
		tok, err = reg, rerr
		return
	}

	if isIdentifier(word) {
		tok.Kind = TOKEN_LABEL_REF
		tok.Name = word
		return
	}

	err = Error{Message: f("Invalid token '%v'", word), Column: col}
	return
}

// Lex splits one source line into positioned tokens. A ';' starts a
// comment running to end of line. All diagnostics for the line are
// collected; a bad word does not stop the scan.
func Lex(line string) (tokens []Token, errs []Error) {
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == ';':
			return
		case c == ',':
			tokens = append(tokens, Token{Kind: TOKEN_COMMA, Col: i + 1})
			i++
		case c == '(':
			tokens = append(tokens, Token{Kind: TOKEN_LPAREN, Col: i + 1})
			i++
		case c == ')':
			tokens = append(tokens, Token{Kind: TOKEN_RPAREN, Col: i + 1})
			i++
		default:
			start := i
			for i < len(line) && !isDelimiter(line[i]) {
				i++
			}
			tok, err := lexWord(line[start:i], start+1)
			if err != (Error{}) {
				errs = append(errs, err)
				continue
			}
			tokens = append(tokens, tok)
		}
	}
	return
}

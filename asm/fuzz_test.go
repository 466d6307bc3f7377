package asm

import (
	"strings"
	"testing"
)

func FuzzParseNumber(f *testing.F) {
	f.Add("42")
	f.Add("-0x80000000")
	f.Add("0b101")
	f.Add("017")
	f.Add("-")
	f.Add("0x")

	f.Fuzz(func(t *testing.T, input string) {
		_, rest, err := parseNumber(input)
		if err != nil {
			return
		}
		if !strings.HasSuffix(input, rest) {
			t.Errorf("'%v': rest '%v' is not a suffix of the input", input, rest)
		}
	})
}

func FuzzLex(f *testing.F) {
	f.Add("addi x5, x1, 0")
	f.Add("loop: sw x5, 4(x1) ; comment")
	f.Add(".blocks 2")
	f.Add("x99 .bogus (,)")

	f.Fuzz(func(t *testing.T, line string) {
		tokens, _ := Lex(line)
		for _, tok := range tokens {
			if tok.Col < 1 || tok.Col > len(line) {
				t.Errorf("'%v': token %v has column %v", line, tok, tok.Col)
			}
		}
	})
}

package asm

import (
	"errors"
	"math"
)

// isNumeric reports whether c is a digit of the given base (2..16).
func isNumeric(c byte, base int) bool {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'f':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		v = int(c-'A') + 10
	default:
		return false
	}
	return v < base
}

func digitValue(c byte) int64 {
	switch {
	case c >= 'a' && c <= 'f':
		return int64(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int64(c-'A') + 10
	}
	return int64(c - '0')
}

// parseNumber parses one signed integer literal from the front of src
// and returns the unconsumed tail. An optional '-' may be followed by a
// base prefix: "0x" hex, "0b" binary, a leading '0' with more digits is
// octal (the '0' stays part of the literal), anything else is decimal.
// The literal spans the longest run of hex digits; every digit in the
// run must be valid for the chosen base, and the value must fit in an
// int32. rest is meaningful only when err is nil.
func parseNumber(src string) (value int32, rest string, err error) {
	rest = src
	if len(rest) == 0 {
		err = errors.New(f("Expected a number, found ''"))
		return
	}

	negative := rest[0] == '-'
	if negative {
		rest = rest[1:]
		if len(rest) == 0 {
			err = errors.New(f("Expected a number, found '-'"))
			return
		}
	}

	base := 10
	if rest[0] == '0' && len(rest) > 1 {
		switch rest[1] {
		case 'x', 'X':
			base = 16
			rest = rest[2:]
		case 'b', 'B':
			base = 2
			rest = rest[2:]
		default:
			base = 8
		}
	}

	var i int
	for i < len(rest) && isNumeric(rest[i], 16) {
		if !isNumeric(rest[i], base) {
			err = errors.New(f("Failed to parse number '%v': Invalid digit '%c' for base %v", rest[:i+1], rest[i], base))
			return
		}
		i++
	}
	if i == 0 {
		err = errors.New(f("Expected a number, found '%v'", rest))
		return
	}

	limit := int64(math.MaxInt32)
	if negative {
		limit = -int64(math.MinInt32)
	}

	var magnitude int64
	for _, c := range []byte(rest[:i]) {
		magnitude = magnitude*int64(base) + digitValue(c)
		if magnitude > limit {
			err = errors.New(f("Failed to parse number '%v': value out of range", rest[:i]))
			return
		}
	}

	value = int32(magnitude)
	if negative {
		value = int32(-magnitude)
	}
	rest = rest[i:]

	return
}

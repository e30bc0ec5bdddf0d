// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes the body of a JSON string. The input must have the
// enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. A UTF-16
// surrogate pair written as two \u escapes decodes to a single rune; a lone
// surrogate decodes to the Unicode replacement rune. Unquote reports an error
// for an incomplete or unknown escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	for {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}

		c := src.At(0)
		src = src.SliceFrom(1)
		switch c {
		case '"', '\\', '/':
			dec = append(dec, c)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			r, err := parseHex4(src)
			if err != nil {
				return nil, err
			}
			src = src.SliceFrom(4)
			if utf16.IsSurrogate(r) {
				r2, ok := trailingSurrogate(src)
				if dr := utf16.DecodeRune(r, r2); ok && dr != utf8.RuneError {
					r = dr
					src = src.SliceFrom(6)
				} else {
					r = utf8.RuneError
				}
			}
			dec = utf8.AppendRune(dec, r)
		default:
			return nil, fmt.Errorf("invalid escape %q", c)
		}

		// Look for the next escape sequence, and if one is not found we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dec, src), nil
		}
	}
}

// trailingSurrogate reports whether src begins with a \u escape, and if so
// returns its value.
func trailingSurrogate(src mem.RO) (rune, bool) {
	if src.Len() < 6 || src.At(0) != '\\' || src.At(1) != 'u' {
		return 0, false
	}
	r, err := parseHex4(src.SliceFrom(2))
	return r, err == nil
}

func parseHex4(data mem.RO) (rune, error) {
	if data.Len() < 4 {
		return 0, errors.New("incomplete Unicode escape")
	}
	var v rune
	for i := 0; i < 4; i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}

// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

// shortEsc maps control characters with a two-byte escape form to the letter
// that follows the backslash. Other controls use \u00XX.
var shortEsc = [' ']byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
}

const hexDigit = "0123456789abcdef"

// AppendQuote appends the JSON string encoding of src to dst, including the
// enclosing double quotation marks, and returns the extended slice.
//
// The characters '"' and '\\', all control characters below U+0020, and the
// separators U+2028 and U+2029 are escaped. Bytes that are not valid UTF-8,
// and the replacement rune itself, are written as \ufffd. Everything else
// is copied through unchanged.
func AppendQuote(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		switch {
		case r < ' ':
			if b := shortEsc[r]; b != 0 {
				dst = append(dst, '\\', b)
			} else {
				dst = append(dst, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
			}
		case r == '"' || r == '\\':
			dst = append(dst, '\\', byte(r))
		case r < utf8.RuneSelf:
			dst = append(dst, byte(r))
		case r == utf8.RuneError:
			dst = append(dst, `\ufffd`...)
		case r == '\u2028':
			dst = append(dst, `\u2028`...)
		case r == '\u2029':
			dst = append(dst, `\u2029`...)
		default:
			dst = mem.Append(dst, src.SliceTo(n))
		}
		src = src.SliceFrom(n)
	}
	return append(dst, '"')
}

// Quote returns the JSON string encoding of src, with quotation marks.
func Quote(src mem.RO) []byte { return AppendQuote(make([]byte, 0, src.Len()+2), src) }

// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonformatter

import (
	"errors"
	"strings"

	"github.com/nachofregeiro/jsonformatter/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }

// AppendQuote appends the JSON string encoding of src to dst.
func AppendQuote(dst []byte, src string) []byte { return escape.AppendQuote(dst, mem.S(src)) }

// Unquote decodes a JSON string value.  Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Unquote reports an error for an incomplete or unknown escape sequence.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", errors.New("missing quotations")
	}
	dec, err := escape.Unquote(mem.S(src[1 : len(src)-1]))
	if err != nil {
		return "", err
	}
	return string(dec), nil
}

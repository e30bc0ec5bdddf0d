// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"math"
	"strconv"

	"github.com/nachofregeiro/jsonformatter"
)

func (Null) JSON() string { return "null" }

func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

func (n Number) JSON() string { return string(appendNumber(nil, float64(n))) }

func (s String) JSON() string { return jsonformatter.Quote(string(s)) }

func (a Array) JSON() string { return string(appendCompact(nil, a)) }

func (o Object) JSON() string { return string(appendCompact(nil, o)) }

// appendCompact appends the compact JSON encoding of v to buf.
func appendCompact(buf []byte, v Value) []byte {
	switch t := v.(type) {
	case Null:
		return append(buf, "null"...)
	case Bool:
		return strconv.AppendBool(buf, bool(t))
	case Number:
		return appendNumber(buf, float64(t))
	case String:
		return jsonformatter.AppendQuote(buf, string(t))
	case Array:
		buf = append(buf, '[')
		for i, elt := range t {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendCompact(buf, elt)
		}
		return append(buf, ']')
	case Object:
		buf = append(buf, '{')
		for i, m := range t {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = jsonformatter.AppendQuote(buf, m.Key)
			buf = append(buf, ':')
			buf = appendCompact(buf, m.Value)
		}
		return append(buf, '}')
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}

// appendNumber appends the shortest decimal representation of f that parses
// back to the same value. Like ECMAScript, it uses plain notation for
// magnitudes in [1e-6, 1e21) and exponent notation otherwise.
//
// NaN and infinities have no JSON representation, and appendNumber panics if
// f is one of those.
func appendNumber(buf []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic(fmt.Sprintf("unsupported number %v", f))
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	buf = strconv.AppendFloat(buf, f, format, -1, 64)
	if format == 'e' {
		// Clean up e-09 to e-9.
		n := len(buf)
		if n >= 4 && buf[n-4] == 'e' && buf[n-3] == '-' && buf[n-2] == '0' {
			buf[n-2] = buf[n-1]
			buf = buf[:n-1]
		}
	}
	return buf
}

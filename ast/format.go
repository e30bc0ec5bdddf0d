// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"io"
	"strings"

	"github.com/creachadair/mds/value"
	"github.com/nachofregeiro/jsonformatter"
)

// A Formatter carries the settings for pretty-printing JSON values.
// A zero value is ready for use, and indents with tabs.
type Formatter struct {
	// IndentWidth is the number of spaces added per nesting level.
	// If zero, each level is indented by one tab instead.
	IndentWidth int
}

func (f Formatter) indent() string {
	return value.Cond(f.IndentWidth <= 0, "\t", strings.Repeat(" ", f.IndentWidth))
}

// Format renders a pretty-printed representation of v to w using the settings
// from f. Each member of a non-empty object or array is written on its own
// line; empty objects and arrays are written as {} and [].  No trailing
// newline is added.
func (f Formatter) Format(w io.Writer, v Value) error {
	_, err := w.Write(f.appendValue(nil, v, "", f.indent()))
	return err
}

// FormatToString renders a pretty-printed representation of v as a string
// using the settings from f.
func (f Formatter) FormatToString(v Value) string {
	return string(f.appendValue(nil, v, "", f.indent()))
}

// Format renders a pretty-printed representation of v to w indented with
// two spaces per level.
func Format(w io.Writer, v Value) error {
	return Formatter{IndentWidth: 2}.Format(w, v)
}

// appendValue appends the rendering of v to buf, where indent is the current
// indentation and unit is the indentation added per level.
func (f Formatter) appendValue(buf []byte, v Value, indent, unit string) []byte {
	switch t := v.(type) {
	case Array:
		if len(t) == 0 {
			return append(buf, "[]"...)
		}
		adent := indent + unit
		buf = append(buf, "[\n"...)
		for i, elt := range t {
			if i > 0 {
				buf = append(buf, ",\n"...)
			}
			buf = append(buf, adent...)
			buf = f.appendValue(buf, elt, adent, unit)
		}
		buf = append(buf, '\n')
		buf = append(buf, indent...)
		return append(buf, ']')

	case Object:
		if len(t) == 0 {
			return append(buf, "{}"...)
		}
		mdent := indent + unit
		buf = append(buf, "{\n"...)
		for i, m := range t {
			if i > 0 {
				buf = append(buf, ",\n"...)
			}
			buf = append(buf, mdent...)
			buf = jsonformatter.AppendQuote(buf, m.Key)
			buf = append(buf, ": "...)
			buf = f.appendValue(buf, m.Value, mdent, unit)
		}
		buf = append(buf, '\n')
		buf = append(buf, indent...)
		return append(buf, '}')

	default:
		return appendCompact(buf, v)
	}
}

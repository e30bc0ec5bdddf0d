// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package engine implements the text operations of the JSON formatter:
// pretty-printing, minifying, validating, and measuring JSON text.
//
// Each operation is a pure function of its input. Operations that parse their
// input report failures as errors of concrete type *Failure, which carry the
// 1-based line and column of the offending input when one is known:
//
//	out, err := engine.Format(input, engine.Options{IndentWidth: 4})
//	var f *engine.Failure
//	if errors.As(err, &f) && f.HasLocation() {
//	   log.Printf("line %d, column %d: %s", f.Line, f.Column, f.Message)
//	}
package engine

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nachofregeiro/jsonformatter"
	"github.com/nachofregeiro/jsonformatter/ast"
)

// Options control the rendering of Format. An Options value is not modified
// by the functions that accept it.
type Options struct {
	// IndentWidth is the number of spaces per nesting level. Zero means to
	// indent with one tab character per level. It must not be negative.
	IndentWidth int

	// SortKeys, if true, orders the members of every object by key.
	SortKeys bool
}

// DefaultOptions are the options used by callers that have no preference.
var DefaultOptions = Options{IndentWidth: 2}

func (o Options) check() error {
	if o.IndentWidth < 0 {
		return fmt.Errorf("invalid indent width %d", o.IndentWidth)
	}
	return nil
}

// Format parses text and renders it as indented JSON according to opts.
// In case of error, the output is empty. Invalid options are reported before
// text is examined, and the error is not a *Failure.
func Format(text string, opts Options) (string, error) {
	if err := opts.check(); err != nil {
		return "", err
	}
	v, err := parse(text)
	if err != nil {
		return "", err
	}
	if opts.SortKeys {
		v = ast.Sort(v)
	}
	return ast.Formatter{IndentWidth: opts.IndentWidth}.FormatToString(v), nil
}

// Minify parses text and renders it as compact JSON, with no whitespace
// between tokens. In case of error, the output is empty.
func Minify(text string) (string, error) {
	v, err := parse(text)
	if err != nil {
		return "", err
	}
	return v.JSON(), nil
}

// Validate reports whether text is a single well-formed JSON value. It
// returns nil if so; otherwise it returns a *Failure.
func Validate(text string) error {
	_, err := parse(text)
	return err
}

func parse(text string) (ast.Value, error) {
	v, err := ast.Parse(text)
	if err != nil {
		return nil, newFailure(text, err)
	}
	return v, nil
}

// Failure is the concrete type of errors reported for input that is not
// valid JSON. Only the first problem in the input is reported.
type Failure struct {
	Kind    jsonformatter.ErrorKind
	Message string

	// The location of the offending input. Offset is a byte offset, Line and
	// Column are 1-based. If the location is unknown, Offset is -1 and Line
	// and Column are zero.
	Offset       int
	Line, Column int

	err error
}

// newFailure constructs a *Failure for err, reported while parsing text.
func newFailure(text string, err error) *Failure {
	if errors.Is(err, jsonformatter.ErrEmptyInput) {
		return &Failure{Kind: jsonformatter.EmptyInput, Message: err.Error(), Offset: -1, err: err}
	}
	var serr *jsonformatter.SyntaxError
	if !errors.As(err, &serr) {
		return &Failure{Kind: jsonformatter.SyntacticError, Message: err.Error(), Offset: -1, err: err}
	}
	lc := jsonformatter.Locate(text, serr.Pos)
	return &Failure{
		Kind:    serr.Kind,
		Message: serr.Message,
		Offset:  serr.Pos,
		Line:    lc.Line,
		Column:  lc.Column,
		err:     err,
	}
}

// HasLocation reports whether f carries a line and column.
func (f *Failure) HasLocation() bool { return f.Line > 0 }

// Error satisfies the error interface.
func (f *Failure) Error() string {
	if !f.HasLocation() {
		return f.Message
	}
	return fmt.Sprintf("line %d, column %d: %s", f.Line, f.Column, f.Message)
}

// Unwrap supports error wrapping.
func (f *Failure) Unwrap() error { return f.err }

// TextStats summarizes the size of a text.
type TextStats struct {
	Characters int    // number of Unicode code points
	Lines      int    // number of newline-separated lines; 0 for empty text
	Bytes      int    // length in bytes of the UTF-8 encoding
	Size       string // human-readable rendering of Bytes
}

// Stats computes statistics for text. It does not require text to be valid
// JSON, and always succeeds.
func Stats(text string) TextStats {
	st := TextStats{
		Characters: utf8.RuneCountInString(text),
		Bytes:      len(text),
		Size:       FormatSize(len(text)),
	}
	if text != "" {
		st.Lines = strings.Count(text, "\n") + 1
	}
	return st
}

// FormatSize renders a byte count as "N bytes", "N.N KB", or "N.N MB", where
// a kilobyte is 1024 bytes.
func FormatSize(n int) string {
	const kb, mb = 1024, 1024 * 1024
	switch {
	case n < kb:
		return fmt.Sprintf("%d bytes", n)
	case n < mb:
		return fmt.Sprintf("%.1f KB", float64(n)/kb)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	}
}

// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonformatter

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the errors reported while reading JSON text.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	EmptyInput     ErrorKind = iota + 1 // input is empty or only whitespace
	LexicalError                        // malformed token
	SyntacticError                      // token sequence violates the grammar
)

var kindStr = [...]string{
	EmptyInput:     "empty input",
	LexicalError:   "lexical error",
	SyntacticError: "syntax error",
}

func (k ErrorKind) String() string {
	if int(k) >= len(kindStr) || k == 0 {
		return "unknown error"
	}
	return kindStr[k]
}

// ErrEmptyInput is reported for input that is empty or consists only of
// whitespace. It is reported before any scanning takes place, and has no
// position.
var ErrEmptyInput = errors.New("input is empty")

// SyntaxError is the concrete type of errors reported by the scanner and the
// stream parser.
type SyntaxError struct {
	Kind    ErrorKind // LexicalError or SyntacticError
	Pos     int       // byte offset of the offending character or token
	Message string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at offset %d: %s", s.Pos, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

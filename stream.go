// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonformatter

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// MaxDepth is the maximum nesting depth of objects and arrays accepted by the
// stream parser.
const MaxDepth = 10000

// An Anchor represents a location in source text. The methods of an Anchor
// will report the location, token type, and contents of the anchor.
type Anchor interface {
	Token() Token       // Returns the token type of the anchor
	Text() string       // Returns the raw (undecoded) text of the anchor
	Span() Span         // Returns the byte span of the anchor
	Location() Location // Returns the full location of the anchor
	Float64() float64   // Returns the value of a Number anchor
	Unquote() string    // Returns the decoded contents of a String anchor
}

// A Handler handles events from parsing an input stream.  If a method reports
// an error, parsing stops and that error is returned to the caller.
// The parser ensures objects and arrays are correctly balanced.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call. If the method needs to retain information about the
// location after it returns, it must copy the relevant data.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose key is at loc.  Use loc.Unquote to
	// obtain the decoded key.
	BeginMember(loc Anchor) error

	// End the current object member giving the location and type of the token
	// that terminated the member (either Comma or RBrace).
	EndMember(loc Anchor) error

	// Report a data value at the given location. The type of the value can be
	// recovered from the token.
	Value(loc Anchor) error

	// EndOfInput reports the end of the input.
	EndOfInput(loc Anchor)
}

// Stream is a recursive-descent parser that consumes a complete input text
// and delivers events to a Handler corresponding with its structure.
type Stream struct {
	s     *Scanner
	depth int
}

// NewStream constructs a new Stream that consumes text.
func NewStream(text string) *Stream { return &Stream{s: NewScanner(text)} }

func (s *Stream) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *SyntaxError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(serr)
		}
	}
}

// Parse parses exactly one JSON value from the input and delivers events to h
// until either an error occurs or the value is complete. The value must be
// followed only by whitespace.
//
// If the input is empty or blank, Parse returns ErrEmptyInput without
// scanning. In case of a lexical or syntax error, the returned error has type
// [*SyntaxError] and parsing stops at the first error. An error reported by
// a method of h is returned unchanged.
func (s *Stream) Parse(h Handler) (err error) {
	if isBlank(s.s.src) {
		return ErrEmptyInput
	}
	defer s.recoverParseError(&err)

	s.advance()
	s.parseElement(h)
	if tok := s.advance(); tok != EndOfInput {
		s.syntaxError("unexpected trailing content: %v", tok)
	}
	h.EndOfInput(s.s)
	return nil
}

// parseElement consumes a single value of any type.
func (s *Stream) parseElement(h Handler) {
	switch tok := s.s.Token(); tok {
	case LBrace:
		s.enter()
		s.checkError(h.BeginObject(s.s))
		s.parseMembers(h)
		s.checkError(h.EndObject(s.s))
		s.depth--
	case LSquare:
		s.enter()
		s.checkError(h.BeginArray(s.s))
		s.parseElements(h)
		s.checkError(h.EndArray(s.s))
		s.depth--
	case Number, String, True, False, Null:
		s.checkError(h.Value(s.s))
	default:
		s.syntaxError("expected value, got %v", tok)
	}
}

// parseMembers consumes zero of more key:value object members.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (s *Stream) parseMembers(h Handler) {
	if tok := s.advance(RBrace, String); tok == RBrace {
		return // end of object
	}
	for {
		// Parse a single member: "key": value
		s.checkError(h.BeginMember(s.s))
		s.advance(Colon)
		s.advance()
		s.parseElement(h)

		// Check whether we have more members (",") or are done ("}").
		tok := s.advance(RBrace, Comma)
		s.checkError(h.EndMember(s.s))
		if tok == RBrace {
			return // end of object
		}
		s.advance(String) // advance to next key; trailing commas are not allowed
	}
}

// parseElements consumes zero or more comma-separated array values.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (s *Stream) parseElements(h Handler) {
	if tok := s.advance(); tok == RSquare {
		return // end of array
	}
	for {
		s.parseElement(h)
		if tok := s.advance(RSquare, Comma); tok == RSquare {
			return // end of array
		}
		s.advance() // a "]" here is a trailing comma, rejected by parseElement
	}
}

func (s *Stream) enter() {
	s.depth++
	if s.depth > MaxDepth {
		s.syntaxError("nesting too deep (more than %d levels)", MaxDepth)
	}
}

// advance scans the next token, which must be one of tokens if any are given.
// Lexical errors from the scanner are reported as-is.
func (s *Stream) advance(tokens ...Token) Token {
	if err := s.s.Next(); err != nil && err != io.EOF {
		panic(err)
	}
	tok := s.s.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		s.syntaxError("%v", tokLabel(tokens, tok))
	}
	return tok
}

func (s *Stream) syntaxError(msg string, args ...any) {
	panic(&SyntaxError{
		Kind:    SyntacticError,
		Pos:     s.s.Span().Pos,
		Message: fmt.Sprintf(msg, args...),
	})
}

func (s *Stream) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got Token) string {
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, last)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}

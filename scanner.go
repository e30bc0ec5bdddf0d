// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonformatter

import (
	"fmt"
	"io"
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/nachofregeiro/jsonformatter/internal/escape"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid    Token = iota // invalid token
	LBrace                  // left brace "{"
	RBrace                  // right brace "}"
	LSquare                 // left square bracket "["
	RSquare                 // right square bracket "]"
	Comma                   // comma ","
	Colon                   // colon ":"
	Number                  // number
	String                  // quoted string
	True                    // constant: true
	False                   // constant: false
	Null                    // constant: null
	EndOfInput              // end of input
)

var tokenStr = [...]string{
	Invalid:    "invalid token",
	LBrace:     `"{"`,
	RBrace:     `"}"`,
	LSquare:    `"["`,
	RSquare:    `"]"`,
	Comma:      `","`,
	Colon:      `":"`,
	Number:     "number",
	String:     "string",
	True:       "true",
	False:      "false",
	Null:       "null",
	EndOfInput: "end of input",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from a complete input text.  Each call to
// Next advances the scanner to the next token, or reports an error.
type Scanner struct {
	src mem.RO
	tok Token
	err error

	pos, end int // start and end offsets of current token

	// Apparent line and column offsets (0-based) of pos and end.
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes text.
func NewScanner(text string) *Scanner { return &Scanner{src: mem.S(text)} }

// Next advances s to the next token of the input, or reports an error.  At
// the end of the input, Next sets the token to EndOfInput and returns io.EOF.
// Any other error has concrete type *SyntaxError.
func (s *Scanner) Next() error {
	s.err = nil
	s.tok = Invalid
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol

	for s.end < s.src.Len() {
		ch := s.src.At(s.end)

		// Discard whitespace.
		if isSpace(ch) {
			s.advance(1)
			if ch == '\n' {
				s.eline++
				s.ecol = 0
			}
			s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
			continue
		}

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			s.advance(1)
			s.tok = t
			return nil
		}

		switch {
		case isNumStart(ch):
			return s.scanNumber()
		case ch == '"':
			return s.scanString()
		case ch == 't':
			return s.scanName("true", True)
		case ch == 'f':
			return s.scanName("false", False)
		case ch == 'n':
			return s.scanName("null", Null)
		}
		r, _ := mem.DecodeRune(s.src.SliceFrom(s.end))
		return s.failf(s.end, "unexpected %q", r)
	}
	s.tok = EndOfInput
	return s.setErr(io.EOF)
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token.
func (s *Scanner) Text() string { return s.src.Slice(s.pos, s.end).StringCopy() }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol + 1},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol + 1},
	}
}

// Float64 returns the value of the current Number token.  It returns 0 if
// the current token is not a Number.
func (s *Scanner) Float64() float64 {
	if s.tok != Number {
		return 0
	}
	v, _ := mem.ParseFloat(s.src.Slice(s.pos, s.end), 64)
	return v
}

// Unquote returns the decoded contents of the current String token.  It
// returns "" if the current token is not a String.
func (s *Scanner) Unquote() string {
	if s.tok != String {
		return ""
	}
	dec, err := escape.Unquote(s.src.Slice(s.pos+1, s.end-1))
	if err != nil {
		// The scanner has already validated every escape in the token.
		panic(fmt.Sprintf("unquote valid string: %v", err))
	}
	return string(dec)
}

func (s *Scanner) scanString() error {
	s.advance(1) // open quote
	for s.end < s.src.Len() {
		ch := s.src.At(s.end)
		switch {
		case ch == '"':
			s.advance(1)
			s.tok = String
			return nil
		case ch == '\\':
			if err := s.scanEscape(); err != nil {
				return err
			}
		case ch < ' ':
			return s.failf(s.end, "unescaped control %q in string", ch)
		case ch < utf8.RuneSelf:
			s.advance(1)
		default:
			r, n := mem.DecodeRune(s.src.SliceFrom(s.end))
			if r == utf8.RuneError && n == 1 {
				return s.failf(s.end, "invalid UTF-8 in string")
			}
			s.advance(n)
		}
	}
	return s.failf(s.end, "unterminated string")
}

// scanEscape consumes a single \-escape inside a string.
// Precondition: the current byte is a backslash.
func (s *Scanner) scanEscape() error {
	s.advance(1)
	if s.end == s.src.Len() {
		return s.failf(s.end, "unterminated string")
	}
	switch ch := s.src.At(s.end); ch {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		s.advance(1)
	case 'u':
		s.advance(1)
		for i := 0; i < 4; i++ {
			if s.end == s.src.Len() {
				return s.failf(s.end, "unterminated string")
			} else if c := s.src.At(s.end); !isHexDigit(c) {
				return s.failf(s.end, "invalid Unicode escape: not a hex digit: %q", c)
			}
			s.advance(1)
		}
	default:
		return s.failf(s.end, "invalid %q after escape", ch)
	}
	return nil
}

func (s *Scanner) scanNumber() error {
	if s.peek() == '-' {
		// If there is a leading sign, we need at least one digit.
		s.advance(1)
		if !isDigit(s.peek()) {
			return s.wantAt("digit")
		}
	}

	// A leading zero must be the only digit of the integer part.
	// That is: 0.12 is OK, 01.2 is not.
	if s.peek() == '0' {
		s.advance(1)
		if isDigit(s.peek()) {
			return s.failf(s.end, "extra leading zeroes")
		}
	} else {
		s.readDigits()
	}

	// If a decimal point follows, consume a fractional part.
	if s.peek() == '.' {
		s.advance(1)
		if s.readDigits() == 0 {
			return s.wantAt("digit after decimal point")
		}
	}

	// If an exponent follows, consume it.
	if c := s.peek(); c == 'e' || c == 'E' {
		s.advance(1)
		if c := s.peek(); c == '+' || c == '-' {
			s.advance(1)
		}
		if s.readDigits() == 0 {
			return s.wantAt("exponent digits")
		}
	}

	s.tok = Number
	if math.IsInf(s.Float64(), 0) {
		return s.failf(s.pos, "number %s out of range", s.Text())
	}
	return nil
}

// scanName matches the constant word, reporting an error at the first byte
// that differs from it.
func (s *Scanner) scanName(word string, tok Token) error {
	for i := 0; i < len(word); i++ {
		if s.peek() != word[i] {
			if s.end == s.src.Len() {
				return s.failf(s.end, "incomplete constant %q", word)
			}
			r, _ := mem.DecodeRune(s.src.SliceFrom(s.end))
			return s.failf(s.end, "invalid %q in constant %q", r, word)
		}
		s.advance(1)
	}
	s.tok = tok
	return nil
}

// peek returns the next unread byte of the input, or 0 at the end.
func (s *Scanner) peek() byte {
	if s.end < s.src.Len() {
		return s.src.At(s.end)
	}
	return 0
}

func (s *Scanner) advance(n int) {
	s.end += n
	s.ecol += n
}

// readDigits consumes decimal digits and reports how many were read.
func (s *Scanner) readDigits() int {
	var nr int
	for isDigit(s.peek()) {
		s.advance(1)
		nr++
	}
	return nr
}

// wantAt reports an error at the current offset mentioning label as the
// thing that was required there.
func (s *Scanner) wantAt(label string) error {
	if s.end == s.src.Len() {
		return s.failf(s.end, "want %s, got end of input", label)
	}
	r, _ := mem.DecodeRune(s.src.SliceFrom(s.end))
	return s.failf(s.end, "got %q, want %s", r, label)
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

// failf reports a lexical error at offset pos of the input.
func (s *Scanner) failf(pos int, msg string, args ...any) error {
	err := fmt.Errorf(msg, args...)
	s.tok = Invalid
	return s.setErr(&SyntaxError{
		Kind:    LexicalError,
		Pos:     pos,
		Message: err.Error(),
		err:     posError{pos: pos, err: err},
	})
}

// isBlank reports whether text is empty or consists only of blank
// characters. This is a wider set than the JSON whitespace skipped between
// tokens: it also admits form feed, vertical tab, byte order marks, and
// Unicode space separators.
func isBlank(text mem.RO) bool {
	for text.Len() > 0 {
		r, n := mem.DecodeRune(text)
		if !isBlankRune(r, n) {
			return false
		}
		text = text.SliceFrom(n)
	}
	return true
}

func isBlankRune(r rune, n int) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r', '\u00a0', '\u2028', '\u2029', '\ufeff':
		return true
	case utf8.RuneError:
		return false
	}
	return n > 1 && unicode.Is(unicode.Zs, r)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) (Token, bool) {
	for i, c := range []byte("{}[],:") {
		if c == ch {
			return self[i], true
		}
	}
	return Invalid, false
}

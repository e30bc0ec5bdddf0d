// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsonformatter implements a JSON scanner and a recursive-descent
// parser that report precise byte offsets for every token and every error.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON.  Construct a scanner
// from the input text and call its Next method to iterate over the tokens.
// Next advances to the next input token and returns nil, or reports an error:
//
//	s := jsonformatter.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v at %v", s.Token(), s.Location())
//	}
//
// Next returns io.EOF when the input has been fully consumed, and the current
// token is then EndOfInput. Any other error has concrete type *SyntaxError
// and describes a malformed token.
//
// # Parsing
//
// The Stream type implements an event-driven parser for a single JSON value.
// The parser works by calling methods on a Handler value to report the
// structure of the input. Parsing stops at the first error; there is no
// recovery.
//
//	s := jsonformatter.NewStream(input)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// Parse reports ErrEmptyInput if the input is blank, and a *SyntaxError for
// malformed input. The value must be followed only by whitespace.
//
// # Handlers
//
// The Handler interface accepts parser events from a Stream. The methods of
// a handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// Each method is passed an Anchor value that can be used to retrieve location
// and type information. The Anchor passed to a handler method is only valid
// for the duration of that method call.
//
// # Locations
//
// Errors carry byte offsets. Use Locate to translate an offset into a 1-based
// line and column for display.
package jsonformatter

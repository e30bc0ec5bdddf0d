// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonformatter

import (
	"fmt"
	"strings"
)

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

func (s Span) String() string { return fmt.Sprintf("%d..%d", s.Pos, s.End) }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 1-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

func (loc Location) String() string {
	if loc.First.Line == loc.Last.Line {
		return fmt.Sprintf("%s-%d", loc.First, loc.Last.Column)
	}
	return fmt.Sprintf("%s-%s", loc.First, loc.Last)
}

// Locate maps a byte offset in text to its line and column.  The line is one
// more than the number of newlines strictly before offset. The column is the
// distance from the preceding newline, or offset+1 if there is none.
//
// Offsets outside the text are clamped to [0, len(text)].
func Locate(text string, offset int) LineCol {
	offset = min(max(offset, 0), len(text))
	head := text[:offset]
	return LineCol{
		Line:   strings.Count(head, "\n") + 1,
		Column: offset - strings.LastIndexByte(head, '\n'),
	}
}

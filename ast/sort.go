// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"slices"
	"strings"
)

// Sort returns a copy of v in which the members of every object are ordered
// by key. Keys are compared byte-wise, which for UTF-8 text is the order of
// their Unicode code points. Array elements keep their order, but Sort is
// applied to each of them. Other values are returned unchanged.
//
// Sort does not modify v.
func Sort(v Value) Value {
	switch t := v.(type) {
	case Array:
		out := make(Array, len(t))
		for i, elt := range t {
			out[i] = Sort(elt)
		}
		return out
	case Object:
		out := make(Object, len(t))
		for i, m := range t {
			out[i] = Field(m.Key, Sort(m.Value))
		}
		slices.SortStableFunc(out, func(a, b *Member) int {
			return strings.Compare(a.Key, b.Key)
		})
		return out
	default:
		return v
	}
}

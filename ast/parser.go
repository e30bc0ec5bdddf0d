// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"

	"github.com/nachofregeiro/jsonformatter"
)

// Parse parses and returns a single JSON value from text. The value must be
// followed only by whitespace.
//
// If an object has more than one member with the same key, the value of the
// last occurrence is kept at the position of the first occurrence.
//
// Parse reports jsonformatter.ErrEmptyInput for blank input, and an error of
// concrete type *jsonformatter.SyntaxError for malformed input.
func Parse(text string) (Value, error) {
	h := new(parseHandler)
	if err := jsonformatter.NewStream(text).Parse(h); err != nil {
		return nil, err
	}
	return h.root, nil
}

// A parseHandler implements the jsonformatter.Handler interface to construct
// syntax trees for JSON values.
type parseHandler struct {
	stk  []*frame
	root Value
}

// A frame holds an object or array under construction.
type frame struct {
	isObject bool
	values   Array
	members  Object
	index    map[string]int // offset in members of each key
	key      string         // key of the member awaiting its value
}

func (h *parseHandler) top() *frame { return h.stk[len(h.stk)-1] }

func (h *parseHandler) pop() *frame {
	last := h.top()
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

func (h *parseHandler) push(f *frame) { h.stk = append(h.stk, f) }

func (h *parseHandler) reduceValue(v Value) {
	if len(h.stk) == 0 {
		h.root = v
		return
	}
	f := h.top()
	if !f.isObject {
		f.values = append(f.values, v)
		return
	}

	// Duplicate keys: the last value wins, the first position is kept.
	if i, ok := f.index[f.key]; ok {
		f.members[i].Value = v
		return
	}
	if f.index == nil {
		f.index = make(map[string]int)
	}
	f.index[f.key] = len(f.members)
	f.members = append(f.members, Field(f.key, v))
}

func (h *parseHandler) BeginObject(loc jsonformatter.Anchor) error {
	h.push(&frame{isObject: true, members: Object{}})
	return nil
}

func (h *parseHandler) EndObject(loc jsonformatter.Anchor) error {
	h.reduceValue(h.pop().members)
	return nil
}

func (h *parseHandler) BeginArray(loc jsonformatter.Anchor) error {
	h.push(&frame{values: Array{}})
	return nil
}

func (h *parseHandler) EndArray(loc jsonformatter.Anchor) error {
	h.reduceValue(h.pop().values)
	return nil
}

func (h *parseHandler) BeginMember(loc jsonformatter.Anchor) error {
	h.top().key = loc.Unquote()
	return nil
}

func (h *parseHandler) EndMember(loc jsonformatter.Anchor) error { return nil }

func (h *parseHandler) Value(loc jsonformatter.Anchor) error {
	switch loc.Token() {
	case jsonformatter.String:
		h.reduceValue(String(loc.Unquote()))
	case jsonformatter.Number:
		h.reduceValue(Number(loc.Float64()))
	case jsonformatter.True, jsonformatter.False:
		h.reduceValue(Bool(loc.Token() == jsonformatter.True))
	case jsonformatter.Null:
		h.reduceValue(Null{})
	default:
		return fmt.Errorf("unknown value %v", loc.Token())
	}
	return nil
}

func (h *parseHandler) EndOfInput(loc jsonformatter.Anchor) {}

// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a syntax tree for JSON values, a parser that constructs
// syntax trees from JSON source, and renderers that convert trees back into
// compact or indented JSON text.
package ast

// A Value is an arbitrary JSON value.  The concrete type of a Value is one of
// Null, Bool, Number, String, Array, or Object.
type Value interface {
	// JSON renders the value as compact JSON text, with no whitespace.
	JSON() string

	isValue()
}

// Null represents the null constant.
type Null struct{}

// A Bool is a Boolean constant, true or false.
type Bool bool

// A Number is a numeric value. JSON numbers are represented as IEEE-754
// double precision values.
type Number float64

// A String is a string value, with escapes decoded.
type String string

// Len reports the length of the string in bytes.
func (s String) Len() int { return len(s) }

// An Array is a sequence of values.
type Array []Value

// Len reports the number of elements in the array.
func (a Array) Len() int { return len(a) }

// An Object is an ordered collection of key-value members.
type Object []*Member

// Len reports the number of members in the object.
func (o Object) Len() int { return len(o) }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Keys returns the keys of o in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, value Value) *Member { return &Member{Key: key, Value: value} }

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}

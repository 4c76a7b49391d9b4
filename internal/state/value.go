package state

import (
	"slices"
)

// Value is a sealed interface representing the tree-shaped input to be
// fingerprinted. Only Null, String, Int, Float, Bool, Seq, and Map
// implement it.
type Value interface {
	value() // Sealed - only these types implement it
}

// Null represents an explicit null scalar.
// Using an explicit type ensures all Values satisfy the sealed interface.
type Null struct{}

func (Null) value() {}

// String represents a string scalar.
type String string

func (String) value() {}

// Int represents an integer scalar. Always int64.
type Int int64

func (Int) value() {}

// Float represents a decimal scalar.
//
// Canonical encoding collapses integral floats to integer text, so
// Float(100.00) and Int(100) are indistinguishable once encoded.
// Non-finite values (NaN, Inf) are rejected at encode time.
type Float float64

func (Float) value() {}

// Bool represents a boolean scalar.
type Bool bool

func (Bool) value() {}

// Seq represents an ordered sequence of values.
// Sequence order is semantically significant and is always preserved.
type Seq []Value

func (Seq) value() {}

// Map represents a keyed mapping of field name to value.
// Use SortedKeys for deterministic iteration.
type Map map[string]Value

func (Map) value() {}

// SortedKeys returns the map's keys in byte-wise lexicographic order.
// This is the total ordering used by canonical encoding.
func (m Map) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

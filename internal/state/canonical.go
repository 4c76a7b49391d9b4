package state

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// maxDepth bounds canonicalization recursion. Well-formed state trees are
// shallow; anything deeper is treated as a cyclic structure and rejected
// rather than allowed to recurse forever.
const maxDepth = 4096

// Canonicalize rewrites a value into its canonical form:
//
//   - mapping entries are rebuilt with keys NFC-normalized and sorted
//     byte-wise lexicographically
//   - fields matched by the exclusion rules are omitted entirely, before
//     sorting
//   - sequences are rebuilt preserving element order, each element itself
//     canonicalized
//   - strings are NFC-normalized so equal text always encodes identically
//
// The output is a pure function of the value's field set and values plus
// the exclusion rules - declaration and insertion order never matter.
func Canonicalize(v Value, rules Rules) (Value, error) {
	return canonicalize(v, rules, "", 0)
}

func canonicalize(v Value, rules Rules, path string, depth int) (Value, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("cyclic or too deeply nested structure (depth > %d)", maxDepth)
	}

	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Null, Int, Float, Bool:
		return val, nil
	case String:
		return String(norm.NFC.String(string(val))), nil
	case Seq:
		out := make(Seq, len(val))
		for i, elem := range val {
			c, err := canonicalize(elem, rules, path, depth+1)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = c
		}
		return out, nil
	case Map:
		out := make(Map, len(val))
		for k, elem := range val {
			key := norm.NFC.String(k)
			p := joinPath(path, key)
			if rules.Excluded(p, key) {
				continue
			}
			c, err := canonicalize(elem, rules, p, depth+1)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", key, err)
			}
			out[key] = c
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type: %T", v)
	}
}

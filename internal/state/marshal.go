package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// MarshalCompact serializes a canonical value to a compact, whitespace-free
// JSON encoding. This is the ONLY serialization that should be used for
// fingerprint computation.
//
// Key properties:
//  1. Object keys emitted in byte-wise lexicographic order
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Numbers use a single canonical textual form
//
// The encoding is stable across runs and platforms for the same value.
func MarshalCompact(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v, -1, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalPretty serializes a canonical value with two-space indentation.
// This is the human-readable form persisted alongside the fingerprint and
// consumed by the diff renderer. Output ends without a trailing newline;
// callers that persist it append one.
func MarshalPretty(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v, 0, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encode writes v to buf. indent < 0 selects the compact form; otherwise
// indent is the current indentation level in steps of two spaces.
func encode(buf *bytes.Buffer, v Value, indent, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("cyclic or too deeply nested structure (depth > %d)", maxDepth)
	}

	switch val := v.(type) {
	case nil, Null:
		buf.WriteString("null")
		return nil
	case Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case Int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
		return nil
	case Float:
		s, err := formatFloat(float64(val))
		if err != nil {
			return err
		}
		buf.WriteString(s)
		return nil
	case String:
		return encodeString(buf, string(val))
	case Seq:
		return encodeSeq(buf, val, indent, depth)
	case Map:
		return encodeMap(buf, val, indent, depth)
	default:
		return fmt.Errorf("unsupported value type: %T", v)
	}
}

func encodeSeq(buf *bytes.Buffer, seq Seq, indent, depth int) error {
	if len(seq) == 0 {
		buf.WriteString("[]")
		return nil
	}
	buf.WriteByte('[')
	for i, elem := range seq {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeNewlineIndent(buf, indent+1)
		if err := encode(buf, elem, childIndent(indent), depth+1); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	writeNewlineIndent(buf, indent)
	buf.WriteByte(']')
	return nil
}

func encodeMap(buf *bytes.Buffer, m Map, indent, depth int) error {
	if len(m) == 0 {
		buf.WriteString("{}")
		return nil
	}
	buf.WriteByte('{')
	for i, k := range m.SortedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeNewlineIndent(buf, indent+1)
		if err := encodeString(buf, k); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		buf.WriteByte(':')
		if indent >= 0 {
			buf.WriteByte(' ')
		}
		if err := encode(buf, m[k], childIndent(indent), depth+1); err != nil {
			return fmt.Errorf("%q: %w", k, err)
		}
	}
	writeNewlineIndent(buf, indent)
	buf.WriteByte('}')
	return nil
}

func childIndent(indent int) int {
	if indent < 0 {
		return -1
	}
	return indent + 1
}

func writeNewlineIndent(buf *bytes.Buffer, indent int) {
	if indent < 0 {
		return
	}
	buf.WriteByte('\n')
	for i := 0; i < indent; i++ {
		buf.WriteString("  ")
	}
}

// encodeString writes a JSON string without HTML escaping. The input is
// expected to be NFC-normalized already (Canonicalize does this).
func encodeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false) // <, > and & must NOT be escaped
	if err := enc.Encode(s); err != nil {
		return err
	}
	// json.Encoder adds a trailing newline, drop it.
	out := tmp.Bytes()
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	buf.Write(out)
	return nil
}

// formatFloat renders a float in its single canonical textual form:
// integral values collapse to integer text, everything else uses the
// shortest decimal that round-trips. NaN and infinities are rejected.
func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("non-finite number %v cannot be encoded", f)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10), nil
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

package state

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FromAny converts a caller-native tree (the shapes produced by
// encoding/json and yaml.v3 decoding into any) to a Value. This is the
// serialization boundary: no reflection-driven traversal of arbitrary
// object shapes, only the explicitly supported types below.
//
// Supported: nil, bool, string, the common integer widths, float32/64,
// json.Number, []any, map[string]any, and Value itself (passed through).
func FromAny(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint:
		return Int(val), nil
	case uint32:
		return Int(val), nil
	case uint64:
		if val > 1<<63-1 {
			return nil, fmt.Errorf("integer out of int64 range: %d", val)
		}
		return Int(val), nil
	case float32:
		return Float(val), nil
	case float64:
		return Float(val), nil
	case json.Number:
		return fromNumber(val)
	case []any:
		seq := make(Seq, len(val))
		for i, elem := range val {
			c, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			seq[i] = c
		}
		return seq, nil
	case map[string]any:
		m := make(Map, len(val))
		for k, elem := range val {
			c, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", k, err)
			}
			m[k] = c
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// fromNumber keeps integers exact (no float64 round-trip for values
// beyond 2^53) and falls back to Float for decimals.
func fromNumber(n json.Number) (Value, error) {
	s := string(n)
	if !strings.ContainsAny(s, ".eE") {
		i, err := n.Int64()
		if err != nil {
			return nil, fmt.Errorf("number out of int64 range: %s", s)
		}
		return Int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid number: %s", s)
	}
	return Float(f), nil
}

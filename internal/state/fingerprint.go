package state

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefix for fingerprint computation. The version suffix enables
// future algorithm migration without colliding with old digests.
const fingerprintDomain = "semshot/state/v1"

// Fingerprint computes the digest of a canonical value: SHA-256 over
// domain || 0x00 || compact encoding, rendered as lowercase hex (64 chars).
// The null byte separator prevents domain/data boundary ambiguity.
//
// The input must already be canonical (see Canonicalize); fingerprinting a
// non-canonical value produces a digest that depends on normalization state.
func Fingerprint(v Value) (string, error) {
	data, err := MarshalCompact(v)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(fingerprintDomain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

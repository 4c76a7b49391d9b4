// Package state defines the value model for semantic-state snapshots and
// the deterministic canonicalization and fingerprinting pipeline.
//
// This package contains the foundational types. All other internal packages
// import state; state imports nothing internal. This ensures the value model
// remains the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Value is a sealed interface: only Null, String, Int, Float, Bool,
//     Seq, and Map implement it
//   - Map key ordering is byte-wise lexicographic over NFC-normalized keys
//   - Floats are normalized to a single textual form (shortest round-trip
//     decimal, integral values collapse to integer text) so equal numbers
//     always encode identically
//   - Canonicalization is a pure function of (field set, values, exclusion
//     rules) - declaration and insertion order never influence the output
package state

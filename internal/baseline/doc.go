// Package baseline persists accepted specifications and mismatch artifacts.
//
// Each specification name owns an artifact pair under the baseline
// directory: a digest file holding exactly the fingerprint hex string, and
// a pretty-printed snapshot of the canonical form for human-readable
// diffing. The digest is the authoritative comparison value; the snapshot
// exists for diff rendering and post-hoc inspection.
//
// Concurrent writers to the same specification name are not coordinated
// here. Callers are responsible for distinct names per logical test case
// or for serializing access externally.
package baseline

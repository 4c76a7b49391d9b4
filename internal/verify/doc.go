// Package verify orchestrates the snapshot verification pipeline:
// exclusion filtering, canonicalization, fingerprinting, baseline
// resolution, and mismatch reporting.
//
// Each call to Controller.Verify runs to completion synchronously with no
// background work. A mismatch is the intended product of the tool and is
// returned as a structured Fail outcome, never as a Go error; errors are
// reserved for configuration, encoding, and storage problems, so callers
// can distinguish "the tool broke" from "the system under test regressed".
package verify

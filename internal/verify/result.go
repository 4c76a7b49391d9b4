package verify

import "github.com/semshot/semshot/internal/diff"

// Status is the terminal state of a verification call.
type Status string

const (
	// StatusPass means the current fingerprint matched the baseline.
	StatusPass Status = "pass"

	// StatusCreated means no baseline existed and one was persisted.
	StatusCreated Status = "created"

	// StatusUpdated means update mode overwrote an existing baseline.
	StatusUpdated Status = "updated"

	// StatusFail means the fingerprint diverged from the baseline.
	StatusFail Status = "fail"
)

// Outcome carries the result of one verification call.
type Outcome struct {
	Name   string
	Status Status

	// Fingerprint is the digest computed for the current value.
	Fingerprint string

	// RunID uniquely identifies this verification call.
	RunID string

	// Diff is populated only on StatusFail.
	Diff *diff.Report

	// ArtifactPath is where the actual canonical text was written on
	// failure, empty otherwise.
	ArtifactPath string
}

// Failed reports whether the call ended in a mismatch.
func (o *Outcome) Failed() bool {
	return o.Status == StatusFail
}

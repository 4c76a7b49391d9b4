// Package semshot captures the complete logical state of a structured
// value, reduces it to a deterministic digest, and compares that digest
// against a previously accepted baseline to detect regressions.
//
// Check is the test-framework entry point:
//
//	func TestCheckoutPage(t *testing.T) {
//		state := captureCheckoutState()
//		semshot.Check(t, "checkout_page", state,
//			semshot.WithExclusions(semshot.Rules{Names: []string{"session_id"}}))
//	}
//
// The first run creates the baseline under testdata/baselines and logs a
// confirmation. Subsequent runs fail the test with a rendered diff when
// the fingerprint diverges. Set SEMSHOT_UPDATE=1 to accept a new baseline.
//
// Callers are responsible for distinct specification names per logical
// test case; concurrent checks under the same name are not coordinated.
package semshot

import (
	"context"

	"github.com/semshot/semshot/internal/baseline"
	"github.com/semshot/semshot/internal/config"
	"github.com/semshot/semshot/internal/state"
	"github.com/semshot/semshot/internal/verify"
)

// Default locations for in-test baselines and mismatch artifacts,
// relative to the package under test.
const (
	DefaultBaselineDir = "testdata/baselines"
	DefaultArtifactDir = "testdata/artifacts"
)

// Rules identifies fields to exclude from the fingerprint and the
// persisted baseline. See the Names / Paths / Predicate semantics on the
// underlying type.
type Rules = state.Rules

// TestingT is the subset of *testing.T used by Check.
type TestingT interface {
	Helper()
	Logf(format string, args ...any)
	Fatalf(format string, args ...any)
}

type checker struct {
	baselineDir string
	artifactDir string
	rules       state.Rules
	update      bool
}

// Option configures a Check call.
type Option func(*checker)

// WithExclusions marks fields to omit from the fingerprint and the
// persisted baseline.
func WithExclusions(rules Rules) Option {
	return func(c *checker) { c.rules = rules }
}

// WithBaselineDir overrides the baseline directory.
func WithBaselineDir(dir string) Option {
	return func(c *checker) { c.baselineDir = dir }
}

// WithArtifactDir overrides the mismatch artifact directory.
func WithArtifactDir(dir string) Option {
	return func(c *checker) { c.artifactDir = dir }
}

// WithUpdate forces baseline acceptance for this call, independent of the
// SEMSHOT_UPDATE environment variable.
func WithUpdate(update bool) Option {
	return func(c *checker) { c.update = update }
}

// Check verifies value against the named baseline and fails t on mismatch.
//
// value may be a state.Value or any tree state.FromAny accepts
// (map[string]any, []any, scalars). Structural problems - unconvertible
// values, unwritable storage, an empty name - fail the test immediately;
// a fingerprint mismatch fails it with the rendered diff.
func Check(t TestingT, name string, value any, opts ...Option) {
	t.Helper()

	c := &checker{
		baselineDir: DefaultBaselineDir,
		artifactDir: DefaultArtifactDir,
		update:      config.UpdateFromEnv(),
	}
	for _, opt := range opts {
		opt(c)
	}

	v, err := state.FromAny(value)
	if err != nil {
		t.Fatalf("semshot: cannot convert value for %q: %v", name, err)
		return
	}

	controller := verify.New(baseline.NewStore(c.baselineDir),
		verify.WithRules(c.rules),
		verify.WithUpdate(c.update),
		verify.WithArtifacts(baseline.NewArtifactWriter(c.artifactDir)),
	)

	outcome, err := controller.Verify(context.Background(), name, v)
	if err != nil {
		t.Fatalf("semshot: verification of %q failed: %v", name, err)
		return
	}

	switch outcome.Status {
	case verify.StatusCreated:
		t.Logf("semshot: baseline created for %q (%s)", name, outcome.Fingerprint)
	case verify.StatusUpdated:
		t.Logf("semshot: baseline updated for %q (%s)", name, outcome.Fingerprint)
	case verify.StatusFail:
		t.Fatalf("semshot: state mismatch for %q (actual written to %s):\n%s",
			name, outcome.ArtifactPath, outcome.Diff.Render(false))
	}
}

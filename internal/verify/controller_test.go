package verify

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/semshot/semshot/internal/baseline"
	"github.com/semshot/semshot/internal/journal"
	"github.com/semshot/semshot/internal/state"
)

func productState(price float64) state.Map {
	return state.Map{
		"Name":    state.String("Product A"),
		"Price":   state.Float(price),
		"InStock": state.Bool(true),
	}
}

func TestVerifyFirstRunCreatesBaseline(t *testing.T) {
	dir := t.TempDir()
	c := New(baseline.NewStore(dir))

	outcome, err := c.Verify(context.Background(), "product_card", productState(100.00))
	require.NoError(t, err)
	require.Equal(t, StatusCreated, outcome.Status)
	require.Len(t, outcome.Fingerprint, 64)
	require.False(t, outcome.Failed())

	// Both artifacts exist.
	require.FileExists(t, filepath.Join(dir, "product_card.sha256"))
	require.FileExists(t, filepath.Join(dir, "product_card.snap.json"))
}

func TestVerifyStableReverification(t *testing.T) {
	dir := t.TempDir()
	c := New(baseline.NewStore(dir))
	ctx := context.Background()

	first, err := c.Verify(ctx, "product_card", productState(100.00))
	require.NoError(t, err)

	digestPath := filepath.Join(dir, "product_card.sha256")
	before, err := os.ReadFile(digestPath)
	require.NoError(t, err)
	beforeInfo, err := os.Stat(digestPath)
	require.NoError(t, err)

	// Same value reconstructed independently, permuted insertion order.
	again := state.Map{}
	again["InStock"] = state.Bool(true)
	again["Price"] = state.Float(100.00)
	again["Name"] = state.String("Product A")

	second, err := c.Verify(ctx, "product_card", again)
	require.NoError(t, err)
	require.Equal(t, StatusPass, second.Status)
	require.Equal(t, first.Fingerprint, second.Fingerprint)

	// Pass performs no writes to the baseline artifacts.
	after, err := os.ReadFile(digestPath)
	require.NoError(t, err)
	require.Equal(t, before, after)
	afterInfo, err := os.Stat(digestPath)
	require.NoError(t, err)
	require.Equal(t, beforeInfo.ModTime(), afterInfo.ModTime())
}

func TestVerifyMismatchFails(t *testing.T) {
	baseDir := t.TempDir()
	artDir := t.TempDir()
	ctx := context.Background()

	c := New(baseline.NewStore(baseDir),
		WithArtifacts(baseline.NewArtifactWriter(artDir)))

	_, err := c.Verify(ctx, "product_card", productState(100.00))
	require.NoError(t, err)

	outcome, err := c.Verify(ctx, "product_card", productState(100.01))
	require.NoError(t, err, "a mismatch is a Fail outcome, not an error")
	require.Equal(t, StatusFail, outcome.Status)
	require.True(t, outcome.Failed())
	require.NotNil(t, outcome.Diff)
	require.False(t, outcome.Diff.Empty())

	// Exactly the price line differs.
	require.Len(t, outcome.Diff.Lines, 1)
	require.Contains(t, outcome.Diff.Lines[0].Expected, "100")
	require.Contains(t, outcome.Diff.Lines[0].Actual, "100.01")

	// Mismatch artifact holds the actual canonical text.
	require.Equal(t, filepath.Join(artDir, "product_card.actual.json"), outcome.ArtifactPath)
	data, err := os.ReadFile(outcome.ArtifactPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "100.01")

	// The stored baseline is untouched by the failure.
	third, err := c.Verify(ctx, "product_card", productState(100.00))
	require.NoError(t, err)
	require.Equal(t, StatusPass, third.Status)
}

func TestVerifyUpdateModeOverwrites(t *testing.T) {
	dir := t.TempDir()
	store := baseline.NewStore(dir)
	ctx := context.Background()

	_, err := New(store).Verify(ctx, "product_card", productState(100.00))
	require.NoError(t, err)

	updater := New(store, WithUpdate(true))
	outcome, err := updater.Verify(ctx, "product_card", productState(100.01))
	require.NoError(t, err)
	require.Equal(t, StatusUpdated, outcome.Status)

	// A subsequent normal-mode verification of the changed value passes.
	after, err := New(store).Verify(ctx, "product_card", productState(100.01))
	require.NoError(t, err)
	require.Equal(t, StatusPass, after.Status)
}

func TestVerifyUpdateModeOnFirstRunCreates(t *testing.T) {
	c := New(baseline.NewStore(t.TempDir()), WithUpdate(true))

	outcome, err := c.Verify(context.Background(), "fresh", productState(1))
	require.NoError(t, err)
	require.Equal(t, StatusCreated, outcome.Status)
}

func TestVerifyEmptyNameIsConfigError(t *testing.T) {
	c := New(baseline.NewStore(t.TempDir()))

	_, err := c.Verify(context.Background(), "", productState(1))
	require.Error(t, err)
	require.True(t, IsConfigError(err))
}

func TestVerifyCyclicValueIsEncodeError(t *testing.T) {
	c := New(baseline.NewStore(t.TempDir()))

	cyclic := make(state.Seq, 1)
	cyclic[0] = cyclic

	_, err := c.Verify(context.Background(), "cyclic", cyclic)
	require.Error(t, err)
	require.False(t, IsConfigError(err))
	require.False(t, IsStorageError(err))
}

func TestVerifyExclusionRules(t *testing.T) {
	store := baseline.NewStore(t.TempDir())
	ctx := context.Background()

	rules := state.Rules{Names: []string{"session_id", "captured_at"}}
	c := New(store, WithRules(rules))

	withVolatile := func(session, ts string) state.Map {
		return state.Map{
			"total":       state.Int(3),
			"session_id":  state.String(session),
			"captured_at": state.String(ts),
		}
	}

	_, err := c.Verify(ctx, "cart", withVolatile("s-1", "2024-01-01"))
	require.NoError(t, err)

	outcome, err := c.Verify(ctx, "cart", withVolatile("s-2", "2024-12-31"))
	require.NoError(t, err)
	require.Equal(t, StatusPass, outcome.Status)

	// The persisted snapshot never contains the excluded fields.
	spec, err := store.Load("cart")
	require.NoError(t, err)
	require.NotContains(t, spec.Snapshot, "session_id")
	require.NotContains(t, spec.Snapshot, "captured_at")
}

func TestVerifyRecordsJournal(t *testing.T) {
	ctx := context.Background()
	j, err := journal.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer j.Close()

	c := New(baseline.NewStore(t.TempDir()), WithJournal(j))

	first, err := c.Verify(ctx, "cart", productState(1))
	require.NoError(t, err)
	second, err := c.Verify(ctx, "cart", productState(2))
	require.NoError(t, err)
	require.Equal(t, StatusFail, second.Status)

	runs, err := j.History(ctx, "cart")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, first.RunID, runs[0].ID)
	require.Equal(t, "created", runs[0].Outcome)
	require.Equal(t, second.RunID, runs[1].ID)
	require.Equal(t, "fail", runs[1].Outcome)
}

package journal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournalRecordAndHistory(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	first := Run{ID: uuid.NewString(), Spec: "cart", Fingerprint: "aa", Outcome: "created"}
	second := Run{ID: uuid.NewString(), Spec: "cart", Fingerprint: "aa", Outcome: "pass"}
	other := Run{ID: uuid.NewString(), Spec: "login", Fingerprint: "bb", Outcome: "fail"}

	require.NoError(t, j.Record(ctx, first))
	require.NoError(t, j.Record(ctx, second))
	require.NoError(t, j.Record(ctx, other))

	runs, err := j.History(ctx, "cart")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, first.ID, runs[0].ID)
	require.Equal(t, second.ID, runs[1].ID)
	require.Less(t, runs[0].Seq, runs[1].Seq)
}

func TestJournalRecordIsIdempotent(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	run := Run{ID: uuid.NewString(), Spec: "cart", Fingerprint: "aa", Outcome: "pass"}
	require.NoError(t, j.Record(ctx, run))
	require.NoError(t, j.Record(ctx, run))

	runs, err := j.History(ctx, "cart")
	require.NoError(t, err)
	require.Len(t, runs, 1)
}

func TestJournalRejectsUnknownOutcome(t *testing.T) {
	j := openTestJournal(t)

	err := j.Record(context.Background(), Run{
		ID: uuid.NewString(), Spec: "cart", Fingerprint: "aa", Outcome: "maybe",
	})
	require.Error(t, err)
}

func TestJournalHistoryEmpty(t *testing.T) {
	j := openTestJournal(t)

	runs, err := j.History(context.Background(), "unknown")
	require.NoError(t, err)
	require.Empty(t, runs)
}

func TestJournalReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Record(context.Background(), Run{
		ID: uuid.NewString(), Spec: "cart", Fingerprint: "aa", Outcome: "pass",
	}))
	require.NoError(t, j.Close())

	j2, err := Open(path)
	require.NoError(t, err)
	defer j2.Close()

	runs, err := j2.History(context.Background(), "cart")
	require.NoError(t, err)
	require.Len(t, runs, 1)
}

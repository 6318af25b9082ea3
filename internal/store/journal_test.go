package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/funvibe/funqy/internal/export"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(context.Background(), filepath.Join(t.TempDir(), "runs", "journal.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndGet(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)

	snap := export.Snapshot{
		Kind: "SUPERPOSITION",
		Repr: "{F: 0.7071, T: 0.7071}",
		Branches: []export.BranchSnapshot{
			{Value: "F", Real: 0.7071, Magnitude: 0.7071, Probability: 0.5},
			{Value: "T", Real: 0.7071, Magnitude: 0.7071, Probability: 0.5},
		},
	}
	run := &Run{
		File:      "bell.fqy",
		Seed:      1 << 63,
		Prints:    []string{"{(F, F): 0.7071, (T, T): 0.7071}", "T"},
		Result:    &snap,
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:  42 * time.Millisecond,
	}
	require.NoError(t, j.Record(ctx, run))
	require.NotEqual(t, uuid.Nil, run.ID)

	got, err := j.Get(ctx, run.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, run.File, got.File)
	assert.Equal(t, run.Seed, got.Seed)
	assert.Equal(t, run.Prints, got.Prints)
	assert.Equal(t, snap, *got.Result)
	assert.True(t, run.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, run.Duration, got.Duration)

	missing, err := j.Get(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRecentOrdering(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"a.fqy", "b.fqy", "c.fqy"} {
		require.NoError(t, j.Record(ctx, &Run{
			File:      name,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, j.Record(ctx, &Run{
		File:      "broken.fqy",
		Error:     "broken.fqy:1:1: unbound identifier: x",
		StartedAt: base.Add(time.Hour),
	}))

	runs, err := j.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "broken.fqy", runs[0].File)
	assert.Contains(t, runs[0].Error, "unbound identifier")
	assert.Nil(t, runs[0].Result)
	assert.Empty(t, runs[0].Prints)
	assert.Equal(t, "c.fqy", runs[1].File)
	assert.Equal(t, "b.fqy", runs[2].File)
}

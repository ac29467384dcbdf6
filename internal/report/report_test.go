package report

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"txscope/internal/model"
)

func TestAccumulatorCounts(t *testing.T) {
	record := model.EventRecord{ChainID: 1, EventType: "send", Timestamp: 1700000100}
	acc := NewAccumulator(record, 1700000000, 1700000300)

	acc.AddEvent(record)
	acc.AddEvent(model.EventRecord{ChainID: 1, EventType: "send", Timestamp: 1700000200, Failed: true})

	window := acc.Window()
	require.Equal(t, uint64(1), window.ChainID)
	require.Equal(t, "send", window.EventType)
	require.Equal(t, int64(300), window.WindowSizeSecs)
	require.Equal(t, uint64(2), window.Count)
	require.Equal(t, uint64(1), window.FailedCount)
	require.Equal(t, uint64(1700000200), acc.LastTS)
}

func TestWindowStart(t *testing.T) {
	require.Equal(t, uint64(1700000000), windowStart(1700000000, 300))
	require.Equal(t, uint64(1700000100), windowStart(1700000399, 300))
}

func TestTypeKeySeparatesChains(t *testing.T) {
	require.NotEqual(t, typeKey(1, "send"), typeKey(2, "send"))
	require.NotEqual(t, typeKey(1, "send"), typeKey(1, "mint"))
}

func TestMinOpenWindowStart(t *testing.T) {
	acc := map[string]*Accumulator{
		"a": {WindowStart: 300},
		"b": {WindowStart: 100},
		"c": nil,
	}
	require.Equal(t, uint64(100), minOpenWindowStart(acc))
	require.Equal(t, uint64(0), minOpenWindowStart(map[string]*Accumulator{}))
}

func TestFileStateStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := &FileStateStore{Path: path}
	ctx := context.Background()

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Save(ctx, 1700000000))

	ts, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(1700000000), ts)
}

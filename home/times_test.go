package home

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTestStore(t *testing.T) {
	t.Helper()
	store, err := sys.OpenStore(context.Background(), filepath.Join(t.TempDir(), "utool.db"), time.UTC)
	require.NoError(t, err)
	sys.SetStore(store)
	t.Cleanup(func() { store.Close() })
}

func TestParseDateTimeInputISO(t *testing.T) {
	withTestStore(t)

	parsed, err := parseDateTimeInput("2026-09-07", "", "10:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), parsed)

	parsed, err = parseDateTimeInput("2026-09-07", "18:30", "10:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 7, 18, 30, 0, 0, time.UTC), parsed)
}

func TestParseDateTimeInputBadClock(t *testing.T) {
	withTestStore(t)

	_, err := parseDateTimeInput("2026-09-07", "25:99", "10:00")
	assert.Error(t, err)
}

func TestParseDateTimeInputUnparsable(t *testing.T) {
	withTestStore(t)

	_, err := parseDateTimeInput("@@not-a-date@@", "", "10:00")
	assert.Error(t, err)
}

func TestParseWhenInputDuration(t *testing.T) {
	withTestStore(t)

	before := time.Now()
	parsed, err := parseWhenInput("90m")
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(90*time.Minute), parsed, 5*time.Second)
}

func TestParseWhenInputUnparsable(t *testing.T) {
	withTestStore(t)

	_, err := parseWhenInput("@@never@@")
	assert.Error(t, err)
}

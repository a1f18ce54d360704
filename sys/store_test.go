package sys

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := OpenStore(context.Background(), path, time.UTC)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreLazyCreate(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "utool.db"))
	gid := snowflake.ID(100000000000000001)

	rec := store.Get(gid)
	require.NotNil(t, rec)
	assert.Empty(t, rec.Events)
	assert.Empty(t, rec.Todos)
	assert.False(t, rec.Reminder.Enabled)

	// Get hands out a copy; mutating it never reaches the store.
	rec.Events = append(rec.Events, Event{Title: "local only", Datetime: "2026-09-07T10:00:00Z"})
	assert.Empty(t, store.Get(gid).Events)
}

func TestStoreGetIsSafeAgainstConcurrentUpdate(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "utool.db"))
	gid := snowflake.ID(100000000000000006)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_ = store.Update(context.Background(), gid, func(rec *GuildRecord) error {
				rec.Events = append(rec.Events, Event{Title: "ev", Datetime: "2026-09-07T10:00:00Z"})
				store.SortEvents(rec.Events)
				return nil
			})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			rec := store.Get(gid)
			for _, ev := range rec.Events {
				_ = ev.Title
			}
		}
	}()
	wg.Wait()

	assert.Len(t, store.Get(gid).Events, 50)
}

func TestStoreUpdatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "utool.db")
	gid := snowflake.ID(100000000000000002)
	due := "2026-09-07T18:00:00Z"

	store := openTestStore(t, path)
	err := store.Update(context.Background(), gid, func(rec *GuildRecord) error {
		rec.Events = append(rec.Events, Event{Title: "Standup", Datetime: "2026-09-07T10:05:00Z"})
		rec.Todos = append(rec.Todos, Todo{Content: "report", AddedAt: "2026-09-01T09:00:00Z", Due: &due})
		rec.Reminder = ReminderSettings{Enabled: true, ChannelID: 42, NotifyMinutes: 10}
		rec.DailyReminders = append(rec.DailyReminders, DailyReminder{Time: "21:00", Message: "wrap up", ChannelID: 42})
		return nil
	})
	require.NoError(t, err)
	store.Close()

	reopened := openTestStore(t, path)
	rec := reopened.Get(gid)
	require.Len(t, rec.Events, 1)
	assert.Equal(t, "Standup", rec.Events[0].Title)
	require.Len(t, rec.Todos, 1)
	require.NotNil(t, rec.Todos[0].Due)
	assert.Equal(t, due, *rec.Todos[0].Due)
	assert.True(t, rec.Reminder.Enabled)
	assert.Equal(t, snowflake.ID(42), rec.Reminder.ChannelID)
	assert.Equal(t, 10, rec.Reminder.NotifyMinutes)
	require.Len(t, rec.DailyReminders, 1)
	assert.Equal(t, "wrap up", rec.DailyReminders[0].Message)
}

func TestStoreUpdateErrorDoesNotPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "utool.db")
	gid := snowflake.ID(100000000000000003)

	store := openTestStore(t, path)
	wantErr := assert.AnError
	err := store.Update(context.Background(), gid, func(rec *GuildRecord) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestStoreSnapshotIsDeepCopy(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "utool.db"))
	gid := snowflake.ID(100000000000000004)
	err := store.Update(context.Background(), gid, func(rec *GuildRecord) error {
		rec.Events = append(rec.Events, Event{Title: "original", Datetime: "2026-09-07T10:00:00Z"})
		return nil
	})
	require.NoError(t, err)

	snap := store.Snapshot()
	require.Contains(t, snap, gid)
	snap[gid].Events[0].Title = "mutated"

	assert.Equal(t, "original", store.Get(gid).Events[0].Title)
}

func TestStoreExportJSONShape(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "utool.db"))
	gid := snowflake.ID(100000000000000005)
	err := store.Update(context.Background(), gid, func(rec *GuildRecord) error {
		rec.Events = append(rec.Events, Event{Title: "Standup", Datetime: "2026-09-07T10:05:00Z"})
		return nil
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, store.ExportJSON(&buf))

	var doc map[string]struct {
		Events []struct {
			Title    string `json:"title"`
			Datetime string `json:"datetime"`
		} `json:"events"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Contains(t, doc, gid.String())
	require.Len(t, doc[gid.String()].Events, 1)
	assert.Equal(t, "Standup", doc[gid.String()].Events[0].Title)
}

func TestFormatAndParseStampRoundtrip(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "utool.db"))

	orig := time.Date(2026, 9, 7, 10, 5, 0, 0, time.UTC)
	stamp := store.FormatStamp(orig)
	parsed, err := store.ParseStamp(stamp)
	require.NoError(t, err)
	assert.True(t, orig.Equal(parsed))
}

func TestParseStampInZonelessLayouts(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	for _, v := range []string{
		"2026-09-07T10:05:00",
		"2026-09-07T10:05",
		"2026-09-07 10:05:00",
		"2026-09-07 10:05",
	} {
		parsed, err := ParseStampIn(v, tokyo)
		require.NoError(t, err, v)
		assert.Equal(t, tokyo, parsed.Location(), v)
		assert.Equal(t, 10, parsed.Hour(), v)
	}

	_, err = ParseStampIn("next tuesday", tokyo)
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 30, m)

	h, m, err = ParseClock("0:0")
	require.NoError(t, err)
	assert.Equal(t, 0, h)
	assert.Equal(t, 0, m)

	for _, bad := range []string{"24:00", "12:60", "-1:30", "noon", "12", "12:30:00", "12:3x"} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]time.Weekday{
		"Monday":    time.Monday,
		"monday":    time.Monday,
		"mon":       time.Monday,
		"TUE":       time.Tuesday,
		"saturday":  time.Saturday,
		" sunday ":  time.Sunday,
		"Wednesday": time.Wednesday,
	}
	for in, want := range cases {
		wd, err := ParseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, wd, in)
	}

	for _, bad := range []string{"", "noday", "m", "funday"} {
		_, err := ParseWeekday(bad)
		assert.Error(t, err, bad)
	}
}

func TestNotifyLeadDefault(t *testing.T) {
	assert.Equal(t, 5, ReminderSettings{}.NotifyLead())
	assert.Equal(t, 5, ReminderSettings{NotifyMinutes: -3}.NotifyLead())
	assert.Equal(t, 30, ReminderSettings{NotifyMinutes: 30}.NotifyLead())
}

func TestSortEvents(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "utool.db"))
	events := []Event{
		{Title: "later", Datetime: "2026-09-08T10:00:00Z"},
		{Title: "broken", Datetime: "garbage"},
		{Title: "sooner", Datetime: "2026-09-07T10:00:00Z"},
	}
	store.SortEvents(events)

	assert.Equal(t, "sooner", events[0].Title)
	assert.Equal(t, "later", events[1].Title)
	assert.Equal(t, "broken", events[2].Title)
}

func TestSortTodosDueDatedFirst(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "utool.db"))
	dueLate := "2026-09-09T10:00:00Z"
	dueSoon := "2026-09-07T10:00:00Z"
	todos := []Todo{
		{Content: "undated old", AddedAt: "2026-09-01T09:00:00Z"},
		{Content: "due late", AddedAt: "2026-09-02T09:00:00Z", Due: &dueLate},
		{Content: "due soon", AddedAt: "2026-09-03T09:00:00Z", Due: &dueSoon},
		{Content: "undated new", AddedAt: "2026-09-04T09:00:00Z"},
	}
	store.SortTodos(todos)

	assert.Equal(t, "due soon", todos[0].Content)
	assert.Equal(t, "due late", todos[1].Content)
	assert.Equal(t, "undated old", todos[2].Content)
	assert.Equal(t, "undated new", todos[3].Content)
}

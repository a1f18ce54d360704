package proc

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	sent       []Notification
	unresolved map[snowflake.ID]bool
	sendErr    error
}

func (f *fakeSink) Send(_ context.Context, channelID snowflake.ID, content string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, Notification{ChannelID: channelID, Content: content})
	return nil
}

func (f *fakeSink) Resolve(_ context.Context, channelID snowflake.ID) bool {
	return !f.unresolved[channelID]
}

const testChannel = snowflake.ID(111111111111111111)

// mustTime parses an RFC3339 timestamp or fails the test.
func mustTime(t *testing.T, v string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, v)
	require.NoError(t, err)
	return parsed
}

func enabledRecord() *sys.GuildRecord {
	return &sys.GuildRecord{
		Reminder: sys.ReminderSettings{
			Enabled:   true,
			ChannelID: testChannel,
		},
	}
}

func TestEvaluateEventFiresExactlyAtLead(t *testing.T) {
	rec := enabledRecord()
	rec.Events = []sys.Event{{Title: "Standup", Datetime: "2026-09-07T10:05:00Z"}}

	cases := []struct {
		now   string
		fires bool
	}{
		{"2026-09-07T09:59:00Z", false},
		{"2026-09-07T10:00:00Z", true},
		{"2026-09-07T10:01:00Z", false},
		{"2026-09-07T10:05:00Z", false},
	}
	for _, tc := range cases {
		got := Evaluate(rec, mustTime(t, tc.now), time.UTC)
		if tc.fires {
			require.Len(t, got, 1, "at %s", tc.now)
			assert.Equal(t, testChannel, got[0].ChannelID)
			assert.Equal(t, "⏰ **5 minutes** until **Standup**", got[0].Content)
		} else {
			assert.Empty(t, got, "at %s", tc.now)
		}
	}
}

func TestEvaluateCustomLead(t *testing.T) {
	rec := enabledRecord()
	rec.Reminder.NotifyMinutes = 30
	rec.Events = []sys.Event{{Title: "Meeting", Datetime: "2026-09-07T12:00:00Z"}}

	got := Evaluate(rec, mustTime(t, "2026-09-07T11:30:00Z"), time.UTC)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Content, "**30 minutes**")

	assert.Empty(t, Evaluate(rec, mustTime(t, "2026-09-07T11:55:00Z"), time.UTC))
}

func TestEvaluateDisabledSuppressesEventsAndTodos(t *testing.T) {
	due := "2026-09-07T10:05:00Z"
	rec := &sys.GuildRecord{
		Reminder: sys.ReminderSettings{Enabled: false, ChannelID: testChannel},
		Events:   []sys.Event{{Title: "Standup", Datetime: due}},
		Todos:    []sys.Todo{{Content: "report", Due: &due}},
	}

	assert.Empty(t, Evaluate(rec, mustTime(t, "2026-09-07T10:00:00Z"), time.UTC))
}

func TestEvaluateZeroChannelSuppressesEventsAndTodos(t *testing.T) {
	rec := &sys.GuildRecord{
		Reminder: sys.ReminderSettings{Enabled: true, ChannelID: 0},
		Events:   []sys.Event{{Title: "Standup", Datetime: "2026-09-07T10:05:00Z"}},
	}

	assert.Empty(t, Evaluate(rec, mustTime(t, "2026-09-07T10:00:00Z"), time.UTC))
}

func TestEvaluateTodoDue(t *testing.T) {
	due := "2026-09-07T10:05:00Z"
	rec := enabledRecord()
	rec.Todos = []sys.Todo{{Content: "ship the report", Due: &due}}

	got := Evaluate(rec, mustTime(t, "2026-09-07T10:00:00Z"), time.UTC)
	require.Len(t, got, 1)
	assert.Equal(t, "⏰ **5 minutes** until due: ship the report", got[0].Content)
}

func TestEvaluateDoneAndUndatedTodosNeverFire(t *testing.T) {
	due := "2026-09-07T10:05:00Z"
	empty := ""
	rec := enabledRecord()
	rec.Todos = []sys.Todo{
		{Content: "done already", Done: true, Due: &due},
		{Content: "no due date"},
		{Content: "empty due", Due: &empty},
	}

	assert.Empty(t, Evaluate(rec, mustTime(t, "2026-09-07T10:00:00Z"), time.UTC))
}

func TestEvaluateDailyFiresRegardlessOfEnabled(t *testing.T) {
	rec := &sys.GuildRecord{
		Reminder: sys.ReminderSettings{Enabled: false},
		DailyReminders: []sys.DailyReminder{
			{Time: "21:00", Message: "wrap up", ChannelID: testChannel},
		},
	}

	got := Evaluate(rec, mustTime(t, "2026-09-07T21:00:00Z"), time.UTC)
	require.Len(t, got, 1)
	assert.Equal(t, "⏰ Daily reminder: wrap up", got[0].Content)
	assert.Equal(t, testChannel, got[0].ChannelID)

	assert.Empty(t, Evaluate(rec, mustTime(t, "2026-09-07T21:01:00Z"), time.UTC))
}

func TestEvaluateWeekly(t *testing.T) {
	rec := &sys.GuildRecord{
		WeeklyReminders: []sys.WeeklyReminder{
			{Weekday: "Monday", Time: "09:00", Message: "weekly sync", ChannelID: testChannel},
		},
	}

	// 2026-09-07 is a Monday.
	got := Evaluate(rec, mustTime(t, "2026-09-07T09:00:00Z"), time.UTC)
	require.Len(t, got, 1)
	assert.Equal(t, "⏰ Weekly reminder: weekly sync", got[0].Content)

	// Same clock on Tuesday stays quiet.
	assert.Empty(t, Evaluate(rec, mustTime(t, "2026-09-08T09:00:00Z"), time.UTC))
}

func TestEvaluateSkipsMalformedItems(t *testing.T) {
	badDue := "not a date"
	rec := enabledRecord()
	rec.Events = []sys.Event{
		{Title: "broken", Datetime: "garbage"},
		{Title: "fine", Datetime: "2026-09-07T10:05:00Z"},
	}
	rec.Todos = []sys.Todo{{Content: "broken todo", Due: &badDue}}
	rec.DailyReminders = []sys.DailyReminder{
		{Time: "25:99", Message: "broken daily", ChannelID: testChannel},
	}
	rec.WeeklyReminders = []sys.WeeklyReminder{
		{Weekday: "Noday", Time: "09:00", Message: "broken weekly", ChannelID: testChannel},
	}

	got := Evaluate(rec, mustTime(t, "2026-09-07T10:00:00Z"), time.UTC)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Content, "fine")
}

func TestEvaluateIsPure(t *testing.T) {
	rec := enabledRecord()
	rec.Events = []sys.Event{{Title: "Standup", Datetime: "2026-09-07T10:05:00Z"}}
	now := mustTime(t, "2026-09-07T10:00:00Z")

	first := Evaluate(rec, now, time.UTC)
	second := Evaluate(rec, now, time.UTC)
	assert.Equal(t, first, second)
}

func TestEvaluateTimezoneAware(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	rec := enabledRecord()
	// Zone-less stamp is read in the bot time zone.
	rec.Events = []sys.Event{{Title: "Standup", Datetime: "2026-09-07 10:05"}}

	// 01:00 UTC is 10:00 JST.
	now := mustTime(t, "2026-09-07T01:00:00Z").In(tokyo)
	got := Evaluate(rec, now, tokyo)
	require.Len(t, got, 1)
}

func newTestStore(t *testing.T) *sys.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "utool.db")
	store, err := sys.OpenStore(context.Background(), path, time.UTC)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRunCycleDeliversAndDeduplicatesMinute(t *testing.T) {
	store := newTestStore(t)
	gid := snowflake.ID(222222222222222222)
	err := store.Update(context.Background(), gid, func(rec *sys.GuildRecord) error {
		rec.Reminder = sys.ReminderSettings{Enabled: true, ChannelID: testChannel}
		rec.Events = append(rec.Events, sys.Event{Title: "Standup", Datetime: "2026-09-07T10:05:00Z"})
		return nil
	})
	require.NoError(t, err)

	sink := &fakeSink{}
	s := NewScheduler(store, sink)

	now := mustTime(t, "2026-09-07T10:00:10Z")
	s.RunCycle(context.Background(), now)
	require.Len(t, sink.sent, 1)

	// A second tick inside the same minute is a no-op.
	s.RunCycle(context.Background(), now.Add(30*time.Second))
	assert.Len(t, sink.sent, 1)

	// The next minute evaluates again, but the match window has passed.
	s.RunCycle(context.Background(), now.Add(time.Minute))
	assert.Len(t, sink.sent, 1)
}

func TestRunCycleSkipsUnresolvableChannels(t *testing.T) {
	store := newTestStore(t)
	gid := snowflake.ID(333333333333333333)
	err := store.Update(context.Background(), gid, func(rec *sys.GuildRecord) error {
		rec.DailyReminders = append(rec.DailyReminders,
			sys.DailyReminder{Time: "21:00", Message: "gone", ChannelID: testChannel})
		return nil
	})
	require.NoError(t, err)

	sink := &fakeSink{unresolved: map[snowflake.ID]bool{testChannel: true}}
	s := NewScheduler(store, sink)

	s.RunCycle(context.Background(), mustTime(t, "2026-09-07T21:00:00Z"))
	assert.Empty(t, sink.sent)
}

func TestDeltaMinutesFloors(t *testing.T) {
	base := mustTime(t, "2026-09-07T10:00:00Z")
	assert.Equal(t, 5, deltaMinutes(base.Add(5*time.Minute), base))
	assert.Equal(t, 4, deltaMinutes(base.Add(5*time.Minute), base.Add(30*time.Second)))
	assert.Equal(t, -1, deltaMinutes(base.Add(-time.Second), base))
	assert.Equal(t, 0, deltaMinutes(base, base))
}

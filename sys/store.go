package sys

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	_ "github.com/mattn/go-sqlite3"
)

// --- Guild data model ---
//
// The JSON shape below is the persisted layout; every timestamp is an
// ISO-8601 string normalized to the bot time zone at write time, so the
// scheduler can compare against "now" without re-resolving zones.

type Event struct {
	Title    string `json:"title"`
	Datetime string `json:"datetime"`
}

type Todo struct {
	Content string  `json:"content"`
	Done    bool    `json:"done"`
	AddedAt string  `json:"added_at"`
	DoneAt  *string `json:"done_at"`
	Due     *string `json:"due"`
}

type ReminderSettings struct {
	Enabled       bool         `json:"enabled"`
	ChannelID     snowflake.ID `json:"channel_id"`
	NotifyMinutes int          `json:"notify_minutes"`
}

// NotifyLead returns the configured lead minutes, defaulting to 5.
func (r ReminderSettings) NotifyLead() int {
	if r.NotifyMinutes <= 0 {
		return 5
	}
	return r.NotifyMinutes
}

type DailyReminder struct {
	Time      string       `json:"time"`
	Message   string       `json:"message"`
	ChannelID snowflake.ID `json:"channel_id"`
}

type WeeklyReminder struct {
	Weekday   string       `json:"weekday"`
	Time      string       `json:"time"`
	Message   string       `json:"message"`
	ChannelID snowflake.ID `json:"channel_id"`
}

type GuildRecord struct {
	Events          []Event          `json:"events"`
	Todos           []Todo           `json:"todos"`
	Reminder        ReminderSettings `json:"reminder"`
	DailyReminders  []DailyReminder  `json:"daily_reminders"`
	WeeklyReminders []WeeklyReminder `json:"weekly_reminders"`
}

func newGuildRecord() *GuildRecord {
	return &GuildRecord{
		Events:          []Event{},
		Todos:           []Todo{},
		DailyReminders:  []DailyReminder{},
		WeeklyReminders: []WeeklyReminder{},
	}
}

func (g *GuildRecord) clone() *GuildRecord {
	out := &GuildRecord{
		Events:          append([]Event(nil), g.Events...),
		Todos:           append([]Todo(nil), g.Todos...),
		Reminder:        g.Reminder,
		DailyReminders:  append([]DailyReminder(nil), g.DailyReminders...),
		WeeklyReminders: append([]WeeklyReminder(nil), g.WeeklyReminders...),
	}
	return out
}

// --- Store ---

// Store is the guild data store: an in-memory map of guild records backed by
// sqlite. Records are created lazily, mutated only through Update and written
// back as whole snapshots.
type Store struct {
	db  *sql.DB
	loc *time.Location

	mu      sync.RWMutex
	records map[snowflake.ID]*GuildRecord
}

func OpenStore(ctx context.Context, dataSourceName string, loc *time.Location) (*Store, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(5)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA cache_size=-2000;",
	}

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, p := range pragmas {
		if _, err := db.ExecContext(initCtx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf(MsgDatabasePragmaError, p, err)
		}
	}

	if _, err := db.ExecContext(initCtx, `CREATE TABLE IF NOT EXISTS guild_records (
		guild_id TEXT PRIMARY KEY,
		record TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf(MsgDatabaseTableError, err)
	}

	s := &Store{
		db:      db,
		loc:     loc,
		records: map[snowflake.ID]*GuildRecord{},
	}

	if err := s.load(initCtx); err != nil {
		db.Close()
		return nil, err
	}

	LogDatabase(MsgDatabaseInitSuccess)
	return s, nil
}

func (s *Store) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// Location is the bot time zone all stored timestamps are normalized to.
func (s *Store) Location() *time.Location {
	return s.loc
}

func (s *Store) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, "SELECT guild_id, record FROM guild_records")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var gidStr, raw string
		if err := rows.Scan(&gidStr, &raw); err != nil {
			continue
		}
		gid, err := snowflake.Parse(gidStr)
		if err != nil {
			LogDatabase(MsgDatabaseLoadSkip, gidStr, err)
			continue
		}
		rec := newGuildRecord()
		if err := json.Unmarshal([]byte(raw), rec); err != nil {
			LogDatabase(MsgDatabaseLoadSkip, gidStr, err)
			continue
		}
		s.records[gid] = rec
	}

	LogDatabase(MsgDatabaseLoaded, len(s.records))
	return rows.Err()
}

// Get returns a copy of the record for a guild, creating an empty one on
// first access. A concurrent Update mutates the stored record in place, so
// readers get their own copy. Mutations go through Update.
func (s *Store) Get(guildID snowflake.ID) *GuildRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(guildID).clone()
}

func (s *Store) getLocked(guildID snowflake.ID) *GuildRecord {
	rec, ok := s.records[guildID]
	if !ok {
		rec = newGuildRecord()
		s.records[guildID] = rec
	}
	return rec
}

// Update runs a single-writer mutation against one guild's record and then
// persists the whole snapshot, matching the command surface contract of
// persisting after every mutation.
func (s *Store) Update(ctx context.Context, guildID snowflake.ID, fn func(rec *GuildRecord) error) error {
	s.mu.Lock()
	rec := s.getLocked(guildID)
	if err := fn(rec); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	return s.PersistAll(ctx)
}

// Snapshot returns a deep copy of all guild records for a read-only pass.
func (s *Store) Snapshot() map[snowflake.ID]*GuildRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[snowflake.ID]*GuildRecord, len(s.records))
	for gid, rec := range s.records {
		out[gid] = rec.clone()
	}
	return out
}

// PersistAll durably writes every guild record in a single transaction.
func (s *Store) PersistAll(ctx context.Context) error {
	s.mu.RLock()
	encoded := make(map[snowflake.ID][]byte, len(s.records))
	for gid, rec := range s.records {
		data, err := json.Marshal(rec)
		if err != nil {
			s.mu.RUnlock()
			return err
		}
		encoded[gid] = data
	}
	s.mu.RUnlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for gid, data := range encoded {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO guild_records (guild_id, record) VALUES (?, ?)
			ON CONFLICT(guild_id) DO UPDATE SET record = excluded.record, updated_at = CURRENT_TIMESTAMP
		`, gid.String(), string(data)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ExportJSON writes the whole store as one JSON document keyed by guild ID.
func (s *Store) ExportJSON(w io.Writer) error {
	snap := s.Snapshot()

	doc := make(map[string]*GuildRecord, len(snap))
	for gid, rec := range snap {
		doc[gid.String()] = rec
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// --- Time helpers shared by commands and the scheduler ---

// FormatStamp normalizes a timestamp into the stored ISO-8601 form.
func (s *Store) FormatStamp(t time.Time) string {
	return t.In(s.loc).Format(time.RFC3339)
}

// ParseStamp reads a stored timestamp. Zone-less values (older records) are
// interpreted in the bot time zone.
func (s *Store) ParseStamp(v string) (time.Time, error) {
	return ParseStampIn(v, s.loc)
}

// ParseStampIn parses a stored ISO-8601 timestamp, interpreting zone-less
// values (older records) in the given location.
func ParseStampIn(v string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05", "2006-01-02T15:04",
		"2006-01-02 15:04:05", "2006-01-02 15:04",
	} {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp: %q", v)
}

// ParseClock validates an HH:MM wall-clock string.
func ParseClock(v string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(v), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time: %q", v)
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("invalid clock time: %q", v)
	}
	return h, m, nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

// ParseWeekday accepts full English weekday names and 3-letter prefixes.
func ParseWeekday(v string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(v))
	if wd, ok := weekdayNames[key]; ok {
		return wd, nil
	}
	if len(key) >= 3 {
		for name, wd := range weekdayNames {
			if strings.HasPrefix(name, key[:3]) {
				return wd, nil
			}
		}
	}
	return 0, fmt.Errorf("invalid weekday: %q", v)
}

// SortEvents keeps events in datetime order; unparsable stamps sort last.
func (s *Store) SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, erri := s.ParseStamp(events[i].Datetime)
		tj, errj := s.ParseStamp(events[j].Datetime)
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return ti.Before(tj)
	})
}

// SortTodos orders due-dated todos first (ascending), then undated ones by
// added time.
func (s *Store) SortTodos(todos []Todo) {
	key := func(t Todo) (int, time.Time, string) {
		if t.Due != nil && *t.Due != "" {
			if d, err := s.ParseStamp(*t.Due); err == nil {
				return 0, d, t.AddedAt
			}
		}
		return 1, time.Time{}, t.AddedAt
	}
	sort.SliceStable(todos, func(i, j int) bool {
		gi, di, ai := key(todos[i])
		gj, dj, aj := key(todos[j])
		if gi != gj {
			return gi < gj
		}
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return ai < aj
	})
}

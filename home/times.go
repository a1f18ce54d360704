package home

import (
	"fmt"
	"time"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/sho0pi/naturaltime"
)

var timeParser *naturaltime.Parser

func init() {
	var err error
	timeParser, err = naturaltime.New()
	if err != nil {
		sys.LogFatal("Failed to initialize naturaltime parser: %v", err)
	}
}

// parseDateTimeInput turns user-entered date/time options into a concrete
// time in the bot time zone. date is "YYYY-MM-DD" or a natural phrase;
// clock, when given, must be HH:MM and overrides the time of day.
func parseDateTimeInput(date, clock string, defaultClock string) (time.Time, error) {
	loc := sys.Data.Location()
	now := time.Now().In(loc)

	if clock == "" {
		clock = defaultClock
	}
	h, m, clockErr := sys.ParseClock(clock)

	if d, err := time.ParseInLocation("2006-01-02", date, loc); err == nil {
		if clockErr != nil {
			return time.Time{}, clockErr
		}
		return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, loc), nil
	}

	// Fall back to natural language ("next friday", "tomorrow 18:00").
	if t, err := timeParser.ParseDate(date, now); err == nil && t != nil {
		parsed := t.In(loc)
		if clock != defaultClock && clockErr == nil {
			parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), h, m, 0, 0, loc)
		}
		return parsed, nil
	}

	return time.Time{}, fmt.Errorf("unparsable date: %q", date)
}

// parseWhenInput parses one-shot timer input: a Go duration ("90m") or a
// natural phrase ("in 2 hours").
func parseWhenInput(when string) (time.Time, error) {
	loc := sys.Data.Location()
	now := time.Now().In(loc)

	if d, err := time.ParseDuration(when); err == nil {
		return now.Add(d), nil
	}
	if t, err := timeParser.ParseDate(when, now); err == nil && t != nil {
		return t.In(loc), nil
	}
	return time.Time{}, fmt.Errorf("unparsable time: %q", when)
}

package proc

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/bot"
)

var schedulerRunning int32

func init() {
	sys.OnClientReady(func(ctx context.Context, client *bot.Client) {
		sys.RegisterDaemon(sys.LogScheduler, func(ctx context.Context) (bool, func(), func()) {
			return StartScheduler(ctx, sys.Data, NewRestSink(client))
		})
	})
}

// Scheduler is the recurring notification loop. Once per polling interval it
// takes a snapshot of every guild record and delivers the notifications whose
// time conditions match the current minute. It never mutates guild data.
type Scheduler struct {
	store    *sys.Store
	sink     Sink
	interval time.Duration

	// lastMinute guarantees at-most-once evaluation per minute boundary even
	// when two ticks land inside the same minute.
	lastMinute time.Time
}

func NewScheduler(store *sys.Store, sink Sink) *Scheduler {
	return &Scheduler{
		store:    store,
		sink:     sink,
		interval: 55 * time.Second,
	}
}

// StartScheduler is the daemon entry point. The atomic guard prevents a
// second loop from ever starting; duplicate loops would double-send
// every notification.
func StartScheduler(parentCtx context.Context, store *sys.Store, sink Sink) (bool, func(), func()) {
	if !atomic.CompareAndSwapInt32(&schedulerRunning, 0, 1) {
		return false, nil, nil
	}

	s := NewScheduler(store, sink)
	ctx, cancel := context.WithCancel(parentCtx)

	run := func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.RunCycle(ctx, time.Now())
			case <-ctx.Done():
				return
			}
		}
	}

	return true, run, cancel
}

// RunCycle evaluates every guild once for the minute containing now and
// delivers the matches. Delivery is best effort: unresolvable channels and
// send failures are skipped without retry.
func (s *Scheduler) RunCycle(parentCtx context.Context, now time.Time) {
	minute := now.In(s.store.Location()).Truncate(time.Minute)
	if minute.Equal(s.lastMinute) {
		sys.LogDebug(sys.MsgSchedulerCycleSkip, minute.Format("15:04"))
		return
	}
	s.lastMinute = minute

	ctx, cancel := context.WithTimeout(parentCtx, 50*time.Second)
	defer cancel()

	delivered := 0
	for _, rec := range s.store.Snapshot() {
		for _, n := range Evaluate(rec, minute, s.store.Location()) {
			if !s.sink.Resolve(ctx, n.ChannelID) {
				sys.LogDebug(sys.MsgSchedulerChannelSkip, n.ChannelID.String())
				continue
			}
			if err := s.sink.Send(ctx, n.ChannelID, n.Content); err != nil {
				sys.LogScheduler(sys.MsgSchedulerSendFail, n.ChannelID.String(), err)
				continue
			}
			delivered++
		}
	}

	if delivered > 0 {
		sys.LogScheduler(sys.MsgSchedulerDelivered, delivered, minute.Format("15:04"))
	}
}

// Evaluate computes the notifications one guild record produces at the given
// minute. It is a pure function of record and time: running it twice against
// the same inputs yields the same decisions.
//
// One-off notifications for events and todo due dates are gated by the
// guild's reminder settings; daily and weekly reminders fire regardless of
// the enabled flag. Malformed items are skipped so one bad record never
// aborts the rest of the scan.
func Evaluate(rec *sys.GuildRecord, now time.Time, loc *time.Location) []Notification {
	var out []Notification

	if rec.Reminder.Enabled && rec.Reminder.ChannelID != 0 {
		lead := rec.Reminder.NotifyLead()

		for _, ev := range rec.Events {
			target, err := sys.ParseStampIn(ev.Datetime, loc)
			if err != nil {
				continue
			}
			if deltaMinutes(target, now) == lead {
				out = append(out, Notification{
					ChannelID: rec.Reminder.ChannelID,
					Content:   fmt.Sprintf("⏰ **%d minutes** until **%s**", lead, ev.Title),
				})
			}
		}

		for _, td := range rec.Todos {
			if td.Done || td.Due == nil || *td.Due == "" {
				continue
			}
			target, err := sys.ParseStampIn(*td.Due, loc)
			if err != nil {
				continue
			}
			if deltaMinutes(target, now) == lead {
				out = append(out, Notification{
					ChannelID: rec.Reminder.ChannelID,
					Content:   fmt.Sprintf("⏰ **%d minutes** until due: %s", lead, td.Content),
				})
			}
		}
	}

	for _, dr := range rec.DailyReminders {
		h, m, err := sys.ParseClock(dr.Time)
		if err != nil {
			continue
		}
		if now.Hour() == h && now.Minute() == m {
			out = append(out, Notification{
				ChannelID: dr.ChannelID,
				Content:   fmt.Sprintf("⏰ Daily reminder: %s", dr.Message),
			})
		}
	}

	for _, wr := range rec.WeeklyReminders {
		wd, err := sys.ParseWeekday(wr.Weekday)
		if err != nil {
			continue
		}
		h, m, err := sys.ParseClock(wr.Time)
		if err != nil {
			continue
		}
		if now.Weekday() == wd && now.Hour() == h && now.Minute() == m {
			out = append(out, Notification{
				ChannelID: wr.ChannelID,
				Content:   fmt.Sprintf("⏰ Weekly reminder: %s", wr.Message),
			})
		}
	}

	return out
}

// deltaMinutes is the floor of (target - now) in whole minutes.
func deltaMinutes(target, now time.Time) int {
	return int(math.Floor(target.Sub(now).Minutes()))
}

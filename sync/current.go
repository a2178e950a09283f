package sync

import (
	"time"

	"github.com/gaurav-prasanna/dayscribe/core"
)

// earlyGrace counts a meeting as current shortly before it starts, so the
// summary marker and the shortcut note flip over while you are joining.
const earlyGrace = 5 * time.Minute

// CurrentMeeting returns the meeting active at now, or nil. A meeting is
// active from earlyGrace before its start until its end. When meetings
// overlap, timed meetings beat all-day ones and the most recently started
// wins.
func CurrentMeeting(events []core.Event, now time.Time) *core.Event {
	var best *core.Event
	var bestAllDay *core.Event

	for i := range events {
		ev := &events[i]
		end := ev.End
		if end.IsZero() {
			end = ev.Start.Add(time.Hour)
		}
		if now.Before(ev.Start.Add(-earlyGrace)) || now.After(end) {
			continue
		}

		if ev.IsAllDay {
			if bestAllDay == nil || ev.Start.After(bestAllDay.Start) {
				bestAllDay = ev
			}
			continue
		}
		if best == nil || ev.Start.After(best.Start) {
			best = ev
		}
	}

	if best != nil {
		return best
	}
	return bestAllDay
}

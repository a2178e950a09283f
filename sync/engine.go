// Package sync orchestrates the calendar → vault pipeline: fetch events,
// format each one as a note, write notes and daily summaries into the vault.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/gaurav-prasanna/dayscribe/core"
)

// Result summarizes one sync cycle.
type Result struct {
	EventsSynced     int
	NotesCreated     int
	NotesUpdated     int
	SummariesCreated int
	SummariesUpdated int
	SyncTime         time.Time
}

// Engine runs sync cycles. All collaborators are interfaces so cycles are
// testable without a network or a real vault.
type Engine struct {
	source    core.EventSource
	formatter core.NoteFormatter
	writer    core.NoteWriter
	summaries *SummaryGenerator  // nil disables daily summaries
	shortcuts *ShortcutGenerator // nil disables the current-meeting shortcut
	log       *slog.Logger
}

// NewEngine wires up a sync engine. Pass a nil summaries or shortcuts
// generator to skip daily summary notes or the current-meeting shortcut.
func NewEngine(source core.EventSource, formatter core.NoteFormatter, writer core.NoteWriter, summaries *SummaryGenerator, shortcuts *ShortcutGenerator, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		source:    source,
		formatter: formatter,
		writer:    writer,
		summaries: summaries,
		shortcuts: shortcuts,
		log:       log,
	}
}

// DefaultWindow is the sync range used when the caller does not pick one:
// yesterday through seven days out.
func DefaultWindow(now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -1), today.AddDate(0, 0, 8)
}

// Sync fetches events in [start, end), writes a note per active event, and
// regenerates daily summaries for every date that has events.
func (e *Engine) Sync(ctx context.Context, start, end time.Time) (*Result, error) {
	e.log.Info("starting sync cycle", "start", start.Format("2006-01-02"), "end", end.Format("2006-01-02"))

	events, err := e.source.FetchEvents(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}

	active := make([]core.Event, 0, len(events))
	for _, ev := range events {
		if !ev.IsCancelled {
			active = append(active, ev)
		}
	}
	e.log.Info("fetched events", "total", len(events), "active", len(active))

	result := &Result{EventsSynced: len(active), SyncTime: time.Now()}

	for _, ev := range active {
		created, err := e.writeEventNote(ev)
		if err != nil {
			e.log.Error("failed to write note", "subject", ev.Subject, "error", err)
			continue
		}
		if created {
			result.NotesCreated++
		} else {
			result.NotesUpdated++
		}
	}

	current := CurrentMeeting(active, time.Now())

	if e.summaries != nil {
		e.writeSummaries(active, current, result)
	}
	if e.shortcuts != nil {
		if err := e.shortcuts.Write(current, time.Now()); err != nil {
			e.log.Error("failed to write current-meeting shortcut", "error", err)
		}
	}

	e.log.Info("sync cycle finished",
		"created", result.NotesCreated, "updated", result.NotesUpdated)
	return result, nil
}

func (e *Engine) writeEventNote(ev core.Event) (created bool, err error) {
	filename := e.formatter.Filename(ev)
	exists := e.writer.NoteExists(filename, core.FolderCalendarEvents, ev.Day())

	content, err := e.formatter.FormatEvent(ev)
	if err != nil {
		return false, err
	}
	if _, err := e.writer.WriteNote(content, filename, core.FolderCalendarEvents, ev.Day()); err != nil {
		return false, err
	}
	return !exists, nil
}

func (e *Engine) writeSummaries(active []core.Event, current *core.Event, result *Result) {
	byDay := make(map[time.Time][]core.Event)
	for _, ev := range active {
		byDay[ev.Day()] = append(byDay[ev.Day()], ev)
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	for _, day := range days {
		// Only highlight the current meeting on its own date.
		var currentForDay *core.Event
		if current != nil && current.Day().Equal(day) {
			currentForDay = current
		}

		created, err := e.summaries.Write(day, byDay[day], currentForDay)
		if err != nil {
			e.log.Error("failed to write daily summary", "day", day.Format("2006-01-02"), "error", err)
			continue
		}
		if created {
			result.SummariesCreated++
		} else {
			result.SummariesUpdated++
		}
	}
}

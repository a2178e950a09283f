// Package core defines the shared event model and the pipeline interfaces
// for dayscribe. Each stage of the sync pipeline is a clean, testable
// interface: source → formatter → writer.
package core

import (
	"context"
	"time"
)

// Attendee is one meeting participant.
type Attendee struct {
	Name  string
	Email string
}

// Event is the normalized calendar event, independent of any provider wire
// format. Body is clean Markdown; RawBody keeps the provider's original
// HTML/text for URL scans and snippets.
type Event struct {
	ID       string
	Subject  string
	Start    time.Time
	End      time.Time
	Location string

	Organizer Attendee
	Attendees []Attendee

	Body    string
	RawBody string

	IsAllDay         bool
	IsCancelled      bool
	IsOnlineMeeting  bool
	OnlineMeetingURL string
}

// Day returns the event's calendar date (start, truncated to midnight).
func (e Event) Day() time.Time {
	y, m, d := e.Start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.Start.Location())
}

// EventSource fetches normalized events for a date range.
type EventSource interface {
	FetchEvents(ctx context.Context, start, end time.Time) ([]Event, error)
}

// NoteFormatter turns an event into note content and a vault filename.
type NoteFormatter interface {
	FormatEvent(ev Event) ([]byte, error)
	Filename(ev Event) string
}

// Folder types name the configured vault locations notes are written to.
// FolderVaultRoot addresses the vault itself, for pinned notes like the
// current-meeting shortcut.
const (
	FolderCalendarEvents = "calendar_events"
	FolderDailyNotes     = "daily_notes"
	FolderVaultRoot      = "vault_root"
)

// NoteWriter persists notes into the vault. folderType is one of the Folder
// constants above; day selects the date-based subfolder when folder
// organization is enabled.
type NoteWriter interface {
	WriteNote(content []byte, filename, folderType string, day time.Time) (string, error)
	NoteExists(filename, folderType string, day time.Time) bool
}

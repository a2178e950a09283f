package sync

import (
	"fmt"
	"strings"
	"time"

	"github.com/gaurav-prasanna/dayscribe/core"
)

// shortcutFilename is the pinned note at the vault root pointing at the
// meeting in progress.
const shortcutFilename = "Current Meeting.md"

// maxShortcutAttendees caps the attendee list in the shortcut note.
const maxShortcutAttendees = 5

// ShortcutGenerator maintains the current-meeting shortcut note. The note is
// rewritten every sync cycle: a pointer when a meeting is active, a
// placeholder otherwise.
type ShortcutGenerator struct {
	writer    core.NoteWriter
	formatter core.NoteFormatter
}

// NewShortcutGenerator creates a generator writing through the given writer.
func NewShortcutGenerator(writer core.NoteWriter, formatter core.NoteFormatter) *ShortcutGenerator {
	return &ShortcutGenerator{writer: writer, formatter: formatter}
}

// Write persists the shortcut note for the given current meeting (nil means
// no meeting is active).
func (g *ShortcutGenerator) Write(current *core.Event, now time.Time) error {
	var content string
	if current != nil {
		content = g.formatShortcut(*current, now)
	} else {
		content = noMeetingPlaceholder
	}

	if _, err := g.writer.WriteNote([]byte(content), shortcutFilename, core.FolderVaultRoot, time.Time{}); err != nil {
		return fmt.Errorf("writing current-meeting shortcut: %w", err)
	}
	return nil
}

func (g *ShortcutGenerator) formatShortcut(ev core.Event, now time.Time) string {
	end := ev.End
	if end.IsZero() {
		end = ev.Start.Add(time.Hour)
	}
	elapsedMin := int(now.Sub(ev.Start).Minutes())
	remainingMin := int(end.Sub(now).Minutes())

	var b strings.Builder
	b.WriteString("---\ntitle: Current Meeting Shortcut\ntags: [current-meeting, shortcut]\n---\n\n")
	fmt.Fprintf(&b, "# ⏰ NOW: %s\n\n", ev.Subject)
	fmt.Fprintf(&b, "[[%s]]\n\n", strings.TrimSuffix(g.formatter.Filename(ev), ".md"))
	b.WriteString("## Meeting Status\n")
	fmt.Fprintf(&b, "- Started: %d minutes ago\n", elapsedMin)
	fmt.Fprintf(&b, "- Remaining: %d minutes\n\n", remainingMin)

	if ev.Location != "" {
		fmt.Fprintf(&b, "## Location\n📍 %s\n\n", ev.Location)
	}

	if len(ev.Attendees) > 0 {
		b.WriteString("## Attendees\n\n")
		for i, a := range ev.Attendees {
			if i == maxShortcutAttendees {
				fmt.Fprintf(&b, "- ...and %d more\n", len(ev.Attendees)-maxShortcutAttendees)
				break
			}
			name := a.Name
			if name == "" {
				name = a.Email
			}
			fmt.Fprintf(&b, "- [[%s]]\n", name)
		}
		b.WriteString("\n")
	}

	return b.String()
}

const noMeetingPlaceholder = `---
title: Current Meeting Shortcut
tags: [current-meeting, shortcut]
---

# No Meeting Currently Active

No meeting currently in progress.

## Next Meeting

Check your [[Daily Summary]] for upcoming meetings.
`

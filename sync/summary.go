package sync

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/dayscribe/core"
)

const snippetMaxLen = 120

// SummaryGenerator writes one "YYYY-MM-DD Daily Summary" note per date,
// linking to the individual meeting notes.
type SummaryGenerator struct {
	writer    core.NoteWriter
	formatter core.NoteFormatter
}

// NewSummaryGenerator creates a generator writing through the given writer.
// The formatter is used to reproduce meeting note names for wiki links.
func NewSummaryGenerator(writer core.NoteWriter, formatter core.NoteFormatter) *SummaryGenerator {
	return &SummaryGenerator{writer: writer, formatter: formatter}
}

// Write generates and persists the summary for one date. It reports whether
// the note was newly created (as opposed to regenerated in place).
func (g *SummaryGenerator) Write(day time.Time, events []core.Event, current *core.Event) (created bool, err error) {
	if len(events) == 0 {
		return false, nil
	}

	filename := day.Format("2006-01-02") + " Daily Summary.md"
	exists := g.writer.NoteExists(filename, core.FolderDailyNotes, time.Time{})

	content := g.format(day, events, current)
	if _, err := g.writer.WriteNote([]byte(content), filename, core.FolderDailyNotes, time.Time{}); err != nil {
		return false, err
	}
	return !exists, nil
}

func (g *SummaryGenerator) format(day time.Time, events []core.Event, current *core.Event) string {
	var b strings.Builder

	fmt.Fprintf(&b, "---\ndate: %s\ntype: daily-summary\nmeetings_count: %d\ntags: [daily, calendar-sync]\n---\n\n",
		day.Format("2006-01-02"), len(events))

	plural := "s"
	if len(events) == 1 {
		plural = ""
	}
	fmt.Fprintf(&b, "# %s - Daily Summary\n\n", day.Format("2006-01-02"))
	fmt.Fprintf(&b, "> 📅 %d meeting%s today\n\n", len(events), plural)
	b.WriteString("## Meetings\n\n")

	var allDay, timed []core.Event
	for _, ev := range events {
		if ev.IsAllDay {
			allDay = append(allDay, ev)
		} else {
			timed = append(timed, ev)
		}
	}

	if len(allDay) > 0 {
		b.WriteString("### All Day\n\n")
		for _, ev := range allDay {
			fmt.Fprintf(&b, "- [[%s]]\n", g.noteLink(ev))
		}
		b.WriteString("\n")
	}

	if len(timed) > 0 {
		b.WriteString("### Schedule\n\n")
		for _, ev := range timed {
			line := fmt.Sprintf("**%s-%s** | [[%s]]",
				ev.Start.Format("15:04"), ev.End.Format("15:04"), g.noteLink(ev))
			if current != nil && ev.ID == current.ID {
				line = "⏰ **NOW** | " + line
			}
			if ev.Location != "" {
				line += " | 📍 " + ev.Location
			}
			if ev.IsOnlineMeeting {
				line += " | 💻 Online"
			}
			b.WriteString(line + "\n")

			if snippet := bodySnippet(ev.RawBody); snippet != "" {
				b.WriteString("   " + snippet + "\n")
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// noteLink is the meeting note name without the .md extension, suitable for
// a wiki link.
func (g *SummaryGenerator) noteLink(ev core.Event) string {
	return strings.TrimSuffix(g.formatter.Filename(ev), ".md")
}

// noiseSelectors are elements stripped before snippet text extraction; they
// carry no readable content.
var noiseSelectors = []string{"style", "script", "head", "img", "table"}

// bodySnippet reduces a raw HTML body to a one-line plain-text preview.
func bodySnippet(rawHTML string) string {
	if rawHTML == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	text := strings.Join(strings.Fields(doc.Text()), " ")
	if runes := []rune(text); len(runes) > snippetMaxLen {
		text = strings.TrimSpace(string(runes[:snippetMaxLen])) + "…"
	}
	return text
}

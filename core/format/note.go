// Package format renders normalized events as Obsidian notes: YAML
// frontmatter consumed by dataview-style tooling, followed by a Markdown
// body with the converted event description and note-taking scaffolding.
package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/dayscribe/core"
	"gopkg.in/yaml.v3"
)

const maxFilenameSubject = 80

// invalidFilenameChars are characters Obsidian (and most filesystems)
// reject in note names.
var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// Formatter builds Obsidian notes from events. TimePrefix adds a HHMM
// component to filenames, used when notes for one day share a folder.
type Formatter struct {
	TimePrefix bool
}

// New creates a Formatter.
func New(timePrefix bool) *Formatter {
	return &Formatter{TimePrefix: timePrefix}
}

// frontmatter is the YAML block at the top of every event note. Field order
// here is the order in the emitted YAML.
type frontmatter struct {
	Title            string   `yaml:"title"`
	Date             string   `yaml:"date"`
	StartTime        string   `yaml:"start_time"`
	EndTime          string   `yaml:"end_time,omitempty"`
	Type             string   `yaml:"type"`
	IsAllDay         bool     `yaml:"is_all_day,omitempty"`
	Location         string   `yaml:"location,omitempty"`
	IsOnlineMeeting  bool     `yaml:"is_online_meeting,omitempty"`
	OnlineMeetingURL string   `yaml:"online_meeting_url,omitempty"`
	IsCancelled      bool     `yaml:"is_cancelled,omitempty"`
	Status           string   `yaml:"status,omitempty"`
	Tags             []string `yaml:"tags,flow"`
}

// FormatEvent renders the event as a complete note.
func (f *Formatter) FormatEvent(ev core.Event) ([]byte, error) {
	fm := frontmatter{
		Title:            ev.Subject,
		Date:             ev.Start.Format("2006-01-02"),
		StartTime:        ev.Start.Format("2006-01-02T15:04:05Z07:00"),
		Type:             "meeting",
		IsAllDay:         ev.IsAllDay,
		Location:         ev.Location,
		IsOnlineMeeting:  ev.IsOnlineMeeting,
		OnlineMeetingURL: ev.OnlineMeetingURL,
		IsCancelled:      ev.IsCancelled,
		Tags:             []string{"calendar-sync"},
	}
	if !ev.End.IsZero() {
		fm.EndTime = ev.End.Format("2006-01-02T15:04:05Z07:00")
	}
	if ev.IsCancelled {
		fm.Status = "cancelled"
	}

	head, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(head)
	b.WriteString("---\n\n")
	b.WriteString(f.body(ev))
	return []byte(b.String()), nil
}

// Filename returns the vault filename: date prefix, optional time prefix,
// sanitized subject, capped at a sane length.
func (f *Formatter) Filename(ev core.Event) string {
	subject := invalidFilenameChars.ReplaceAllString(ev.Subject, "-")
	if runes := []rune(subject); len(runes) > maxFilenameSubject {
		subject = string(runes[:maxFilenameSubject-3]) + "..."
	}

	prefix := ev.Start.Format("2006-01-02")
	if f.TimePrefix && !ev.IsAllDay {
		prefix += " " + ev.Start.Format("1504")
	}
	return prefix + " " + subject + ".md"
}

func (f *Formatter) body(ev core.Event) string {
	var parts []string
	add := func(s string) { parts = append(parts, s) }

	add("# " + ev.Subject)
	add("")

	if ev.IsCancelled {
		add("> ⚠️ This event has been cancelled")
		add("")
	}

	add("## Event Details")
	add("")
	add("**Date**: " + ev.Start.Format("2006-01-02"))

	if ev.IsAllDay {
		add("**Time**: All day")
	} else if !ev.End.IsZero() {
		add(fmt.Sprintf("**Time**: %s - %s %s",
			ev.Start.Format("15:04"), ev.End.Format("15:04"), ev.Start.Format("MST")))
	} else {
		add(fmt.Sprintf("**Time**: %s %s", ev.Start.Format("15:04"), ev.Start.Format("MST")))
	}

	if ev.Location != "" {
		add("**Location**: " + ev.Location)
	}

	if ev.IsOnlineMeeting && ev.OnlineMeetingURL != "" {
		add("")
		add(fmt.Sprintf("📞 [Join Meeting](%s)", ev.OnlineMeetingURL))
	}
	add("")

	if len(ev.Attendees) > 0 {
		add("## Attendees")
		add("")
		for _, a := range ev.Attendees {
			name := a.Name
			if name == "" {
				name = a.Email
			}
			add("- [[" + name + "]]")
		}
		add("")
	}

	if ev.Body != "" {
		add("## Description")
		add("")
		add(ev.Body)
		add("")
	}

	add("## Notes")
	add("")
	add("_Add your notes here_")
	add("")
	add("## Action Items")
	add("")
	add("- [ ] ")
	add("")

	return strings.Join(parts, "\n")
}

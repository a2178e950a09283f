package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/dayscribe/core"
	"gopkg.in/yaml.v3"
)

func sampleEvent() core.Event {
	return core.Event{
		ID:        "ev-1",
		Subject:   "Sprint Planning",
		Start:     time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		End:       time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
		Location:  "Room 4",
		Organizer: core.Attendee{Name: "Dana", Email: "dana@example.com"},
		Attendees: []core.Attendee{
			{Name: "Lee", Email: "lee@example.com"},
			{Email: "no-name@example.com"},
		},
		Body: "Agenda:\n- Numbers\n- Plans",
	}
}

func TestFormatEvent_Frontmatter(t *testing.T) {
	content, err := New(false).FormatEvent(sampleEvent())
	require.NoError(t, err)

	text := string(content)
	require.True(t, strings.HasPrefix(text, "---\n"))
	parts := strings.SplitN(text, "---\n", 3)
	require.Len(t, parts, 3)

	var fm map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(parts[1]), &fm))

	assert.Equal(t, "Sprint Planning", fm["title"])
	assert.Equal(t, "2026-09-01", fm["date"])
	assert.Equal(t, "2026-09-01T10:00:00Z", fm["start_time"])
	assert.Equal(t, "2026-09-01T11:00:00Z", fm["end_time"])
	assert.Equal(t, "meeting", fm["type"])
	assert.Equal(t, "Room 4", fm["location"])
	assert.Equal(t, []any{"calendar-sync"}, fm["tags"])
	assert.NotContains(t, fm, "is_cancelled")
	assert.NotContains(t, fm, "status")
}

func TestFormatEvent_Body(t *testing.T) {
	content, err := New(false).FormatEvent(sampleEvent())
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "# Sprint Planning")
	assert.Contains(t, text, "## Event Details")
	assert.Contains(t, text, "**Date**: 2026-09-01")
	assert.Contains(t, text, "**Time**: 10:00 - 11:00 UTC")
	assert.Contains(t, text, "**Location**: Room 4")
	assert.Contains(t, text, "## Attendees")
	assert.Contains(t, text, "- [[Lee]]")
	assert.Contains(t, text, "- [[no-name@example.com]]")
	assert.Contains(t, text, "## Description")
	assert.Contains(t, text, "Agenda:\n- Numbers\n- Plans")
	assert.Contains(t, text, "## Notes")
	assert.Contains(t, text, "## Action Items")
	assert.NotContains(t, text, "cancelled")
}

func TestFormatEvent_Cancelled(t *testing.T) {
	ev := sampleEvent()
	ev.IsCancelled = true

	content, err := New(false).FormatEvent(ev)
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "is_cancelled: true")
	assert.Contains(t, text, "status: cancelled")
	assert.Contains(t, text, "> ⚠️ This event has been cancelled")
}

func TestFormatEvent_OnlineMeeting(t *testing.T) {
	ev := sampleEvent()
	ev.IsOnlineMeeting = true
	ev.OnlineMeetingURL = "https://teams.microsoft.com/l/meetup-join/abc"

	content, err := New(false).FormatEvent(ev)
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "is_online_meeting: true")
	assert.Contains(t, text, "📞 [Join Meeting](https://teams.microsoft.com/l/meetup-join/abc)")
}

func TestFormatEvent_AllDay(t *testing.T) {
	ev := sampleEvent()
	ev.IsAllDay = true

	content, err := New(false).FormatEvent(ev)
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "is_all_day: true")
	assert.Contains(t, text, "**Time**: All day")
}

func TestFormatEvent_NoBodyOmitsDescription(t *testing.T) {
	ev := sampleEvent()
	ev.Body = ""

	content, err := New(false).FormatEvent(ev)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "## Description")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "2026-09-01 Sprint Planning.md", New(false).Filename(sampleEvent()))
}

func TestFilename_TimePrefix(t *testing.T) {
	assert.Equal(t, "2026-09-01 1000 Sprint Planning.md", New(true).Filename(sampleEvent()))
}

func TestFilename_TimePrefixSkippedForAllDay(t *testing.T) {
	ev := sampleEvent()
	ev.IsAllDay = true
	assert.Equal(t, "2026-09-01 Sprint Planning.md", New(true).Filename(ev))
}

func TestFilename_SanitizesInvalidCharacters(t *testing.T) {
	ev := sampleEvent()
	ev.Subject = `Q3: Review / "Plans" <draft>?`
	assert.Equal(t, "2026-09-01 Q3- Review - -Plans- -draft--.md", New(false).Filename(ev))
}

func TestFilename_TruncatesLongSubject(t *testing.T) {
	ev := sampleEvent()
	ev.Subject = strings.Repeat("a", 120)

	name := New(false).Filename(ev)
	assert.True(t, strings.HasSuffix(name, "....md"))
	assert.Equal(t, "2026-09-01 "+strings.Repeat("a", 77)+"....md", name)
}

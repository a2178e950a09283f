package graph

import (
	"strings"
	"time"

	"github.com/gaurav-prasanna/dayscribe/core"
	"github.com/gaurav-prasanna/dayscribe/core/htmlmd"
)

// Graph wire shapes, limited to the fields the $select clause requests.

type graphEvent struct {
	ID              string         `json:"id"`
	Subject         string         `json:"subject"`
	Start           graphDateTime  `json:"start"`
	End             graphDateTime  `json:"end"`
	Location        graphLocation  `json:"location"`
	Attendees       []graphPerson  `json:"attendees"`
	Body            graphBody      `json:"body"`
	IsAllDay        bool           `json:"isAllDay"`
	IsCancelled     bool           `json:"isCancelled"`
	Organizer       graphPerson    `json:"organizer"`
	IsOnlineMeeting bool           `json:"isOnlineMeeting"`
	OnlineMeeting   *onlineMeeting `json:"onlineMeeting"`
}

type graphDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type graphLocation struct {
	DisplayName string `json:"displayName"`
}

type graphBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type graphPerson struct {
	EmailAddress struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	} `json:"emailAddress"`
}

type onlineMeeting struct {
	JoinURL string `json:"joinUrl"`
}

// normalizeEvent maps a raw Graph event onto the core model. HTML bodies go
// through the Markdown pipeline; plain-text bodies pass through unchanged.
func normalizeEvent(raw graphEvent) core.Event {
	body := raw.Body.Content
	if strings.EqualFold(raw.Body.ContentType, "html") && body != "" {
		body = htmlmd.Convert(body)
	}

	subject := raw.Subject
	if subject == "" {
		subject = "Untitled"
	}

	attendees := make([]core.Attendee, 0, len(raw.Attendees))
	for _, a := range raw.Attendees {
		attendees = append(attendees, core.Attendee{
			Name:  a.EmailAddress.Name,
			Email: a.EmailAddress.Address,
		})
	}

	return core.Event{
		ID:       raw.ID,
		Subject:  subject,
		Start:    parseGraphTime(raw.Start),
		End:      parseGraphTime(raw.End),
		Location: raw.Location.DisplayName,
		Organizer: core.Attendee{
			Name:  raw.Organizer.EmailAddress.Name,
			Email: raw.Organizer.EmailAddress.Address,
		},
		Attendees:        attendees,
		Body:             body,
		RawBody:          raw.Body.Content,
		IsAllDay:         raw.IsAllDay,
		IsCancelled:      raw.IsCancelled,
		IsOnlineMeeting:  raw.IsOnlineMeeting,
		OnlineMeetingURL: meetingURL(raw),
	}
}

// meetingURL resolves the join URL. The structured onlineMeeting field takes
// precedence; scanning the body is the fallback.
func meetingURL(raw graphEvent) string {
	if raw.OnlineMeeting != nil && raw.OnlineMeeting.JoinURL != "" {
		return raw.OnlineMeeting.JoinURL
	}
	if u, ok := htmlmd.ExtractMeetingURL(raw.Body.Content); ok {
		return u
	}
	return ""
}

// parseGraphTime parses Graph's "2024-01-15T10:00:00.0000000" plus an IANA
// or Windows "UTC" zone name. Unknown zones fall back to UTC.
func parseGraphTime(dt graphDateTime) time.Time {
	if dt.DateTime == "" {
		return time.Time{}
	}

	value := strings.TrimSuffix(dt.DateTime, "Z")
	if i := strings.IndexByte(value, '.'); i >= 0 {
		value = value[:i]
	}

	loc := time.UTC
	if dt.TimeZone != "" && dt.TimeZone != "UTC" {
		if l, err := time.LoadLocation(dt.TimeZone); err == nil {
			loc = l
		}
	}

	t, err := time.ParseInLocation("2006-01-02T15:04:05", value, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

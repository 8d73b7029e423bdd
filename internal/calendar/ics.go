// Package calendar exports upcoming fixtures as an iCalendar file so a
// week of matches can be dropped into a personal calendar.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pcollins/matchday/internal/match"
)

// matchDuration is the calendar slot reserved per fixture
const matchDuration = 2 * time.Hour

// GenerateICS generates an iCalendar document containing one VEVENT per
// match. stamp is the DTSTAMP applied to every event, passed in so
// output is deterministic for a given input.
func GenerateICS(matches []*match.Match, stamp time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//matchday//matchday//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	for _, m := range matches {
		writeEvent(&ics, m, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeEvent(ics *strings.Builder, m *match.Match, stamp time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	ics.WriteString(fmt.Sprintf("UID:match-%d@matchday\r\n", m.ID))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(m.UTCDate)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(m.UTCDate.Add(matchDuration))))

	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(m.Fixture())))

	description := m.Fixture()
	if m.Competition != "" {
		description = fmt.Sprintf("%s (%s)", description, m.Competition)
	}
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	if m.Venue != "" {
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(m.Venue)))
	}

	status := "CONFIRMED"
	if m.Status == match.StatusPostponed || m.Status == match.StatusCancelled {
		status = "CANCELLED"
	}
	ics.WriteString(fmt.Sprintf("STATUS:%s\r\n", status))

	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters according to RFC 5545
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

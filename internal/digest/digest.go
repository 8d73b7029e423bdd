// Package digest assembles the daily notification message.
//
// A digest always carries three fixed sections in order (today/tomorrow,
// recent results, next 7 days) plus optional standing and news sections.
// Formatting is a pure function of the digest value: no clock reads, so
// the same input always renders byte-identical output.
package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/pcollins/matchday/internal/fixtures"
	"github.com/pcollins/matchday/internal/match"
)

// Placeholder lines for empty or failed sections
const (
	NoMatchesToday    = "No matches today or tomorrow."
	NoRecentMatches   = "No recent matches."
	NoUpcomingMatches = "No matches in the next 7 days."
	SectionFailed     = "Section unavailable — fetch failed."
)

// Section holds one window's worth of matches. Unavailable marks a
// section whose fetch failed (fail-soft policy renders it as a
// placeholder instead of dropping it).
type Section struct {
	Matches     []*match.Match
	Unavailable bool
}

// Digest is everything that goes into one outbound message.
// Built fresh each run, discarded after send.
type Digest struct {
	TeamName   string
	Date       time.Time      // run date, shown in the header
	Zone       *time.Location // primary display timezone
	SecondZone *time.Location // optional second kickoff time display

	TodayTomorrow Section
	Recent        Section
	Upcoming      Section

	Standing  *fixtures.Standing // optional league position line
	Headlines []string           // optional club news section
}

// Format renders the digest as one Telegram HTML message
func (d *Digest) Format() string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("⚽ <b>%s — matchday digest</b> (%s)\n",
		d.TeamName, d.Date.In(d.zone()).Format("Mon 2 Jan 2006")))

	if d.Standing != nil {
		msg.WriteString("\n")
		msg.WriteString(d.formatStanding())
	}

	msg.WriteString("\n📅 <b>Today &amp; tomorrow</b>\n")
	d.writeSection(&msg, d.TodayTomorrow, NoMatchesToday, d.writeFixture)

	msg.WriteString("\n🏁 <b>Recent results</b>\n")
	d.writeSection(&msg, d.Recent, NoRecentMatches, d.writeResult)

	msg.WriteString("\n📆 <b>Next 7 days</b>\n")
	d.writeSection(&msg, d.Upcoming, NoUpcomingMatches, d.writeFixture)

	if len(d.Headlines) > 0 {
		msg.WriteString("\n📰 <b>Club news</b>\n")
		for _, headline := range d.Headlines {
			msg.WriteString(fmt.Sprintf("• %s\n", headline))
		}
	}

	return msg.String()
}

func (d *Digest) zone() *time.Location {
	if d.Zone != nil {
		return d.Zone
	}
	return time.UTC
}

// writeSection renders one section body: placeholder for empty or
// unavailable sections, one block per match otherwise.
func (d *Digest) writeSection(msg *strings.Builder, s Section, emptyLine string, write func(*strings.Builder, *match.Match)) {
	if s.Unavailable {
		msg.WriteString("⚠️ " + SectionFailed + "\n")
		return
	}
	if len(s.Matches) == 0 {
		msg.WriteString(emptyLine + "\n")
		return
	}
	for _, m := range s.Matches {
		write(msg, m)
	}
}

// writeFixture renders a scheduled match block
func (d *Digest) writeFixture(msg *strings.Builder, m *match.Match) {
	WriteFixture(msg, m, d.zone(), d.SecondZone)
}

// writeResult renders a finished match block with a W/D/L marker for
// the digest's team.
func (d *Digest) writeResult(msg *strings.Builder, m *match.Match) {
	WriteResult(msg, m, d.TeamName, d.zone(), d.SecondZone)
}

// WriteFixture renders one scheduled match block. Shared with the
// interactive bot's single-section replies.
func WriteFixture(msg *strings.Builder, m *match.Match, zone, second *time.Location) {
	msg.WriteString(fmt.Sprintf("🕐 %s\n", KickoffLine(m.UTCDate, zone, second)))
	line := m.Fixture()
	switch m.Status {
	case match.StatusPostponed:
		line += " (postponed)"
	case match.StatusCancelled:
		line += " (cancelled)"
	case match.StatusInPlay:
		line += " (in play)"
	}
	msg.WriteString(line + "\n")
	if m.Venue != "" {
		msg.WriteString(fmt.Sprintf("📍 %s\n", m.Venue))
	}
}

// WriteResult renders one finished match block with a W/D/L marker
// relative to teamName.
func WriteResult(msg *strings.Builder, m *match.Match, teamName string, zone, second *time.Location) {
	msg.WriteString(fmt.Sprintf("🕐 %s\n", KickoffLine(m.UTCDate, zone, second)))

	line := m.Scoreline()
	switch m.OutcomeFor(teamName) {
	case match.OutcomeWin:
		line += " ✅"
	case match.OutcomeLoss:
		line += " ❌"
	case match.OutcomeDraw:
		line += " 🤝"
	}
	msg.WriteString(line + "\n")
}

// KickoffLine formats a kickoff in the primary zone, plus the second
// zone when one is configured.
func KickoffLine(kickoff time.Time, zone, second *time.Location) string {
	const layout = "Mon 2 Jan 15:04 MST"
	if zone == nil {
		zone = time.UTC
	}
	line := kickoff.In(zone).Format(layout)
	if second != nil {
		line += " / " + kickoff.In(second).Format(layout)
	}
	return line
}

// formatStanding renders the league position line(s)
func (d *Digest) formatStanding() string {
	s := d.Standing

	gdSign := ""
	if s.GoalDifference > 0 {
		gdSign = "+"
	}

	line := fmt.Sprintf("📊 <b>League position:</b> %s | P%d W%d D%d L%d | %d pts (GD %s%d)\n",
		ordinal(s.Position), s.Played, s.Won, s.Draw, s.Lost, s.Points, gdSign, s.GoalDifference)

	if s.PointsToPlayoff > 0 {
		line += fmt.Sprintf("%d pt%s from the playoff places\n", s.PointsToPlayoff, pluralize(s.PointsToPlayoff))
	}

	return line
}

// ordinal renders 1 -> "1st", 2 -> "2nd", 12 -> "12th"
func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

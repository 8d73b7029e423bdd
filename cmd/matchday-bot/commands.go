package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/pcollins/matchday/internal/config"
	"github.com/pcollins/matchday/internal/digest"
	"github.com/pcollins/matchday/internal/fixtures"
	"github.com/pcollins/matchday/internal/logger"
	"github.com/pcollins/matchday/internal/match"
	"github.com/pcollins/matchday/internal/telegram"
)

const (
	// resultsLimit caps the /results reply (last N finished matches)
	resultsLimit = 5
	// resultsLookback is how far back /results searches for finished matches
	resultsLookback = 60 * 24 * time.Hour
)

// bot holds everything a command reply needs
type bot struct {
	cfg      *config.Config
	client   *telegram.Client
	fixtures *fixtures.Client
	zone     *time.Location
	second   *time.Location
	dryRun   bool
}

func newBot(cfg *config.Config, client *telegram.Client, fx *fixtures.Client, dryRun bool) (*bot, error) {
	zone, err := time.LoadLocation(cfg.Digest.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", cfg.Digest.Timezone, err)
	}

	var second *time.Location
	if cfg.Digest.SecondaryTimezone != "" {
		second, err = time.LoadLocation(cfg.Digest.SecondaryTimezone)
		if err != nil {
			return nil, fmt.Errorf("loading secondary timezone %q: %w", cfg.Digest.SecondaryTimezone, err)
		}
	}

	return &bot{
		cfg:      cfg,
		client:   client,
		fixtures: fx,
		zone:     zone,
		second:   second,
		dryRun:   dryRun,
	}, nil
}

// processCommand maps one incoming message to a reply. Empty reply
// means no response (non-command chatter in a group).
func (b *bot) processCommand(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}

	command := strings.ToLower(fields[0])
	// Strip the @botname suffix used in group chats
	if idx := strings.Index(command, "@"); idx > 0 {
		command = command[:idx]
	}

	switch command {
	case "/start":
		return fmt.Sprintf("⚽ <b>%s fixture bot</b>\n\nAsk me about fixtures and results.\n\n%s",
			b.cfg.Football.TeamName, commandList())
	case "/help":
		return commandList()
	case "/today":
		return b.todayReply()
	case "/week":
		return b.weekReply()
	case "/results":
		return b.resultsReply()
	case "/table":
		return b.tableReply()
	case "/all":
		return b.allReply()
	default:
		if strings.HasPrefix(command, "/") {
			return "Unknown command. " + commandList()
		}
		return ""
	}
}

func commandList() string {
	return `<b>Commands:</b>
/today - matches today and tomorrow
/week - fixtures in the next 7 days
/results - last 5 results
/table - league table
/all - full digest
/help - this message`
}

func (b *bot) todayReply() string {
	now := time.Now()
	matches, err := b.fixtures.FetchMatches(b.cfg.Football.TeamID, match.TodayTomorrow(now, b.zone), "")
	if err != nil {
		return b.errorReply("today_tomorrow", err)
	}

	var msg strings.Builder
	msg.WriteString("📅 <b>Today &amp; tomorrow</b>\n")
	if len(matches) == 0 {
		msg.WriteString(digest.NoMatchesToday)
		return msg.String()
	}
	for _, m := range matches {
		digest.WriteFixture(&msg, m, b.zone, b.second)
	}
	return msg.String()
}

func (b *bot) weekReply() string {
	now := time.Now()
	matches, err := b.fixtures.FetchMatches(b.cfg.Football.TeamID, match.UpcomingWeek(now), fixtures.StatusFilterScheduled)
	if err != nil {
		return b.errorReply("upcoming_week", err)
	}

	var msg strings.Builder
	msg.WriteString("📆 <b>Next 7 days</b>\n")
	if len(matches) == 0 {
		msg.WriteString(digest.NoUpcomingMatches)
		return msg.String()
	}
	for _, m := range matches {
		digest.WriteFixture(&msg, m, b.zone, b.second)
	}
	return msg.String()
}

// resultsReply shows the last few finished matches, searching back far
// enough to cover international breaks
func (b *bot) resultsReply() string {
	now := time.Now()
	w := match.Window{Start: now.Add(-resultsLookback), End: now}
	matches, err := b.fixtures.FetchMatches(b.cfg.Football.TeamID, w, fixtures.StatusFilterFinished)
	if err != nil {
		return b.errorReply("recent_results", err)
	}

	// Upstream returns oldest first; keep the most recent N, newest first
	if len(matches) > resultsLimit {
		matches = matches[len(matches)-resultsLimit:]
	}
	for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
		matches[i], matches[j] = matches[j], matches[i]
	}

	var msg strings.Builder
	msg.WriteString("🏁 <b>Recent results</b>\n")
	if len(matches) == 0 {
		msg.WriteString(digest.NoRecentMatches)
		return msg.String()
	}
	for _, m := range matches {
		digest.WriteResult(&msg, m, b.cfg.Football.TeamName, b.zone, b.second)
	}
	return msg.String()
}

func (b *bot) tableReply() string {
	if b.cfg.Football.Competition == "" {
		return "League table is not configured (set football.competition)."
	}

	table, err := b.fixtures.FetchTable(b.cfg.Football.Competition)
	if err != nil {
		return b.errorReply("table", err)
	}

	return digest.FormatTable(b.cfg.Football.Competition, table, b.cfg.Football.TeamID)
}

// allReply renders the same three-section digest the daily run sends
func (b *bot) allReply() string {
	now := time.Now()

	d := &digest.Digest{
		TeamName:   b.cfg.Football.TeamName,
		Date:       now,
		Zone:       b.zone,
		SecondZone: b.second,
	}

	sections := []struct {
		target   *digest.Section
		window   match.Window
		statuses string
	}{
		{&d.TodayTomorrow, match.TodayTomorrow(now, b.zone), ""},
		{&d.Recent, match.RecentResults(now), fixtures.StatusFilterFinished},
		{&d.Upcoming, match.UpcomingWeek(now), fixtures.StatusFilterScheduled},
	}

	for _, s := range sections {
		matches, err := b.fixtures.FetchMatches(b.cfg.Football.TeamID, s.window, s.statuses)
		if err != nil {
			logger.Warn("window fetch failed", logger.Fields{"window": s.window}, err)
			s.target.Unavailable = true
			continue
		}
		s.target.Matches = matches
	}

	if b.cfg.Football.Competition != "" {
		if standing, err := b.fixtures.FetchStanding(b.cfg.Football.Competition, b.cfg.Football.TeamID); err == nil {
			d.Standing = standing
		}
	}

	return digest.Truncate(d.Format(), telegram.MaxMessageLength)
}

func (b *bot) errorReply(section string, err error) string {
	logger.Warn("command fetch failed", logger.Fields{"section": section}, err)
	return "⚠️ Could not fetch match data right now, try again later."
}

package match

import (
	"fmt"
	"time"
)

// Status is the normalized lifecycle state of a fixture
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusInPlay    Status = "in-play"
	StatusFinished  Status = "finished"
	StatusPostponed Status = "postponed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus maps a football-data.org status code to a Status.
// Unknown codes fall back to scheduled (safer default for display).
func ParseStatus(code string) Status {
	switch code {
	case "SCHEDULED", "TIMED":
		return StatusScheduled
	case "IN_PLAY", "PAUSED", "LIVE":
		return StatusInPlay
	case "FINISHED", "AWARDED":
		return StatusFinished
	case "POSTPONED", "SUSPENDED":
		return StatusPostponed
	case "CANCELLED":
		return StatusCancelled
	default:
		return StatusScheduled
	}
}

// Match represents one normalized fixture or result.
// Immutable once built; lifetime is a single run.
type Match struct {
	ID          int64     `json:"id"`
	UTCDate     time.Time `json:"utc_date"`
	Status      Status    `json:"status"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	Venue       string    `json:"venue,omitempty"`
	Competition string    `json:"competition,omitempty"`
	HomeScore   int       `json:"home_score,omitempty"`
	AwayScore   int       `json:"away_score,omitempty"`
	HasScore    bool      `json:"has_score,omitempty"`
}

// IsFinished reports whether the match has a final result
func (m *Match) IsFinished() bool {
	return m.Status == StatusFinished
}

// Fixture returns the "Home vs Away" display form
func (m *Match) Fixture() string {
	return fmt.Sprintf("%s vs %s", m.HomeTeam, m.AwayTeam)
}

// Scoreline returns the "Home N - M Away" display form.
// Falls back to the fixture form when no score is recorded.
func (m *Match) Scoreline() string {
	if !m.HasScore {
		return m.Fixture()
	}
	return fmt.Sprintf("%s %d - %d %s", m.HomeTeam, m.HomeScore, m.AwayScore, m.AwayTeam)
}

// Outcome is a match result from the perspective of one team
type Outcome string

const (
	OutcomeWin     Outcome = "W"
	OutcomeDraw    Outcome = "D"
	OutcomeLoss    Outcome = "L"
	OutcomeUnknown Outcome = ""
)

// OutcomeFor returns the result relative to teamName. Unknown when the
// team did not play in this match or no score is recorded.
func (m *Match) OutcomeFor(teamName string) Outcome {
	if !m.HasScore {
		return OutcomeUnknown
	}

	var for_, against int
	switch teamName {
	case m.HomeTeam:
		for_, against = m.HomeScore, m.AwayScore
	case m.AwayTeam:
		for_, against = m.AwayScore, m.HomeScore
	default:
		return OutcomeUnknown
	}

	switch {
	case for_ > against:
		return OutcomeWin
	case for_ < against:
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}

package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/pcollins/matchday/internal/config"
	"github.com/pcollins/matchday/internal/digest"
	"github.com/pcollins/matchday/internal/fixtures"
	"github.com/pcollins/matchday/internal/logger"
	"github.com/pcollins/matchday/internal/match"
)

// fixtureClient is the slice of the fixtures API the runner needs,
// narrowed so tests can substitute a fake.
type fixtureClient interface {
	FetchMatches(teamID int, w match.Window, statuses string) ([]*match.Match, error)
	FetchStanding(competition string, teamID int) (*fixtures.Standing, error)
}

// headlineSource is the optional club-news provider
type headlineSource interface {
	Headlines() ([]string, error)
}

// Runner assembles one digest per invocation. It holds no state across
// runs; every run computes its windows fresh from the clock.
type Runner struct {
	cfg      *config.Config
	client   fixtureClient
	news     headlineSource // nil when the news section is disabled
	zone     *time.Location
	second   *time.Location
	failFast bool
}

// NewRunner creates a Runner from loaded configuration
func NewRunner(cfg *config.Config, client fixtureClient, news headlineSource) (*Runner, error) {
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

	return &Runner{
		cfg:      cfg,
		client:   client,
		news:     news,
		zone:     zone,
		second:   second,
		failFast: cfg.Digest.FailFast,
	}, nil
}

// BuildDigest computes the three windows relative to now, fetches each,
// and assembles the digest. Under the default fail-soft policy a failed
// window becomes an unavailable section; with fail_fast any failure
// aborts. A run where every window fails always aborts, since an
// all-placeholder digest tells the reader nothing.
func (r *Runner) BuildDigest(now time.Time) (*digest.Digest, error) {
	teamID := r.cfg.Football.TeamID

	d := &digest.Digest{
		TeamName:   r.cfg.Football.TeamName,
		Date:       now,
		Zone:       r.zone,
		SecondZone: r.second,
	}

	failed := 0

	d.TodayTomorrow = r.fetchSection("today_tomorrow",
		match.TodayTomorrow(now, r.zone), "", &failed)

	recent := r.fetchSection("recent_results",
		match.RecentResults(now), fixtures.StatusFilterFinished, &failed)
	// The status filter already asks upstream for finished matches only;
	// re-check here so an in-play edge case never renders as a result
	if !recent.Unavailable {
		finished := make([]*match.Match, 0, len(recent.Matches))
		for _, m := range recent.Matches {
			if m.IsFinished() {
				finished = append(finished, m)
			}
		}
		recent.Matches = finished
	}
	d.Recent = recent

	d.Upcoming = r.fetchSection("upcoming_week",
		match.UpcomingWeek(now), fixtures.StatusFilterScheduled, &failed)

	if failed == 3 {
		return nil, fmt.Errorf("all fixture windows failed to fetch")
	}
	if failed > 0 && r.failFast {
		return nil, fmt.Errorf("aborting run: %d fixture window(s) failed and fail_fast is set", failed)
	}

	// Optional sections are best-effort: warn and move on
	if r.cfg.Football.Competition != "" {
		standing, err := r.client.FetchStanding(r.cfg.Football.Competition, teamID)
		if err != nil {
			logger.Warn("standings fetch failed", logger.Fields{
				"competition": r.cfg.Football.Competition,
			}, err)
		} else {
			d.Standing = standing
		}
	}

	if r.news != nil {
		headlines, err := r.news.Headlines()
		if err != nil {
			logger.Warn("news fetch failed", logger.Fields{
				"url": r.cfg.News.URL,
			}, err)
		} else {
			d.Headlines = headlines
		}
	}

	return d, nil
}

// fetchSection fetches one window and converts failures into an
// unavailable section, classifying the error for the log.
func (r *Runner) fetchSection(name string, w match.Window, statuses string, failed *int) digest.Section {
	started := time.Now()
	matches, err := r.client.FetchMatches(r.cfg.Football.TeamID, w, statuses)
	logger.RecordTiming("fetch."+name, time.Since(started))

	if err != nil {
		*failed++
		logger.IncrCounter("fetch.failures")
		logger.Warn("window fetch failed", logger.Fields{
			"section":    name,
			"error_kind": classifyFetchError(err),
			"from":       w.Start.UTC().Format(time.RFC3339),
			"to":         w.End.UTC().Format(time.RFC3339),
		}, err)
		return digest.Section{Unavailable: true}
	}

	return digest.Section{Matches: matches}
}

// classifyFetchError names the taxonomy bucket for log fields
func classifyFetchError(err error) string {
	var authErr *fixtures.AuthError
	var rateErr *fixtures.RateLimitError
	switch {
	case errors.As(err, &authErr):
		return "auth"
	case errors.As(err, &rateErr):
		return "rate_limit"
	default:
		return "fetch"
	}
}

// UpcomingMatches returns the matches of the upcoming-week section for
// the calendar export. Empty when the section was unavailable.
func UpcomingMatches(d *digest.Digest) []*match.Match {
	if d.Upcoming.Unavailable {
		return nil
	}
	return d.Upcoming.Matches
}

package match

import "time"

// Window is a half-open time interval [Start, End) used to filter
// matches by scheduled kickoff time.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the window.
// Start is inclusive, End is exclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// IsValid reports whether the window is well-formed (Start <= End)
func (w Window) IsValid() bool {
	return !w.Start.After(w.End)
}

// Filter returns the matches whose kickoff falls within the window,
// preserving input order.
func (w Window) Filter(matches []*Match) []*Match {
	filtered := make([]*Match, 0, len(matches))
	for _, m := range matches {
		if w.Contains(m.UTCDate) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// TodayTomorrow returns the window covering today and tomorrow in the
// given location: [start of today, start of the day after tomorrow).
func TodayTomorrow(now time.Time, loc *time.Location) Window {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 0, 2)}
}

// RecentResults returns the window for results played 24-48 hours ago:
// [now-48h, now-24h).
func RecentResults(now time.Time) Window {
	return Window{Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour)}
}

// UpcomingWeek returns the window for the next seven days: [now, now+7d)
func UpcomingWeek(now time.Time) Window {
	return Window{Start: now, End: now.Add(7 * 24 * time.Hour)}
}

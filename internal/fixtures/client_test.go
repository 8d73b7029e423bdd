package fixtures

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pcollins/matchday/internal/match"
)

const matchesBody = `{
	"matches": [
		{
			"id": 501234,
			"utcDate": "2026-01-26T15:00:00Z",
			"status": "TIMED",
			"venue": "St Andrew's Stadium",
			"competition": {"name": "Championship"},
			"homeTeam": {"name": "Birmingham City"},
			"awayTeam": {"name": "Leeds United"},
			"score": {"fullTime": {"home": null, "away": null}}
		},
		{
			"id": 501199,
			"utcDate": "2026-01-23T19:45:00Z",
			"status": "FINISHED",
			"venue": "St Andrew's Stadium",
			"competition": {"name": "Championship"},
			"homeTeam": {"name": "Birmingham City"},
			"awayTeam": {"name": "Sheffield Wednesday"},
			"score": {"fullTime": {"home": 2, "away": 1}}
		}
	]
}`

func testWindow() match.Window {
	return match.Window{
		Start: time.Date(2026, 1, 23, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC),
	}
}

func TestFetchMatches_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v4/teams/332/matches" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Auth-Token"); got != "test-key" {
			t.Errorf("X-Auth-Token = %q, want %q", got, "test-key")
		}
		if got := r.URL.Query().Get("dateFrom"); got != "2026-01-23" {
			t.Errorf("dateFrom = %q, want 2026-01-23", got)
		}
		if got := r.URL.Query().Get("dateTo"); got != "2026-01-28" {
			t.Errorf("dateTo = %q, want 2026-01-28", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, matchesBody)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)
	matches, err := client.FetchMatches(332, testWindow(), "")
	if err != nil {
		t.Fatalf("FetchMatches() unexpected error: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("FetchMatches() returned %d matches, want 2", len(matches))
	}

	fixture := matches[0]
	if fixture.ID != 501234 {
		t.Errorf("ID = %d, want 501234", fixture.ID)
	}
	if fixture.Status != match.StatusScheduled {
		t.Errorf("Status = %q, want scheduled", fixture.Status)
	}
	if fixture.HomeTeam != "Birmingham City" || fixture.AwayTeam != "Leeds United" {
		t.Errorf("teams = %q vs %q", fixture.HomeTeam, fixture.AwayTeam)
	}
	if fixture.Venue != "St Andrew's Stadium" {
		t.Errorf("Venue = %q", fixture.Venue)
	}
	if fixture.HasScore {
		t.Error("scheduled match should not carry a score")
	}

	result := matches[1]
	if result.Status != match.StatusFinished {
		t.Errorf("Status = %q, want finished", result.Status)
	}
	if !result.HasScore || result.HomeScore != 2 || result.AwayScore != 1 {
		t.Errorf("score = %d-%d (hasScore=%v), want 2-1", result.HomeScore, result.AwayScore, result.HasScore)
	}
}

func TestFetchMatches_StatusFilterParam(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != "FINISHED" {
			t.Errorf("status = %q, want FINISHED", got)
		}
		fmt.Fprint(w, `{"matches": []}`)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)
	if _, err := client.FetchMatches(332, testWindow(), StatusFilterFinished); err != nil {
		t.Fatalf("FetchMatches() unexpected error: %v", err)
	}
}

func TestFetchMatches_WindowBoundaries(t *testing.T) {
	// The upstream date filter is day-granular; the client must enforce
	// the half-open window itself
	body := `{
		"matches": [
			{"id": 1, "utcDate": "2026-01-22T23:00:00Z", "status": "FINISHED",
			 "homeTeam": {"name": "A"}, "awayTeam": {"name": "B"},
			 "competition": {}, "score": {"fullTime": {}}},
			{"id": 2, "utcDate": "2026-01-23T00:00:00Z", "status": "FINISHED",
			 "homeTeam": {"name": "A"}, "awayTeam": {"name": "B"},
			 "competition": {}, "score": {"fullTime": {}}},
			{"id": 3, "utcDate": "2026-01-28T00:00:00Z", "status": "TIMED",
			 "homeTeam": {"name": "A"}, "awayTeam": {"name": "B"},
			 "competition": {}, "score": {"fullTime": {}}}
		]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)
	matches, err := client.FetchMatches(332, testWindow(), "")
	if err != nil {
		t.Fatalf("FetchMatches() unexpected error: %v", err)
	}

	// Only the match exactly at window start survives: before-start and
	// exactly-at-end are both excluded
	if len(matches) != 1 {
		t.Fatalf("FetchMatches() returned %d matches, want 1", len(matches))
	}
	if matches[0].ID != 2 {
		t.Errorf("kept match ID = %d, want 2 (kickoff at window start)", matches[0].ID)
	}
}

func TestFetchMatches_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		retryAfter string
		body       string
		check      func(t *testing.T, err error)
	}{
		{
			name:   "401 is AuthError",
			status: http.StatusUnauthorized,
			body:   `{"message": "Your API token is invalid."}`,
			check: func(t *testing.T, err error) {
				var authErr *AuthError
				if !errors.As(err, &authErr) {
					t.Fatalf("error = %v (%T), want AuthError", err, err)
				}
				if authErr.StatusCode != http.StatusUnauthorized {
					t.Errorf("StatusCode = %d, want 401", authErr.StatusCode)
				}
			},
		},
		{
			name:   "403 is AuthError",
			status: http.StatusForbidden,
			body:   `{"message": "restricted resource"}`,
			check: func(t *testing.T, err error) {
				var authErr *AuthError
				if !errors.As(err, &authErr) {
					t.Fatalf("error = %v (%T), want AuthError", err, err)
				}
			},
		},
		{
			name:       "429 is RateLimitError with hint",
			status:     http.StatusTooManyRequests,
			retryAfter: "42",
			body:       `{"message": "You reached your request limit."}`,
			check: func(t *testing.T, err error) {
				var rateErr *RateLimitError
				if !errors.As(err, &rateErr) {
					t.Fatalf("error = %v (%T), want RateLimitError", err, err)
				}
				if rateErr.RetryAfter != 42*time.Second {
					t.Errorf("RetryAfter = %v, want 42s", rateErr.RetryAfter)
				}
			},
		},
		{
			name:   "429 without hint",
			status: http.StatusTooManyRequests,
			body:   `{}`,
			check: func(t *testing.T, err error) {
				var rateErr *RateLimitError
				if !errors.As(err, &rateErr) {
					t.Fatalf("error = %v (%T), want RateLimitError", err, err)
				}
				if rateErr.RetryAfter != 0 {
					t.Errorf("RetryAfter = %v, want 0", rateErr.RetryAfter)
				}
			},
		},
		{
			name:   "500 is FetchError",
			status: http.StatusInternalServerError,
			body:   "upstream broke",
			check: func(t *testing.T, err error) {
				var fetchErr *FetchError
				if !errors.As(err, &fetchErr) {
					t.Fatalf("error = %v (%T), want FetchError", err, err)
				}
				if fetchErr.StatusCode != http.StatusInternalServerError {
					t.Errorf("StatusCode = %d, want 500", fetchErr.StatusCode)
				}
			},
		},
		{
			name:   "malformed body is FetchError",
			status: http.StatusOK,
			body:   `{"matches": [`,
			check: func(t *testing.T, err error) {
				var fetchErr *FetchError
				if !errors.As(err, &fetchErr) {
					t.Fatalf("error = %v (%T), want FetchError", err, err)
				}
			},
		},
		{
			name:   "unparseable kickoff is FetchError",
			status: http.StatusOK,
			body: `{"matches": [{"id": 1, "utcDate": "not-a-time", "status": "TIMED",
				"homeTeam": {"name": "A"}, "awayTeam": {"name": "B"},
				"competition": {}, "score": {"fullTime": {}}}]}`,
			check: func(t *testing.T, err error) {
				var fetchErr *FetchError
				if !errors.As(err, &fetchErr) {
					t.Fatalf("error = %v (%T), want FetchError", err, err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.retryAfter != "" {
					w.Header().Set("Retry-After", tt.retryAfter)
				}
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := NewClientWithBaseURL("test-key", server.URL)
			_, err := client.FetchMatches(332, testWindow(), "")
			if err == nil {
				t.Fatal("FetchMatches() expected error, got nil")
			}
			tt.check(t, err)
		})
	}
}

func TestFetchMatches_InputValidation(t *testing.T) {
	client := NewClient("test-key")

	if _, err := client.FetchMatches(0, testWindow(), ""); err == nil {
		t.Error("FetchMatches() expected error for non-positive team ID")
	}

	inverted := match.Window{
		Start: time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 23, 0, 0, 0, 0, time.UTC),
	}
	if _, err := client.FetchMatches(332, inverted, ""); err == nil {
		t.Error("FetchMatches() expected error for inverted window")
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{value: "", want: 0},
		{value: "10", want: 10 * time.Second},
		{value: "0", want: 0},
		{value: "-5", want: 0},
		{value: "soon", want: 0},
	}

	for _, tt := range tests {
		if got := parseRetryAfter(tt.value); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

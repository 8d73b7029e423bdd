package fixtures

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pcollins/matchday/internal/match"
)

const (
	defaultBaseURL = "https://api.football-data.org"
	timeout        = 10 * time.Second

	// StatusFilterFinished limits a fetch to completed matches
	StatusFilterFinished = "FINISHED"
	// StatusFilterScheduled limits a fetch to matches not yet played
	StatusFilterScheduled = "SCHEDULED,TIMED"
)

// Client is a client for the football-data.org v4 API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new fixtures API client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWithBaseURL creates a client against a non-default API base,
// used by tests to point at a fake server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	client := NewClient(apiKey)
	client.baseURL = baseURL
	return client
}

// matchesResponse mirrors the upstream /teams/{id}/matches payload
type matchesResponse struct {
	Matches []struct {
		ID          int64  `json:"id"`
		UTCDate     string `json:"utcDate"`
		Status      string `json:"status"`
		Venue       string `json:"venue"`
		Competition struct {
			Name string `json:"name"`
		} `json:"competition"`
		HomeTeam struct {
			Name string `json:"name"`
		} `json:"homeTeam"`
		AwayTeam struct {
			Name string `json:"name"`
		} `json:"awayTeam"`
		Score struct {
			FullTime struct {
				Home *int `json:"home"`
				Away *int `json:"away"`
			} `json:"fullTime"`
		} `json:"score"`
	} `json:"matches"`
}

// FetchMatches fetches the team's matches whose kickoff falls within the
// half-open window [w.Start, w.End). statuses is an optional upstream
// status filter ("" for all). Matches are returned in upstream order.
// No retry is performed; retry policy belongs to the caller.
func (c *Client) FetchMatches(teamID int, w match.Window, statuses string) ([]*match.Match, error) {
	if teamID <= 0 {
		return nil, &FetchError{Reason: fmt.Sprintf("invalid team ID %d", teamID)}
	}
	if !w.IsValid() {
		return nil, &FetchError{Reason: "window start is after window end"}
	}

	params := url.Values{}
	params.Set("dateFrom", w.Start.UTC().Format("2006-01-02"))
	params.Set("dateTo", w.End.UTC().Format("2006-01-02"))
	if statuses != "" {
		params.Set("status", statuses)
	}

	endpoint := fmt.Sprintf("/v4/teams/%d/matches", teamID)

	var result matchesResponse
	if err := c.get(endpoint, params, &result); err != nil {
		return nil, err
	}

	matches := make([]*match.Match, 0, len(result.Matches))
	for _, raw := range result.Matches {
		kickoff, err := time.Parse(time.RFC3339, raw.UTCDate)
		if err != nil {
			return nil, &FetchError{Reason: fmt.Sprintf("unparseable kickoff time %q", raw.UTCDate)}
		}

		// The upstream date filter is day-granular, so edge kickoffs can
		// fall outside the requested window. Enforce [Start, End) here.
		if !w.Contains(kickoff) {
			continue
		}

		m := &match.Match{
			ID:          raw.ID,
			UTCDate:     kickoff,
			Status:      match.ParseStatus(raw.Status),
			HomeTeam:    raw.HomeTeam.Name,
			AwayTeam:    raw.AwayTeam.Name,
			Venue:       raw.Venue,
			Competition: raw.Competition.Name,
		}

		if raw.Score.FullTime.Home != nil && raw.Score.FullTime.Away != nil {
			m.HomeScore = *raw.Score.FullTime.Home
			m.AwayScore = *raw.Score.FullTime.Away
			m.HasScore = true
		}

		matches = append(matches, m)
	}

	return matches, nil
}

// get performs one authenticated request and decodes the JSON body into out
func (c *Client) get(endpoint string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, endpoint)
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, params.Encode())
	}

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return &FetchError{Reason: fmt.Sprintf("creating request: %v", err)}
	}

	req.Header.Set("X-Auth-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Reason: fmt.Sprintf("making request: %v", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{StatusCode: resp.StatusCode}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode != http.StatusOK:
		return &FetchError{StatusCode: resp.StatusCode, Reason: "unexpected status"}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{StatusCode: resp.StatusCode, Reason: fmt.Sprintf("parsing response: %v", err)}
	}

	return nil
}

// parseRetryAfter parses a Retry-After header given in seconds.
// Returns zero when absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

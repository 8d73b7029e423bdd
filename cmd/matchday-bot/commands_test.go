package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pcollins/matchday/internal/config"
	"github.com/pcollins/matchday/internal/fixtures"
)

func testBot(t *testing.T, baseURL string) *bot {
	t.Helper()

	cfg := &config.Config{}
	cfg.Football.APIKey = "test-key"
	cfg.Football.TeamID = 332
	cfg.Football.TeamName = "Birmingham City"
	cfg.Football.Competition = "ELC"
	cfg.Digest.Timezone = "UTC"

	fx := fixtures.NewClientWithBaseURL("test-key", baseURL)

	b, err := newBot(cfg, nil, fx, true)
	if err != nil {
		t.Fatalf("newBot() error: %v", err)
	}
	return b
}

func TestProcessCommand_Static(t *testing.T) {
	b := testBot(t, "http://127.0.0.1:0")

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "help lists commands", text: "/help", want: "/today"},
		{name: "start greets", text: "/start", want: "Birmingham City fixture bot"},
		{name: "unknown command", text: "/banana", want: "Unknown command"},
		{name: "group chat suffix stripped", text: "/help@matchday_bot", want: "/today"},
		{name: "case insensitive", text: "/HELP", want: "/today"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.processCommand(tt.text)
			if !strings.Contains(got, tt.want) {
				t.Errorf("processCommand(%q) = %q, want substring %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestProcessCommand_IgnoresChatter(t *testing.T) {
	b := testBot(t, "http://127.0.0.1:0")

	for _, text := range []string{"", "   ", "hello everyone", "nice goal yesterday"} {
		if got := b.processCommand(text); got != "" {
			t.Errorf("processCommand(%q) = %q, want no reply", text, got)
		}
	}
}

func matchesJSON(utcDate, status string, homeScore, awayScore string) string {
	return fmt.Sprintf(`{
		"matches": [{
			"id": 1, "utcDate": %q, "status": %q,
			"homeTeam": {"name": "Birmingham City"}, "awayTeam": {"name": "Leeds United"},
			"venue": "St Andrew's Stadium",
			"competition": {"name": "Championship"},
			"score": {"fullTime": {"home": %s, "away": %s}}
		}]
	}`, utcDate, status, homeScore, awayScore)
}

func TestTodayReply(t *testing.T) {
	kickoff := time.Now().UTC().Add(6 * time.Hour).Format(time.RFC3339)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, matchesJSON(kickoff, "TIMED", "null", "null"))
	}))
	defer server.Close()

	b := testBot(t, server.URL)
	got := b.processCommand("/today")

	if !strings.Contains(got, "Birmingham City vs Leeds United") {
		t.Errorf("/today reply missing fixture:\n%s", got)
	}
	if !strings.Contains(got, "St Andrew's Stadium") {
		t.Errorf("/today reply missing venue:\n%s", got)
	}
}

func TestResultsReply_NewestFirst(t *testing.T) {
	older := time.Now().UTC().Add(-10 * 24 * time.Hour).Format(time.RFC3339)
	newer := time.Now().UTC().Add(-3 * 24 * time.Hour).Format(time.RFC3339)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"matches": [
				{"id": 1, "utcDate": %q, "status": "FINISHED",
				 "homeTeam": {"name": "Birmingham City"}, "awayTeam": {"name": "Millwall"},
				 "competition": {}, "score": {"fullTime": {"home": 2, "away": 0}}},
				{"id": 2, "utcDate": %q, "status": "FINISHED",
				 "homeTeam": {"name": "Hull City"}, "awayTeam": {"name": "Birmingham City"},
				 "competition": {}, "score": {"fullTime": {"home": 1, "away": 1}}}
			]
		}`, older, newer)
	}))
	defer server.Close()

	b := testBot(t, server.URL)
	got := b.processCommand("/results")

	newestIdx := strings.Index(got, "Hull City 1 - 1 Birmingham City")
	oldestIdx := strings.Index(got, "Birmingham City 2 - 0 Millwall")
	if newestIdx < 0 || oldestIdx < 0 {
		t.Fatalf("/results reply missing scorelines:\n%s", got)
	}
	if newestIdx > oldestIdx {
		t.Errorf("/results should list newest first:\n%s", got)
	}
}

func TestCommandFetchFailureReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"message": "You reached your request limit."}`)
	}))
	defer server.Close()

	b := testBot(t, server.URL)
	got := b.processCommand("/week")

	if !strings.Contains(got, "Could not fetch match data") {
		t.Errorf("/week reply should degrade gracefully:\n%s", got)
	}
}

func TestTableReply_NotConfigured(t *testing.T) {
	b := testBot(t, "http://127.0.0.1:0")
	b.cfg.Football.Competition = ""

	got := b.processCommand("/table")
	if !strings.Contains(got, "not configured") {
		t.Errorf("/table without competition = %q", got)
	}
}

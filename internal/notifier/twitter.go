package notifier

import (
	"fmt"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/pcollins/matchday/internal/digest"
	"github.com/pcollins/matchday/internal/match"
)

// tweetLimit is the Twitter character limit
const tweetLimit = 280

// TwitterNotifier posts a compact matchday summary as a tweet
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{client: client}, nil
}

// HasCredentials reports whether the Twitter environment variables are set
func HasCredentials() bool {
	return os.Getenv("TWITTER_API_KEY") != "" &&
		os.Getenv("TWITTER_API_SECRET") != "" &&
		os.Getenv("TWITTER_ACCESS_TOKEN") != "" &&
		os.Getenv("TWITTER_ACCESS_SECRET") != ""
}

// Notify posts one summary tweet for the digest
func (n *TwitterNotifier) Notify(d *digest.Digest) error {
	tweet := formatTweet(d)

	_, _, err := n.client.Statuses.Update(tweet, nil)
	if err != nil {
		return fmt.Errorf("failed to post matchday tweet: %w", err)
	}

	return nil
}

// formatTweet condenses the digest into one tweet: next fixture first,
// latest result second, whatever fits.
func formatTweet(d *digest.Digest) string {
	tweet := fmt.Sprintf("⚽ %s matchday update\n\n", d.TeamName)

	if next := firstMatch(d.TodayTomorrow, d.Upcoming); next != nil {
		zone := d.Zone
		if zone == nil {
			zone = time.UTC
		}
		tweet += fmt.Sprintf("📅 Next: %s, %s\n", next.Fixture(),
			next.UTCDate.In(zone).Format("Mon 2 Jan 15:04"))
	}

	if len(d.Recent.Matches) > 0 {
		latest := d.Recent.Matches[len(d.Recent.Matches)-1]
		tweet += fmt.Sprintf("🏁 Latest: %s\n", latest.Scoreline())
	}

	if d.Standing != nil {
		tweet += fmt.Sprintf("📊 Position: %d (%d pts)\n", d.Standing.Position, d.Standing.Points)
	}

	if len(tweet) > tweetLimit {
		tweet = tweet[:tweetLimit-3] + "..."
	}

	return tweet
}

// firstMatch returns the first match from the first non-empty section
func firstMatch(sections ...digest.Section) *match.Match {
	for _, s := range sections {
		if !s.Unavailable && len(s.Matches) > 0 {
			return s.Matches[0]
		}
	}
	return nil
}

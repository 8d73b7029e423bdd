package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pcollins/matchday/internal/calendar"
	"github.com/pcollins/matchday/internal/config"
	"github.com/pcollins/matchday/internal/digest"
	"github.com/pcollins/matchday/internal/fixtures"
	"github.com/pcollins/matchday/internal/logger"
	"github.com/pcollins/matchday/internal/news"
	"github.com/pcollins/matchday/internal/notifier"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagDryRun  bool
	flagICSOut  string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matchday",
		Short: "Send a daily Telegram digest of one team's fixtures and results",
		Long: `Fetches fixtures and results for a single team from football-data.org
and sends one formatted digest message to a Telegram chat. Meant to be
invoked once daily by cron; each run is independent and stateless.`,
		SilenceUsage: true,
		RunE:         runDigest,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "config.yaml", "Path to the YAML configuration file")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the digest without sending")
	cmd.Flags().StringVar(&flagICSOut, "ics-out", "", "Also write upcoming fixtures to this iCalendar file")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runDigest is the whole daily run: load config, fetch three windows,
// assemble the digest, notify exactly once.
func runDigest(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	client := fixtures.NewClient(cfg.Football.APIKey)

	var headlines headlineSource
	if cfg.News.URL != "" {
		headlines = news.New(cfg.News.URL, cfg.News.Selector, cfg.News.Limit)
	}

	runner, err := NewRunner(cfg, client, headlines)
	if err != nil {
		return err
	}

	now := time.Now()
	logger.Info("starting digest run", logger.Fields{
		"team_id": cfg.Football.TeamID,
		"team":    cfg.Football.TeamName,
	})

	d, err := runner.BuildDigest(now)
	if err != nil {
		logger.Error("digest build failed", nil, err)
		return err
	}

	if flagICSOut != "" {
		if err := writeCalendar(flagICSOut, d, now); err != nil {
			// Calendar export is a side output; never blocks the send
			logger.Warn("calendar export failed", logger.Fields{"path": flagICSOut}, err)
		}
	}

	n, err := buildNotifier(cfg)
	if err != nil {
		return err
	}

	if err := n.Notify(d); err != nil {
		logger.Error("digest delivery failed", nil, err)
		return fmt.Errorf("sending digest: %w", err)
	}

	logger.Info("digest sent", nil)
	logger.Debug("run metrics", logger.MetricsSnapshot())

	// Secondary channels are best-effort and never fail the run
	if !flagDryRun && notifier.HasCredentials() {
		tw, err := notifier.NewTwitterNotifier()
		if err != nil {
			logger.Warn("twitter notifier unavailable", nil, err)
		} else if err := tw.Notify(d); err != nil {
			logger.Warn("twitter post failed", nil, err)
		}
	}

	return nil
}

// buildNotifier picks the primary delivery channel for this run
func buildNotifier(cfg *config.Config) (notifier.Notifier, error) {
	if flagDryRun {
		return notifier.NewDryRunNotifier(os.Stdout), nil
	}
	return notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
}

// writeCalendar exports the upcoming-week fixtures as an .ics file
func writeCalendar(path string, d *digest.Digest, now time.Time) error {
	matches := UpcomingMatches(d)
	if len(matches) == 0 {
		return fmt.Errorf("no upcoming fixtures to export")
	}
	ics := calendar.GenerateICS(matches, now)
	if err := os.WriteFile(path, []byte(ics), 0644); err != nil {
		return fmt.Errorf("writing calendar file: %w", err)
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}

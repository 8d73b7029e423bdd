// Command matchday-bot answers fixture queries in a Telegram chat.
//
// It long-polls getUpdates and replies to /today, /results, /week,
// /all and /table with the same fixture data the daily digest uses.
// Without --loop it drains pending updates once and exits, which suits
// a cron-driven deployment next to the daily digest.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pcollins/matchday/internal/config"
	"github.com/pcollins/matchday/internal/fixtures"
	"github.com/pcollins/matchday/internal/logger"
	"github.com/pcollins/matchday/internal/telegram"
)

var (
	configPath   = flag.String("config", "config.yaml", "Path to the YAML configuration file")
	dryRun       = flag.Bool("dry-run", false, "Print replies without sending")
	loop         = flag.Bool("loop", false, "Run continuously with long polling")
	loopDuration = flag.Duration("loop-duration", 5*time.Hour+50*time.Minute, "Maximum duration for loop mode")
	verbose      = flag.Bool("verbose", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	if *verbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing Telegram client: %v\n", err)
		os.Exit(1)
	}

	bot, err := newBot(cfg, client, fixtures.NewClient(cfg.Football.APIKey), *dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing bot: %v\n", err)
		os.Exit(1)
	}

	if *loop {
		runLoop(bot, *loopDuration)
	} else {
		runOnce(bot)
	}
}

// runLoop long-polls updates until the time limit, so a scheduled
// restart can hand over to the next instance cleanly
func runLoop(bot *bot, duration time.Duration) {
	logger.Info("starting long polling loop", logger.Fields{"duration": duration.String()})
	startTime := time.Now()
	offset := 0

	for {
		if time.Since(startTime) >= duration {
			logger.Info("reached time limit, exiting", nil)
			break
		}

		updates, err := bot.client.GetUpdates(offset, 30)
		if err != nil {
			logger.Warn("getUpdates failed", nil, err)
			time.Sleep(5 * time.Second)
			continue
		}

		for _, update := range updates {
			bot.handleUpdate(update)
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
		}
	}
}

// runOnce drains whatever updates are pending and exits
func runOnce(bot *bot) {
	updates, err := bot.client.GetUpdates(0, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting updates: %v\n", err)
		os.Exit(1)
	}

	if len(updates) == 0 {
		fmt.Println("No new messages to process")
		return
	}

	logger.Info("processing updates", logger.Fields{"count": len(updates)})

	maxUpdateID := 0
	for _, update := range updates {
		if update.UpdateID > maxUpdateID {
			maxUpdateID = update.UpdateID
		}
		bot.handleUpdate(update)
	}

	// Acknowledge everything we handled so the next invocation starts fresh
	if _, err := bot.client.GetUpdates(maxUpdateID+1, 0); err != nil {
		logger.Warn("acknowledging updates failed", nil, err)
	}
}

// handleUpdate dispatches one update to the command handler
func (b *bot) handleUpdate(update telegram.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	chatID := fmt.Sprintf("%d", update.Message.Chat.ID)
	text := strings.TrimSpace(update.Message.Text)

	logger.Debug("message received", logger.Fields{
		"chat_id": chatID,
		"from":    update.Message.From.FirstName,
		"text":    text,
	})

	reply := b.processCommand(text)
	if reply == "" {
		return
	}

	if b.dryRun {
		fmt.Printf("[DRY RUN] Would reply to %s:\n%s\n\n", chatID, reply)
		return
	}

	if err := b.client.SendMessageTo(chatID, reply); err != nil {
		logger.Warn("reply failed", logger.Fields{"chat_id": chatID}, err)
	}
}

package notifier

import (
	"fmt"

	"github.com/pcollins/matchday/internal/digest"
	"github.com/pcollins/matchday/internal/telegram"
)

// TelegramNotifier sends the full digest to one Telegram chat
type TelegramNotifier struct {
	client *telegram.Client
}

// NewTelegramNotifier creates a Telegram notifier bound to a chat
func NewTelegramNotifier(botToken, chatID string) (*TelegramNotifier, error) {
	client, err := telegram.NewClient(botToken, chatID)
	if err != nil {
		return nil, fmt.Errorf("initializing telegram client: %w", err)
	}
	return &TelegramNotifier{client: client}, nil
}

// NewTelegramNotifierWithClient wraps an existing client, used by tests
// and by the bot binary which shares one client for replies.
func NewTelegramNotifierWithClient(client *telegram.Client) *TelegramNotifier {
	return &TelegramNotifier{client: client}
}

// Notify formats and sends the digest as a single message, truncated to
// the platform limit when the fixture list runs long.
func (n *TelegramNotifier) Notify(d *digest.Digest) error {
	text := digest.Truncate(d.Format(), telegram.MaxMessageLength)
	return n.client.SendMessage(text)
}

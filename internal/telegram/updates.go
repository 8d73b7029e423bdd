package telegram

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// User represents a Telegram user
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
}

// Chat represents a Telegram chat
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// Message represents an incoming Telegram message
type Message struct {
	MessageID int    `json:"message_id"`
	From      User   `json:"from"`
	Chat      Chat   `json:"chat"`
	Date      int64  `json:"date"`
	Text      string `json:"text,omitempty"`
}

// Update represents one entry from getUpdates
type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// GetUpdates fetches pending updates starting at offset. A non-zero
// timeoutSeconds enables long polling on the Telegram side.
func (c *Client) GetUpdates(offset, timeoutSeconds int) ([]Update, error) {
	payload := map[string]interface{}{
		"allowed_updates": []string{"message"},
	}
	if offset > 0 {
		payload["offset"] = offset
	}
	if timeoutSeconds > 0 {
		payload["timeout"] = timeoutSeconds
	}

	// Long polling holds the connection open for up to timeoutSeconds, so
	// the request needs more headroom than the default client allows
	httpClient := c.httpClient
	if timeoutSeconds > 0 {
		httpClient = &http.Client{Timeout: time.Duration(timeoutSeconds+10) * time.Second}
	}

	raw, err := c.callWith(httpClient, "getUpdates", payload)
	if err != nil {
		return nil, err
	}

	var updates []Update
	if err := json.Unmarshal(raw, &updates); err != nil {
		return nil, &DeliveryError{Description: fmt.Sprintf("parsing updates: %v", err)}
	}

	return updates, nil
}

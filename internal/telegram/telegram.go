package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.telegram.org"
	timeout        = 10 * time.Second

	// MaxMessageLength is the Telegram Bot API limit for one message.
	// Longer digests must be truncated by the caller before sending.
	MaxMessageLength = 4096
)

// AuthError indicates an invalid bot token or chat ID
type AuthError struct {
	Description string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("telegram authentication failed: %s", e.Description)
}

// DeliveryError indicates the message could not be delivered
// (transport failure or a non-auth API error).
type DeliveryError struct {
	Description string
	Err         error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("telegram delivery failed: %v", e.Err)
	}
	return fmt.Sprintf("telegram delivery failed: %s", e.Description)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Client represents a Telegram Bot API client bound to one chat
type Client struct {
	botToken   string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string) (*Client, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required")
	}

	return &Client{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// NewClientWithBaseURL creates a client against a non-default API base,
// used by tests to point at a fake server.
func NewClientWithBaseURL(botToken, chatID, baseURL string) (*Client, error) {
	client, err := NewClient(botToken, chatID)
	if err != nil {
		return nil, err
	}
	client.baseURL = baseURL
	return client, nil
}

// apiResponse is the generic Bot API envelope
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

// SendMessage sends one HTML-formatted message to the configured chat.
// Exactly one message appears in the chat per successful call.
func (c *Client) SendMessage(text string) error {
	return c.SendMessageTo(c.chatID, text)
}

// SendMessageTo sends one HTML-formatted message to an explicit chat,
// used by the interactive bot to reply to whoever issued a command.
func (c *Client) SendMessageTo(chatID, text string) error {
	if text == "" {
		return fmt.Errorf("message text is required")
	}
	if len(text) > MaxMessageLength {
		return fmt.Errorf("message length %d exceeds Telegram limit of %d", len(text), MaxMessageLength)
	}

	payload := map[string]interface{}{
		"chat_id":                  chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	_, err := c.call("sendMessage", payload)
	return err
}

// call posts one Bot API method and returns the raw result payload
func (c *Client) call(method string, payload map[string]interface{}) (json.RawMessage, error) {
	return c.callWith(c.httpClient, method, payload)
}

func (c *Client) callWith(httpClient *http.Client, method string, payload map[string]interface{}) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.botToken, method)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, &DeliveryError{Description: fmt.Sprintf("marshaling payload: %v", err)}
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &DeliveryError{Description: fmt.Sprintf("creating request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &DeliveryError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DeliveryError{Description: fmt.Sprintf("reading response: %v", err)}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &AuthError{Description: apiDescription(body, resp.StatusCode)}
	}

	var result apiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &DeliveryError{Description: fmt.Sprintf("parsing response (status %d)", resp.StatusCode)}
	}

	if !result.OK {
		// "chat not found" and friends are credential problems, not
		// transient delivery failures
		if isAuthDescription(result.Description) {
			return nil, &AuthError{Description: result.Description}
		}
		return nil, &DeliveryError{Description: result.Description}
	}

	return result.Result, nil
}

func apiDescription(body []byte, status int) string {
	var result apiResponse
	if err := json.Unmarshal(body, &result); err == nil && result.Description != "" {
		return result.Description
	}
	return fmt.Sprintf("status %d", status)
}

func isAuthDescription(description string) bool {
	lower := strings.ToLower(description)
	return strings.Contains(lower, "unauthorized") || strings.Contains(lower, "chat not found")
}

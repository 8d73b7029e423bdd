// Package telegram provides Telegram Bot API integration for delivering
// matchday digests.
//
// The package supports sending HTML-formatted messages and long-polling
// getUpdates via simple HTTP requests. Authentication requires a bot token
// (from @BotFather) and a chat ID. Failures are classified as AuthError
// (bad token or chat) or DeliveryError (everything else); no retry is
// performed here.
package telegram

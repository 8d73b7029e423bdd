package digest

import "strings"

// truncationMarker is appended when a digest is cut down to fit one message
const truncationMarker = "…"

// Truncate caps text at limit bytes, cutting on a line boundary so no
// half-rendered match block reaches the chat. Splitting into multiple
// messages is deliberately not done here; one run sends one message.
func Truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}

	cut := limit - len(truncationMarker)
	if cut < 0 {
		cut = 0
	}

	truncated := text[:cut]
	if idx := strings.LastIndex(truncated, "\n"); idx > 0 {
		truncated = truncated[:idx+1]
	}

	return truncated + truncationMarker
}

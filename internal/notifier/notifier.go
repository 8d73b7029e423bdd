// Package notifier delivers an assembled digest to a notification
// channel. Each implementation formats the digest for its own platform;
// none of them retries a failed delivery.
package notifier

import (
	"github.com/pcollins/matchday/internal/digest"
)

// Notifier defines the interface for delivering a matchday digest
type Notifier interface {
	// Notify delivers the digest. Exactly one outbound message per call.
	Notify(d *digest.Digest) error
}

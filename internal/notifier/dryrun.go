package notifier

import (
	"fmt"
	"io"

	"github.com/pcollins/matchday/internal/digest"
)

// DryRunNotifier prints the digest without sending anything
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to out
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{out: out}
}

// Notify prints the message that would be sent
func (n *DryRunNotifier) Notify(d *digest.Digest) error {
	text := d.Format()
	fmt.Fprintln(n.out, "--- DRY RUN: digest that would be sent ---")
	fmt.Fprintln(n.out, text)
	fmt.Fprintf(n.out, "(Length: %d characters)\n", len(text))
	return nil
}

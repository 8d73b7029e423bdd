// Package cli implements the command-line interface for the one-shot
// digest run.
//
// The cli package provides the Cobra-based root command and the
// orchestrator: it computes the three date windows relative to "now",
// invokes the fixtures client once per window, assembles the digest,
// and hands it to exactly one notifier per run.
package cli

// Package pipeline sequences one diary sync run: feed read, per-entry
// metadata enrichment, tag derivation, note reconciliation, not-rated
// logging, and the optional rating sync.
//
// Per-entry failures (metadata fetch, malformed notes, sync errors) are
// isolated and reported; only configuration and feed-level failures abort a
// run. A file lock in the data directory keeps concurrent runs from racing
// on the vault.
package pipeline

// Package letterboxd reads a user's recent diary entries from their public
// Letterboxd RSS feed.
//
// The feed lists watch and review events newest-first; the client consumes a
// fixed window of the most recent entries and returns them oldest-first so
// the pipeline processes watches in chronological order. List items and
// other non-watch feed entries are skipped.
package letterboxd

// Package tmdb provides a client for The Movie Database API.
//
// The client fetches movie details (with credits appended) by TMDB id,
// authenticates with a v4 read access token, and throttles outgoing
// requests so a burst of diary entries cannot trip the provider's rate
// limits.
package tmdb

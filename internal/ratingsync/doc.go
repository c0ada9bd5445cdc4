// Package ratingsync pushes diary ratings to a second movie-tracking site.
//
// The pipeline depends only on the Sink interface; the concrete
// implementation drives kinopoisk.ru through a locally launched
// chromedriver session using a pre-authenticated Chrome profile. Sync
// failures are reported to the caller but never block note generation.
package ratingsync

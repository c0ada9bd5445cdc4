// Package textutil provides text processing utilities for note filenames
// and tag slugs.
//
// The primary use cases are:
//   - Sanitizing movie titles for safe use as vault filenames
//   - Converting names (directors, genres, countries) into lowercase
//     hyphenated tag slugs
//
// Slug generation strips diacritics so that accented names produce plain
// ASCII tags.
package textutil

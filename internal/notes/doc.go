// Package notes owns the per-movie note files in the vault.
//
// A note has three regions: a generated head block (poster, URL, director,
// rating lines) that the system overwrites wholesale, a user region holding
// dated watch callouts plus free text that is only ever appended to, and a
// trailing tag line that is merged rather than replaced so user-added tags
// survive updates.
//
// The reconciler decides, per diary entry, whether to create a note,
// refresh an existing one, append a rewatch callout, or route the entry to
// the not-rated log. Notes that do not match the expected structure are
// rejected with ErrMalformedNote instead of being overwritten.
package notes

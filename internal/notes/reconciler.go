package notes

import (
	"fmt"
	"path/filepath"

	"cinelog/internal/fileutil"
	"cinelog/internal/letterboxd"
	"cinelog/internal/textutil"
	"cinelog/internal/tmdb"
)

// State classifies what the reconciler decided for one diary entry.
type State int

const (
	// StateCreated means no note existed and a full note was written.
	StateCreated State = iota
	// StateNotRated means the entry lacks a rating; no note was written or
	// touched, and the entry belongs in the not-rated log.
	StateNotRated
	// StateSameWatch means the note already had a callout for this watched
	// date; the generated region was refreshed in place, no callout added.
	StateSameWatch
	// StateNewWatch means a rewatch: the generated region was refreshed and
	// one new dated callout appended below the existing user content.
	StateNewWatch
)

// String returns a short label for run summaries.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateNotRated:
		return "not rated"
	case StateSameWatch:
		return "refreshed"
	case StateNewWatch:
		return "rewatch"
	default:
		return "unknown"
	}
}

// Result reports the reconciliation outcome for one entry.
type Result struct {
	State State
	Path  string
}

// Reconciler materializes and updates note files in the vault.
type Reconciler struct {
	vaultDir string
}

// NewReconciler creates a reconciler rooted at the vault directory.
func NewReconciler(vaultDir string) *Reconciler {
	return &Reconciler{vaultDir: vaultDir}
}

// NotePath derives the note file path for an entry: vault root plus the
// sanitized "Title - Year" filename.
func (r *Reconciler) NotePath(entry letterboxd.Entry) string {
	return filepath.Join(r.vaultDir, textutil.SanitizeFileName(entry.Film())+".md")
}

// Reconcile applies one diary entry to the note store. Entries without a
// rating never create or mutate a note. Existing notes that fail to parse
// are left untouched and the error carries ErrMalformedNote.
func (r *Reconciler) Reconcile(entry letterboxd.Entry, meta tmdb.Metadata, tagList []string) (Result, error) {
	path := r.NotePath(entry)

	data, exists, err := fileutil.ReadFileIfExists(path)
	if err != nil {
		return Result{}, err
	}

	if !entry.HasRating() {
		return Result{State: StateNotRated, Path: path}, nil
	}

	if !exists {
		note := New(entry, meta, tagList)
		if err := fileutil.WriteFileAtomic(path, note.Render(), 0o644); err != nil {
			return Result{}, err
		}
		return Result{State: StateCreated, Path: path}, nil
	}

	note, err := Parse(data)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}

	note.Head = Head(entry, meta)
	note.TagLine = MergeTagLine(note.TagLine, entry)

	state := StateSameWatch
	label := entry.WatchedLabel()
	if !note.HasCallout(label) {
		note.AppendCallout(label)
		state = StateNewWatch
	}

	if err := fileutil.WriteFileAtomic(path, note.Render(), 0o644); err != nil {
		return Result{}, err
	}
	return Result{State: state, Path: path}, nil
}

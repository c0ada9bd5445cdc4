package textutil

import "strings"

// fileNameReplacer removes characters that Obsidian or common filesystems
// reject in note filenames.
var fileNameReplacer = strings.NewReplacer(
	">", "",
	"<", "",
	":", "",
	"\"", "",
	"\\", "",
	"/", "",
	"|", "",
	"?", "",
	"*", "",
)

// SanitizeFileName strips filesystem-unsafe characters from a note filename
// segment. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

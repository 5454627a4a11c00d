package metadata

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// datePrefix matches a YYYY-MM-DD token anchored at the start of a filename,
// followed by an optional separator.
var datePrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})([_-]?)`)

// ParseFilename extracts the optional release date and the default title from
// a filename. Files are named YYYY-MM-DD_Title_With_Underscores.<ext>; the
// date prefix schedules release and the remainder becomes the title with
// underscores turned into spaces. A missing prefix means always released.
//
// A date-shaped prefix that is not a real calendar date (2024-13-40) is
// treated as part of the name: no release date, prefix kept in the title.
// Only a trailing extension from the supported audio set is stripped.
// This never fails; any string yields a usable result.
func ParseFilename(filename string) (*time.Time, string) {
	rest := filename
	var release *time.Time

	if m := datePrefix.FindStringSubmatch(filename); m != nil {
		if t, err := time.ParseInLocation("2006-01-02", m[1], time.Local); err == nil {
			release = &t
			rest = filename[len(m[0]):]
		}
	}

	if ext := strings.ToLower(filepath.Ext(rest)); ext != "" {
		if _, ok := mimeTypes[ext]; ok {
			rest = rest[:len(rest)-len(ext)]
		}
	}

	return release, strings.ReplaceAll(rest, "_", " ")
}

package metadata

import (
	"path/filepath"
	"sort"
	"strings"
)

// mimeTypes fixes the content-type label for each supported audio extension.
// The declared extension decides the label; content is never inspected for
// labelling, so ambiguous containers stay consistent with their name.
var mimeTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
}

// SupportedExtensions returns the servable audio extensions, lowercase with
// leading dot, in a stable order.
func SupportedExtensions() []string {
	result := make([]string, 0, len(mimeTypes))
	for ext := range mimeTypes {
		result = append(result, ext)
	}
	sort.Strings(result)
	return result
}

// IsSupported reports whether the filename carries a supported audio extension.
func IsSupported(filename string) bool {
	_, ok := mimeTypes[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// MIMEType returns the fixed content-type label for the filename's extension.
func MIMEType(filename string) (string, bool) {
	value, ok := mimeTypes[strings.ToLower(filepath.Ext(filename))]
	return value, ok
}

package utils

import (
	"strings"
	"time"
)

// FallbackClientName is used when a client name sanitizes to nothing useful
const FallbackClientName = "Client"

// SanitizeClientName keeps [A-Za-z0-9_-] and replaces every other rune with '-'.
// Surrounding whitespace is trimmed first. A name that is empty, or whose every
// rune had to be replaced, becomes FallbackClientName.
func SanitizeClientName(name string) string {
	name = strings.TrimSpace(name)

	var b strings.Builder
	b.Grow(len(name))
	kept := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			kept = true
			b.WriteRune(r)
		case r == '-' || r == '_':
			kept = true
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}

	if !kept {
		return FallbackClientName
	}
	return b.String()
}

// ExportFileName builds "{sanitized client} {YYYY-MM-DD}.{ext}"
func ExportFileName(clientName string, now time.Time, ext string) string {
	return SanitizeClientName(clientName) + " " + now.Format("2006-01-02") + "." + ext
}

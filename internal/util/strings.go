// Package util provides shared utility functions used across the codebase.
package util

// Truncate truncates a string to maxLen runes, adding "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 3 {
		return "..."
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// ShortID returns the leading fragment of an id, long enough to paste back
// into commands that accept id prefixes.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

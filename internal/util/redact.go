package util

import "strings"

// Redact masks a secret for display, keeping only its last four characters.
// Short secrets are masked entirely; empty stays empty.
func Redact(secret string) string {
	if secret == "" {
		return ""
	}
	const keep = 4
	if len(secret) <= keep*2 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-keep) + secret[len(secret)-keep:]
}

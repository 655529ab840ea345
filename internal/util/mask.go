package util

import "strings"

const maskRune = "•"

// MaskSecret hides secret unless reveal is set. The mask keeps the length of
// the secret so tables stay aligned.
func MaskSecret(secret string, reveal bool) string {
	if reveal {
		return secret
	}

	return strings.Repeat(maskRune, len(secret))
}

// ShortenMiddle keeps the first and last n runes of s, e.g. signatures in tables.
func ShortenMiddle(s string, n int) string {
	if n <= 0 || len(s) <= 2*n+3 {
		return s
	}

	return s[:n] + "..." + s[len(s)-n:]
}

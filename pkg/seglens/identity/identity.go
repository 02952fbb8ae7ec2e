// Package identity canonicalizes raw customer emails into stable join keys.
package identity

import "strings"

// None is the sentinel key for rows without a usable identity.
const None = ""

// Normalize canonicalizes a raw identity string (email) into a lookup key:
// lowercase, whitespace-trimmed, with surrounding quote characters stripped.
// Empty or unusable input collapses to None. Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.Trim(key, "\"'<>")
	key = strings.TrimSpace(key)
	if key == "" {
		return None
	}
	return key
}

// IsNone reports whether key is the missing-identity sentinel.
func IsNone(key string) bool {
	return key == None
}

// Domain returns the part after the last "@", or "" when the key has no
// domain-shaped suffix. Used for anonymized journey identifiers.
func Domain(key string) string {
	at := strings.LastIndex(key, "@")
	if at < 0 || at >= len(key)-1 {
		return ""
	}
	return key[at+1:]
}

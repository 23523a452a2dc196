package utils

import "strings"

// NormalizeEmail is the comparison form of an identifier: trimmed and
// lowercased. Stored values keep their original casing.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SameEmail compares two identifiers in normalized form.
func SameEmail(a, b string) bool {
	return NormalizeEmail(a) == NormalizeEmail(b)
}

package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint computes the identity hash of extracted resume text used for
// duplicate detection. The text is trimmed and lower-cased first so that
// re-exports of the same file differing only in surrounding whitespace or
// casing hash identically. No salt: the same text always yields the same
// 64-character hex digest across restarts.
func Fingerprint(resumeText string) string {
	normalized := strings.ToLower(strings.TrimSpace(resumeText))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

package hashutil

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// InputID returns the 7-character hex ID of a timer input. Inputs that differ
// only in letter case or spacing share an ID.
func InputID(input string) string {
	return FromSeed(strings.ToLower(strings.Join(strings.Fields(input), " ")))
}

// FromSeed creates a deterministic 7-character hex ID from a seed string.
func FromSeed(seed string) string {
	hash := sha256.Sum256([]byte(seed))
	return fmt.Sprintf("%x", hash[:4])[:7]
}

// IsID reports whether s has the form FromSeed produces.
func IsID(s string) bool {
	if len(s) != 7 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

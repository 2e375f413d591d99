package util

import (
	"fmt"
)

// IsID checks if a string looks like a platform resource ID
func IsID(str string) bool {
	// Platform IDs are 16 lowercase hex characters
	if len(str) != 16 {
		return false
	}

	for _, r := range str {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}

	return true
}

// Pluralize formats a count with the singular or plural form of a noun
func Pluralize(n int, singular string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %ss", n, singular)
}

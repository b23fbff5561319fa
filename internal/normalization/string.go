package normalization

import (
	"strings"
)

func ParseInputString(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// TrimInputString keeps case; display names and vocabulary fields must not
// be lowercased.
func TrimInputString(input string) string {
	return strings.TrimSpace(input)
}

package utils

import "strconv"

// ParseInt parses s, returning fallback on empty or invalid input.
func ParseInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

package utils

import (
	"unicode"
)

// IsOnlyNumbers checks if a string consists entirely of numeric digits
func IsOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// HasLetter reports whether s contains at least one letter.
func HasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// IsRepetitive checks for one character repeated 3+ times ("aaa", "---")
func IsRepetitive(s string) bool {
	if len(s) <= 2 {
		return false
	}
	firstChar := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != firstChar {
			return false
		}
	}
	return true
}

// IsValidToken decides whether a token is worth counting when filtering is on.
// Numbers, tokens without any letter and repetitive runs are rejected.
func IsValidToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	if IsOnlyNumbers(s) {
		return false
	}
	if !HasLetter(s) {
		return false
	}
	if IsRepetitive(s) {
		return false
	}
	return true
}

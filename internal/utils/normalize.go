package utils

import (
	"fmt"
	"strings"
	"unicode"
)

// TrimPunctuation strips leading and trailing punctuation ("chat," -> "chat").
// A token made only of punctuation becomes empty.
func TrimPunctuation(token string) string {
	return strings.TrimFunc(token, unicode.IsPunct)
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	if n < 0 {
		return "-" + FormatWithCommas(-n)
	}
	str := fmt.Sprintf("%d", n)
	if n < 1000 {
		return str
	}
	var sb strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(char)
	}
	return sb.String()
}

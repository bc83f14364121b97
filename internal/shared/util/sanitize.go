package util

import (
	"errors"
	"strings"
	"unicode"
)

const maxFileNameRunes = 80

// SanitizeFileName turns a user-supplied title into a download-safe file
// name stem: path separators, quotes and control characters are replaced,
// runs of separators collapse to one dash and the result is capped in length.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", "-")
	}
	var b strings.Builder
	lastDash := false
	n := 0
	for _, r := range strings.TrimSpace(name) {
		if n == maxFileNameRunes {
			break
		}
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.':
			b.WriteRune(r)
			lastDash = false
		default:
			if lastDash {
				continue
			}
			b.WriteRune('-')
			lastDash = true
		}
		n++
	}
	s := strings.Trim(b.String(), "-.")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

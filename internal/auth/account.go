package auth

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var passwordPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// CheckName returns a message when name is not 1 to 20 characters.
func CheckName(name string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < 1 || n > 20 {
		return "User name must be between 1 and 20 characters."
	}
	return ""
}

// CheckPassword returns a message when password is shorter than 6 characters or is not made of
// letters and digits with at least one of each.
func CheckPassword(password string) string {
	if len(password) < 6 {
		return "Password must be at least 6 characters."
	}
	if !passwordPattern.MatchString(password) ||
		!strings.ContainsAny(password, "0123456789") ||
		strings.IndexFunc(password, isASCIILetter) < 0 {
		return "Password must contain both letters and digits."
	}
	return ""
}

func isASCIILetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

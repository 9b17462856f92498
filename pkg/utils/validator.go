package utils

import (
	"fmt"
	"regexp"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)
)

// ValidateEmail validates an email address. The personal-step gate only
// requires a non-empty email; this check is advisory and never blocks a
// field write.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// SanitizeString removes control characters from user-entered field values
func SanitizeString(s string) string {
	return controlChars.ReplaceAllString(s, "")
}

package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"priya@example.com", true},
		{"a.b-c+tag@sub.domain.io", true},
		{"not-an-email", false},
		{"@example.com", false},
		{"user@", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err == nil) != tt.valid {
				t.Errorf("ValidateEmail(%q) error = %v, valid = %v", tt.email, err, tt.valid)
			}
		})
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("Raman\x00 Builders\x1f"); got != "Raman Builders" {
		t.Errorf("SanitizeString() = %q", got)
	}
	if got := SanitizeString("plain"); got != "plain" {
		t.Errorf("SanitizeString() = %q", got)
	}
}

package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLength  = 120
	minPhoneDigits = 9
	maxPhoneDigits = 15
)

// NormalizePhone removes spaces, dashes and parentheses from a phone number.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '\t':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
}

// ValidatePhone validates a normalized phone number: an optional leading '+'
// followed by digits only.
func ValidatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("phone cannot be empty")
	}
	digits := strings.TrimPrefix(phone, "+")
	for _, r := range digits {
		if r < '0' || r > '9' {
			return fmt.Errorf("phone may contain digits only, got %q", r)
		}
	}
	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return fmt.Errorf("invalid phone length: expected %d-%d digits, got %d", minPhoneDigits, maxPhoneDigits, len(digits))
	}
	return nil
}

// ValidateAndNormalizePhone normalizes and validates a phone number.
func ValidateAndNormalizePhone(phone string) (string, error) {
	normalized := NormalizePhone(phone)
	if err := ValidatePhone(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

// ValidateFullName checks that a trimmed name is present and not too long.
func ValidateFullName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if n := utf8.RuneCountInString(name); n > maxNameLength {
		return fmt.Errorf("name too long: at most %d characters, got %d", maxNameLength, n)
	}
	return nil
}

package utils

import (
	"regexp"
	"strings"
)

var nonDigit = regexp.MustCompile(`\D`)

// NormalizePhoneNumber reduces a phone number to its 10 national digits,
// dropping formatting, a leading 0 trunk prefix or the 91 country code.
func NormalizePhoneNumber(phoneNumber string) string {
	digits := nonDigit.ReplaceAllString(phoneNumber, "")

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		digits = digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		digits = digits[1:]
	}

	return digits
}

// ValidatePhoneNumber validates if a phone number has exactly 10 national digits
func ValidatePhoneNumber(phoneNumber string) bool {
	return len(NormalizePhoneNumber(phoneNumber)) == 10
}

// DisplayPhoneNumber formats phone number for display
func DisplayPhoneNumber(phoneNumber string) string {
	digits := NormalizePhoneNumber(phoneNumber)
	if len(digits) == 10 {
		// Format as +91 XXXXX XXXXX
		return "+91 " + digits[:5] + " " + digits[5:]
	}
	return phoneNumber
}

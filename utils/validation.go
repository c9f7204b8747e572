// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var phoneRe = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	return phoneRe.MatchString(CleanPhone(phone))
}

// CleanPhone strips the separators people type into phone fields.
func CleanPhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
}

// IsE164 reports whether a cleaned number carries a leading + country code.
func IsE164(phone string) bool {
	cleaned := CleanPhone(phone)
	return strings.HasPrefix(cleaned, "+") && phoneRe.MatchString(cleaned)
}

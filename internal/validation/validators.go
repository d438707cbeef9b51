// Package validation holds the field-level rules behind the registration form.
// Every check is a pure function over the raw string value; none of them panic.
package validation

import (
	"regexp"
	"strings"
)

var (
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nameRegex   = regexp.MustCompile(`^[A-Za-z\s'-]+$`)
	digitsRegex = regexp.MustCompile(`^\d+$`)
	lowerRegex  = regexp.MustCompile(`[a-z]`)
	upperRegex  = regexp.MustCompile(`[A-Z]`)
	digitRegex  = regexp.MustCompile(`\d`)
	symbolRegex = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// BlockedDomains are disposable-email providers rejected at registration.
// Matched case-insensitively against the domain part of the address.
var BlockedDomains = []string{
	"mailinator.com",
	"tempmail.com",
	"10minutemail.com",
	"guerrillamail.com",
}

// weakPasswords are rejected outright regardless of composition.
var weakPasswords = []string{
	"password", "123456", "qwerty", "letmein", "admin", "welcome", "abc123",
}

// IsEmail reports whether v looks like local@domain.tld and is not hosted
// on a blocked disposable domain.
func IsEmail(v string) bool {
	value := strings.TrimSpace(v)
	if !emailRegex.MatchString(value) {
		return false
	}
	at := strings.LastIndex(value, "@")
	domain := strings.ToLower(value[at+1:])
	for _, blocked := range BlockedDomains {
		if domain == blocked {
			return false
		}
	}
	return true
}

// NameStrictness selects between the two name rules the form uses: the basic
// rule only constrains the character set, the enhanced rule also requires at
// least three characters.
type NameStrictness int

const (
	NameBasic NameStrictness = iota
	NameEnhanced
)

// IsValidName accepts letters, spaces, hyphens and apostrophes. The basic
// rule checks the raw value; the enhanced rule trims first and requires at
// least three characters.
func IsValidName(v string, strictness NameStrictness) bool {
	if strictness == NameEnhanced {
		value := strings.TrimSpace(v)
		return nameRegex.MatchString(value) && len(value) >= 3
	}
	return nameRegex.MatchString(v)
}

// StrongPassword enforces the registration-time rule: at least 8 characters
// with lower, upper, digit and symbol, and not on the weak list.
func StrongPassword(v string) bool {
	lowered := strings.ToLower(v)
	for _, weak := range weakPasswords {
		if lowered == weak {
			return false
		}
	}
	return len(v) >= 8 &&
		lowerRegex.MatchString(v) &&
		upperRegex.MatchString(v) &&
		digitRegex.MatchString(v) &&
		symbolRegex.MatchString(v)
}

// ResetPasswordOK is the relaxed rule applied on the password-reset page:
// length and upper/lower/digit only, no symbol requirement.
func ResetPasswordOK(v string) bool {
	return len(v) >= 8 &&
		upperRegex.MatchString(v) &&
		lowerRegex.MatchString(v) &&
		digitRegex.MatchString(v)
}

// phoneLengths maps a country to the exact number of digits its phone
// numbers must have. Unknown countries fall back to 10.
var phoneLengths = map[string]int{
	"India":          10,
	"United States":  10,
	"United Kingdom": 11,
	"Canada":         10,
	"Australia":      9,
	"Germany":        11,
	"France":         9,
	"Other":          10,
}

const defaultPhoneLength = 10

// PhoneLength returns the required digit count for country.
func PhoneLength(country string) int {
	if n, ok := phoneLengths[country]; ok {
		return n
	}
	return defaultPhoneLength
}

// IsPhone reports whether v is a digits-only string of exactly the length
// required for country.
func IsPhone(v string, country string) bool {
	value := strings.TrimSpace(v)
	if !digitsRegex.MatchString(value) {
		return false
	}
	return len(value) == PhoneLength(country)
}

// IsDigits reports whether the trimmed value is a non-empty run of digits.
func IsDigits(v string) bool {
	return digitsRegex.MatchString(strings.TrimSpace(v))
}

// MinLen reports whether the trimmed value has at least n characters.
func MinLen(v string, n int) bool {
	return len(strings.TrimSpace(v)) >= n
}

package validator

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// EmailRgx accepts anything shaped like local@domain.tld with no whitespace.
	EmailRgx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// NotBlank returns true if a string is not empty or contains only whitespace.
func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// MinRunes returns true if a string is greater than or equal to a minimum number of n
func MinRunes(value string, n int) bool {
	return utf8.RuneCountInString(value) >= n
}

// MaxRunes returns true if a string is less than or equal to a maximum number of n
func MaxRunes(value string, n int) bool {
	return utf8.RuneCountInString(value) <= n
}

// Matches returns true if a string value matches a specific regexp pattern.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// In returns true if a value is in a list of values.
func In[T comparable](value T, list ...T) bool {
	for i := range list {
		if value == list[i] {
			return true
		}
	}
	return false
}

func IsEmail(value string) bool {
	if len(value) > 254 {
		return false
	}
	return EmailRgx.MatchString(value)
}

// IsCountryCode reports whether value is a 2 or 3 letter ISO 3166 style code.
func IsCountryCode(value string) bool {
	if len(value) != 2 && len(value) != 3 {
		return false
	}
	for _, r := range value {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

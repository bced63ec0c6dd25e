package security

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	htmlPolicy    = bluemonday.StrictPolicy()
	gangNameRegex = regexp.MustCompile(`^[\pL\pN][\pL\pN '_.-]{1,62}[\pL\pN.]$`)
	gangTagRegex  = regexp.MustCompile(`^[A-Za-z0-9]{2,6}$`)
)

// SanitizeString removes potentially dangerous characters
func SanitizeString(input string) string {
	// Trim whitespace
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Limit length
	if len(input) > 1000 {
		input = input[:1000]
	}

	return input
}

// SanitizeHTML removes all HTML tags
func SanitizeHTML(input string) string {
	return htmlPolicy.Sanitize(input)
}

// ValidateGangName checks name length and characters
func ValidateGangName(name string) bool {
	return len(name) >= 3 && len(name) <= 64 && gangNameRegex.MatchString(name)
}

// ValidateGangTag checks that a tag is 2-6 letters or digits
func ValidateGangTag(tag string) bool {
	return gangTagRegex.MatchString(tag)
}

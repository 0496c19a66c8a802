package valueobject

import (
	"regexp"
	"strings"
)

// ukPostcodePattern accepts the outward and inward parts with an optional single space.
var ukPostcodePattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9][A-Z0-9]? ?[0-9][A-Z]{2}$`)

// MaxPostcodeLength is the longest postcode input accepted.
const MaxPostcodeLength = 10

// NormalizePostcode uppercases a postcode and strips every space.
func NormalizePostcode(postcode string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(postcode)), " ", "")
}

// IsValidUKPostcode checks the UK postcode shape. Lowercase input is accepted.
func IsValidUKPostcode(postcode string) bool {
	return ukPostcodePattern.MatchString(strings.ToUpper(strings.TrimSpace(postcode)))
}

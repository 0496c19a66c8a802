package valueobject

import (
	"regexp"
	"strings"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	GBP Currency = "GBP" // British Pound (default)
	EUR Currency = "EUR" // Euro
	USD Currency = "USD" // US Dollar
	CHF Currency = "CHF" // Swiss Franc
)

// DefaultCurrency is the default currency for the system
const DefaultCurrency = GBP

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// SupportedCurrencies is the set accepted by money flows and reports.
func SupportedCurrencies() []Currency {
	return []Currency{GBP, CHF, EUR, USD}
}

// NormalizeCurrency trims and uppercases a currency code.
func NormalizeCurrency(code string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(code)))
}

// IsSupported reports membership in SupportedCurrencies.
func (c Currency) IsSupported() bool {
	for _, s := range SupportedCurrencies() {
		if c == s {
			return true
		}
	}
	return false
}

// IsISOShaped reports whether c is three uppercase letters.
func (c Currency) IsISOShaped() bool {
	return currencyCodePattern.MatchString(string(c))
}

// String returns the code
func (c Currency) String() string {
	return string(c)
}

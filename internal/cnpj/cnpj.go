// Package cnpj normalizes Brazilian company identifiers (CNPJ) to a fixed-width digit string.
package cnpj

import "strings"

// Width is the number of digits in a normalized CNPJ.
const Width = 14

// Missing is the normalized form of an empty or digit-free identifier.
// It is a sentinel for "no identifier", not a valid CNPJ.
var Missing = strings.Repeat("0", Width)

// Normalize strips every non-digit character from raw and left-pads the result
// with zeros to Width. Inputs with more than Width digits are returned as-is.
//
//	"11.084.060/0001-56" -> "11084060000156"
//	"1234567000189"      -> "01234567000189"
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(Width)
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) >= Width {
		return digits
	}
	return strings.Repeat("0", Width-len(digits)) + digits
}

// IsMissing reports whether id is the missing-identifier sentinel.
func IsMissing(id string) bool {
	return id == Missing
}

// IsOverlength reports whether a normalized id carries more than Width digits.
// Such values usually come from CPF/CNPJ columns holding concatenated or
// malformed data and should be counted as a data-quality issue.
func IsOverlength(id string) bool {
	return len(id) > Width
}

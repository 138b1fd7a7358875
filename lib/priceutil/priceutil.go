// Package priceutil extracts a canonical price-range string out of the
// free-text pricing blurbs vendors attach to listings.
package priceutil

import (
	"fmt"
	"regexp"
)

// pattern order is the precedence: an explicit two-sided range beats a
// "starting at" minimum, which beats a lone dollar figure.
var (
	rangeRegex    = regexp.MustCompile(`\$\s*(\d+(?:\.\d{2})?)\s*[-–]\s*\$?\s*(\d+(?:\.\d{2})?)`)
	startingRegex = regexp.MustCompile(`(?i)(?:starting\s+at|from)\s*\$\s*(\d+(?:\.\d{2})?)`)
	singleRegex   = regexp.MustCompile(`\$\s*(\d+(?:\.\d{2})?)`)
)

// ExtractRange normalizes price text into one of "$N-$M", "$N+" or "$N".
// Decimal cents survive verbatim when the source carries them. Returns false
// when the text has no recognizable price at all.
func ExtractRange(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	if m := rangeRegex.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("$%s-$%s", m[1], m[2]), true
	}
	if m := startingRegex.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("$%s+", m[1]), true
	}
	if m := singleRegex.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("$%s", m[1]), true
	}
	return "", false
}

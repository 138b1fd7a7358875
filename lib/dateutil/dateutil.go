// Package dateutil turns the free-form date phrasing found in theater
// listings ("Feb 21 - Mar 29, 2025", "Nov. 3rd", "2025-11-14T19:00:00") into
// canonical ISO calendar dates.
package dateutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"stagewatch-backend/lib/textutil"

	"github.com/araddon/dateparse"
)

// stubbed in tests to pin the default year for year-less dates
var timeNow = time.Now

var (
	isoRegex = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

	monthDayRegex = regexp.MustCompile(
		`(?i)\b(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|` +
			`Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\.?` +
			`\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?\b`)

	numericRegex = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
	ordinalRegex = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)\b`)
	yearRegex    = regexp.MustCompile(`\d{4}`)
)

// ordered range separators. order matters: the spaced variants must be
// probed before the bare ones so "Feb 21 - Mar 29" splits on " - " instead
// of the hyphen inside a date. the first separator present wins, even if the
// split turns out to be implausible.
var rangeSeparators = []string{" to ", " - ", " – ", " through ", "–", "-"}

// ParseDate fuzzy-parses a single date expression into ISO form
// (YYYY-MM-DD). Surrounding prose is tolerated. Returns false on anything it
// cannot confidently turn into a calendar date; it never returns an error.
func ParseDate(text string) (string, bool) {
	text = textutil.CleanText(text)
	if text == "" {
		return "", false
	}

	candidate, defaultYear := findCandidate(text)
	if candidate == "" {
		// no recognizable shape, let dateparse have one shot at the
		// whole string ("21 February 2025" and friends)
		candidate = text
	}
	candidate = ordinalRegex.ReplaceAllString(candidate, "$1")
	if defaultYear && !yearRegex.MatchString(candidate) {
		candidate = fmt.Sprintf("%s, %d", candidate, timeNow().Year())
	}

	parsed, err := dateparse.ParseAny(candidate)
	if err != nil {
		return "", false
	}
	return parsed.Format("2006-01-02"), true
}

// findCandidate pulls the most date-looking substring out of prose. only
// month-name forms get a default year appended; numeric forms either carry
// their own year or are ambiguous enough to reject.
func findCandidate(text string) (candidate string, defaultYear bool) {
	if m := isoRegex.FindString(text); m != "" {
		return m, false
	}
	if m := monthDayRegex.FindString(text); m != "" {
		return m, true
	}
	if m := numericRegex.FindString(text); m != "" {
		return m, false
	}
	return "", false
}

// ParseDateRange splits a date-range expression on the first recognized
// separator and parses each side independently, so either side may come back
// empty on its own. Text with no separator is treated as a single-day event:
// the one date is returned as both start and end.
func ParseDateRange(text string) (start, end string) {
	text = textutil.CleanText(text)
	if text == "" {
		return "", ""
	}

	for _, sep := range rangeSeparators {
		if !strings.Contains(text, sep) {
			continue
		}
		parts := strings.SplitN(text, sep, 2)
		start, _ = ParseDate(strings.TrimSpace(parts[0]))
		end, _ = ParseDate(strings.TrimSpace(parts[1]))
		return start, end
	}

	if single, ok := ParseDate(text); ok {
		return single, single
	}
	return "", ""
}

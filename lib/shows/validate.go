package shows

import (
	"fmt"
	"strings"
	"time"
)

// Validate inspects a constructed Show for suspicious-but-survivable fields
// and returns human-readable warnings. It is a pure inspection pass: a
// warning never removes the show from the result.
func Validate(s Show) []string {
	var warnings []string

	if len(strings.TrimSpace(s.Title)) < 2 {
		warnings = append(warnings, fmt.Sprintf("suspiciously short show title: %q", s.Title))
	}
	if s.TicketUrl != "" && !strings.HasPrefix(s.TicketUrl, "http") {
		warnings = append(warnings, fmt.Sprintf("ticket url is not absolute: %s", s.TicketUrl))
	}

	if s.Dates != nil {
		if s.Dates.Start != "" && !isISODate(s.Dates.Start) {
			warnings = append(warnings, fmt.Sprintf("invalid start date format: %s", s.Dates.Start))
		}
		if s.Dates.End != "" && !isISODate(s.Dates.End) {
			warnings = append(warnings, fmt.Sprintf("invalid end date format: %s", s.Dates.End))
		}
	}

	return warnings
}

func isISODate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

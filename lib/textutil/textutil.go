package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// entity replacements are applied after whitespace collapsing so a decoded
// &nbsp; does not merge into its neighbors.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&nbsp;", " ",
	"&quot;", `"`,
	"&#8217;", "'",
	"&#8220;", `"`,
	"&#8221;", `"`,
)

// CleanText collapses runs of whitespace into single spaces, trims the
// result and decodes the small set of HTML entities that show up in vendor
// listing text. Running it twice is a no-op.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRegex.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	return entityReplacer.Replace(text)
}

// Truncate shortens text to at most max characters, replacing the tail with
// an ellipsis. Text at or under the limit is returned untouched.
func Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max-3] + "..."
}

func MatchAny(text string, markers []string) bool {
	text = strings.ToLower(text)
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// Package htmlutil holds helpers for working with values pulled out of
// scraped markup.
package htmlutil

import (
	"net/url"
	"strings"
)

// AbsolveURL resolves href against base so every stored URL is absolute.
// Protocol-relative and path-relative hrefs both resolve; an already
// absolute href passes through untouched, and unparseable input yields "".
func AbsolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return parsed.String()
	}
	return base.ResolveReference(parsed).String()
}

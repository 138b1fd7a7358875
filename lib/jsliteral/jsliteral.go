// Package jsliteral locates and extracts a JavaScript array literal embedded
// in arbitrary page text. The literal is JS source, not strict JSON: strings
// may contain unescaped structural characters, quoting may be single or
// double, and trailing commas are legal. A naive regex or a strict parser
// mishandles all of these, so extraction is a hand-rolled balanced-bracket
// scan that tracks string and escape state.
package jsliteral

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/titanous/json5"
)

// ScanLimit bounds how many characters a single extraction may walk past the
// opening bracket. Malformed input with a missing closing bracket would
// otherwise make the scan run to the end of an arbitrarily large document.
const ScanLimit = 500_000

// the window around an anchor match in which the opening bracket must appear
const bracketWindow = 10

// declarationKeywords are the only recognized declaration forms. Arbitrary
// identifiers on the left-hand side are matched, but the keyword set is
// fixed.
var declarationKeywords = []string{"var", "const", "let"}

// AnchorPattern builds the declaration-anchor regexp for one keyword and
// identifier, e.g. `var events = `.
func AnchorPattern(keyword, identifier string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(keyword+" "+identifier) + `\s*=\s*`)
}

// ExtractDeclaredArray finds `var <identifier> = [...]` (or the const/let
// variants) in text and returns the exact array-literal substring, brackets
// inclusive. Returns "" when no declaration or no balanced array is found.
func ExtractDeclaredArray(text, identifier string) string {
	for _, keyword := range declarationKeywords {
		literal := ExtractArray(text, AnchorPattern(keyword, identifier))
		if literal != "" {
			return literal
		}
	}
	return ""
}

// ExtractArray returns the array literal on the right-hand side of the first
// anchor match, or "" if the anchor is missing, no opening bracket sits near
// it, or the scan hits end-of-text or ScanLimit before the brackets balance.
func ExtractArray(text string, anchor *regexp.Regexp) string {
	loc := anchor.FindStringIndex(text)
	if loc == nil {
		return ""
	}

	open := findOpenBracket(text, loc[1])
	if open == -1 {
		return ""
	}

	depth := 0
	inString := false
	var stringChar byte
	escapeNext := false

	for i := open; i < len(text) && i-open <= ScanLimit; i++ {
		c := text[i]

		if escapeNext {
			escapeNext = false
			continue
		}
		if c == '\\' {
			escapeNext = true
			continue
		}

		switch {
		case !inString && (c == '"' || c == '\''):
			inString = true
			stringChar = c
		case inString && c == stringChar:
			inString = false
		case !inString && c == '[':
			depth++
		case !inString && c == ']':
			depth--
			if depth == 0 {
				return text[open : i+1]
			}
		}
	}

	return ""
}

func findOpenBracket(text string, pos int) int {
	start := pos - bracketWindow
	if start < 0 {
		start = 0
	}
	end := pos + bracketWindow
	if end > len(text) {
		end = len(text)
	}
	idx := strings.IndexByte(text[start:end], '[')
	if idx == -1 {
		return -1
	}
	return start + idx
}

var trailingCommaRegex = regexp.MustCompile(`,(\s*[}\]])`)

// CleanLiteral repairs the two JS-isms that routinely survive into embedded
// data: needlessly escaped single quotes and trailing commas before a
// closing bracket or brace.
func CleanLiteral(literal string) string {
	literal = strings.ReplaceAll(literal, `\'`, `'`)
	return trailingCommaRegex.ReplaceAllString(literal, "$1")
}

// ParseRecords parses a cleaned array literal into generic records. json5
// rather than encoding/json because the source grammar is JavaScript; a
// parse failure here is local to one extraction attempt, never fatal.
func ParseRecords(literal string) ([]map[string]any, error) {
	var records []map[string]any
	err := json5.Unmarshal([]byte(CleanLiteral(literal)), &records)
	if err != nil {
		return nil, fmt.Errorf("parse array literal: %w", err)
	}
	return records, nil
}

package ident

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var corporateSuffixes = regexp.MustCompile(`(?i)\b(Corp|Corporation|Inc|Incorporated|Ltd|Limited|Co\.|Company|LLC|Group|Holdings|Technologies|Tech|Systems|Solutions|Industries|Manufacturing|Electronics|Semiconductor)\b`)

var whitespaceRun = regexp.MustCompile(`\s+`)

// FallbackTerms builds the ordered search-term chain for one free-text name:
// the full name, the name with recognized corporate suffixes stripped, and the
// first whitespace-delimited token when it is longer than two characters.
// Terms shorter than two characters and repeats of an earlier term are
// skipped, so the chain is never longer than three entries and often shorter.
func FallbackTerms(name string) []string {
	name = canonicalName(name)
	if name == "" {
		return nil
	}

	var terms []string
	seen := make(map[string]struct{}, 3)
	add := func(term string) {
		term = strings.TrimSpace(term)
		if len([]rune(term)) < 2 {
			return
		}
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	add(name)

	stripped := whitespaceRun.ReplaceAllString(corporateSuffixes.ReplaceAllString(name, ""), " ")
	add(stripped)

	first, _, _ := strings.Cut(name, " ")
	if len([]rune(first)) > 2 {
		add(first)
	}

	return terms
}

// canonicalName collapses whitespace and tames names extracted from documents
// in all caps, which search endpoints match poorly.
func canonicalName(name string) string {
	name = strings.TrimSpace(whitespaceRun.ReplaceAllString(name, " "))
	if name == "" || !isAllUpper(name) {
		return name
	}
	return cases.Title(language.Und).String(name)
}

func isAllUpper(name string) bool {
	hasLetter := false
	for _, r := range name {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// Package text holds the content sanitization and slug helpers shared by the
// forum and directory modules.
package text

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
	nonSlugPattern = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	hyphenRuns     = regexp.MustCompile(`-{2,}`)
)

// Sanitize strips every markup tag and trims the result, leaving plain text.
// Bare URLs survive as text; turning them into links is a view concern.
func Sanitize(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

// Slugify folds diacritics, lowercases, drops everything outside [a-z0-9],
// joins words with hyphens and truncates to maxLen.
func Slugify(s string, maxLen int) string {
	s = foldDiacritics(strings.ToLower(s))
	s = nonSlugPattern.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(strings.TrimSpace(s), "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if maxLen > 0 && len(s) > maxLen {
		s = strings.Trim(s[:maxLen], "-")
	}
	return s
}

// ThreadSlug derives a unique thread slug from the title: the slugified title
// capped at 80 chars plus a millisecond timestamp suffix, so uniqueness holds
// without a lookup loop.
func ThreadSlug(title string, now time.Time) string {
	return fmt.Sprintf("%s-%d", Slugify(title, 80), now.UnixMilli())
}

func foldDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

package format

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugDisallow = regexp.MustCompile(`[^a-z0-9\-]`)
)

// HumanizeSlug turns "zip-lining" into "Zip Lining". Characters outside
// [a-z0-9-] are dropped; an unusable slug yields "".
func HumanizeSlug(slug string) string {
	s := slugSpaces.ReplaceAllString(slug, "-")
	s = slugDisallow.ReplaceAllString(strings.ToLower(s), "")
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' })
	titleCaser := cases.Title(language.English)
	for i, w := range words {
		words[i] = titleCaser.String(w)
	}
	return strings.Join(words, " ")
}

// JoinNonEmpty joins the non-blank values with sep.
func JoinNonEmpty(sep string, values ...string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}

// Plural picks the singular or plural noun for n, e.g. "3 stops".
func Plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}

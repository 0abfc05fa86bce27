// Package slugx generates URL slugs from post titles and tag names.
package slugx

import (
	"regexp"
	"strings"
)

var (
	// Turkish characters the CMS content uses, mapped to ASCII.
	transliterations = strings.NewReplacer(
		"ş", "s",
		"ğ", "g",
		"ü", "u",
		"ö", "o",
		"ç", "c",
		"ı", "i",
		" ", "-",
		"'", "",
	)

	nonSlugChars = regexp.MustCompile(`[^a-z0-9\-]`)
	dashRuns     = regexp.MustCompile(`-+`)
)

// Make converts a title into a lowercase, dash-separated slug.
// "Akıllı Depo Sistemleri" becomes "akilli-depo-sistemleri".
func Make(title string) string {
	slug := transliterations.Replace(strings.ToLower(title))
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = dashRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

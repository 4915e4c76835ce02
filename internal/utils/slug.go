package utils

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
var multiDash = regexp.MustCompile(`-+`)

var accentFolder = strings.NewReplacer(
	"à", "a", "â", "a", "ä", "a",
	"ç", "c",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o",
	"ù", "u", "û", "u", "ü", "u",
	"œ", "oe", "æ", "ae",
)

// Slugify turns a French title or a loosely typed identifier into the
// lowercase dashed form used for section and action ids.
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = accentFolder.Replace(s)
	s = strings.ReplaceAll(s, "'", "-")
	s = strings.ReplaceAll(s, "’", "-")
	s = strings.ReplaceAll(s, "&", " et ")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "/", " ")
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = multiDash.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return s
}

package utils

import (
	"strings"

	"github.com/gosimple/slug"
	"github.com/gosimple/unidecode"
	"golang.org/x/text/unicode/norm"
)

// NormalizeGymName canonicalizes a gym name before it is used as a join key:
// NFC form, trimmed, inner whitespace collapsed. Names typed on different
// keyboards then compare equal.
func NormalizeGymName(name string) string {
	return strings.Join(strings.Fields(norm.NFC.String(name)), " ")
}

// GymSlug builds the URL slug for a gym. Names that transliterate to nothing
// fall back to the given id.
func GymSlug(name, fallback string) string {
	s := slug.Make(NormalizeGymName(name))
	if s == "" {
		return fallback
	}
	return s
}

// SearchKey folds a string to lowercase ASCII for substring search.
func SearchKey(s string) string {
	return strings.ToLower(unidecode.Unidecode(NormalizeGymName(s)))
}

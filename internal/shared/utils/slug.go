package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify maps a display name to a lowercase, hyphen-separated identifier.
//
// The same function is used by the repositories (entity slug) and by the
// artifact cache (image file name), so both call sites must derive identical
// keys for the same input:
//
//	"J.R.R. Tolkien"          -> "j-r-r-tolkien"
//	"Gabriel García Márquez"  -> "gabriel-garcia-marquez"
//	"Philosopher's Stone"     -> "philosophers-stone"
//	"XMLHttpRequest"          -> "xml-http-request"
//
// Slugify(Slugify(x)) == Slugify(x) for every x, and "" maps to "".
func Slugify(input string) string {
	// Step 1: Strip accents ("Ánh" -> "Anh")
	ascii := RemoveDiacritics(input)

	// Step 2: Apostrophes join words instead of splitting them
	ascii = strings.NewReplacer("'", "", "’", "").Replace(ascii)

	// Step 3: Split into words and join them lowercase with hyphens
	words := splitWords(ascii)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "-")
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// RemoveDiacritics decomposes the input and drops combining marks.
// Letters without a decomposition ("đ") are mapped explicitly.
func RemoveDiacritics(input string) string {
	out, _, err := transform.String(diacriticStripper, input)
	if err != nil {
		out = input
	}
	return strings.NewReplacer("đ", "d", "Đ", "D", "ø", "o", "Ø", "O", "ł", "l", "Ł", "L").Replace(out)
}

// splitWords breaks text on separators, case changes ("fooBar"), the end of
// an acronym ("XMLHttp") and letter/digit transitions ("R2D2").
func splitWords(s string) []string {
	rs := []rune(s)
	words := make([]string, 0, 4)
	start := -1

	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(rs[start:end]))
		}
		start = -1
	}

	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}

		prev := rs[i-1]
		switch {
		case unicode.IsDigit(prev) != unicode.IsDigit(r):
			flush(i)
			start = i
		case unicode.IsLower(prev) && isUpper(r):
			flush(i)
			start = i
		case isUpper(prev) && isUpper(r) &&
			i+1 < len(rs) && unicode.IsLower(rs[i+1]):
			flush(i)
			start = i
		}
	}
	flush(len(rs))

	return words
}

// isUpper ignores capitals without a lowercase form ("ϒ", "𝐀"): they
// survive ToLower and would otherwise split differently on a second pass.
func isUpper(r rune) bool {
	return unicode.IsUpper(r) && unicode.ToLower(r) != r
}

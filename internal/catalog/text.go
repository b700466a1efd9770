package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold returns the matching form of s: accents stripped, lower-cased, every run of
// non-alphanumeric characters collapsed to a single space. All name, group and
// keyword matching in the catalog happens on folded text.
//
//	"Développé  Couché (barre)" -> "developpe couche barre"
func Fold(s string) string {
	// transform chains keep internal buffers, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(out)
	return strings.Join(strings.FieldsFunc(out, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), " ")
}

// foldKey folds a field name and drops the separators so that "duree_repos",
// "Durée repos" and "dureeRepos" compare equal.
func foldKey(s string) string {
	return strings.ReplaceAll(Fold(s), " ", "")
}

// asString extracts a trimmed string from a decoded JSON/YAML value.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		if len(t) > 0 {
			return asString(t[0])
		}
	}
	return ""
}

// asStrings extracts a list of strings. A single string is split on commas,
// semicolons and slashes.
func asStrings(v any) []string {
	var out []string
	switch t := v.(type) {
	case string:
		for _, part := range strings.FieldsFunc(t, func(r rune) bool { return r == ',' || r == ';' || r == '/' }) {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	case []any:
		for _, item := range t {
			out = append(out, asStrings(item)...)
		}
	case []string:
		for _, item := range t {
			out = append(out, asStrings(item)...)
		}
	}
	return out
}

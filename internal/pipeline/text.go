package pipeline

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper removes combining diacritical marks: decompose, drop the
// marks, recompose.
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes diacritics ("João" -> "Joao"). On a transform
// failure the input is returned unchanged; cleaning never errors on a cell.
func StripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizePerson canonicalizes a person name so that visually distinct
// spellings of the same name group together: uppercase, accents stripped,
// trimmed, internal whitespace runs collapsed to one space.
//
// "joão  da Silva ", "JOAO DA SILVA" and "João da Silva" all normalize to
// "JOAO DA SILVA".
func NormalizePerson(s string) string {
	s = StripAccents(strings.ToUpper(s))
	return collapseWhitespace(s)
}

// collapseWhitespace trims and joins internal whitespace runs with a
// single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeHeader canonicalizes a source header cell for HeaderMap lookup:
// trimmed, whitespace collapsed, uppercased. Accents are kept, the maps
// carry both accented and plain variants.
func normalizeHeader(s string) string {
	return strings.ToUpper(collapseWhitespace(s))
}

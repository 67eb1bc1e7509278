package pofill

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer turns display text into the key used to join spreadsheet names
// with PO msgids. Both sides of the join must use the same Normalizer.
type Normalizer func(string) string

// ErrUnknownNormalizer is returned by NormalizerFor for an unrecognized policy name.
var ErrUnknownNormalizer = errors.New("unknown normalizer")

// Normalization policy names accepted by NormalizerFor.
const (
	PolicyStrict = "strict"
	PolicyMarkup = "markup"
)

var markupTag = regexp.MustCompile(`<[^<>]*>`)

// stripped is the punctuation removed by the strict policy.
var stripped = runes.Predicate(func(r rune) bool {
	switch r {
	case '"', '\'', '“', '”', '‘', '’', ',', '.', '?', '!', ':', ';', '(', ')':
		return true
	}
	return false
})

// Normalize applies the strict policy: markup tags and punctuation are removed,
// surrounding whitespace is trimmed and the result is lowercased.
//
//	Normalize("<Emphasis>Fire Shard</Emphasis>") == "fire shard"
func Normalize(text string) string {
	return normalize(text, true)
}

// NormalizeMarkup only removes markup tags, trims and lowercases. Punctuation is kept.
func NormalizeMarkup(text string) string {
	return normalize(text, false)
}

// NormalizerFor returns the Normalizer registered under name. An empty name
// selects the strict policy.
func NormalizerFor(name string) (Normalizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyStrict:
		return Normalize, nil
	case PolicyMarkup:
		return NormalizeMarkup, nil
	}
	return nil, fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownNormalizer, name, PolicyStrict, PolicyMarkup)
}

func normalize(text string, stripPunct bool) string {
	s := norm.NFC.String(text)
	s = removeMarkup(s)
	if stripPunct {
		s, _, _ = transform.String(runes.Remove(stripped), s)
	}
	s = strings.TrimSpace(s)
	// Casers are stateful, so one is built per call.
	s = cases.Lower(language.Und).String(s)
	return norm.NFC.String(s)
}

// removeMarkup deletes tags until none are left, so "<<b>i>" does not leave "<i>" behind.
func removeMarkup(s string) string {
	for strings.IndexByte(s, '<') >= 0 {
		next := markupTag.ReplaceAllString(s, "")
		if next == s {
			break
		}
		s = next
	}
	return s
}

package wordlist

import (
	"strings"

	"github.com/verte-zerg/morsel/internal/wordfreq"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns a language-specific filter for word lists.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(lang) {
	case "en":
		return filterEnglish
	default:
		return func(string) bool { return true }
	}
}

// Filter keeps the entries accepted by keep, preserving order.
func Filter(entries []wordfreq.Entry, keep FilterFunc) []wordfreq.Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if keep(e.Word) {
			out = append(out, e)
		}
	}
	return out
}

// filterEnglish keeps lowercase ASCII words, allowing inner apostrophes so
// contractions like "don't" reach the table as DONT.
func filterEnglish(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch == '\'' && i > 0 && i < len(word)-1 {
			continue
		}
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}

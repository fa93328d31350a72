// Package textnorm sanitizes raw input before it reaches the codec or the
// search packages.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters strips accents, upper-cases and drops everything outside A-Z.
func Letters(raw string) string {
	return keep(raw, isLetter)
}

// LettersAndDigits is Letters but keeps 0-9 as well.
func LettersAndDigits(raw string) string {
	return keep(raw, func(r rune) bool { return isLetter(r) || isDigit(r) })
}

// Code keeps only dots and dashes.
func Code(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if ch := raw[i]; ch == '.' || ch == '-' {
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// Fold returns the accent-free upper-case form of a single rune, or 0 when
// the rune has no plain Latin base letter or digit.
func Fold(r rune) rune {
	folded := []rune(stripMarks(string(r)))
	if len(folded) != 1 {
		return 0
	}
	up := unicode.ToUpper(folded[0])
	if isLetter(up) || isDigit(up) {
		return up
	}
	return 0
}

func keep(raw string, accept func(rune) bool) string {
	stripped := strings.ToUpper(stripMarks(raw))
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if accept(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isLetter(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

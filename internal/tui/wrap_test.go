package tui

import (
	"strings"
	"testing"
)

func TestBuildStyledRunesFirstGuessPlain(t *testing.T) {
	runes := buildStyledRunes([]string{"HI", "A"}, nil)
	if len(runes) != 4 {
		t.Fatalf("expected 4 runes, got %d", len(runes))
	}
	if runes[0].s != wordStyle.Render("H") {
		t.Fatalf("expected plain style without a previous guess")
	}
	if !runes[2].isSpace || runes[2].s != " " {
		t.Fatalf("expected separator space at index 2")
	}
}

func TestBuildStyledRunesHighlightsChangedWords(t *testing.T) {
	runes := buildStyledRunes([]string{"HELLO", "WORLD"}, []string{"HELLO", "WO", "RLD"})
	if runes[0].s != wordStyle.Render("H") {
		t.Fatalf("expected unchanged word in plain style")
	}
	if runes[6].s != changedWordStyle.Render("W") {
		t.Fatalf("expected new word to be highlighted")
	}
}

func TestBuildStyledRunesCountsRepeats(t *testing.T) {
	runes := buildStyledRunes([]string{"A", "A"}, []string{"A"})
	if runes[0].s != wordStyle.Render("A") {
		t.Fatalf("expected first A to match previous guess")
	}
	if runes[2].s != changedWordStyle.Render("A") {
		t.Fatalf("expected second A to be new")
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	runes := plainRunes("SOS HELP NOW")
	got := wrapStyledRunes(runes, 8)
	if got != "SOS HELP\nNOW" {
		t.Fatalf("unexpected wrap %q", got)
	}
}

func TestWrapStyledRunesBreaksLongWords(t *testing.T) {
	got := wrapStyledRunes(plainRunes("ABCDEFGH"), 3)
	if got != "ABC\nDEF\nGH" {
		t.Fatalf("unexpected wrap %q", got)
	}
	if wrapStyledRunes(plainRunes("AB CD"), 0) != "AB CD" {
		t.Fatalf("expected no wrapping for zero width")
	}
}

func TestFitLines(t *testing.T) {
	got := fitLines("ab\ncdef\ngh", 4, 2)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 || lines[0] != "ab  " || lines[1] != "cdef" {
		t.Fatalf("unexpected fit %q", got)
	}
	if got := fitLines("x", 2, 3); got != "x \n  \n  " {
		t.Fatalf("unexpected padded fit %q", got)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("-.-.-.-.-.", 6); got != "-.-..." {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncateLine("SOS", 0); got != "SOS" {
		t.Fatalf("unexpected truncation %q", got)
	}
}

func plainRunes(s string) []styledRune {
	out := make([]styledRune, 0, len(s))
	for _, r := range s {
		out = append(out, styledRune{s: string(r), width: 1, isSpace: r == ' '})
	}
	return out
}

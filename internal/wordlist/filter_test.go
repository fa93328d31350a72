package wordlist

import (
	"testing"

	"github.com/verte-zerg/morsel/internal/wordfreq"
)

func TestFilterEnglish(t *testing.T) {
	filter := FilterForLang("en")
	for _, word := range []string{"hello", "don't", "a"} {
		if !filter(word) {
			t.Fatalf("expected %q to pass english filter", word)
		}
	}
	for _, word := range []string{"résumé", "naïve", "don’t", "co-op", "'tis", "", "Hello"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestFilterOtherLangKeepsAll(t *testing.T) {
	if !FilterForLang("fr")("élève") {
		t.Fatalf("expected non-english filter to keep accented words")
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	in := []wordfreq.Entry{{Word: "the", Frequency: 0.05}, {Word: "co-op", Frequency: 0.01}, {Word: "it's", Frequency: 0.002}}
	out := Filter(in, FilterForLang("en"))
	if len(out) != 2 || out[0].Word != "the" || out[1].Word != "it's" {
		t.Fatalf("unexpected filter result %+v", out)
	}
	if in[1].Word != "co-op" {
		t.Fatalf("filter modified its input")
	}
}

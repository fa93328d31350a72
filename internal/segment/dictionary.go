// Package segment splits a letter stream into dictionary words and scores
// every split by word frequency.
package segment

import (
	"sort"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/verte-zerg/morsel/internal/textnorm"
)

const prefixFalsePositive = 0.01

// Dictionary is an immutable set of upper-case, letters-only words.
type Dictionary struct {
	words    map[string]struct{}
	prefixes *bloom.BloomFilter
	maxLen   int
}

// NewDictionary normalizes words and collects them into a set. Words that
// normalize to nothing are dropped.
func NewDictionary(words []string) *Dictionary {
	d := &Dictionary{words: make(map[string]struct{}, len(words))}
	prefixCount := 0
	for _, raw := range words {
		word := textnorm.Letters(raw)
		if word == "" {
			continue
		}
		if _, ok := d.words[word]; ok {
			continue
		}
		d.words[word] = struct{}{}
		prefixCount += len(word)
		if len(word) > d.maxLen {
			d.maxLen = len(word)
		}
	}
	if prefixCount == 0 {
		prefixCount = 1
	}
	d.prefixes = bloom.NewWithEstimates(uint(prefixCount), prefixFalsePositive)
	for word := range d.words {
		for i := 1; i <= len(word); i++ {
			d.prefixes.AddString(word[:i])
		}
	}
	return d
}

// Contains reports whether word is in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[word]
	return ok
}

// MayPrefix reports whether some word might start with prefix. A false
// result is exact; a true result may be a false positive.
func (d *Dictionary) MayPrefix(prefix string) bool {
	if prefix == "" {
		return len(d.words) > 0
	}
	if len(prefix) > d.maxLen {
		return false
	}
	return d.prefixes.TestString(prefix)
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// MaxLen returns the length of the longest word.
func (d *Dictionary) MaxLen() int {
	return d.maxLen
}

// Words returns the words in sorted order.
func (d *Dictionary) Words() []string {
	out := make([]string, 0, len(d.words))
	for word := range d.words {
		out = append(out, word)
	}
	sort.Strings(out)
	return out
}

package segment

import (
	"iter"
	"strings"
)

// FrequencyOracle returns the relative frequency of a word in a language.
type FrequencyOracle interface {
	Frequency(word, lang string) float64
}

// OracleFunc adapts a function to FrequencyOracle.
type OracleFunc func(word, lang string) float64

// Frequency implements FrequencyOracle.
func (f OracleFunc) Frequency(word, lang string) float64 {
	return f(word, lang)
}

// Splitter proposes a single word split for a letter stream.
type Splitter interface {
	Split(letters string) []string
}

// Segmentation is a word split and its likelihood.
//
// Likelihood is the product of independent word frequencies. It is not
// normalized for word count and ranks splits heuristically; it is not a
// calibrated probability.
type Segmentation struct {
	Words      []string
	Likelihood float64
}

// Text joins the words with single spaces.
func (s Segmentation) Text() string {
	return strings.Join(s.Words, " ")
}

// Segmenter enumerates dictionary splits of letter streams. It is safe for
// concurrent use.
type Segmenter struct {
	dict   *Dictionary
	oracle FrequencyOracle
	lang   string
	policy Policy
}

// New returns a Segmenter over dict scored by oracle for lang.
func New(dict *Dictionary, oracle FrequencyOracle, lang string, policy Policy) *Segmenter {
	return &Segmenter{dict: dict, oracle: oracle, lang: lang, policy: policy}
}

// Dictionary returns the dictionary the segmenter splits against.
func (s *Segmenter) Dictionary() *Dictionary {
	return s.dict
}

// Lang returns the language tag passed to the oracle.
func (s *Segmenter) Lang() string {
	return s.lang
}

// Accepts reports whether word may appear in a segmentation.
func (s *Segmenter) Accepts(word string) bool {
	return s.policy.Accepts(word) && s.dict.Contains(word)
}

// Frequency queries the oracle for word.
func (s *Segmenter) Frequency(word string) float64 {
	return s.oracle.Frequency(word, s.lang)
}

type cut struct {
	pos        int
	end        int
	likelihood float64
}

// All lazily yields every split of letters into accepted words, shortest
// first word first, depth-first. Empty input yields one empty segmentation
// with likelihood 1.
func (s *Segmenter) All(letters string) iter.Seq[Segmentation] {
	return func(yield func(Segmentation) bool) {
		if letters == "" {
			yield(Segmentation{Likelihood: 1.0})
			return
		}
		var words []string
		stack := []cut{{pos: 0, end: 1, likelihood: 1.0}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.end > len(letters) {
				stack = stack[:len(stack)-1]
				if len(words) > 0 {
					words = words[:len(words)-1]
				}
				continue
			}
			word := letters[top.pos:top.end]
			end := top.end
			top.end++
			if !s.dict.MayPrefix(word) {
				top.end = len(letters) + 1
				continue
			}
			if !s.Accepts(word) {
				continue
			}
			likelihood := top.likelihood * s.Frequency(word)
			if end == len(letters) {
				out := make([]string, len(words), len(words)+1)
				copy(out, words)
				out = append(out, word)
				if !yield(Segmentation{Words: out, Likelihood: likelihood}) {
					return
				}
				continue
			}
			words = append(words, word)
			stack = append(stack, cut{pos: end, end: end + 1, likelihood: likelihood})
		}
	}
}

// Score computes the likelihood of a ready-made split without searching.
func (s *Segmenter) Score(words []string) Segmentation {
	likelihood := 1.0
	for _, w := range words {
		likelihood *= s.Frequency(w)
	}
	return Segmentation{Words: append([]string(nil), words...), Likelihood: likelihood}
}

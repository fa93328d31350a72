package segment

import (
	"math"
)

// unknownLogBase is the log probability floor for a one-letter chunk that is
// not a known word; every extra letter costs another factor of ten.
var unknownLogBase = math.Log(1e-9)

// Viterbi finds the single most probable split of a letter stream, allowing
// unknown chunks at a length-penalized floor probability.
type Viterbi struct {
	seg *Segmenter
}

// NewViterbi returns a Splitter backed by seg's dictionary, policy and
// oracle.
func NewViterbi(seg *Segmenter) *Viterbi {
	return &Viterbi{seg: seg}
}

// Split implements Splitter.
func (v *Viterbi) Split(letters string) []string {
	n := len(letters)
	if n == 0 {
		return nil
	}
	maxChunk := v.seg.dict.MaxLen()
	if maxChunk < 1 {
		maxChunk = 1
	}

	// best[i] = max log probability of letters[:i]; from[i] = start of the last word
	best := make([]float64, n+1)
	from := make([]int, n+1)
	for i := 1; i <= n; i++ {
		best[i] = math.Inf(-1)
	}
	for i := 1; i <= n; i++ {
		start := i - maxChunk
		if start < 0 {
			start = 0
		}
		for j := start; j < i; j++ {
			if math.IsInf(best[j], -1) {
				continue
			}
			score := best[j] + v.chunkLogProb(letters[j:i])
			if score > best[i] {
				best[i] = score
				from[i] = j
			}
		}
	}

	var words []string
	for i := n; i > 0; i = from[i] {
		words = append(words, letters[from[i]:i])
	}
	for l, r := 0, len(words)-1; l < r; l, r = l+1, r-1 {
		words[l], words[r] = words[r], words[l]
	}
	return words
}

func (v *Viterbi) chunkLogProb(chunk string) float64 {
	if v.seg.Accepts(chunk) {
		if freq := v.seg.Frequency(chunk); freq > 0 {
			return math.Log(freq)
		}
	}
	return unknownLogBase - float64(len(chunk)-1)*math.Ln10
}

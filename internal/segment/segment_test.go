package segment

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type freqTable map[string]float64

func (f freqTable) Frequency(word, _ string) float64 {
	return f[strings.ToLower(word)]
}

func newTestSegmenter(freqs freqTable, policy Policy) *Segmenter {
	words := make([]string, 0, len(freqs))
	for w := range freqs {
		words = append(words, w)
	}
	return New(NewDictionary(words), freqs, "en", policy)
}

func collect(s *Segmenter, letters string) []Segmentation {
	var out []Segmentation
	for seg := range s.All(letters) {
		out = append(out, seg)
	}
	return out
}

func texts(segs []Segmentation) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.Text()
	}
	return out
}

func TestAllEmptyInput(t *testing.T) {
	s := newTestSegmenter(freqTable{"hello": 0.1}, DefaultPolicy())
	got := collect(s, "")
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Words)
	assert.Equal(t, 1.0, got[0].Likelihood)
}

func TestAllSingleWord(t *testing.T) {
	freqs := freqTable{"hello": 0.01, "world": 0.02, "low": 0.003}
	s := newTestSegmenter(freqs, DefaultPolicy())
	for word, freq := range freqs {
		upper := strings.ToUpper(word)
		got := collect(s, upper)
		require.Contains(t, texts(got), upper)
		for _, seg := range got {
			if seg.Text() == upper {
				assert.Equal(t, freq, seg.Likelihood)
			}
		}
	}
}

func TestAllHelloWorld(t *testing.T) {
	freqs := freqTable{
		"hello": 1e-4, "world": 2e-4,
		"hell": 2e-5, "low": 5e-5, "or": 1e-3, "ld": 1e-8,
		"he": 1e-3, "llo": 1e-9,
	}
	s := newTestSegmenter(freqs, DefaultPolicy())
	got := collect(s, "HELLOWORLD")
	require.Contains(t, texts(got), "HELLO WORLD")

	best := got[0]
	for _, seg := range got[1:] {
		if seg.Likelihood > best.Likelihood {
			best = seg
		}
	}
	assert.Equal(t, "HELLO WORLD", best.Text())
	assert.InDelta(t, 2e-8, best.Likelihood, 1e-20)
}

func TestAllOrderShortestFirst(t *testing.T) {
	freqs := freqTable{"a": 0.1, "an": 0.05, "n": 0.01, "nt": 0.01, "ant": 0.001, "t": 0.01}
	s := newTestSegmenter(freqs, Policy{Name: PolicyNone, MinWordLen: 1})
	assert.Equal(t, []string{"A N T", "A NT", "AN T", "ANT"}, texts(collect(s, "ANT")))
}

func TestAllSingleLetterPolicy(t *testing.T) {
	freqs := freqTable{"a": 0.02, "i": 0.01, "t": 0.001, "at": 0.004}
	s := newTestSegmenter(freqs, DefaultPolicy())
	assert.Equal(t, []string{"AT"}, texts(collect(s, "AT")))
	assert.Equal(t, []string{"I A"}, texts(collect(s, "IA")))
	assert.Empty(t, collect(s, "TA"))
}

func TestAllNoSegmentation(t *testing.T) {
	s := newTestSegmenter(freqTable{"hello": 0.1}, DefaultPolicy())
	assert.Empty(t, collect(s, "HELLOX"))
	assert.Empty(t, collect(s, "QQQ"))
}

func TestAllEarlyBreak(t *testing.T) {
	s := newTestSegmenter(freqTable{"a": 0.1, "aa": 0.01}, DefaultPolicy())
	n := 0
	for range s.All("AAAAAA") {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

// reference is the plain recursive definition without prefix pruning.
func reference(s *Segmenter, letters string) []Segmentation {
	if letters == "" {
		return []Segmentation{{Likelihood: 1.0}}
	}
	var out []Segmentation
	for i := 1; i <= len(letters); i++ {
		word := letters[:i]
		if !s.Accepts(word) {
			continue
		}
		for _, rest := range reference(s, letters[i:]) {
			out = append(out, Segmentation{
				Words:      append([]string{word}, rest.Words...),
				Likelihood: rest.Likelihood * s.Frequency(word),
			})
		}
	}
	return out
}

func TestAllMatchesReferenceOnRandomDictionaries(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	alphabet := "ABEHILNOST"
	for round := 0; round < 40; round++ {
		freqs := freqTable{}
		for i := 0; i < 30; i++ {
			n := 1 + rnd.Intn(4)
			var b strings.Builder
			for j := 0; j < n; j++ {
				b.WriteByte(alphabet[rnd.Intn(len(alphabet))])
			}
			freqs[strings.ToLower(b.String())] = rnd.Float64()
		}
		s := newTestSegmenter(freqs, DefaultPolicy())

		var b strings.Builder
		for j := 0; j < 8; j++ {
			b.WriteByte(alphabet[rnd.Intn(len(alphabet))])
		}
		letters := b.String()

		got := collect(s, letters)
		want := reference(s, letters)
		require.Equal(t, texts(want), texts(got), "letters %q", letters)
		for i := range got {
			assert.InDelta(t, want[i].Likelihood, got[i].Likelihood, 1e-12)
			assert.LessOrEqual(t, got[i].Likelihood, 1.0)
			for _, w := range got[i].Words {
				assert.LessOrEqual(t, got[i].Likelihood, s.Frequency(w))
			}
		}
	}
}

func TestScore(t *testing.T) {
	s := newTestSegmenter(freqTable{"hello": 0.5, "world": 0.25}, DefaultPolicy())
	got := s.Score([]string{"HELLO", "WORLD"})
	assert.Equal(t, 0.125, got.Likelihood)
	assert.Equal(t, "HELLO WORLD", got.Text())
	assert.Equal(t, 1.0, s.Score(nil).Likelihood)
	assert.Zero(t, s.Score([]string{"XYZZY"}).Likelihood)
}

func TestDictionaryNormalizes(t *testing.T) {
	d := NewDictionary([]string{"don't", "Café", "café", "", "42"})
	assert.Equal(t, 2, d.Len())
	assert.True(t, d.Contains("DONT"))
	assert.True(t, d.Contains("CAFE"))
	assert.True(t, d.MayPrefix("CA"))
	assert.False(t, d.MayPrefix("CAFES"))
	assert.Equal(t, 4, d.MaxLen())
	assert.Equal(t, []string{"CAFE", "DONT"}, d.Words())
}

func TestParsePolicy(t *testing.T) {
	for _, name := range PolicyNames() {
		p, err := ParsePolicy(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name)
	}
	_, err := ParsePolicy("bogus")
	require.Error(t, err)

	strict, err := ParsePolicy(PolicyStrict3)
	require.NoError(t, err)
	assert.True(t, strict.Accepts("THE"))
	assert.False(t, strict.Accepts("ZZZ"))
	assert.True(t, strict.Accepts("HELLO"))
	assert.True(t, slices.Contains(strict.ShortWords(2), "OF"))

	none, err := ParsePolicy(PolicyNone)
	require.NoError(t, err)
	assert.True(t, none.Accepts("T"))

	custom := DefaultPolicy().WithShortWords(1, []string{"o"})
	assert.True(t, custom.Accepts("O"))
	assert.False(t, custom.Accepts("A"))
	assert.True(t, DefaultPolicy().Accepts("A"))

	minLen := Policy{MinWordLen: 3}
	assert.False(t, minLen.Accepts("AB"))
}

func TestViterbiSplit(t *testing.T) {
	freqs := freqTable{
		"hello": 1e-4, "world": 2e-4, "hell": 2e-5, "low": 5e-5,
		"or": 1e-3, "a": 2e-2, "i": 1e-2,
	}
	v := NewViterbi(newTestSegmenter(freqs, DefaultPolicy()))
	assert.Equal(t, []string{"HELLO", "WORLD"}, v.Split("HELLOWORLD"))
	assert.Nil(t, v.Split(""))

	split := v.Split("HELLOXQWORLD")
	assert.Equal(t, "HELLOXQWORLD", strings.Join(split, ""))
	assert.Equal(t, "HELLO", split[0])
	assert.Equal(t, "WORLD", split[len(split)-1])
}

package morse

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(a *Alphabet, code string) []string {
	var out []string
	for letters := range a.Decode(code) {
		out = append(out, letters)
	}
	return out
}

func TestEncodeCaseInsensitive(t *testing.T) {
	a := Standard()
	lower, err := a.Encode('a')
	require.NoError(t, err)
	upper, err := a.Encode('A')
	require.NoError(t, err)
	assert.Equal(t, ".-", lower)
	assert.Equal(t, ".-", upper)

	accented, err := a.Encode('é')
	require.NoError(t, err)
	assert.Equal(t, ".", accented, "é encodes as E")
}

func TestEncodeUnknownSymbol(t *testing.T) {
	for _, r := range []rune{'5', '?', ' ', 'ß'} {
		_, err := Standard().Encode(r)
		require.ErrorIs(t, err, ErrUnknownSymbol, "symbol %q", r)
		var symErr *UnknownSymbolError
		require.True(t, errors.As(err, &symErr), "symbol %q", r)
		assert.Equal(t, r, symErr.Symbol)
	}
	code, err := WithDigits().Encode('5')
	require.NoError(t, err)
	assert.Equal(t, ".....", code)
}

func TestEncodeText(t *testing.T) {
	code, err := Standard().EncodeText("Hello, World!")
	require.NoError(t, err)
	assert.Equal(t, "......-...-..---.-----.-..-..-..", code)
}

func TestRoundTripEveryLetter(t *testing.T) {
	for _, a := range []*Alphabet{Standard(), WithDigits()} {
		for _, e := range a.Entries() {
			code, err := a.Encode(e.Letter)
			require.NoError(t, err)
			assert.Contains(t, collect(a, code), string(e.Letter), "decoding %q", code)
		}
	}
}

func TestDecodeEmpty(t *testing.T) {
	assert.Equal(t, []string{""}, collect(Standard(), ""))
}

func TestDecodeOrder(t *testing.T) {
	assert.Equal(t, []string{"A", "ET"}, collect(Standard(), ".-"))
}

func TestDecodeSequenceFidelity(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	a := Standard()
	for i := 0; i < 50; i++ {
		n := 1 + rnd.Intn(9)
		var b strings.Builder
		for j := 0; j < n; j++ {
			if rnd.Intn(2) == 0 {
				b.WriteByte('.')
			} else {
				b.WriteByte('-')
			}
		}
		code := b.String()
		results := collect(a, code)
		require.Len(t, results, a.Count(code), "code %q", code)
		for _, letters := range results {
			back, err := a.EncodeText(letters)
			require.NoError(t, err)
			assert.Equal(t, code, back, "decoding %q", letters)
		}
	}
}

func TestDecodeIncludesPlainMessage(t *testing.T) {
	a := Standard()
	code, err := a.EncodeText("SOS")
	require.NoError(t, err)
	assert.Contains(t, collect(a, code), "SOS")
	assert.Equal(t, 602102696, a.Count("......-...-..---.-----.-..-..-.."), "HELLOWORLD decodings")
}

func TestDecodeDeadEnds(t *testing.T) {
	partial, err := New([]Entry{{'A', ".-"}, {'B', "-..."}})
	require.NoError(t, err)
	assert.Empty(t, collect(partial, ".--."))
	assert.Empty(t, collect(Standard(), ".-x"), "stray input")
	assert.Zero(t, partial.Count(".--."))
}

func TestDecodeStopsEarly(t *testing.T) {
	seen := 0
	for range Standard().Decode("........") {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestNewRejectsInvalidTables(t *testing.T) {
	cases := [][]Entry{
		nil,
		{{'A', ".-"}, {'B', ".-"}},
		{{'A', ".-"}, {'A', "-"}},
		{{'A', ""}},
		{{'A', ".x"}},
	}
	for _, entries := range cases {
		_, err := New(entries)
		assert.Error(t, err, "entries %v", entries)
	}
}

func TestMatchPrefix(t *testing.T) {
	want := []Match{{'E', 1}, {'I', 2}, {'S', 3}, {'V', 4}}
	assert.Equal(t, want, Standard().MatchPrefix("...-"))
}

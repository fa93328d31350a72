// Package morse maps letters to Morse code and enumerates every letter
// sequence a separator-free code string can stand for.
package morse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/morsel/internal/textnorm"
)

// ErrUnknownSymbol is returned when a character has no code in the alphabet.
var ErrUnknownSymbol = errors.New("unknown symbol")

// UnknownSymbolError reports the character that could not be encoded.
type UnknownSymbolError struct {
	Symbol rune
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownSymbol, e.Symbol)
}

// Unwrap lets errors.Is match ErrUnknownSymbol.
func (e *UnknownSymbolError) Unwrap() error {
	return ErrUnknownSymbol
}

// Entry is one row of the alphabet table.
type Entry struct {
	Letter rune
	Code   string
}

// Match is a letter whose code is a prefix of the remaining input.
type Match struct {
	Letter rune
	Length int
}

// Alphabet is an immutable bidirectional letter/code table. Iteration order
// is the order of the entries it was built from.
type Alphabet struct {
	entries []Entry
	byRune  map[rune]string
	digits  bool
}

var letterEntries = []Entry{
	{'A', ".-"}, {'B', "-..."}, {'C', "-.-."}, {'D', "-.."},
	{'E', "."}, {'F', "..-."}, {'G', "--."}, {'H', "...."},
	{'I', ".."}, {'J', ".---"}, {'K', "-.-"}, {'L', ".-.."},
	{'M', "--"}, {'N', "-."}, {'O', "---"}, {'P', ".--."},
	{'Q', "--.-"}, {'R', ".-."}, {'S', "..."}, {'T', "-"},
	{'U', "..-"}, {'V', "...-"}, {'W', ".--"}, {'X', "-..-"},
	{'Y', "-.--"}, {'Z', "--.."},
}

var digitEntries = []Entry{
	{'0', "-----"}, {'1', ".----"}, {'2', "..---"}, {'3', "...--"},
	{'4', "....-"}, {'5', "....."}, {'6', "-...."}, {'7', "--..."},
	{'8', "---.."}, {'9', "----."},
}

var (
	standard   = mustNew(letterEntries)
	withDigits = mustNew(append(append([]Entry(nil), letterEntries...), digitEntries...))
)

// Standard returns the A-Z alphabet.
func Standard() *Alphabet {
	return standard
}

// WithDigits returns A-Z followed by 0-9.
func WithDigits() *Alphabet {
	return withDigits
}

// New builds an alphabet from entries. Letters and codes must both be unique
// and codes may contain only dots and dashes.
func New(entries []Entry) (*Alphabet, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("alphabet has no entries")
	}
	a := &Alphabet{
		entries: make([]Entry, 0, len(entries)),
		byRune:  make(map[rune]string, len(entries)),
	}
	codes := make(map[string]rune, len(entries))
	for _, e := range entries {
		if e.Code == "" || textnorm.Code(e.Code) != e.Code {
			return nil, fmt.Errorf("invalid code %q for %q", e.Code, e.Letter)
		}
		if _, ok := a.byRune[e.Letter]; ok {
			return nil, fmt.Errorf("duplicate letter %q", e.Letter)
		}
		if prev, ok := codes[e.Code]; ok {
			return nil, fmt.Errorf("code %q used by both %q and %q", e.Code, prev, e.Letter)
		}
		codes[e.Code] = e.Letter
		a.byRune[e.Letter] = e.Code
		a.entries = append(a.entries, e)
		if e.Letter >= '0' && e.Letter <= '9' {
			a.digits = true
		}
	}
	return a, nil
}

func mustNew(entries []Entry) *Alphabet {
	a, err := New(entries)
	if err != nil {
		panic(err)
	}
	return a
}

// Entries returns a copy of the table in iteration order.
func (a *Alphabet) Entries() []Entry {
	return append([]Entry(nil), a.entries...)
}

// Encode returns the code for a single letter. Case and accents are ignored.
func (a *Alphabet) Encode(letter rune) (string, error) {
	folded := textnorm.Fold(letter)
	if folded == 0 {
		return "", &UnknownSymbolError{Symbol: letter}
	}
	code, ok := a.byRune[folded]
	if !ok {
		return "", &UnknownSymbolError{Symbol: letter}
	}
	return code, nil
}

// EncodeText sanitizes text and concatenates the code of every remaining
// letter without separators.
func (a *Alphabet) EncodeText(text string) (string, error) {
	clean := textnorm.Letters(text)
	if a.digits {
		clean = textnorm.LettersAndDigits(text)
	}
	var b strings.Builder
	for _, r := range clean {
		code, err := a.Encode(r)
		if err != nil {
			return "", err
		}
		b.WriteString(code)
	}
	return b.String(), nil
}

// MatchPrefix returns every entry whose code is a prefix of tail, in
// alphabet order.
func (a *Alphabet) MatchPrefix(tail string) []Match {
	var out []Match
	for _, e := range a.entries {
		if strings.HasPrefix(tail, e.Code) {
			out = append(out, Match{Letter: e.Letter, Length: len(e.Code)})
		}
	}
	return out
}

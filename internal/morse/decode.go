package morse

import (
	"iter"
	"math"
)

type frame struct {
	pos     int
	matches []Match
	next    int
}

// Decode lazily yields every letter sequence that consumes code exactly.
// Order is depth-first in alphabet order; the empty code yields one empty
// sequence and a code with no complete decoding yields nothing. Input is not
// validated: stray characters simply never match.
func (a *Alphabet) Decode(code string) iter.Seq[string] {
	return func(yield func(string) bool) {
		letters := make([]rune, 0, len(code))
		stack := []frame{{pos: 0, matches: a.MatchPrefix(code)}}
		if len(code) == 0 {
			yield("")
			return
		}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next >= len(top.matches) {
				stack = stack[:len(stack)-1]
				if len(letters) > 0 {
					letters = letters[:len(letters)-1]
				}
				continue
			}
			m := top.matches[top.next]
			top.next++
			pos := top.pos + m.Length
			letters = append(letters, m.Letter)
			if pos == len(code) {
				if !yield(string(letters)) {
					return
				}
				letters = letters[:len(letters)-1]
				continue
			}
			stack = append(stack, frame{pos: pos, matches: a.MatchPrefix(code[pos:])})
		}
	}
}

// Count returns how many sequences Decode would yield, without enumerating
// them. The count saturates at math.MaxInt.
func (a *Alphabet) Count(code string) int {
	ways := make([]int, len(code)+1)
	ways[len(code)] = 1
	for pos := len(code) - 1; pos >= 0; pos-- {
		for _, m := range a.MatchPrefix(code[pos:]) {
			add := ways[pos+m.Length]
			if ways[pos] > math.MaxInt-add {
				ways[pos] = math.MaxInt
				continue
			}
			ways[pos] += add
		}
	}
	return ways[0]
}

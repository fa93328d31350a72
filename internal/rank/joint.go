package rank

import (
	"context"
	"strings"

	"github.com/verte-zerg/morsel/internal/morse"
	"github.com/verte-zerg/morsel/internal/segment"
)

type edge struct {
	word string
	end  int
	freq float64
}

// lattice[p] lists the accepted words whose code starts at code position p
// and from whose end the rest of the code can still be split.
type lattice [][]edge

type letterFrame struct {
	pos     int
	matches []morse.Match
	next    int
}

func buildLattice(ctx context.Context, a *morse.Alphabet, seg *segment.Segmenter, code string) (lattice, error) {
	n := len(code)
	lat := make(lattice, n+1)
	dict := seg.Dictionary()
	for start := 0; start < n; start++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var word []rune
		stack := []letterFrame{{pos: start, matches: a.MatchPrefix(code[start:])}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next >= len(top.matches) {
				stack = stack[:len(stack)-1]
				if len(word) > 0 {
					word = word[:len(word)-1]
				}
				continue
			}
			m := top.matches[top.next]
			top.next++
			candidate := string(append(word, m.Letter))
			if !dict.MayPrefix(candidate) {
				continue
			}
			pos := top.pos + m.Length
			if seg.Accepts(candidate) {
				lat[start] = append(lat[start], edge{word: candidate, end: pos, freq: seg.Frequency(candidate)})
			}
			if pos < n {
				word = append(word, m.Letter)
				stack = append(stack, letterFrame{pos: pos, matches: a.MatchPrefix(code[pos:])})
			}
		}
	}

	reachable := make([]bool, n+1)
	reachable[n] = true
	for p := n - 1; p >= 0; p-- {
		kept := lat[p][:0]
		for _, e := range lat[p] {
			if reachable[e.end] {
				kept = append(kept, e)
			}
		}
		lat[p] = kept
		reachable[p] = len(kept) > 0
	}
	return lat, nil
}

type pathFrame struct {
	pos        int
	next       int
	likelihood float64
}

// runJoint enumerates lattice paths depth-first. Every path is a distinct
// (decoding, segmentation) pair, so it counts as both a candidate and a
// scored segmentation. Paths arrive in a different order than dictionary
// mode visits them, so ties are settled by decodeOrder rather than by
// path index.
func (r *Ranker) runJoint(ctx context.Context, code string, t *tracker) (int64, int64, error) {
	if code == "" {
		t.offer(Candidate{Segmentation: segment.Segmentation{Likelihood: 1.0}})
		return 1, 1, nil
	}
	lat, err := buildLattice(ctx, r.Alphabet, r.Segmenter, code)
	if err != nil {
		return 0, 0, err
	}

	var paths int64
	var words []string
	stack := []pathFrame{{pos: 0, likelihood: 1.0}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		edges := lat[top.pos]
		if top.next >= len(edges) {
			stack = stack[:len(stack)-1]
			if len(words) > 0 {
				words = words[:len(words)-1]
			}
			continue
		}
		e := edges[top.next]
		top.next++
		likelihood := top.likelihood * e.freq
		if e.end < len(code) {
			words = append(words, e.word)
			stack = append(stack, pathFrame{pos: e.end, likelihood: likelihood})
			continue
		}
		if paths%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return paths, paths, err
			}
		}
		out := make([]string, len(words), len(words)+1)
		copy(out, words)
		out = append(out, e.word)
		letters := strings.Join(out, "")
		if r.OnCandidate != nil {
			r.OnCandidate(letters)
		}
		t.offer(Candidate{
			Letters:      letters,
			Segmentation: segment.Segmentation{Words: out, Likelihood: likelihood},
			Index:        int(paths),
		})
		paths++
	}
	return paths, paths, nil
}

// decodeOrder reports whether a comes before b in dictionary-mode order.
// Decode visits letter sequences of one code by the alphabet position of
// their first differing letter, and All visits splits of one sequence by
// the length of their first differing word, shortest first.
func decodeOrder(a *morse.Alphabet) func(x, y Candidate) bool {
	rankOf := make(map[rune]int)
	for i, e := range a.Entries() {
		rankOf[e.Letter] = i
	}
	return func(x, y Candidate) bool {
		if x.Letters != y.Letters {
			xr, yr := []rune(x.Letters), []rune(y.Letters)
			for i := 0; i < len(xr) && i < len(yr); i++ {
				if xr[i] != yr[i] {
					return rankOf[xr[i]] < rankOf[yr[i]]
				}
			}
			return len(xr) < len(yr)
		}
		xw, yw := x.Segmentation.Words, y.Segmentation.Words
		for i := 0; i < len(xw) && i < len(yw); i++ {
			if len(xw[i]) != len(yw[i]) {
				return len(xw[i]) < len(yw[i])
			}
		}
		return len(xw) < len(yw)
	}
}

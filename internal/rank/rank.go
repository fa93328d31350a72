// Package rank drives decoding and segmentation together and keeps the most
// likely result.
package rank

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/morsel/internal/morse"
	"github.com/verte-zerg/morsel/internal/segment"
	"github.com/verte-zerg/morsel/internal/textnorm"
)

var (
	// ErrNoDecoding means the code has no complete letter decoding.
	ErrNoDecoding = errors.New("no valid decoding")
	// ErrNoSegmentation means no decoding splits into dictionary words.
	ErrNoSegmentation = errors.New("no valid segmentation")
)

// ctxCheckEvery bounds how many segmentations are scored between context
// checks.
const ctxCheckEvery = 256

// Mode selects how decoded letter sequences are segmented.
type Mode int

const (
	// ModeDictionary enumerates every dictionary split of every decoding.
	ModeDictionary Mode = iota
	// ModeSplitter scores the single split proposed by a Splitter.
	ModeSplitter
	// ModeJoint walks a word lattice built directly from the code, so only
	// decodings that split into dictionary words are visited. Ties resolve
	// to the same candidate ModeDictionary keeps.
	ModeJoint
)

// ParseMode maps a segmenter name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "dictionary", "dict":
		return ModeDictionary, nil
	case "splitter", "viterbi":
		return ModeSplitter, nil
	case "joint", "lattice":
		return ModeJoint, nil
	default:
		return 0, fmt.Errorf("unknown segmenter %q (available: dictionary, viterbi, joint)", name)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeDictionary:
		return "dictionary"
	case ModeSplitter:
		return "viterbi"
	case ModeJoint:
		return "joint"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Outcome classifies a finished run.
type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeNoDecoding
	OutcomeNoSegmentation
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNoDecoding:
		return "no-decoding"
	case OutcomeNoSegmentation:
		return "no-segmentation"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Candidate is one scored (decoding, segmentation) pair. Index is the
// position of the decoding in decoder order and Sub the position of the
// segmentation within that decoding; together they order ties.
type Candidate struct {
	Letters      string
	Segmentation segment.Segmentation
	Index        int
	Sub          int
}

// Result is the outcome of a Run.
type Result struct {
	Best       Candidate
	Outcome    Outcome
	Candidates int
	Scored     int
}

// Err maps empty-result outcomes to sentinel errors.
func (r Result) Err() error {
	switch r.Outcome {
	case OutcomeNoDecoding:
		return ErrNoDecoding
	case OutcomeNoSegmentation:
		return ErrNoSegmentation
	default:
		return nil
	}
}

// Ranker searches for the most likely message behind a code string.
type Ranker struct {
	Alphabet  *morse.Alphabet
	Segmenter *segment.Segmenter
	// Splitter is required for ModeSplitter.
	Splitter segment.Splitter
	Mode     Mode
	// Workers > 1 segments decodings concurrently. Results are identical to
	// a sequential run. Values above MaxWorkers are clamped.
	Workers int
	// OnCandidate is called for every decoded letter sequence; in ModeJoint,
	// for the letters of every complete lattice path.
	OnCandidate func(letters string)
	// OnImprove is called whenever the best candidate changes.
	OnImprove func(Candidate)
}

// MaxWorkers is the largest worker count a Ranker will start.
func MaxWorkers() int {
	return runtime.GOMAXPROCS(0) * 4
}

// Run decodes code (stray characters are dropped) and returns the best
// candidate. The first scored segmentation becomes the best; later ones
// replace it only with a strictly greater likelihood. When ctx ends the
// partial result is returned with ctx.Err().
func (r *Ranker) Run(ctx context.Context, code string) (Result, error) {
	if r.Alphabet == nil || r.Segmenter == nil {
		return Result{}, fmt.Errorf("ranker needs an alphabet and a segmenter")
	}
	if r.Mode == ModeSplitter && r.Splitter == nil {
		return Result{}, fmt.Errorf("ranker mode %s needs a splitter", r.Mode)
	}
	code = textnorm.Code(code)

	t := &tracker{onImprove: r.OnImprove}
	if r.Mode == ModeJoint {
		t.before = decodeOrder(r.Alphabet)
	}
	var candidates, scored int64
	var err error
	switch {
	case r.Mode == ModeJoint:
		candidates, scored, err = r.runJoint(ctx, code, t)
	case r.Workers > 1:
		candidates, scored, err = r.runParallel(ctx, code, t)
	default:
		candidates, scored, err = r.runSequential(ctx, code, t)
	}

	res := Result{Candidates: int(candidates), Scored: int(scored)}
	best, found := t.snapshot()
	switch {
	case found:
		res.Best = best
		res.Outcome = OutcomeFound
	case r.Mode == ModeJoint:
		res.Outcome = OutcomeNoDecoding
		if r.Alphabet.Count(code) > 0 {
			res.Outcome = OutcomeNoSegmentation
		}
	case candidates == 0:
		res.Outcome = OutcomeNoDecoding
	default:
		res.Outcome = OutcomeNoSegmentation
	}
	return res, err
}

func (r *Ranker) runSequential(ctx context.Context, code string, t *tracker) (int64, int64, error) {
	var candidates, scored int64
	for letters := range r.Alphabet.Decode(code) {
		if err := ctx.Err(); err != nil {
			return candidates, scored, err
		}
		idx := int(candidates)
		candidates++
		if r.OnCandidate != nil {
			r.OnCandidate(letters)
		}
		n, err := r.score(ctx, idx, letters, t)
		scored += n
		if err != nil {
			return candidates, scored, err
		}
	}
	return candidates, scored, nil
}

type job struct {
	idx     int
	letters string
}

func (r *Ranker) runParallel(ctx context.Context, code string, t *tracker) (int64, int64, error) {
	workers := min(r.Workers, MaxWorkers())
	var candidates, scored atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job, workers*4)

	g.Go(func() error {
		defer close(jobs)
		idx := 0
		for letters := range r.Alphabet.Decode(code) {
			if r.OnCandidate != nil {
				r.OnCandidate(letters)
			}
			select {
			case jobs <- job{idx: idx, letters: letters}:
				candidates.Add(1)
				idx++
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for j := range jobs {
				n, err := r.score(gctx, j.idx, j.letters, t)
				scored.Add(n)
				if err != nil {
					return err
				}
			}
			return nil
		})
	}
	err := g.Wait()
	if cerr := ctx.Err(); cerr != nil {
		err = cerr
	}
	return candidates.Load(), scored.Load(), err
}

func (r *Ranker) score(ctx context.Context, idx int, letters string, t *tracker) (int64, error) {
	if r.Mode == ModeSplitter {
		seg := r.Segmenter.Score(r.Splitter.Split(letters))
		t.offer(Candidate{Letters: letters, Segmentation: seg, Index: idx})
		return 1, nil
	}
	var n int64
	for seg := range r.Segmenter.All(letters) {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
		t.offer(Candidate{Letters: letters, Segmentation: seg, Index: idx, Sub: int(n)})
		n++
	}
	return n, nil
}

// tracker holds the best candidate. Ties go to the lower (Index, Sub), which
// is what a sequential scan finds first, so concurrent offers still agree
// with sequential ones. When before is set it orders ties instead.
type tracker struct {
	mu        sync.Mutex
	best      Candidate
	found     bool
	before    func(a, b Candidate) bool
	onImprove func(Candidate)
}

func (t *tracker) offer(c Candidate) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.found && !t.better(c, t.best) {
		return
	}
	t.best = c
	t.found = true
	if t.onImprove != nil {
		t.onImprove(c)
	}
}

func (t *tracker) snapshot() (Candidate, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.best, t.found
}

func (t *tracker) better(a, b Candidate) bool {
	if a.Segmentation.Likelihood != b.Segmentation.Likelihood {
		return a.Segmentation.Likelihood > b.Segmentation.Likelihood
	}
	if t.before != nil {
		return t.before(a, b)
	}
	if a.Index != b.Index {
		return a.Index < b.Index
	}
	return a.Sub < b.Sub
}

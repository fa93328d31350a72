// Package bench measures how often the ranker recovers known phrases.
package bench

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/morsel/internal/rank"
	"github.com/verte-zerg/morsel/internal/textnorm"
)

// OutcomeTimeout marks a case whose decode hit its deadline.
const OutcomeTimeout = "timeout"

// Case is one encoded phrase and what the ranker made of it.
type Case struct {
	Phrase     string
	Code       string
	Got        string
	Outcome    string
	Candidates int
	Scored     int
	Duration   time.Duration
}

// Recovered reports whether the best guess spells the phrase word for word.
func (c Case) Recovered() bool {
	return c.Got == c.Phrase
}

// Report collects bench cases.
type Report struct {
	Cases []Case
}

// RecoveryRate is the fraction of recovered cases.
func (r Report) RecoveryRate() float64 {
	if len(r.Cases) == 0 {
		return 0
	}
	n := 0
	for _, c := range r.Cases {
		if c.Recovered() {
			n++
		}
	}
	return float64(n) / float64(len(r.Cases))
}

// Total sums case durations.
func (r Report) Total() time.Duration {
	var total time.Duration
	for _, c := range r.Cases {
		total += c.Duration
	}
	return total
}

// Run encodes each phrase, then decodes it with ranker under timeout per
// case. A timed-out case keeps its partial best guess. Run stops early only
// when ctx itself ends.
func Run(ctx context.Context, ranker *rank.Ranker, phrases [][]string, timeout time.Duration) (Report, error) {
	var report Report
	for _, words := range phrases {
		normalized := make([]string, 0, len(words))
		for _, w := range words {
			if n := textnorm.Letters(w); n != "" {
				normalized = append(normalized, n)
			}
		}
		phrase := strings.Join(normalized, " ")
		code, err := ranker.Alphabet.EncodeText(phrase)
		if err != nil {
			return report, fmt.Errorf("encode %q: %w", phrase, err)
		}

		caseCtx, cancel := ctx, context.CancelFunc(func() {})
		if timeout > 0 {
			caseCtx, cancel = context.WithTimeout(ctx, timeout)
		}
		start := time.Now()
		res, err := ranker.Run(caseCtx, code)
		elapsed := time.Since(start)
		cancel()

		c := Case{
			Phrase:     phrase,
			Code:       code,
			Got:        res.Best.Segmentation.Text(),
			Outcome:    res.Outcome.String(),
			Candidates: res.Candidates,
			Scored:     res.Scored,
			Duration:   elapsed,
		}
		switch {
		case err == nil:
		case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
			c.Outcome = OutcomeTimeout
		default:
			report.Cases = append(report.Cases, c)
			return report, err
		}
		report.Cases = append(report.Cases, c)
	}
	return report, nil
}

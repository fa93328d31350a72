// Package generator builds random phrases for decoder benchmarks.
package generator

import (
	"math/rand"
	"sort"
	"time"
)

// Generator produces randomized phrases.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed, so phrases repeat.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate selects count words uniformly.
func (g *Generator) Generate(words []string, count int) []string {
	if len(words) == 0 {
		return nil
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, words[g.rnd.Intn(len(words))])
	}
	return result
}

// GenerateWeighted selects count words with probability proportional to
// weights. Non-positive weights are never picked; when no weight is
// positive it falls back to uniform selection.
func (g *Generator) GenerateWeighted(words []string, weights []float64, count int) []string {
	if len(words) == 0 {
		return nil
	}
	cumulative := make([]float64, len(words))
	total := 0.0
	for i := range words {
		if i < len(weights) && weights[i] > 0 {
			total += weights[i]
		}
		cumulative[i] = total
	}
	if total <= 0 {
		return g.Generate(words, count)
	}

	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		r := g.rnd.Float64() * total
		idx := sort.Search(len(cumulative), func(j int) bool { return cumulative[j] > r })
		if idx == len(cumulative) {
			idx = len(cumulative) - 1
		}
		result = append(result, words[idx])
	}
	return result
}

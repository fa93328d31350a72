package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/morsel/internal/bench"
	"github.com/verte-zerg/morsel/internal/generator"
	"github.com/verte-zerg/morsel/internal/report"
	"github.com/verte-zerg/morsel/internal/wordlist"
)

const (
	defaultBenchCases   = 20
	defaultBenchWords   = 2
	defaultBenchTop     = 2000
	defaultBenchTimeout = 5 * time.Second
)

var (
	benchCases       int
	benchWords       int
	benchTop         int
	benchSeed        int64
	benchCaseTimeout time.Duration
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Encode random phrases and measure how many decode back",
		Args:  cobra.NoArgs,
		RunE:  runBenchCmd,
	}
	addDecodeFlags(cmd)
	cmd.Flags().IntVar(&benchCases, "cases", defaultBenchCases, "number of phrases")
	cmd.Flags().IntVar(&benchWords, "words", defaultBenchWords, "words per phrase")
	cmd.Flags().IntVar(&benchTop, "top", defaultBenchTop, "sample from the N most frequent words")
	cmd.Flags().Int64Var(&benchSeed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().DurationVar(&benchCaseTimeout, "case-timeout", defaultBenchTimeout, "time limit per phrase")
	return cmd
}

func runBenchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadDecodeConfig(cmd)
	if err != nil {
		return err
	}
	if benchCases <= 0 {
		return fmt.Errorf("--cases must be > 0")
	}
	if benchWords <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if benchTop <= 0 {
		return fmt.Errorf("--top must be > 0")
	}
	ranker, table, err := buildRanker(cfg)
	if err != nil {
		return err
	}

	words, weights := benchVocabulary(table, ranker.Segmenter.Accepts, benchTop)
	if len(words) == 0 {
		return fmt.Errorf("no words in the %s table pass the %s policy", cfg.Lang, cfg.Policy)
	}
	gen := generator.New()
	if benchSeed != 0 {
		gen = generator.NewSeeded(benchSeed)
	}
	phrases := make([][]string, benchCases)
	for i := range phrases {
		phrases[i] = gen.GenerateWeighted(words, weights, benchWords)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logErrf("Decoding %d phrases of %d words (%s)...\n", benchCases, benchWords, ranker.Mode)
	rep, runErr := bench.Run(ctx, ranker, phrases, benchCaseTimeout)
	if err := report.RenderBench(cmd.OutOrStdout(), rep, terminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if runErr != nil {
		return fmt.Errorf("bench stopped: %w", runErr)
	}
	return nil
}

// benchVocabulary returns up to top accepted words by descending frequency,
// with their frequencies as sampling weights.
func benchVocabulary(table *wordlist.Table, accepts func(string) bool, top int) ([]string, []float64) {
	lang := table.Lang()
	all := table.Words()
	words := make([]string, 0, len(all))
	for _, w := range all {
		if accepts(w) {
			words = append(words, w)
		}
	}
	sort.SliceStable(words, func(i, j int) bool {
		return table.Frequency(words[i], lang) > table.Frequency(words[j], lang)
	})
	if len(words) > top {
		words = words[:top]
	}
	weights := make([]float64, len(words))
	for i, w := range words {
		weights[i] = table.Frequency(w, lang)
	}
	return words, weights
}

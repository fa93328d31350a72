// Package main provides the CLI entrypoint for morsel.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/morsel/internal/config"
	"github.com/verte-zerg/morsel/internal/model"
	"github.com/verte-zerg/morsel/internal/morse"
	"github.com/verte-zerg/morsel/internal/places"
	"github.com/verte-zerg/morsel/internal/rank"
	"github.com/verte-zerg/morsel/internal/report"
	"github.com/verte-zerg/morsel/internal/segment"
	"github.com/verte-zerg/morsel/internal/store"
	"github.com/verte-zerg/morsel/internal/textnorm"
	"github.com/verte-zerg/morsel/internal/tui"
	"github.com/verte-zerg/morsel/internal/wordlist"
)

const (
	defaultLang       = "en"
	defaultSegmenter  = "dictionary"
	defaultMinWordLen = 1
	defaultWorkers    = 1
	defaultWidth      = 80
)

var (
	decodeLang       string
	decodeSegmenter  string
	decodePolicy     string
	decodeMinWordLen int
	decodeDigits     bool
	decodeWorkers    int
	decodeTimeout    time.Duration

	decodeVerbose   bool
	decodeTUI       bool
	decodeNoHistory bool
)

var (
	guessStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	likelihoodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	candidateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "morsel [code]",
		Short:         "Decode Morse code sent without letter or word gaps",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDecodeCmd,
	}
	addDecodeFlags(rootCmd)
	addOutputFlags(rootCmd)

	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newReparseCmd())
	rootCmd.AddCommand(newCollisionsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newWordlistCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newBenchCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

func addDecodeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&decodeLang, "lang", defaultLang, "language code (default: en)")
	cmd.Flags().StringVar(&decodeSegmenter, "segmenter", defaultSegmenter, "segmenter: dictionary, viterbi or joint")
	cmd.Flags().StringVar(&decodePolicy, "policy", segment.PolicyDefault, "short-word policy: "+strings.Join(segment.PolicyNames(), ", "))
	cmd.Flags().IntVar(&decodeMinWordLen, "min-word-len", defaultMinWordLen, "shortest word a segmentation may use")
	cmd.Flags().BoolVar(&decodeDigits, "digits", false, "include digits 0-9 in the alphabet")
	cmd.Flags().IntVar(&decodeWorkers, "workers", defaultWorkers, "concurrent segmentation workers")
	cmd.Flags().DurationVar(&decodeTimeout, "timeout", 0, "stop searching after this long (0 = no limit)")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&decodeVerbose, "verbose", "v", false, "print every decoded letter sequence")
	cmd.Flags().BoolVar(&decodeTUI, "tui", false, "show a live view while searching")
	cmd.Flags().BoolVar(&decodeNoHistory, "no-history", false, "do not record this run")
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [code]",
		Short: "Decode a code string (reads stdin when no argument is given)",
		RunE:  runDecodeCmd,
	}
	addDecodeFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

func runDecodeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadDecodeConfig(cmd)
	if err != nil {
		return err
	}
	code, err := readCode(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	return decodeAndReport(cmd, cfg, code)
}

func newReparseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reparse <text>",
		Short: "Encode text, then decode the code back",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runReparseCmd,
	}
	addDecodeFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

func runReparseCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadDecodeConfig(cmd)
	if err != nil {
		return err
	}
	code, err := alphabetFor(cfg).EncodeText(strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("failed to encode text: %w", err)
	}
	logErrf("Code: %s\n", code)
	return decodeAndReport(cmd, cfg, code)
}

func decodeAndReport(cmd *cobra.Command, cfg model.DecodeConfig, code string) error {
	if textnorm.Code(code) == "" {
		return fmt.Errorf("code contains no dots or dashes")
	}
	ranker, _, err := buildRanker(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	started := time.Now()
	var (
		res     rank.Result
		elapsed time.Duration
		runErr  error
	)
	out := cmd.OutOrStdout()
	if decodeTUI {
		m := tui.NewDecodeModel(ctx, *ranker, code)
		program := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		res, elapsed, runErr = m.Result()
	} else {
		ranker.OnImprove = func(c rank.Candidate) {
			if _, err := fmt.Fprintf(out, "%s %s\n",
				likelihoodStyle.Render(fmt.Sprintf("%.3e", c.Segmentation.Likelihood)),
				guessStyle.Render(c.Segmentation.Text())); err != nil {
				_ = err
			}
		}
		if decodeVerbose {
			ranker.OnCandidate = func(letters string) {
				logErrln(candidateStyle.Render(letters))
			}
		}
		res, runErr = ranker.Run(ctx, code)
		elapsed = time.Since(started)
	}

	interrupted := errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded)
	if runErr != nil && !interrupted {
		return fmt.Errorf("decode failed: %w", runErr)
	}
	if interrupted {
		logErrf("Search stopped early: %v\n", runErr)
	}
	if err := report.RenderDecode(out, res, elapsed); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if cfg.History {
		recordRun(cfg, ranker.Mode, code, res, started, elapsed, interrupted)
	}
	if interrupted {
		return nil
	}
	return res.Err()
}

func recordRun(cfg model.DecodeConfig, mode rank.Mode, code string, res rank.Result, started time.Time, elapsed time.Duration, interrupted bool) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open db: %v\n", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	run := model.Run{
		StartedAt:  started,
		EndedAt:    started.Add(elapsed),
		Code:       textnorm.Code(code),
		Mode:       mode.String(),
		Lang:       cfg.Lang,
		Outcome:    res.Outcome.String(),
		Candidates: res.Candidates,
		Scored:     res.Scored,
		DurationMs: elapsed.Milliseconds(),
	}
	if res.Outcome == rank.OutcomeFound {
		run.Best = res.Best.Segmentation.Text()
		run.Letters = res.Best.Letters
		run.Likelihood = res.Best.Segmentation.Likelihood
	}
	if interrupted {
		run.Outcome = "cancelled"
	}
	if _, err := st.InsertRun(context.Background(), run); err != nil {
		logErrf("failed to save run: %v\n", err)
	}
}

func readCode(in io.Reader, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read code from stdin: %w", err)
	}
	return string(data), nil
}

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <text>",
		Short: "Encode text as Morse code without gaps",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runEncodeCmd,
	}
	cmd.Flags().BoolVar(&decodeDigits, "digits", false, "include digits 0-9 in the alphabet")
	return cmd
}

func runEncodeCmd(cmd *cobra.Command, args []string) error {
	alphabet := morse.Standard()
	if decodeDigits {
		alphabet = morse.WithDigits()
	}
	code, err := alphabet.EncodeText(strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("failed to encode text: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), code); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newCollisionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collisions",
		Short: "List place names that share a gapless Morse encoding",
		Args:  cobra.NoArgs,
		RunE:  runCollisionsCmd,
	}
}

func runCollisionsCmd(cmd *cobra.Command, _ []string) error {
	collisions := places.FindCollisions(places.All(), morse.Standard())
	if err := report.RenderCollisions(cmd.OutOrStdout(), collisions, terminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List downloaded word table languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	langs, err := listTableLangs(config.DefaultWordTableDir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logErrf("No word tables found. Download with: morsel wordlist --lang <code>\n")
			return fmt.Errorf("word table directory does not exist")
		}
		return err
	}
	if len(langs) == 0 {
		logErrf("No word tables found. Download with: morsel wordlist --lang <code>\n")
		return fmt.Errorf("no word tables found")
	}
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func listTableLangs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read word table directory: %w", err)
	}
	langs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if lang, ok := config.TableLang(entry.Name()); ok {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	return langs, nil
}

// loadDecodeConfig merges the config file into the decode flags; flags the
// user set explicitly win.
func loadDecodeConfig(cmd *cobra.Command) (model.DecodeConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.DecodeConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &decodeLang, fileCfg.Decode.Lang)
	applyStringConfig(cmd, "segmenter", &decodeSegmenter, fileCfg.Decode.Segmenter)
	applyStringConfig(cmd, "policy", &decodePolicy, fileCfg.Decode.Policy)
	applyIntConfig(cmd, "min-word-len", &decodeMinWordLen, fileCfg.Decode.MinWordLen)
	applyBoolConfig(cmd, "digits", &decodeDigits, fileCfg.Decode.Digits)
	applyIntConfig(cmd, "workers", &decodeWorkers, fileCfg.Decode.Workers)
	if err := applyDurationConfig(cmd, "timeout", &decodeTimeout, fileCfg.Decode.Timeout); err != nil {
		return model.DecodeConfig{}, err
	}

	history := true
	if fileCfg.Decode.History != nil {
		history = *fileCfg.Decode.History
	}
	if cmd.Flags().Changed("no-history") {
		history = !decodeNoHistory
	}

	cfg := model.DecodeConfig{
		Lang:       strings.ToLower(strings.TrimSpace(decodeLang)),
		Segmenter:  decodeSegmenter,
		Policy:     decodePolicy,
		MinWordLen: decodeMinWordLen,
		Digits:     decodeDigits,
		Workers:    decodeWorkers,
		Timeout:    decodeTimeout,
		History:    history,
	}
	if err := validateConfig(cfg); err != nil {
		return model.DecodeConfig{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.DecodeConfig) error {
	if cfg.Lang == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	if _, err := rank.ParseMode(cfg.Segmenter); err != nil {
		return fmt.Errorf("--segmenter: %w", err)
	}
	if _, err := segment.ParsePolicy(cfg.Policy); err != nil {
		return fmt.Errorf("--policy: %w", err)
	}
	if cfg.MinWordLen < 1 {
		return fmt.Errorf("--min-word-len must be >= 1")
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("--workers must be >= 1")
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("--timeout must be >= 0")
	}
	return nil
}

func alphabetFor(cfg model.DecodeConfig) *morse.Alphabet {
	if cfg.Digits {
		return morse.WithDigits()
	}
	return morse.Standard()
}

// buildRanker loads the word table for cfg.Lang and wires the search.
func buildRanker(cfg model.DecodeConfig) (*rank.Ranker, *wordlist.Table, error) {
	path := config.DefaultWordTablePath(cfg.Lang)
	table, err := wordlist.LoadTable(path, cfg.Lang)
	if err != nil {
		return nil, nil, wordTableLoadError(cfg.Lang, path, err)
	}
	policy, err := segment.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, nil, err
	}
	policy.MinWordLen = cfg.MinWordLen
	mode, err := rank.ParseMode(cfg.Segmenter)
	if err != nil {
		return nil, nil, err
	}

	seg := segment.New(segment.NewDictionary(table.Words()), table, cfg.Lang, policy)
	ranker := &rank.Ranker{
		Alphabet:  alphabetFor(cfg),
		Segmenter: seg,
		Splitter:  segment.NewViterbi(seg),
		Mode:      mode,
		Workers:   cfg.Workers,
	}
	return ranker, table, nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(*value))
	if err != nil {
		return fmt.Errorf("invalid %s in config: %w", name, err)
	}
	*target = parsed
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# morsel configuration
# Uncomment a value to enable it. CLI flags override config values.

[decode]
# lang = %q             # Language code of the word table
# segmenter = %q # dictionary, viterbi or joint
# policy = %q        # Short-word policy: %s
# min-word-len = %d       # Shortest word a segmentation may use
# digits = false         # Include digits 0-9 in the alphabet
# workers = %d            # Concurrent segmentation workers
# timeout = "30s"        # Stop searching after this long
# history = true         # Record runs in the history database

[serve]
# addr = %q
`,
		defaultLang,
		defaultSegmenter,
		segment.PolicyDefault,
		strings.Join(segment.PolicyNames(), ", "),
		defaultMinWordLen,
		defaultWorkers,
		defaultAddr,
	)
}

func wordTableLoadError(lang, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word table: %v", err),
		fmt.Sprintf("expected word table at: %s", path),
		fmt.Sprintf("language %q not found", lang),
		"Run: morsel langs",
		fmt.Sprintf("Download: morsel wordlist --lang %s", lang),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

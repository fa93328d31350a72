package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/morsel/internal/config"
	"github.com/verte-zerg/morsel/internal/wordfreq"
	"github.com/verte-zerg/morsel/internal/wordlist"
)

const defaultWordlistSz = 50000

var (
	wordlistLang  string
	wordlistSize  int
	wordlistForce bool
)

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Generate word frequency tables",
		RunE:  runWordlistCmd,
	}
	cmd.Flags().StringVar(&wordlistLang, "lang", "", "language code, comma list or 'all' (default: en)")
	cmd.Flags().IntVar(&wordlistSize, "size", defaultWordlistSz, "number of words")
	cmd.Flags().BoolVar(&wordlistForce, "force", false, "overwrite existing files")
	return cmd
}

func runWordlistCmd(_ *cobra.Command, _ []string) error {
	if _, err := config.LoadConfig(config.DefaultConfigPath()); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	listType := "large"
	outDir := config.DefaultWordTableDir()
	if wordlistSize <= 0 {
		return fmt.Errorf("--size must be greater than 0")
	}

	cacheDir := config.DefaultWordfreqCacheDir()
	logErrln("Fetching wordfreq metadata...")
	wheel, err := wordfreq.DownloadLatestWheel(context.Background(), cacheDir)
	if err != nil {
		return fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	if wheel.Cached {
		logErrf("Using cached wheel %s\n", wheel.Filename)
	} else {
		logErrf("Downloaded wheel %s (wordfreq %s)\n", wheel.Filename, wheel.Version)
	}
	langTypes, err := wordfreq.ListLanguageTypes(wheel.Path)
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	langs, allRequested, err := resolveWordlistLangs(wordlistLang, wordfreq.LanguagesFromTypes(langTypes))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, langCode := range langs {
		outPath := config.DefaultWordTablePath(langCode)
		if !wordlistForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("word table already exists: %s (use --force to overwrite)", outPath)
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("failed to stat word table: %w", err)
			}
		}

		logErrf("Extracting %s word table...\n", langCode)
		selectedType, ok := wordfreq.SelectListType(langTypes, langCode, listType)
		if !ok {
			if allRequested {
				logErrf("Skipping %s (no %s word list)\n", langCode, listType)
				continue
			}
			return fmt.Errorf("no %s word list available for %s", listType, langCode)
		}
		if selectedType != listType {
			logErrf("Using %s for %s (no %s word list)\n", selectedType, langCode, listType)
		}
		entries, err := wordfreq.ExtractFrequencies(wheel.Path, langCode, selectedType, wordlistSize)
		if err != nil {
			if allRequested {
				logErrf("Skipping %s (no word list): %v\n", langCode, err)
				continue
			}
			return fmt.Errorf("failed to extract %s word table: %w", langCode, err)
		}
		entries = wordlist.Filter(entries, wordlist.FilterForLang(langCode))
		if len(entries) == 0 {
			if allRequested {
				logErrf("Skipping %s (no usable words)\n", langCode)
				continue
			}
			return fmt.Errorf("no usable words for %s", langCode)
		}
		if err := wordlist.WriteTable(outPath, entries); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		logErrf("Wrote %s (%d words)\n", outPath, len(entries))
	}

	if err := wordfreq.WriteAttribution(wheel.Path, outDir); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}
	logErrln("Wrote ATTRIBUTION.txt and LICENSE.txt")
	return nil
}

func resolveWordlistLangs(lang string, available []string) ([]string, bool, error) {
	lang = strings.TrimSpace(strings.ToLower(lang))
	if lang == "" {
		return []string{defaultLang}, false, nil
	}
	if lang == "all" {
		return append([]string(nil), available...), true, nil
	}
	parts := strings.Split(lang, ",")
	requested := make([]string, 0, len(parts))
	availableSet := make(map[string]struct{}, len(available))
	for _, a := range available {
		availableSet[a] = struct{}{}
	}
	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if _, ok := availableSet[part]; !ok {
			return nil, false, fmt.Errorf("unknown language %q (available: %s)", part, strings.Join(available, ", "))
		}
		requested = append(requested, part)
	}
	if len(requested) == 0 {
		return nil, false, fmt.Errorf("--lang must not be empty")
	}
	return requested, false, nil
}

// Package wordlist loads and writes word frequency tables.
//
// A table is a UTF-8 text file with one "word<TAB>frequency" pair per line.
// Blank lines and lines starting with '#' are ignored.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/verte-zerg/morsel/internal/textnorm"
	"github.com/verte-zerg/morsel/internal/wordfreq"
)

// ErrEmptyTable is returned when a table holds no usable words.
var ErrEmptyTable = errors.New("word table is empty")

// Table maps normalized words of one language to relative frequencies.
// Spellings that normalize to the same letters share one entry whose
// frequency is the sum of theirs, capped at 1.
type Table struct {
	lang  string
	freqs map[string]float64
}

// NewTable builds a table for lang from raw entries.
func NewTable(lang string, entries []wordfreq.Entry) *Table {
	t := &Table{lang: strings.ToLower(lang), freqs: make(map[string]float64, len(entries))}
	for _, e := range entries {
		t.add(e.Word, e.Frequency)
	}
	return t
}

func (t *Table) add(raw string, freq float64) {
	key := textnorm.Letters(raw)
	if key == "" || freq <= 0 {
		return
	}
	t.freqs[key] = min(t.freqs[key]+freq, 1)
}

// Lang returns the table language.
func (t *Table) Lang() string {
	return t.lang
}

// Len returns the number of distinct normalized words.
func (t *Table) Len() int {
	return len(t.freqs)
}

// Words returns the normalized words in lexical order.
func (t *Table) Words() []string {
	out := make([]string, 0, len(t.freqs))
	for w := range t.freqs {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Frequency returns the frequency of word in lang, or 0 when the word is
// unknown or lang is not the table language.
func (t *Table) Frequency(word, lang string) float64 {
	if !strings.EqualFold(lang, t.lang) {
		return 0
	}
	return t.freqs[textnorm.Letters(word)]
}

// LoadTable reads a table file for lang.
func LoadTable(path, lang string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word table.
			_ = cerr
		}
	}()

	t := &Table{lang: strings.ToLower(lang), freqs: make(map[string]float64)}
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, rawFreq, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("%s:%d: expected word<TAB>frequency", path, lineNo)
		}
		freq, err := strconv.ParseFloat(strings.TrimSpace(rawFreq), 64)
		if err != nil || freq < 0 || freq > 1 {
			return nil, fmt.Errorf("%s:%d: invalid frequency %q", path, lineNo, rawFreq)
		}
		t.add(strings.TrimSpace(word), freq)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, ErrEmptyTable
	}
	return t, nil
}

// WriteTable atomically writes entries to path in table format.
func WriteTable(path string, entries []wordfreq.Entry) error {
	if len(entries) == 0 {
		return ErrEmptyTable
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create table dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "wordlist-*.tsv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	w := bufio.NewWriter(tmpFile)
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", e.Word, strconv.FormatFloat(e.Frequency, 'g', -1, 64)); err != nil {
			return fmt.Errorf("failed to write table: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move table into place: %w", err)
	}
	return nil
}

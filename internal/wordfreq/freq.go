package wordfreq

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"unicode"
)

// Entry is a word and its relative frequency (0, 1].
type Entry struct {
	Word      string
	Frequency float64
}

// ExtractFrequencies reads the cB pack for lang/listType and returns words
// made of letters and apostrophes by descending frequency, at most limit of
// them.
func ExtractFrequencies(wheelPath, lang, listType string, limit int) ([]Entry, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	if lang == "" {
		return nil, fmt.Errorf("language is required")
	}
	if listType == "" {
		return nil, fmt.Errorf("word list type is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}

	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	file := findDataFile(reader.File, lang, listType)
	if file == nil {
		return nil, fmt.Errorf("no data file found for %s/%s", lang, listType)
	}
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	var r io.Reader = rc
	if strings.HasSuffix(file.Name, ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz
	}

	entries, err := readCBPack(r)
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", lang, listType, err)
	}

	out := make([]Entry, 0, min(limit, len(entries)))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Word]; ok {
			continue
		}
		if !isWordLike(e.Word) {
			continue
		}
		seen[e.Word] = struct{}{}
		out = append(out, e)
		if len(out) >= limit {
			break
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no words found for %s/%s", lang, listType)
	}
	return out, nil
}

// readCBPack decodes wordfreq's "cB" msgpack layout: a header map followed
// by buckets, where bucket i holds words of frequency 10^(-i/100).
func readCBPack(r io.Reader) ([]Entry, error) {
	payload, err := decodeMsgpack(r)
	if err != nil {
		return nil, err
	}
	items, ok := payload.([]any)
	if !ok || len(items) == 0 {
		return nil, fmt.Errorf("unsupported msgpack root type %T", payload)
	}
	if err := checkHeader(items[0]); err != nil {
		return nil, err
	}

	var entries []Entry
	for i, bucket := range items[1:] {
		words, ok := bucket.([]any)
		if !ok {
			return nil, fmt.Errorf("bucket %d: unexpected type %T", i, bucket)
		}
		freq := math.Pow(10, -float64(i)/100)
		for _, w := range words {
			word, ok := toString(w)
			if !ok {
				return nil, fmt.Errorf("bucket %d: non-string word %T", i, w)
			}
			entries = append(entries, Entry{Word: word, Frequency: freq})
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("wordfreq data contained no entries")
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Frequency > entries[j].Frequency
	})
	return entries, nil
}

func checkHeader(v any) error {
	header, ok := v.(map[any]any)
	if !ok {
		return fmt.Errorf("missing cB header")
	}
	format, _ := toString(header["format"])
	if format != "cB" {
		return fmt.Errorf("unsupported pack format %q", format)
	}
	if version, ok := header["version"].(int64); ok && version != 1 {
		return fmt.Errorf("unsupported pack version %d", version)
	}
	return nil
}

func toString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case []byte:
		return string(val), true
	default:
		return "", false
	}
}

func isWordLike(word string) bool {
	letters := 0
	for _, r := range word {
		switch {
		case unicode.IsLetter(r):
			letters++
		case r == '\'' || r == '’':
		default:
			return false
		}
	}
	return letters > 0
}

package report

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Code", "Count", "Names"}
	rows := [][]string{
		{".-.-", "2", "Eta, aa"},
		{"-..-", "12", "Na, X"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Code Count Names" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != ".-.-     2 Eta, aa" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "-..-    12 Na, X" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Name", "N"}, [][]string{{"東京", "1"}, {"Rome", "2"}}, nil)
	if lines[1] != "東京 1" || lines[2] != "Rome 2" {
		t.Fatalf("expected wide runes to count as two cells, got %q", lines)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("HELLO WORLD", 0); got != "HELLO WORLD" {
		t.Fatalf("expected no truncation, got %q", got)
	}
	if got := Truncate("HELLO WORLD", 6); got != "HELLO…" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := Truncate("SOS", 6); got != "SOS" {
		t.Fatalf("unexpected truncation %q", got)
	}
}

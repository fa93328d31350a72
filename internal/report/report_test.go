package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/morsel/internal/bench"
	"github.com/verte-zerg/morsel/internal/model"
	"github.com/verte-zerg/morsel/internal/places"
	"github.com/verte-zerg/morsel/internal/rank"
	"github.com/verte-zerg/morsel/internal/segment"
)

func TestRenderDecode(t *testing.T) {
	res := rank.Result{
		Best: rank.Candidate{
			Letters:      "HELLOWORLD",
			Segmentation: segment.Segmentation{Words: []string{"HELLO", "WORLD"}, Likelihood: 1e-6},
		},
		Outcome:    rank.OutcomeFound,
		Candidates: 12,
		Scored:     30,
	}
	var buf bytes.Buffer
	if err := RenderDecode(&buf, res, 1500*time.Millisecond); err != nil {
		t.Fatalf("RenderDecode failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Best:       HELLO WORLD",
		"Letters:    HELLOWORLD",
		"Likelihood: 1e-06",
		"Candidates: 12",
		"Scored:     30",
		"Outcome:    found",
		"Elapsed:    1.5s",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := RenderDecode(&buf, rank.Result{Outcome: rank.OutcomeNoDecoding}, 0); err != nil {
		t.Fatalf("RenderDecode failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Best:       -") || !strings.Contains(buf.String(), "no-decoding") {
		t.Fatalf("unexpected empty result output:\n%s", buf.String())
	}
}

func TestRenderCollisions(t *testing.T) {
	var buf bytes.Buffer
	err := RenderCollisions(&buf, []places.Collision{
		{Code: "-..-", Names: []string{"Na", "X"}},
		{Code: ".-.-", Names: []string{"Eta", "Aa", "Long Name Here"}},
	}, 28)
	if err != nil {
		t.Fatalf("RenderCollisions failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "Code Names Places" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "-..-     2 Na, X" {
		t.Fatalf("unexpected row %q", lines[1])
	}
	if lines[2] != ".-.-     3 Eta, Aa, Long Na…" {
		t.Fatalf("unexpected truncated row %q", lines[2])
	}
	if !strings.Contains(buf.String(), "2 colliding codes") {
		t.Fatalf("expected count line")
	}

	buf.Reset()
	if err := RenderCollisions(&buf, nil, 0); err != nil || buf.String() != "No collisions found.\n" {
		t.Fatalf("unexpected empty output %q: %v", buf.String(), err)
	}
}

func TestRenderBench(t *testing.T) {
	rep := bench.Report{Cases: []bench.Case{
		{Phrase: "SOS", Got: "SOS", Outcome: "found", Candidates: 3, Duration: 10 * time.Millisecond},
		{Phrase: "ET", Got: "A", Outcome: "found", Candidates: 2, Duration: 30 * time.Millisecond},
	}}
	var buf bytes.Buffer
	if err := RenderBench(&buf, rep, 0); err != nil {
		t.Fatalf("RenderBench failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Recovered: 50.0% of 2 in 40ms") {
		t.Fatalf("expected recovery line in output:\n%s", out)
	}
	if !strings.Contains(out, "ok") || !strings.Contains(out, "miss") {
		t.Fatalf("expected result marks in output:\n%s", out)
	}
}

func TestRenderHistoryAndSummary(t *testing.T) {
	ended := time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)
	runs := []model.Run{
		{EndedAt: ended, Outcome: "found", Mode: "joint", Lang: "en", Candidates: 4, Likelihood: 1e-6, Best: "HELLO WORLD", DurationMs: 20},
		{EndedAt: ended.Add(-time.Hour), Outcome: "no-decoding", Mode: "dictionary", Lang: "en", DurationMs: 5},
	}
	var buf bytes.Buffer
	if err := RenderHistory(&buf, runs, 0); err != nil {
		t.Fatalf("RenderHistory failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "2024-05-01 10:00 found") || !strings.HasSuffix(lines[1], "HELLO WORLD") {
		t.Fatalf("unexpected history output:\n%s", buf.String())
	}

	buf.Reset()
	if err := RenderSummary(&buf, model.RunSummary{Total: 2, Found: 1, NoDecoding: 1, AvgDurationMs: 12.4, MaxCandidates: 4}); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Runs:            2") || !strings.Contains(buf.String(), "Avg time:        12ms") {
		t.Fatalf("unexpected summary output:\n%s", buf.String())
	}

	buf.Reset()
	if err := RenderCurves(&buf, runs, 1, 40, 4); err != nil {
		t.Fatalf("RenderCurves failed: %v", err)
	}
	if !strings.Contains(buf.String(), "log10 likelihood (solid): min=-40 max=-6") {
		t.Fatalf("unexpected curves output:\n%s", buf.String())
	}
}

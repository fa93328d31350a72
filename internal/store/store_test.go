package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/morsel/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "morsel.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if cerr := st.Close(); cerr != nil {
			t.Errorf("close store: %v", cerr)
		}
	})
	return st
}

func testRun(ended time.Time, lang, outcome string, candidates int, durationMs int64) model.Run {
	return model.Run{
		StartedAt:  ended.Add(-time.Duration(durationMs) * time.Millisecond),
		EndedAt:    ended,
		Code:       "...---...",
		Mode:       "dictionary",
		Lang:       lang,
		Best:       "SOS",
		Letters:    "SOS",
		Likelihood: 1e-6,
		Outcome:    outcome,
		Candidates: candidates,
		Scored:     candidates * 2,
		DurationMs: durationMs,
	}
}

func TestInsertAndListRuns(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, run := range []model.Run{
		testRun(base, "en", "found", 10, 100),
		testRun(base.Add(time.Hour), "fr", "no-segmentation", 20, 300),
		testRun(base.Add(2*time.Hour), "en", "found", 30, 200),
	} {
		id, err := st.InsertRun(ctx, run)
		if err != nil {
			t.Fatalf("insert run %d: %v", i, err)
		}
		if id != int64(i+1) {
			t.Fatalf("expected id %d, got %d", i+1, id)
		}
	}

	runs, err := st.ListRuns(ctx, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].Candidates != 30 || runs[2].Candidates != 10 {
		t.Fatalf("expected newest first, got %+v", runs)
	}
	if !runs[0].EndedAt.Equal(base.Add(2*time.Hour)) || runs[0].Best != "SOS" || runs[0].Likelihood != 1e-6 {
		t.Fatalf("unexpected round trip %+v", runs[0])
	}

	enRuns, err := st.ListRuns(ctx, model.HistoryFilter{Lang: "en", Last: 1})
	if err != nil {
		t.Fatalf("list en runs: %v", err)
	}
	if len(enRuns) != 1 || enRuns[0].Candidates != 30 {
		t.Fatalf("unexpected filtered runs %+v", enRuns)
	}

	since := base.Add(30 * time.Minute)
	recent, err := st.ListRuns(ctx, model.HistoryFilter{Since: &since, Outcome: "found"})
	if err != nil {
		t.Fatalf("list recent runs: %v", err)
	}
	if len(recent) != 1 || recent[0].Lang != "en" {
		t.Fatalf("unexpected recent runs %+v", recent)
	}
}

func TestSummary(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	empty, err := st.Summary(ctx, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("empty summary: %v", err)
	}
	if empty.Total != 0 || empty.AvgDurationMs != 0 {
		t.Fatalf("expected empty summary, got %+v", empty)
	}

	for _, run := range []model.Run{
		testRun(base, "en", "found", 10, 100),
		testRun(base, "en", "found", 50, 300),
		testRun(base, "en", "no-decoding", 0, 20),
		testRun(base, "en", "cancelled", 40, 1000),
		testRun(base, "de", "no-segmentation", 5, 80),
	} {
		if _, err := st.InsertRun(ctx, run); err != nil {
			t.Fatalf("insert run: %v", err)
		}
	}

	summary, err := st.Summary(ctx, model.HistoryFilter{Lang: "en"})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	want := model.RunSummary{Total: 4, Found: 2, NoDecoding: 1, Cancelled: 1, AvgDurationMs: 355, MaxCandidates: 50}
	if summary != want {
		t.Fatalf("expected %+v, got %+v", want, summary)
	}
}

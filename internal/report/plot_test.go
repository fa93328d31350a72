package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlot(t *testing.T) {
	var buf bytes.Buffer
	err := Plot(&buf, "Runs", []Series{
		{Name: "A", Values: []float64{1, 2, 3, 2, 1}},
		{Name: "B", Values: []float64{1, 1, 2, 3, 4}},
		{Name: "empty"},
	}, 12, 4)
	if err != nil {
		t.Fatalf("Plot failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Runs") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "A (solid): min=1 max=3") || !strings.Contains(out, "B (dashed)") {
		t.Fatalf("expected series bounds in output:\n%s", out)
	}
	if strings.Contains(out, "empty") {
		t.Fatalf("expected empty series to be skipped")
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1+2+4 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[3], "max │ ") || !strings.HasPrefix(lines[6], "min │ ") {
		t.Fatalf("unexpected axis labels:\n%s", out)
	}
}

func TestPlotNothing(t *testing.T) {
	var buf bytes.Buffer
	if err := Plot(&buf, "None", nil, 10, 4); err != nil {
		t.Fatalf("Plot failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 80-len(axisTop)-3 {
		t.Fatalf("unexpected width %d", got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}

func TestResample(t *testing.T) {
	down := resample([]float64{1, 3, 5, 7}, 2)
	if down[0] != 2 || down[1] != 6 {
		t.Fatalf("unexpected downsample %v", down)
	}
	up := resample([]float64{0, 10}, 3)
	if up[0] != 0 || up[1] != 5 || up[2] != 10 {
		t.Fatalf("unexpected upsample %v", up)
	}
	flat := resample([]float64{4}, 3)
	if flat[0] != 4 || flat[2] != 4 {
		t.Fatalf("unexpected single-value resample %v", flat)
	}
}

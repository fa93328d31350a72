package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Series is a named sequence of values to plot.
type Series struct {
	Name   string
	Values []float64
}

type dash struct {
	name   string
	period int
	on     int
}

const (
	defaultPlotHeight = 8
	minPlotWidth      = 10
	axisTop           = "max"
	axisBottom        = "min"
	axisSeparator     = " │ "
)

var dashes = []dash{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
}

var seriesStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
}

// PlotWidthFor returns the braille column count that fits totalWidth cells
// next to the axis labels.
func PlotWidthFor(totalWidth int) int {
	axis := runewidth.StringWidth(axisTop) + runewidth.StringWidth(axisSeparator)
	return max(totalWidth-axis, minPlotWidth)
}

// Plot draws every series into one braille chart, each scaled to its own
// min/max. Two data points share a column horizontally, four rows share a
// line vertically.
func Plot(w io.Writer, title string, series []Series, width, height int) error {
	kept := series[:0:0]
	for _, s := range series {
		if len(s.Values) > 0 {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	width = max(width, minPlotWidth)

	layers := make([][][]uint8, len(kept))
	bounds := make([][2]float64, len(kept))
	for i, s := range kept {
		values := resample(s.Values, width)
		lo, hi := span(values)
		bounds[i] = [2]float64{lo, hi}
		layers[i] = drawSeries(values, lo, hi, width, height, dashes[i%len(dashes)])
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for i, s := range kept {
		if _, err := fmt.Fprintf(w, "%s (%s): min=%.3g max=%.3g\n", s.Name, dashes[i%len(dashes)].name, bounds[i][0], bounds[i][1]); err != nil {
			return err
		}
	}
	labelWidth := runewidth.StringWidth(axisTop)
	for y := 0; y < height; y++ {
		label := ""
		switch y {
		case 0:
			label = axisTop
		case height - 1:
			label = axisBottom
		}
		var row strings.Builder
		row.WriteString(runewidth.FillLeft(label, labelWidth))
		row.WriteString(axisSeparator)
		for x := 0; x < width; x++ {
			mask, owner := overlay(layers, x, y)
			ch := string(rune(0x2800 + int(mask)))
			if owner >= 0 {
				ch = seriesStyles[owner%len(seriesStyles)].Render(ch)
			}
			row.WriteString(ch)
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	return nil
}

func drawSeries(values []float64, lo, hi float64, width, height int, d dash) [][]uint8 {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	dots := height * 4
	prevX, prevY := -1, -1
	for x, v := range values {
		py := int(math.Round((1 - (v-lo)/(hi-lo)) * float64(dots-1)))
		py = min(max(py, 0), dots-1)
		px := x * 2
		if prevX < 0 {
			prevX, prevY = px, py
		}
		line(prevX, prevY, px, py, func(dx, dy int) {
			if d.period <= 1 || dx%d.period < d.on {
				setDot(cells, dx, dy)
			}
		})
		prevX, prevY = px, py
	}
	return cells
}

func overlay(layers [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	owner := -1
	for i, cells := range layers {
		if m := cells[y][x]; m != 0 {
			if owner < 0 {
				owner = i
			}
			mask |= m
		}
	}
	return mask, owner
}

// resample averages down or linearly interpolates up to width points.
func resample(values []float64, width int) []float64 {
	out := make([]float64, width)
	n := len(values)
	switch {
	case n == width:
		copy(out, values)
	case n > width:
		for i := range out {
			start := i * n / width
			end := max((i+1)*n/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case n == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := range out {
			pos := float64(i) * float64(n-1) / float64(width-1)
			idx := min(int(pos), n-2)
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func span(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 1e-9 {
		lo--
		hi++
	}
	return lo, hi
}

// line walks Bresenham's line from (x0,y0) to (x1,y1).
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// brailleBits maps a dot inside a 2x4 braille cell to its bit.
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func setDot(cells [][]uint8, x, y int) {
	cy, cx := y/4, x/2
	if cy < 0 || cy >= len(cells) || cx < 0 || cx >= len(cells[cy]) {
		return
	}
	cells[cy][cx] |= brailleBits[x%2][y%4]
}

package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"farmbot/model"
)

const (
	maxScore      = 100
	maxLabelWidth = 14
)

// TerminalCanvas draws the crop chart with text cells. It shows whichever
// chart was created last and is still alive.
type TerminalCanvas struct {
	current *terminalChart
	created int
}

func NewTerminalCanvas() *TerminalCanvas {
	return &TerminalCanvas{}
}

func (c *TerminalCanvas) NewChart(spec model.ChartSpec) model.Chart {
	ch := &terminalChart{canvas: c, spec: spec}
	c.current = ch
	c.created++
	return ch
}

// Spec returns the live chart's spec
func (c *TerminalCanvas) Spec() (model.ChartSpec, bool) {
	if c.current == nil {
		return model.ChartSpec{}, false
	}
	return c.current.spec, true
}

// Created counts charts built on this canvas
func (c *TerminalCanvas) Created() int {
	return c.created
}

func (c *TerminalCanvas) View(width, height int) string {
	if c.current == nil {
		return DimStyle.Render("No chart")
	}
	return c.current.view(width, height)
}

type terminalChart struct {
	canvas    *TerminalCanvas
	spec      model.ChartSpec
	destroyed bool
}

func (ch *terminalChart) Destroy() {
	ch.destroyed = true
	if ch.canvas.current == ch {
		ch.canvas.current = nil
	}
}

func (ch *terminalChart) view(width, height int) string {
	title := TitleStyle.Render(ch.spec.Title)
	if len(ch.spec.Dataset.Labels) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, DimStyle.Render("No data"))
	}

	var body string
	switch ch.spec.Kind {
	case model.ChartRadar:
		body = renderRadar(ch.spec.Dataset, width, height-1)
	default:
		body = renderBars(ch.spec.Dataset, width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > maxScore {
		return maxScore
	}
	return v
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fitLabel(label string, width int) string {
	if runewidth.StringWidth(label) > width {
		label = runewidth.Truncate(label, width, "…")
	}
	return label + strings.Repeat(" ", width-runewidth.StringWidth(label))
}

// renderBars draws one horizontal bar per crop on a 0-100 scale
func renderBars(ds model.ChartDataset, width int) string {
	labelWidth := 0
	for _, l := range ds.Labels {
		labelWidth = max(labelWidth, runewidth.StringWidth(l))
	}
	labelWidth = min(labelWidth, maxLabelWidth)

	// label, space, bar, space, "100"
	barWidth := width - labelWidth - 5
	if barWidth < 5 {
		barWidth = 5
	}

	var lines []string
	for i, label := range ds.Labels {
		v := clampScore(ds.Values[i])
		n := int(math.Round(v / maxScore * float64(barWidth)))
		bar := lipgloss.NewStyle().Foreground(paletteColor(i)).Render(strings.Repeat("█", n))
		pad := strings.Repeat(" ", barWidth-n)
		lines = append(lines, fmt.Sprintf("%s %s%s %s", fitLabel(label, labelWidth), bar, pad, formatScore(ds.Values[i])))
	}

	axis := strings.Repeat(" ", labelWidth+1) + "0" + strings.Repeat(" ", max(barWidth-3, 1)) + "100"
	lines = append(lines, DimStyle.Render(axis))
	lines = append(lines, DimStyle.Render(strings.Repeat(" ", labelWidth+1)+"Suitability Score (0-100)"))

	return strings.Join(lines, "\n")
}

type cell struct {
	r     rune // 0 marks the right half of a wide rune
	color lipgloss.Color
}

type grid struct {
	w, h  int
	cells [][]cell
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h, cells: make([][]cell, h)}
	for y := range g.cells {
		g.cells[y] = make([]cell, w)
		for x := range g.cells[y] {
			g.cells[y][x] = cell{r: ' '}
		}
	}
	return g
}

func (g *grid) set(x, y int, r rune, color lipgloss.Color) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	row := g.cells[y]
	// Overwriting either half of a wide rune blanks the other half
	if row[x].r == 0 && x > 0 {
		row[x-1] = cell{r: ' '}
	}
	if x+1 < g.w && row[x+1].r == 0 {
		row[x+1] = cell{r: ' '}
	}
	row[x] = cell{r: r, color: color}
}

func (g *grid) text(x, y int, s string, color lipgloss.Color) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if x+w > g.w {
			return
		}
		g.set(x, y, r, color)
		if w == 2 {
			g.set(x+1, y, 0, color)
		}
		x += w
	}
}

func (g *grid) line(x0, y0, x1, y1 int, r rune, color lipgloss.Color) {
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		g.set(x0, y0, r, color)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(float64(x0) + t*float64(x1-x0)))
		y := int(math.Round(float64(y0) + t*float64(y1-y0)))
		g.set(x, y, r, color)
	}
}

func (g *grid) String() string {
	var b strings.Builder
	for y, row := range g.cells {
		for _, c := range row {
			if c.r == 0 {
				continue
			}
			if c.color != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(c.color).Render(string(c.r)))
			} else {
				b.WriteRune(c.r)
			}
		}
		if y < g.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// renderRadar plots one spoke per crop with the score polygon on top.
// Terminal cells are about twice as tall as wide, so x is stretched.
func renderRadar(ds model.ChartDataset, width, height int) string {
	n := len(ds.Labels)
	h := max(min(height, 21), 9)
	w := max(min(width, h*4), 24)

	g := newGrid(w, h)
	cx, cy := w/2, h/2
	ry := float64(h/2 - 1)
	rx := ry * 2

	point := func(i int, frac float64) (int, int) {
		theta := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		return cx + int(math.Round(rx*frac*math.Cos(theta))), cy + int(math.Round(ry*frac*math.Sin(theta)))
	}

	// Spokes and the outer ring
	for i := 0; i < n; i++ {
		x, y := point(i, 1)
		g.line(cx, cy, x, y, '·', dimColor)
	}
	for i := 0; i < n; i++ {
		x0, y0 := point(i, 1)
		x1, y1 := point((i+1)%n, 1)
		g.line(x0, y0, x1, y1, '·', dimColor)
	}

	// Score polygon
	for i := 0; i < n; i++ {
		x0, y0 := point(i, clampScore(ds.Values[i])/maxScore)
		x1, y1 := point((i+1)%n, clampScore(ds.Values[(i+1)%n])/maxScore)
		g.line(x0, y0, x1, y1, '•', accentColor)
	}
	for i := 0; i < n; i++ {
		x, y := point(i, clampScore(ds.Values[i])/maxScore)
		g.set(x, y, '●', paletteColor(i))
	}
	g.set(cx, cy, '+', dimColor)

	// Axis labels sit just outside the ring
	for i, label := range ds.Labels {
		label = runewidth.Truncate(label, maxLabelWidth, "…")
		x, y := point(i, 1)
		lw := runewidth.StringWidth(label)
		switch {
		case x < cx-1:
			x -= lw + 1
		case x > cx+1:
			x += 2
		default:
			x -= lw / 2
			if y < cy {
				y--
			} else {
				y++
			}
		}
		x = max(0, min(x, w-lw))
		g.text(x, y, label, paletteColor(i))
	}

	var legend []string
	for i, label := range ds.Labels {
		legend = append(legend, lipgloss.NewStyle().Foreground(paletteColor(i)).Render(label)+" "+formatScore(ds.Values[i]))
	}

	return g.String() + "\n" + DimStyle.Render("Scores: ") + strings.Join(legend, DimStyle.Render(" · "))
}

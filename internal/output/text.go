package output

import (
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/topbars/internal/chart"
)

const (
	terminalWidthBackup = 80
	defaultLabelWidth   = 28
	minBarWidth         = 10
	barRune             = "█"
)

// TextOptions sizes the terminal chart. Zero values select the terminal
// width and the default label column.
type TextOptions struct {
	Width      int
	LabelWidth int
}

// WriteText draws g as horizontal bars of block characters.
func WriteText(w io.Writer, g chart.Geometry, captions Captions, opts TextOptions) error {
	renderer := lipgloss.NewRenderer(w)
	headlineStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	mutedStyle := renderer.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	barStyle := renderer.NewStyle().Foreground(lipgloss.Color("#4682B4"))
	errorStyle := renderer.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))

	var lines []string
	if captions.Headline != "" {
		lines = append(lines, headlineStyle.Render(captions.Headline))
	}
	if captions.Subheadline != "" {
		lines = append(lines, mutedStyle.Render(captions.Subheadline))
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}

	if captions.Fallback != "" {
		lines = append(lines, errorStyle.Render(captions.Fallback))
		return writeLines(w, lines)
	}
	if len(g.Bars) == 0 {
		lines = append(lines, "No records found.")
		return writeLines(w, lines)
	}

	totalWidth := opts.Width
	if totalWidth <= 0 {
		totalWidth = terminalWidth(w)
	}
	labelWidth := labelColumnWidth(g, opts.LabelWidth)
	countWidth := 0
	for _, bar := range g.Bars {
		countWidth = max(countWidth, runewidth.StringWidth(bar.Label.Text))
	}
	barWidth := BarColumns(totalWidth, labelWidth, countWidth)

	for _, bar := range g.Bars {
		cells := barCells(bar.Count, g.NiceMax, barWidth)
		label := runewidth.FillRight(runewidth.Truncate(bar.Reason, labelWidth, "…"), labelWidth)
		row := label + " │" + barStyle.Render(strings.Repeat(barRune, cells)) + " " + bar.Label.Text
		lines = append(lines, strings.TrimRight(row, " "))
	}
	lines = append(lines, strings.Repeat(" ", labelWidth)+" └"+strings.Repeat("─", barWidth))
	if axis := tickLine(g, barWidth, countWidth); axis != "" {
		lines = append(lines, mutedStyle.Render(strings.Repeat(" ", labelWidth+2)+axis))
	}
	return writeLines(w, lines)
}

// BarColumns returns the number of cells the longest bar may span.
func BarColumns(totalWidth, labelWidth, countWidth int) int {
	if totalWidth <= 0 {
		totalWidth = terminalWidthBackup
	}
	width := totalWidth - labelWidth - countWidth - 3
	if width < minBarWidth {
		width = minBarWidth
	}
	return width
}

func labelColumnWidth(g chart.Geometry, limit int) int {
	if limit <= 0 {
		limit = defaultLabelWidth
	}
	width := 0
	for _, bar := range g.Bars {
		width = max(width, runewidth.StringWidth(bar.Reason))
	}
	return min(max(width, 1), limit)
}

func barCells(count, niceMax float64, width int) int {
	if niceMax <= 0 || count <= 0 {
		return 0
	}
	cells := int(math.Round(count / niceMax * float64(width)))
	return min(max(cells, 0), width)
}

// tickLine places the x tick labels under their axis positions, skipping
// labels that would overlap their left neighbour.
func tickLine(g chart.Geometry, barWidth, countWidth int) string {
	if len(g.XTicks) == 0 || g.NiceMax <= 0 {
		return ""
	}
	cells := make([]string, barWidth+countWidth+1)
	for i := range cells {
		cells[i] = " "
	}
	next := 0
	for _, tick := range g.XTicks {
		label := []rune(tick.Label)
		col := int(math.Round(tick.Value / g.NiceMax * float64(barWidth)))
		col -= runewidth.StringWidth(tick.Label) / 2
		col = max(col, 0)
		if col < next || col+len(label) > len(cells) {
			continue
		}
		for i, r := range label {
			cells[col+i] = string(r)
		}
		next = col + len(label) + 1
	}
	return strings.TrimRight(strings.Join(cells, ""), " ")
}

func writeLines(w io.Writer, lines []string) error {
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

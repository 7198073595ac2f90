package output

import (
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/verte-zerg/topbars/internal/chart"
)

const (
	pngHeaderHeight    = 64
	pngHeadlineSize    = 20
	pngSubheadlineSize = 13
	pngTextSize        = 12
	pngTickLength      = 6
	pngDefaultWidth    = 960
)

var (
	pngBackground = drawing.ColorFromHex("ffffff")
	pngBarColor   = drawing.ColorFromHex("4682b4")
	pngTextColor  = drawing.ColorFromHex("333333")
	pngMutedColor = drawing.ColorFromHex("555555")
	pngAxisColor  = drawing.ColorFromHex("222222")
	pngErrorColor = drawing.ColorFromHex("b00020")
)

// WritePNG paints g as a PNG image with the captions above the plot.
func WritePNG(w io.Writer, g chart.Geometry, captions Captions) error {
	width := int(math.Round(g.FullWidth))
	if width <= 0 {
		width = pngDefaultWidth
	}
	chartHeight := g.FullHeight
	if captions.Fallback != "" {
		chartHeight = g.Margin.Top + g.Margin.Bottom
	}
	height := pngHeaderHeight + int(math.Ceil(chartHeight))

	r, err := gochart.PNG(width, height)
	if err != nil {
		return fmt.Errorf("failed to create png canvas: %w", err)
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	r.SetDPI(72)
	r.SetFont(font)

	fillRect(r, 0, 0, float64(width), float64(height), pngBackground)
	drawText(r, captions.Headline, 16, 28, pngHeadlineSize, pngAxisColor)
	drawText(r, captions.Subheadline, 16, 50, pngSubheadlineSize, pngMutedColor)

	ox := g.Margin.Left
	oy := pngHeaderHeight + g.Margin.Top
	if captions.Fallback != "" {
		drawText(r, captions.Fallback, ox, oy+pngTextSize, pngTextSize+2, pngErrorColor)
		return r.Save(w)
	}

	for _, bar := range g.Bars {
		fillRect(r, ox+bar.X, oy+bar.Y, ox+bar.X+bar.Width, oy+bar.Y+bar.Height, pngBarColor)
		drawText(r, bar.Label.Text, ox+bar.Label.X, oy+bar.Label.Y+textHalfHeight(r, bar.Label.Text), pngTextSize, pngTextColor)
	}

	// Left axis: domain line and right-aligned reason labels.
	strokeLine(r, ox, oy, ox, oy+g.PlotHeight, pngAxisColor)
	for _, tick := range g.YTicks {
		r.SetFontSize(pngTextSize)
		box := r.MeasureText(tick.Label)
		x := ox - 3 - 0.6*pngTextSize - float64(box.Width())
		drawText(r, tick.Label, x, oy+tick.Position+textHalfHeight(r, tick.Label), pngTextSize, pngAxisColor)
	}

	// Bottom axis: tick marks and centred values.
	base := oy + g.PlotHeight
	for _, tick := range g.XTicks {
		x := ox + tick.Position
		strokeLine(r, x, base, x, base+pngTickLength, pngAxisColor)
		r.SetFontSize(pngTextSize)
		box := r.MeasureText(tick.Label)
		drawText(r, tick.Label, x-float64(box.Width())/2, base+9+float64(box.Height()), pngTextSize, pngAxisColor)
	}
	return r.Save(w)
}

func fillRect(r gochart.Renderer, x0, y0, x1, y1 float64, c drawing.Color) {
	r.SetFillColor(c)
	r.SetStrokeColor(c)
	r.SetStrokeWidth(0)
	r.MoveTo(px(x0), px(y0))
	r.LineTo(px(x1), px(y0))
	r.LineTo(px(x1), px(y1))
	r.LineTo(px(x0), px(y1))
	r.Close()
	r.Fill()
}

func strokeLine(r gochart.Renderer, x0, y0, x1, y1 float64, c drawing.Color) {
	r.SetStrokeColor(c)
	r.SetStrokeWidth(1)
	r.MoveTo(px(x0), px(y0))
	r.LineTo(px(x1), px(y1))
	r.Stroke()
}

func drawText(r gochart.Renderer, text string, x, y, size float64, c drawing.Color) {
	if text == "" {
		return
	}
	r.SetFontSize(size)
	r.SetFontColor(c)
	r.Text(text, px(x), px(y))
}

// textHalfHeight is the baseline offset that centres text on a y coordinate.
func textHalfHeight(r gochart.Renderer, text string) float64 {
	r.SetFontSize(pngTextSize)
	return float64(r.MeasureText(text).Height()) / 2
}

func px(v float64) int {
	return int(math.Round(v))
}

package chart

import (
	"math"

	"github.com/verte-zerg/topbars/internal/model"
	"github.com/verte-zerg/topbars/internal/scale"
	"github.com/verte-zerg/topbars/internal/stats"
)

// Geometry is the complete, paint-independent description of a chart. Plot
// coordinates are relative to the top-left corner of the plot area.
type Geometry struct {
	FullWidth  float64 `json:"full_width" yaml:"full_width"`
	FullHeight float64 `json:"full_height" yaml:"full_height"`
	PlotWidth  float64 `json:"plot_width" yaml:"plot_width"`
	PlotHeight float64 `json:"plot_height" yaml:"plot_height"`
	Margin     Margin  `json:"margin" yaml:"margin"`
	NiceMax    float64 `json:"nice_max" yaml:"nice_max"`
	Bandwidth  float64 `json:"bandwidth" yaml:"bandwidth"`
	Bars       []Bar   `json:"bars" yaml:"bars"`
	XTicks     []Tick  `json:"x_ticks" yaml:"x_ticks"`
	YTicks     []Tick  `json:"y_ticks" yaml:"y_ticks"`
}

// Bar is one ranked record with its rectangle and value label.
type Bar struct {
	Reason string  `json:"reason" yaml:"reason"`
	Count  float64 `json:"count" yaml:"count"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Label  Label   `json:"label" yaml:"label"`
}

// Label is a positioned text.
type Label struct {
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Text string  `json:"text" yaml:"text"`
}

// Tick is an axis tick; Position runs along the axis.
type Tick struct {
	Value    float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Position float64 `json:"position" yaml:"position"`
	Label    string  `json:"label" yaml:"label"`
}

// Records returns the ranked records drawn by the geometry.
func (g Geometry) Records() []model.Record {
	out := make([]model.Record, len(g.Bars))
	for i, b := range g.Bars {
		out[i] = model.Record{Reason: b.Reason, Count: b.Count}
	}
	return out
}

// Build ranks records and lays them out for a surface fullWidth pixels wide.
func Build(records []model.Record, fullWidth int, layout Layout) Geometry {
	ranked := stats.Top(records, layout.Top)
	m := layout.Margin
	plotWidth := math.Max(0, float64(fullWidth)-m.Left-m.Right)
	plotHeight := float64(len(ranked)) * layout.BandHeight

	x := scale.NewLinear(0, stats.MaxCount(ranked), 0, plotWidth).Nice(layout.NiceCount)

	reasons := make([]string, len(ranked))
	for i, r := range ranked {
		reasons[i] = r.Reason
	}
	// Half the inner padding on the outside keeps every step at BandHeight.
	y := scale.NewBand(reasons, 0, plotHeight, layout.Padding, layout.Padding/2)
	bandwidth := y.Bandwidth()

	g := Geometry{
		FullWidth:  float64(fullWidth),
		FullHeight: plotHeight + m.Top + m.Bottom,
		PlotWidth:  plotWidth,
		PlotHeight: plotHeight,
		Margin:     m,
		NiceMax:    x.Domain[1],
		Bandwidth:  bandwidth,
		Bars:       make([]Bar, 0, len(ranked)),
		XTicks:     []Tick{},
		YTicks:     make([]Tick, 0, len(ranked)),
	}

	for i, r := range ranked {
		top := y.At(i)
		width := x.Apply(r.Count)
		g.Bars = append(g.Bars, Bar{
			Reason: r.Reason,
			Count:  r.Count,
			X:      0,
			Y:      top,
			Width:  width,
			Height: bandwidth,
			Label: Label{
				X:    width + layout.LabelOffset,
				Y:    top + bandwidth/2,
				Text: stats.FormatCount(r.Count),
			},
		})
		g.YTicks = append(g.YTicks, Tick{Position: top + bandwidth/2, Label: r.Reason})
	}

	if len(ranked) > 0 {
		for _, v := range x.MaxTicks(layout.XTicks) {
			g.XTicks = append(g.XTicks, Tick{Value: v, Position: x.Apply(v), Label: stats.FormatCount(v)})
		}
	}
	return g
}

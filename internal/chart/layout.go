// Package chart turns category counts into a ranked horizontal bar chart.
package chart

import "github.com/verte-zerg/topbars/internal/stats"

// Margin is the space around the plot area, in pixels.
type Margin struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// Layout holds the fixed dimensions of the chart.
type Layout struct {
	Margin       Margin
	BandHeight   float64
	Padding      float64
	LabelOffset  float64
	XTicks       int
	NiceCount    int
	DefaultWidth int
	Top          int
}

// DefaultLayout returns the layout of the reference chart: a 240px label
// gutter, 42px per row and labels 8px past the bar end.
func DefaultLayout() Layout {
	return Layout{
		Margin:       Margin{Top: 20, Right: 60, Bottom: 40, Left: 240},
		BandHeight:   42,
		Padding:      0.15,
		LabelOffset:  8,
		XTicks:       5,
		NiceCount:    10,
		DefaultWidth: 960,
		Top:          stats.DefaultTop,
	}
}

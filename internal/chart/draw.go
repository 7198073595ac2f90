package chart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/verte-zerg/topbars/internal/scene"
)

// Draw replaces the contents of container with the chart described by g.
func Draw(container *scene.Node, g Geometry) {
	container.RemoveChildren()
	container.Attr("viewBox", fmt.Sprintf("0 0 %s %s", num(g.FullWidth), num(g.FullHeight)))

	plot := container.Append("g").
		Attr("transform", translate(g.Margin.Left, g.Margin.Top))

	drawBottomAxis(plot, g)
	drawLeftAxis(plot, g)
	drawBars(plot, g)
}

func drawBottomAxis(plot *scene.Node, g Geometry) {
	axis := plot.Append("g").
		Attr("transform", translate(0, g.PlotHeight)).
		Attr("class", "axis x-axis").
		Attr("fill", "none").
		Attr("font-size", "10").
		Attr("font-family", "sans-serif").
		Attr("text-anchor", "middle")

	axis.SelectAll("tick").Join(len(g.XTicks), "g").
		Attr("opacity", func(int) string { return "1" }).
		Attr("transform", func(i int) string { return translate(g.XTicks[i].Position, 0) }).
		Each(func(i int, tick *scene.Node) {
			tick.Append("line").
				Attr("stroke", "currentColor").
				Attr("y2", "6")
			tick.Append("text").
				Attr("fill", "currentColor").
				Attr("y", "9").
				Attr("dy", "0.71em").
				SetText(g.XTicks[i].Label)
		})
}

func drawLeftAxis(plot *scene.Node, g Geometry) {
	axis := plot.Append("g").
		Attr("class", "axis y-axis").
		Attr("fill", "none").
		Attr("font-size", "10").
		Attr("font-family", "sans-serif").
		Attr("text-anchor", "end")
	axis.Append("path").
		Attr("class", "domain").
		Attr("stroke", "currentColor").
		Attr("d", "M0,0V"+num(g.PlotHeight))

	axis.SelectAll("tick").Join(len(g.YTicks), "g").
		Attr("opacity", func(int) string { return "1" }).
		Attr("transform", func(i int) string { return translate(0, g.YTicks[i].Position) }).
		Each(func(i int, tick *scene.Node) {
			tick.Append("text").
				Attr("fill", "currentColor").
				Attr("x", "-3").
				Attr("dy", "0.32em").
				Attr("dx", "-0.6em").
				SetText(g.YTicks[i].Label)
		})
}

func drawBars(plot *scene.Node, g Geometry) {
	plot.SelectAll("bar-group").Join(len(g.Bars), "g").
		Attr("transform", func(i int) string { return translate(0, g.Bars[i].Y) }).
		Each(func(i int, group *scene.Node) {
			bar := g.Bars[i]
			group.SelectAll("bar").Join(1, "rect").
				Attr("x", func(int) string { return num(bar.X) }).
				Attr("height", func(int) string { return num(bar.Height) }).
				Attr("width", func(int) string { return num(bar.Width) })
			group.SelectAll("label").Join(1, "text").
				Attr("x", func(int) string { return num(bar.Label.X) }).
				Attr("y", func(int) string { return num(bar.Label.Y - bar.Y) }).
				Attr("dy", func(int) string { return "0.35em" }).
				Text(func(int) string { return bar.Label.Text })
		})
}

func translate(x, y float64) string {
	return "translate(" + num(x) + "," + num(y) + ")"
}

// num formats a coordinate with at most six decimals.
func num(v float64) string {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		r = 0 // -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

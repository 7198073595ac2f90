package chart

import (
	"strconv"

	"github.com/verte-zerg/topbars/internal/scene"
)

// Stylesheet styles the chart classes on the page and in standalone SVG files.
const Stylesheet = `body { font-family: sans-serif; margin: 2rem; color: #222; }
#main-headline { font-size: 1.6rem; margin: 0 0 0.25rem; }
#sub-headline { color: #555; margin: 0 0 1rem; }
.bar { fill: #4682b4; }
.label { font-size: 12px; fill: #333; }
.axis text { font-size: 12px; }
.fallback { font-size: 14px; fill: #b00020; }`

// NewPage builds the host document: a headline, a subheadline and an empty
// chart container width pixels wide.
func NewPage(opts Options, width int) *scene.Document {
	root := scene.NewNode("html").Attr("lang", "en")

	head := root.Append("head")
	head.Append("meta").Attr("charset", "utf-8")
	head.Append("meta").
		Attr("name", "viewport").
		Attr("content", "width=device-width, initial-scale=1")
	head.Append("title").SetText(opts.Headline)
	head.Append("style").SetText(Stylesheet)

	body := root.Append("body")
	header := body.Append("header")
	header.Append("h1").Attr("id", opts.HeadlineID)
	header.Append("p").Attr("id", opts.SubheadlineID)

	svg := body.Append("main").Append("svg").
		Attr("id", opts.ContainerID).
		Attr("xmlns", "http://www.w3.org/2000/svg")
	if width > 0 {
		svg.Attr("width", strconv.Itoa(width))
	}
	return scene.NewDocument(root)
}

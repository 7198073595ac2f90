package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/verte-zerg/topbars/internal/chart"
	"github.com/verte-zerg/topbars/internal/scene"
)

// WriteHTML writes the whole document as an HTML page.
func WriteHTML(w io.Writer, doc *scene.Document) error {
	if doc == nil || doc.Root == nil {
		return errors.New("no document to write")
	}
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if err := scene.WriteMarkup(w, doc.Root); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteSVG writes the chart container as a standalone SVG file with the chart
// stylesheet embedded.
func WriteSVG(w io.Writer, doc *scene.Document, containerID string) error {
	container := doc.ByID(containerID)
	if container == nil {
		return fmt.Errorf("%w: #%s", chart.ErrNoContainer, containerID)
	}
	standalone := scene.NewNode(container.Tag)
	if _, ok := container.AttrValue("xmlns"); !ok {
		standalone.Attr("xmlns", "http://www.w3.org/2000/svg")
	}
	for _, name := range container.Attrs() {
		value, _ := container.AttrValue(name)
		standalone.Attr(name, value)
	}
	style := scene.NewNode("style").SetText(chart.Stylesheet)
	standalone.Children = append([]*scene.Node{style}, container.Children...)

	if _, err := io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"); err != nil {
		return err
	}
	if err := scene.WriteMarkup(w, standalone); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

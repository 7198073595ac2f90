package scene

import (
	"bufio"
	"html"
	"io"
)

var voidElements = map[string]bool{
	"meta": true,
	"link": true,
	"br":   true,
}

var rawTextElements = map[string]bool{
	"style":  true,
	"script": true,
}

// WriteMarkup serialises the subtree rooted at n as HTML/SVG markup.
func WriteMarkup(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	writeNode(bw, n)
	return bw.Flush()
}

func writeNode(w *bufio.Writer, n *Node) {
	_, _ = w.WriteString("<")
	_, _ = w.WriteString(n.Tag)
	for _, a := range n.attrs {
		_, _ = w.WriteString(" ")
		_, _ = w.WriteString(a.name)
		_, _ = w.WriteString(`="`)
		_, _ = w.WriteString(html.EscapeString(a.value))
		_, _ = w.WriteString(`"`)
	}
	if voidElements[n.Tag] {
		_, _ = w.WriteString(">")
		return
	}
	_, _ = w.WriteString(">")
	if rawTextElements[n.Tag] {
		_, _ = w.WriteString(n.Text)
	} else {
		_, _ = w.WriteString(html.EscapeString(n.Text))
	}
	for _, c := range n.Children {
		writeNode(w, c)
	}
	_, _ = w.WriteString("</")
	_, _ = w.WriteString(n.Tag)
	_, _ = w.WriteString(">")
}

// Package output writes rendered charts to concrete surfaces.
package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/topbars/internal/chart"
	"github.com/verte-zerg/topbars/internal/scene"
)

// Format names an output surface.
type Format string

const (
	FormatHTML Format = "html"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultFormat is used when neither a format nor a known file extension is given.
const DefaultFormat = FormatHTML

var formats = []Format{FormatHTML, FormatSVG, FormatPNG, FormatText, FormatJSON, FormatYAML}

// Formats lists the supported formats.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name. Empty selects DefaultFormat.
func ParseFormat(name string) (Format, error) {
	value := Format(strings.ToLower(strings.TrimSpace(name)))
	switch value {
	case "":
		return DefaultFormat, nil
	case "txt", "term":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	case "htm":
		return FormatHTML, nil
	}
	for _, f := range formats {
		if f == value {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (expected one of %s)", name, joinFormats())
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", false
	}
	return f, true
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}

func joinFormats() string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Surface is a finished render: the document, the geometry drawn into it and
// whether the render fell back to the failure text.
type Surface struct {
	Doc      *scene.Document
	Options  chart.Options
	Geometry chart.Geometry
	Failed   bool
}

// Captions are the texts painted around image and terminal charts. A
// non-empty Fallback replaces the chart.
type Captions struct {
	Headline    string
	Subheadline string
	Fallback    string
}

// Captions returns the surface texts.
func (s Surface) Captions() Captions {
	c := Captions{Headline: s.Options.Headline, Subheadline: s.Options.Subheadline}
	if s.Failed {
		c.Fallback = s.Options.FallbackText
	}
	return c
}

// Write writes s to w in format f.
func Write(w io.Writer, f Format, s Surface) error {
	switch f {
	case FormatHTML:
		return WriteHTML(w, s.Doc)
	case FormatSVG:
		return WriteSVG(w, s.Doc, s.Options.ContainerID)
	case FormatPNG:
		return WritePNG(w, s.Geometry, s.Captions())
	case FormatText:
		return WriteText(w, s.Geometry, s.Captions(), TextOptions{})
	case FormatJSON:
		if s.Failed {
			return WriteJSON(w, Failure{Error: s.Options.FallbackText})
		}
		return WriteJSON(w, s.Geometry)
	case FormatYAML:
		if s.Failed {
			return WriteYAML(w, Failure{Error: s.Options.FallbackText})
		}
		return WriteYAML(w, s.Geometry)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

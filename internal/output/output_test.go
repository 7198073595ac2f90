package output

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/topbars/internal/chart"
	"github.com/verte-zerg/topbars/internal/model"
)

func renderSurface(t *testing.T) Surface {
	t.Helper()
	opts := chart.DefaultOptions()
	nop := zerolog.Nop()
	opts.Logger = &nop
	doc := chart.NewPage(opts, 0)
	g, err := chart.New(doc, nil, opts).RenderRecords([]model.Record{
		{Reason: "A", Count: 50},
		{Reason: "B", Count: 30},
		{Reason: "C", Count: 100},
	})
	require.NoError(t, err)
	return Surface{Doc: doc, Options: opts, Geometry: g}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":     FormatHTML,
		"SVG":  FormatSVG,
		" png": FormatPNG,
		"txt":  FormatText,
		"yml":  FormatYAML,
		"json": FormatJSON,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("gif")
	assert.ErrorContains(t, err, "unknown format")
}

func TestFormatFromPath(t *testing.T) {
	f, ok := FormatFromPath("out/chart.PNG")
	require.True(t, ok)
	assert.Equal(t, FormatPNG, f)
	_, ok = FormatFromPath("chart")
	assert.False(t, ok)
	_, ok = FormatFromPath("chart.gif")
	assert.False(t, ok)
	assert.Equal(t, "image/svg+xml", FormatSVG.ContentType())
	assert.Len(t, Formats(), 6)
}

func TestWriteHTML(t *testing.T) {
	s := renderSurface(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatHTML, s))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n<html lang=\"en\">"))
	assert.Contains(t, out, `<h1 id="main-headline">Enforcement &amp; Abandoned Vehicles are troubling Boston</h1>`)
	assert.Contains(t, out, `<p id="sub-headline">Top 10 reasons for Boston 311 calls in 2025.</p>`)
	assert.Equal(t, 3, strings.Count(out, `class="bar-group"`))
}

func TestWriteSVG(t *testing.T) {
	s := renderSurface(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatSVG, s))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"+`<svg id="chart" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 960 186"><style>`))
	assert.Contains(t, out, `class="bar"`)
	assert.NotContains(t, out, "<h1")

	// The page document is left untouched.
	assert.Equal(t, "g", s.Doc.ByID("chart").Children[0].Tag)
}

func TestWriteSVGMissingContainer(t *testing.T) {
	s := renderSurface(t)
	err := WriteSVG(&bytes.Buffer{}, s.Doc, "nope")
	assert.ErrorIs(t, err, chart.ErrNoContainer)
}

func TestWritePNG(t *testing.T) {
	s := renderSurface(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPNG, s))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, 960, bounds.Dx())
	assert.Equal(t, pngHeaderHeight+186, bounds.Dy())

	// Middle of the first bar.
	r, g, b, _ := img.At(240+300, pngHeaderHeight+20+20).RGBA()
	assert.InDelta(t, 0x46, int(r>>8), 2)
	assert.InDelta(t, 0x82, int(g>>8), 2)
	assert.InDelta(t, 0xb4, int(b>>8), 2)

	// Right of every bar and label.
	r, g, b, _ = img.At(950, pngHeaderHeight+20+20).RGBA()
	assert.Equal(t, []uint32{0xff, 0xff, 0xff}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestWritePNGFallback(t *testing.T) {
	s := renderSurface(t)
	s.Failed = true
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPNG, s))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, pngHeaderHeight+60, img.Bounds().Dy())
}

func TestWriteText(t *testing.T) {
	s := renderSurface(t)
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, s.Geometry, Captions{Headline: "Head", Subheadline: "Sub"}, TextOptions{Width: 60}))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "Head", lines[0])
	assert.Equal(t, "Sub", lines[1])
	assert.Equal(t, "", lines[2])

	assert.True(t, strings.HasPrefix(lines[3], "C │"))
	assert.True(t, strings.HasSuffix(lines[3], " 100"))
	assert.Equal(t, 53, strings.Count(lines[3], barRune))
	assert.Equal(t, 27, strings.Count(lines[4], barRune))
	assert.Equal(t, 16, strings.Count(lines[5], barRune))
	assert.Equal(t, "  └"+strings.Repeat("─", 53), lines[6])
	assert.Equal(t, "   0"+strings.Repeat(" ", 25)+"50"+strings.Repeat(" ", 24)+"100", lines[7])
}

func TestWriteTextTruncatesLabels(t *testing.T) {
	g := chart.Build([]model.Record{{Reason: "Request for Pothole Repair on Residential Street", Count: 9}}, 960, chart.DefaultLayout())
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, g, Captions{}, TextOptions{Width: 50, LabelWidth: 10}))
	first := strings.Split(buf.String(), "\n")[0]
	assert.True(t, strings.HasPrefix(first, "Request f… │"), first)
}

func TestWriteTextFallbackAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, chart.Geometry{}, Captions{Fallback: "Failed to load data."}, TextOptions{Width: 40}))
	assert.Equal(t, "Failed to load data.\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteText(&buf, chart.Geometry{}, Captions{}, TextOptions{Width: 40}))
	assert.Equal(t, "No records found.\n", buf.String())
}

func TestBarColumns(t *testing.T) {
	assert.Equal(t, 53, BarColumns(60, 1, 3))
	assert.Equal(t, minBarWidth, BarColumns(20, 18, 5))
	assert.Equal(t, 80-10-3-3, BarColumns(0, 10, 3))
}

func TestWriteJSON(t *testing.T) {
	s := renderSurface(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, s))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 100.0, decoded["nice_max"])
	bars := decoded["bars"].([]any)
	require.Len(t, bars, 3)
	assert.Equal(t, "C", bars[0].(map[string]any)["reason"])
}

func TestWriteYAML(t *testing.T) {
	s := renderSurface(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, s))
	assert.Contains(t, buf.String(), "\nbars:\n  - reason: C\n")

	var decoded chart.Geometry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, s.Geometry.NiceMax, decoded.NiceMax)
	assert.Len(t, decoded.Bars, 3)
}

func TestWriteFailureDocuments(t *testing.T) {
	s := renderSurface(t)
	s.Failed = true
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, s))
	assert.JSONEq(t, `{"error":"Failed to load data."}`, buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, FormatYAML, s))
	assert.Equal(t, "error: Failed to load data.\n", buf.String())
}

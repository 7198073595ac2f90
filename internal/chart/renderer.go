package chart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/topbars/internal/dataset"
	"github.com/verte-zerg/topbars/internal/model"
	"github.com/verte-zerg/topbars/internal/scene"
)

const (
	DefaultContainerID   = "chart"
	DefaultHeadlineID    = "main-headline"
	DefaultSubheadlineID = "sub-headline"
	DefaultHeadline      = "Enforcement & Abandoned Vehicles are troubling Boston"
	DefaultSubheadline   = "Top 10 reasons for Boston 311 calls in 2025."
	DefaultFallbackText  = "Failed to load data."
)

// ErrNoContainer is returned when the document has no chart container.
var ErrNoContainer = errors.New("chart container not found")

// LoadError wraps a failure to obtain usable records from a source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load data from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Options configures a Renderer.
type Options struct {
	ContainerID   string
	HeadlineID    string
	SubheadlineID string
	Headline      string
	Subheadline   string
	FallbackText  string
	Layout        Layout
	Policy        model.InvalidCountPolicy
	// Logger defaults to the global zerolog logger.
	Logger *zerolog.Logger
}

// DefaultOptions returns the options of the reference page.
func DefaultOptions() Options {
	return Options{
		ContainerID:   DefaultContainerID,
		HeadlineID:    DefaultHeadlineID,
		SubheadlineID: DefaultSubheadlineID,
		Headline:      DefaultHeadline,
		Subheadline:   DefaultSubheadline,
		FallbackText:  DefaultFallbackText,
		Layout:        DefaultLayout(),
		Policy:        model.InvalidCountZero,
	}
}

// OptionsFromConfig applies resolved chart settings on top of the defaults.
func OptionsFromConfig(cfg model.ChartConfig) Options {
	opts := DefaultOptions()
	if cfg.ContainerID != "" {
		opts.ContainerID = cfg.ContainerID
	}
	if cfg.HeadlineID != "" {
		opts.HeadlineID = cfg.HeadlineID
	}
	if cfg.SubheadlineID != "" {
		opts.SubheadlineID = cfg.SubheadlineID
	}
	if cfg.Headline != "" {
		opts.Headline = cfg.Headline
	}
	if cfg.Subheadline != "" {
		opts.Subheadline = cfg.Subheadline
	}
	if cfg.FallbackText != "" {
		opts.FallbackText = cfg.FallbackText
	}
	if cfg.Top > 0 {
		opts.Layout.Top = cfg.Top
	}
	if cfg.InvalidCount != "" {
		opts.Policy = cfg.InvalidCount
	}
	return opts
}

// Renderer draws a chart into the container of a document it owns.
type Renderer struct {
	doc    *scene.Document
	source dataset.Source
	opts   Options
	logger zerolog.Logger
}

// New returns a renderer for doc. source may be nil when only Render is used.
func New(doc *scene.Document, source dataset.Source, opts Options) *Renderer {
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Renderer{doc: doc, source: source, opts: opts, logger: logger}
}

// Document returns the document the renderer draws into.
func (r *Renderer) Document() *scene.Document {
	return r.doc
}

// Options returns the renderer options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Render coerces rows and redraws the chart. Previous chart contents are
// replaced, so repeated renders of the same rows produce the same document.
func (r *Renderer) Render(rows []model.Row) (Geometry, error) {
	records, issues, err := dataset.Coerce(rows, r.opts.Policy)
	for _, issue := range issues {
		r.logger.Warn().
			Int("line", issue.Line).
			Str("reason", issue.Reason).
			Str("value", issue.Value).
			Msg(issue.Detail)
	}
	if err != nil {
		return Geometry{}, err
	}
	return r.RenderRecords(records)
}

// RenderRecords redraws the chart from already numeric records.
func (r *Renderer) RenderRecords(records []model.Record) (Geometry, error) {
	container := r.doc.ByID(r.opts.ContainerID)
	if container == nil {
		return Geometry{}, fmt.Errorf("%w: #%s", ErrNoContainer, r.opts.ContainerID)
	}
	r.setText(r.opts.HeadlineID, r.opts.Headline)
	r.setText(r.opts.SubheadlineID, r.opts.Subheadline)

	g := Build(records, r.MeasureWidth(), r.opts.Layout)
	Draw(container, g)
	r.logger.Debug().
		Int("records", len(records)).
		Int("bars", len(g.Bars)).
		Float64("nice_max", g.NiceMax).
		Msg("chart rendered")
	return g, nil
}

// Run loads rows from the source and renders them. On failure the error is
// logged, the fallback text replaces the chart and the error is returned; the
// document stays valid either way.
func (r *Renderer) Run(ctx context.Context) (Geometry, error) {
	if r.source == nil {
		return Geometry{}, errors.New("no data source configured")
	}
	rows, err := r.source.Load(ctx)
	if err == nil {
		var g Geometry
		g, err = r.Render(rows)
		if err == nil {
			return g, nil
		}
		if errors.Is(err, ErrNoContainer) {
			return Geometry{}, err
		}
	}
	loadErr := &LoadError{Source: r.source.Describe(), Err: err}
	r.logger.Error().Err(err).Str("source", loadErr.Source).Msg("failed to load data")
	r.ShowFallback()
	return Geometry{}, loadErr
}

// ShowFallback replaces the chart with the fallback text.
func (r *Renderer) ShowFallback() {
	container := r.doc.ByID(r.opts.ContainerID)
	if container == nil {
		return
	}
	r.setText(r.opts.HeadlineID, r.opts.Headline)
	r.setText(r.opts.SubheadlineID, r.opts.Subheadline)

	width := float64(r.MeasureWidth())
	height := r.opts.Layout.Margin.Top + r.opts.Layout.Margin.Bottom
	container.RemoveChildren()
	container.Attr("viewBox", fmt.Sprintf("0 0 %s %s", num(width), num(height)))
	container.Append("text").
		Attr("class", "fallback").
		Attr("x", num(r.opts.Layout.Margin.Left)).
		Attr("y", num(r.opts.Layout.Margin.Top)).
		SetText(r.opts.FallbackText)
}

// MeasureWidth returns the container's width attribute, or the layout default
// when it is missing or not a positive number.
func (r *Renderer) MeasureWidth() int {
	fallback := r.opts.Layout.DefaultWidth
	container := r.doc.ByID(r.opts.ContainerID)
	if container == nil {
		return fallback
	}
	raw, ok := container.AttrValue("width")
	if !ok {
		return fallback
	}
	width, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(raw), "px"), 64)
	if err != nil || math.IsNaN(width) || math.IsInf(width, 0) || width <= 0 {
		return fallback
	}
	return int(width + 0.5)
}

func (r *Renderer) setText(id, text string) {
	if id == "" {
		return
	}
	if n := r.doc.ByID(id); n != nil {
		n.SetText(text)
	}
}

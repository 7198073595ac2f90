package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/topbars/internal/chart"
	"github.com/verte-zerg/topbars/internal/dataset"
	"github.com/verte-zerg/topbars/internal/output"
)

const maxWidth = 10000

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.serveFormat(w, r, output.FormatHTML)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	s.serveFormat(w, r, output.FormatSVG)
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	s.serveFormat(w, r, output.FormatPNG)
}

func (s *Server) handleGeometry(w http.ResponseWriter, r *http.Request) {
	s.serveFormat(w, r, output.FormatJSON)
}

// serveFormat renders the chart and writes it in format. A failed load still
// yields a page or image showing the fallback text; the geometry API answers
// 503 instead.
func (s *Server) serveFormat(w http.ResponseWriter, r *http.Request, format output.Format) {
	started := time.Now()
	width, err := widthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	surface := s.render(r.Context(), width)
	status := "ok"
	if surface.Failed {
		status = "fallback"
	}

	var buf bytes.Buffer
	if err := output.Write(&buf, format, surface); err != nil {
		s.metrics.observe(string(format), "error", started)
		log.Error().Err(err).Str("format", string(format)).Msg("failed to write chart")
		writeError(w, http.StatusInternalServerError, "failed to write chart")
		return
	}
	s.metrics.observe(string(format), status, started)

	code := http.StatusOK
	if surface.Failed && format == output.FormatJSON {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(code)
	if r.Method != http.MethodHead {
		_, _ = w.Write(buf.Bytes())
	}
}

// render builds a fresh document and renderer for one request.
func (s *Server) render(ctx context.Context, width int) output.Surface {
	doc := chart.NewPage(s.options, width)
	surface := output.Surface{Doc: doc, Options: s.options}

	source, err := s.open(s.data)
	if err != nil {
		log.Error().Err(err).Str("data", s.data.Path).Msg("failed to open data source")
		chart.New(doc, nil, s.options).ShowFallback()
		surface.Failed = true
		return surface
	}
	g, err := chart.New(doc, source, s.options).Run(ctx)
	surface.Geometry = g
	surface.Failed = err != nil
	return surface
}

// handleData serves the local CSV the chart is drawn from.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	source, err := s.open(s.data)
	if err != nil {
		writeError(w, http.StatusNotFound, "no dataset configured")
		return
	}
	csvSource, ok := source.(*dataset.CSVSource)
	if !ok {
		writeError(w, http.StatusNotFound, "dataset is not a local csv file")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	http.ServeFile(w, r, csvSource.Path())
}

// healthCheck returns server health status
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"metrics":   s.config.EnableMetrics,
		"timestamp": time.Now().UTC(),
	})
}

func widthParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("width")
	if raw == "" {
		return 0, nil
	}
	width, err := strconv.Atoi(raw)
	if err != nil || width <= 0 || width > maxWidth {
		return 0, fmt.Errorf("width must be an integer between 1 and %d", maxWidth)
	}
	return width, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}

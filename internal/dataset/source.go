// Package dataset loads category counts from CSV files, HTTP endpoints and SQLite.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/topbars/internal/model"
)

const (
	// DefaultPath is the dataset the chart was built for.
	DefaultPath         = "boston_311_2025_by_reason.csv"
	DefaultReasonColumn = "reason"
	DefaultCountColumn  = "Count"
	DefaultTable        = "reasons"
	defaultTimeout      = 60 * time.Second
)

// Supported source formats.
const (
	FormatCSV    = "csv"
	FormatHTTP   = "http"
	FormatSQLite = "sqlite"
)

// ErrNoColumn is returned when a required column is missing from the dataset.
var ErrNoColumn = errors.New("required column not found")

// Source yields the raw rows of a dataset.
type Source interface {
	Load(ctx context.Context) ([]model.Row, error)
	Describe() string
}

// Open selects a source for cfg. An explicit format wins; otherwise the location
// decides: http(s) URLs are fetched, SQLite extensions are queried and everything
// else is read as a CSV file.
func Open(cfg model.DataConfig) (Source, error) {
	cfg = withDefaults(cfg)
	format := strings.ToLower(strings.TrimSpace(cfg.Format))
	if format == "" {
		format = detectFormat(cfg.Path)
	}
	switch format {
	case FormatCSV:
		return NewCSVSource(cfg.Path, cfg.ReasonColumn, cfg.CountColumn), nil
	case FormatHTTP:
		return NewHTTPSource(cfg.Path, cfg.ReasonColumn, cfg.CountColumn, cfg.Timeout), nil
	case FormatSQLite:
		return NewSQLiteSource(cfg.Path, cfg.Table, cfg.ReasonColumn, cfg.CountColumn)
	default:
		return nil, fmt.Errorf("unknown data format %q (expected csv, http or sqlite)", cfg.Format)
	}
}

func withDefaults(cfg model.DataConfig) model.DataConfig {
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if cfg.ReasonColumn == "" {
		cfg.ReasonColumn = DefaultReasonColumn
	}
	if cfg.CountColumn == "" {
		cfg.CountColumn = DefaultCountColumn
	}
	if cfg.Table == "" {
		cfg.Table = DefaultTable
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return cfg
}

func detectFormat(path string) string {
	lower := strings.ToLower(path)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return FormatHTTP
	}
	switch filepath.Ext(lower) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatCSV
	}
}

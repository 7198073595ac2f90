// Package model defines shared data structures.
package model

import "time"

// Row is one raw tabular row before numeric coercion.
type Row struct {
	Line   int
	Reason string
	Count  string
}

// Record is a category with its numeric count.
type Record struct {
	Reason string  `json:"reason" yaml:"reason"`
	Count  float64 `json:"count" yaml:"count"`
}

// InvalidCountPolicy decides what happens to counts that do not parse as a
// non-negative number.
type InvalidCountPolicy string

const (
	// InvalidCountZero coerces bad counts to 0 and reports them.
	InvalidCountZero InvalidCountPolicy = "zero"
	// InvalidCountError aborts the render on the first bad count.
	InvalidCountError InvalidCountPolicy = "error"
)

// ChartConfig defines render settings.
type ChartConfig struct {
	ContainerID   string
	HeadlineID    string
	SubheadlineID string
	Headline      string
	Subheadline   string
	FallbackText  string
	Width         int
	Top           int
	InvalidCount  InvalidCountPolicy
}

// DataConfig describes where the dataset comes from.
type DataConfig struct {
	Path         string
	Format       string
	Table        string
	ReasonColumn string
	CountColumn  string
	Timeout      time.Duration
}

// ServeConfig defines HTTP server settings.
type ServeConfig struct {
	Host            string
	Port            int
	EnableMetrics   bool
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

package dataset

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/verte-zerg/topbars/internal/model"
)

// HTTPSource fetches a CSV dataset over HTTP.
type HTTPSource struct {
	url          string
	reasonColumn string
	countColumn  string
	client       *http.Client
}

// NewHTTPSource returns a source fetching url with the given client timeout.
func NewHTTPSource(url, reasonColumn, countColumn string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:          url,
		reasonColumn: reasonColumn,
		countColumn:  countColumn,
		client:       &http.Client{Timeout: timeout},
	}
}

// Describe implements Source.
func (s *HTTPSource) Describe() string {
	return s.url
}

// Load implements Source.
func (s *HTTPSource) Load(ctx context.Context) ([]model.Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected dataset status: %s", resp.Status)
	}
	return ReadCSV(resp.Body, s.reasonColumn, s.countColumn)
}

// Package stats contains ranking and count formatting helpers.
package stats

import (
	"sort"

	"github.com/verte-zerg/topbars/internal/model"
)

// DefaultTop is the number of categories the chart shows.
const DefaultTop = 10

// Top returns the n records with the highest counts, highest first. Records with
// equal counts keep their input order. The input slice is not modified.
func Top(records []model.Record, n int) []model.Record {
	if n <= 0 || len(records) == 0 {
		return []model.Record{}
	}
	ranked := make([]model.Record, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n:n]
}

// MaxCount returns the largest count in records, or 0 when empty.
func MaxCount(records []model.Record) float64 {
	maxVal := 0.0
	for _, r := range records {
		if r.Count > maxVal {
			maxVal = r.Count
		}
	}
	return maxVal
}

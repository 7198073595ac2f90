package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/verte-zerg/topbars/internal/model"
)

// Issue describes a row whose values could not be used as-is.
type Issue struct {
	Line   int
	Reason string
	Value  string
	Detail string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d (%q): %s %q", i.Line, i.Reason, i.Detail, i.Value)
}

// InvalidCountError reports a count rejected under the error policy.
type InvalidCountError struct {
	Issue Issue
}

func (e *InvalidCountError) Error() string {
	return "invalid count at " + e.Issue.String()
}

// ParsePolicy parses an invalid-count policy name. Empty selects the default.
func ParsePolicy(name string) (model.InvalidCountPolicy, error) {
	switch model.InvalidCountPolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "", model.InvalidCountZero:
		return model.InvalidCountZero, nil
	case model.InvalidCountError:
		return model.InvalidCountError, nil
	default:
		return "", fmt.Errorf("unknown invalid-count policy %q (expected zero or error)", name)
	}
}

// Coerce converts raw rows into records. Empty counts are 0. Counts that are not
// finite non-negative numbers become 0 under the zero policy and abort under the
// error policy. Every adjustment is reported as an Issue.
func Coerce(rows []model.Row, policy model.InvalidCountPolicy) ([]model.Record, []Issue, error) {
	records := make([]model.Record, 0, len(rows))
	var issues []Issue
	for _, row := range rows {
		if strings.TrimSpace(row.Reason) == "" {
			issues = append(issues, Issue{Line: row.Line, Reason: row.Reason, Value: row.Reason, Detail: "empty reason"})
		}
		count, ok := parseCount(row.Count)
		if !ok {
			issue := Issue{Line: row.Line, Reason: row.Reason, Value: row.Count, Detail: "invalid count"}
			if policy == model.InvalidCountError {
				return nil, issues, &InvalidCountError{Issue: issue}
			}
			issues = append(issues, issue)
			count = 0
		}
		records = append(records, model.Record{Reason: row.Reason, Count: count})
	}
	return records, issues, nil
}

func parseCount(raw string) (float64, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"regexp"

	"github.com/verte-zerg/topbars/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads reason/count pairs from a SQLite table.
type SQLiteSource struct {
	path  string
	query string
}

// NewSQLiteSource validates the table and column identifiers and returns a source
// for the database at path.
func NewSQLiteSource(path, table, reasonColumn, countColumn string) (*SQLiteSource, error) {
	for _, ident := range []string{table, reasonColumn, countColumn} {
		if !identifierPattern.MatchString(ident) {
			return nil, fmt.Errorf("invalid sqlite identifier %q", ident)
		}
	}
	query := fmt.Sprintf(`SELECT rowid, %s, %s FROM %s ORDER BY rowid ASC`, reasonColumn, countColumn, table)
	return &SQLiteSource{path: path, query: query}, nil
}

// Describe implements Source.
func (s *SQLiteSource) Describe() string {
	return "sqlite:" + s.path
}

// Load implements Source.
func (s *SQLiteSource) Load(ctx context.Context) ([]model.Row, error) {
	// The driver would otherwise create an empty database for a missing path.
	if _, err := os.Stat(s.path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close for read-only dataset.
			_ = cerr
		}
	}()

	rows, err := db.QueryContext(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.Row
	for rows.Next() {
		var (
			rowID  int64
			reason sql.NullString
			count  sql.NullString
		)
		if err := rows.Scan(&rowID, &reason, &count); err != nil {
			return nil, err
		}
		result = append(result, model.Row{
			Line:   int(rowID),
			Reason: reason.String,
			Count:  count.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/verte-zerg/topbars/internal/model"
)

// CSVSource reads rows from a local CSV file with a header line.
type CSVSource struct {
	path         string
	reasonColumn string
	countColumn  string
}

// NewCSVSource returns a source reading path.
func NewCSVSource(path, reasonColumn, countColumn string) *CSVSource {
	return &CSVSource{path: path, reasonColumn: reasonColumn, countColumn: countColumn}
}

// Path returns the file the source reads.
func (s *CSVSource) Path() string {
	return s.path
}

// Describe implements Source.
func (s *CSVSource) Describe() string {
	return "csv:" + s.path
}

// Load implements Source.
func (s *CSVSource) Load(_ context.Context) ([]model.Row, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only dataset.
			_ = cerr
		}
	}()
	return ReadCSV(file, s.reasonColumn, s.countColumn)
}

// ReadCSV parses a CSV stream whose first record is the header.
func ReadCSV(r io.Reader, reasonColumn, countColumn string) ([]model.Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dataset is empty")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	reasonIdx, err := columnIndex(header, reasonColumn)
	if err != nil {
		return nil, err
	}
	countIdx, err := columnIndex(header, countColumn)
	if err != nil {
		return nil, err
	}

	var rows []model.Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, model.Row{
			Line:   line,
			Reason: record[reasonIdx],
			Count:  record[countIdx],
		})
	}
	return rows, nil
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i, nil
		}
	}
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q (have %s)", ErrNoColumn, name, strings.Join(header, ", "))
}

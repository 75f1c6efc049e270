package sink

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gegedenice/star-harvest/starharvester"
	"github.com/klauspost/pgzip"
)

// CSVSink writes rows to a CSV file with a fixed header. Paths ending in
// ".gz" are gzip-compressed.
type CSVSink struct {
	path   string
	file   *os.File
	gz     *pgzip.Writer
	writer *csv.Writer
	width  int
	rows   int
}

// OpenCSV creates (or truncates) path and writes the header line.
func OpenCSV(path string, maxContributors int) (*CSVSink, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}

	s := &CSVSink{path: path, file: file}
	var w io.Writer = file
	if strings.HasSuffix(path, ".gz") {
		s.gz = pgzip.NewWriter(file)
		w = s.gz
	}
	// LF terminators: UseCRLF would also rewrite the blank lines inside
	// multi-paragraph descriptions.
	s.writer = csv.NewWriter(w)

	header := starharvester.Columns(maxContributors)
	s.width = len(header)
	if err := s.writer.Write(header); err != nil {
		s.Close()
		return nil, fmt.Errorf("writing header to %s: %w", path, err)
	}
	return s, nil
}

// Rows is the number of data rows written so far.
func (s *CSVSink) Rows() int { return s.rows }

func (s *CSVSink) WriteRow(_ context.Context, row *starharvester.Row) error {
	values := row.Values()
	if len(values) != s.width {
		return fmt.Errorf("row %s has %d cells, header has %d", row.OaiID, len(values), s.width)
	}
	if err := s.writer.Write(values); err != nil {
		return fmt.Errorf("writing row %s to %s: %w", row.OaiID, s.path, err)
	}
	s.rows++
	return nil
}

// Close flushes buffered rows and releases the file. Rows written before a
// harvest failure are kept.
func (s *CSVSink) Close() error {
	var errs []error
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		errs = append(errs, err)
	}
	if s.gz != nil {
		if err := s.gz.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.file.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("closing %s: %w", s.path, err)
	}
	return nil
}

// Package sink holds the destinations of harvested rows: the CSV file and
// optional database mirrors.
package sink

import (
	"context"
	"errors"

	"github.com/gegedenice/star-harvest/starharvester"
)

// Sink accepts rows in harvest order and must be closed once.
type Sink interface {
	WriteRow(ctx context.Context, row *starharvester.Row) error
	Close() error
}

// Multi writes every row to each sink in turn. The first failure stops the
// row: sinks earlier in the list keep it, later ones never see it, and the
// harvester does not count it as kept. With the CSV file first, a row
// rejected by a database mirror is therefore in the CSV but missing from
// the kept total.
type Multi []Sink

func (m Multi) WriteRow(ctx context.Context, row *starharvester.Row) error {
	for _, s := range m {
		if err := s.WriteRow(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink, even after a failure, and joins the errors.
func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

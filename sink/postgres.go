package sink

import (
	"context"
	"fmt"
	"strings"

	"github.com/gegedenice/star-harvest/starharvester"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var postgresColumns = []string{
	"oai_id", "datestamp", "set_specs", "set_etab", "set_ddc", "is_diffusable",
	"title", "subject", "description_fr", "description_en",
	"language", "identifier", "creator", "date", "year", "rights",
	"contributors", "run_id",
}

// PostgresSink mirrors kept rows into a PostgreSQL table, created on open
// if missing.
type PostgresSink struct {
	pool      *pgxpool.Pool
	insertSQL string
	runID     string
}

func OpenPostgres(ctx context.Context, url, table, runID string) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL(table)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating table %s: %w", table, err)
	}
	return &PostgresSink{pool: pool, insertSQL: insertSQL(table), runID: runID}, nil
}

func createTableSQL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	oai_id TEXT NOT NULL,
	datestamp TEXT NOT NULL DEFAULT '',
	set_specs TEXT[] NOT NULL DEFAULT '{}',
	set_etab TEXT NOT NULL DEFAULT '',
	set_ddc TEXT NOT NULL DEFAULT '',
	is_diffusable BOOLEAN NOT NULL DEFAULT FALSE,
	title TEXT NOT NULL DEFAULT '',
	subject TEXT NOT NULL DEFAULT '',
	description_fr TEXT NOT NULL DEFAULT '',
	description_en TEXT NOT NULL DEFAULT '',
	language TEXT NOT NULL DEFAULT '',
	identifier TEXT NOT NULL DEFAULT '',
	creator TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL DEFAULT '',
	year TEXT NOT NULL DEFAULT '',
	rights TEXT NOT NULL DEFAULT '',
	contributors TEXT[] NOT NULL DEFAULT '{}',
	run_id TEXT NOT NULL,
	harvested_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, pgx.Identifier{table}.Sanitize())
}

func insertSQL(table string) string {
	placeholders := make([]string, len(postgresColumns))
	for i := range postgresColumns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{table}.Sanitize(),
		strings.Join(postgresColumns, ", "),
		strings.Join(placeholders, ", "))
}

func (s *PostgresSink) WriteRow(ctx context.Context, row *starharvester.Row) error {
	doc := ThesisDocument(row, s.runID)
	setSpecs := doc.SetSpecs
	if setSpecs == nil {
		setSpecs = []string{}
	}
	_, err := s.pool.Exec(ctx, s.insertSQL,
		doc.OaiID, doc.Datestamp, setSpecs, doc.SetEtab, doc.SetDDC, doc.IsDiffusable,
		doc.Title, doc.Subject, doc.DescriptionFr, doc.DescriptionEn,
		doc.Language, doc.Identifier, doc.Creator, doc.Date, doc.Year, doc.Rights,
		doc.Contributors, doc.RunID,
	)
	if err != nil {
		return fmt.Errorf("inserting %s into postgres: %w", row.OaiID, err)
	}
	return nil
}

func (s *PostgresSink) Close() error {
	s.pool.Close()
	return nil
}

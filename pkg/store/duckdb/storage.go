package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const IngestionsSchema = `
	CREATE TABLE IF NOT EXISTS ingestions (
		id VARCHAR NOT NULL PRIMARY KEY,
		project VARCHAR NOT NULL,
		root VARCHAR NOT NULL,
		start_year INTEGER NOT NULL,
		years INTEGER NOT NULL,
		ingested_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`
const SeriesValuesSchema = `
	CREATE TABLE IF NOT EXISTS series_values (
		ingestion_id VARCHAR NOT NULL,
		stream VARCHAR NOT NULL,
		category VARCHAR NOT NULL,
		asset VARCHAR NOT NULL,
		column_name VARCHAR NOT NULL,
		row_index INTEGER NOT NULL,
		ts TIMESTAMP NOT NULL,
		value DOUBLE,
		PRIMARY KEY (ingestion_id, stream, category, asset, column_name, row_index)
	);
`
const IngestionIssuesSchema = `
	CREATE TABLE IF NOT EXISTS ingestion_issues (
		ingestion_id VARCHAR NOT NULL,
		category VARCHAR,
		asset VARCHAR,
		kind VARCHAR NOT NULL,
		message VARCHAR
	);
`

var bootQueries = []string{
	IngestionsSchema,
	SeriesValuesSchema,
	IngestionIssuesSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			if _, err := exec.ExecContext(context.Background(), query, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", settings.DbPath, err)
	}

	return sql.OpenDB(c), nil
}

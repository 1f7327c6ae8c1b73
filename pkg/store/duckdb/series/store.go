package series

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/result-atlas/pkg/models/store"
	"github.com/de-tools/result-atlas/pkg/store/duckdb"
)

type Store interface {
	AddIngestion(ctx context.Context, ingestion store.Ingestion) error
	AddPoints(ctx context.Context, ingestionID string, points []store.SeriesPoint) error
	AddIssues(ctx context.Context, ingestionID string, issues []store.IngestionIssue) error
	ListIngestions(ctx context.Context, project string) ([]store.Ingestion, error)
	CountPoints(ctx context.Context, ingestionID string) (int64, error)
}

type seriesStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &seriesStore{db: db}, nil
}

func (s *seriesStore) AddIngestion(ctx context.Context, ingestion store.Ingestion) error {
	query := `
		INSERT INTO ingestions (id, project, root, start_year, years, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := duckdb.Execer(ctx, s.db).ExecContext(ctx, query,
		ingestion.ID,
		ingestion.Project,
		ingestion.Root,
		ingestion.StartYear,
		ingestion.Years,
		ingestion.IngestedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ingestion: %w", err)
	}
	return nil
}

func (s *seriesStore) AddPoints(ctx context.Context, ingestionID string, points []store.SeriesPoint) error {
	if len(points) == 0 {
		return nil
	}
	logger := zerolog.Ctx(ctx)

	query := `
		INSERT INTO series_values (
			ingestion_id, stream, category, asset, column_name, row_index, ts, value
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?
		)`

	stmt, err := duckdb.Execer(ctx, s.db).PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		_, err = stmt.ExecContext(ctx,
			ingestionID,
			p.Stream,
			p.Category,
			p.Asset,
			p.Column,
			p.Row,
			p.Time,
			p.Value,
		)
		if err != nil {
			return fmt.Errorf("insert point %s/%s/%s[%d]: %w", p.Stream, p.Asset, p.Column, p.Row, err)
		}
	}

	logger.Debug().Str("ingestion", ingestionID).Int("points", len(points)).Msg("series points stored")
	return nil
}

func (s *seriesStore) AddIssues(ctx context.Context, ingestionID string, issues []store.IngestionIssue) error {
	if len(issues) == 0 {
		return nil
	}

	query := `
		INSERT INTO ingestion_issues (ingestion_id, category, asset, kind, message)
		VALUES (?, ?, ?, ?, ?)`

	stmt, err := duckdb.Execer(ctx, s.db).PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, issue := range issues {
		if _, err := stmt.ExecContext(ctx, ingestionID, issue.Category, issue.Asset, issue.Kind, issue.Message); err != nil {
			return fmt.Errorf("insert issue: %w", err)
		}
	}
	return nil
}

func (s *seriesStore) ListIngestions(ctx context.Context, project string) ([]store.Ingestion, error) {
	query := `
		SELECT id, project, root, start_year, years, ingested_at
		FROM ingestions
		WHERE project = ?
		ORDER BY ingested_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, project)
	if err != nil {
		return nil, fmt.Errorf("query ingestions: %w", err)
	}
	defer rows.Close()

	ingestions := make([]store.Ingestion, 0)
	for rows.Next() {
		var in store.Ingestion
		if err := rows.Scan(&in.ID, &in.Project, &in.Root, &in.StartYear, &in.Years, &in.IngestedAt); err != nil {
			return nil, err
		}
		ingestions = append(ingestions, in)
	}
	return ingestions, rows.Err()
}

// CountPoints sees the uncommitted rows of a transaction bound to ctx.
func (s *seriesStore) CountPoints(ctx context.Context, ingestionID string) (int64, error) {
	var count int64
	err := duckdb.Execer(ctx, s.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM series_values WHERE ingestion_id = ?`, ingestionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count points: %w", err)
	}
	return count, nil
}

// Package export writes ingested result sets into a DuckDB database.
package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/result-atlas/pkg/adapters"
	"github.com/de-tools/result-atlas/pkg/models/domain"
	"github.com/de-tools/result-atlas/pkg/models/store"
	"github.com/de-tools/result-atlas/pkg/services/query"
	"github.com/de-tools/result-atlas/pkg/store/duckdb"
	"github.com/de-tools/result-atlas/pkg/store/duckdb/series"
)

// ErrIncompleteExport is returned when the stored point count of an ingestion
// differs from the points written for it.
var ErrIncompleteExport = errors.New("incomplete export")

type Exporter struct {
	db    *sql.DB
	store series.Store
	now   func() time.Time
}

func NewExporter(db *sql.DB, store series.Store) *Exporter {
	return &Exporter{db: db, store: store, now: time.Now}
}

// Export stores the raw series, metadata and issues of rs under its ID in one
// transaction and returns the number of points written. Derived aggregates are
// not stored.
func (e *Exporter) Export(ctx context.Context, project string, rs *domain.ResultSet) (int, error) {
	logger := zerolog.Ctx(ctx)

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin export: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	txCtx := duckdb.WithTransaction(ctx, tx)

	if err := e.store.AddIngestion(txCtx, adapters.MapResultSetDomainToStoreIngestion(project, rs, e.now().UTC())); err != nil {
		return 0, err
	}
	if err := e.store.AddIssues(txCtx, rs.ID, adapters.MapIssuesDomainToStore(rs.Issues)); err != nil {
		return 0, err
	}

	written := 0
	write := func(stream query.Stream, category domain.AssetCategory, asset string, s domain.Series) error {
		points := adapters.MapSeriesDomainToStorePoints(string(stream), category, asset, s)
		if err := e.store.AddPoints(txCtx, rs.ID, points); err != nil {
			return err
		}
		written += len(points)
		return nil
	}

	if err := write(query.StreamModel, "", "", rs.Model.Dispatch); err != nil {
		return 0, err
	}
	if err := write(query.StreamOperationModes, "", "", rs.Model.OperationModes); err != nil {
		return 0, err
	}
	for _, category := range domain.Categories() {
		for _, name := range rs.Architecture()[category] {
			if err := write(query.StreamAsset, category, name, rs.Assets[category][name].Series); err != nil {
				return 0, err
			}
		}
	}

	stored, err := e.store.CountPoints(txCtx, rs.ID)
	if err != nil {
		return 0, err
	}
	if stored != int64(written) {
		return 0, fmt.Errorf("%w: wrote %d points for %s, store holds %d", ErrIncompleteExport, written, rs.ID, stored)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit export: %w", err)
	}

	logger.Info().Str("project", project).Str("id", rs.ID).Int("points", written).Msg("result set exported")
	return written, nil
}

// History lists the exported ingestions of project, newest first.
func (e *Exporter) History(ctx context.Context, project string) ([]store.Ingestion, error) {
	ingestions, err := e.store.ListIngestions(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("list ingestions of %s: %w", project, err)
	}
	return ingestions, nil
}

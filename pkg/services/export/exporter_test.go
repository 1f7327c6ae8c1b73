package export

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/mock"

	"github.com/de-tools/result-atlas/pkg/models/domain"
	"github.com/de-tools/result-atlas/pkg/models/store"
	"github.com/de-tools/result-atlas/pkg/services/config"
	"github.com/de-tools/result-atlas/pkg/services/ingest"
	"github.com/de-tools/result-atlas/pkg/store/duckdb"
	"github.com/de-tools/result-atlas/pkg/store/duckdb/series"
	"github.com/de-tools/result-atlas/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_Export(t *testing.T) {
	// Given
	p := testutil.NewProject(t).
		WriteModel(domain.HoursPerYear, true).
		AddAssetSeries(domain.CategoryStorage, "battery", testutil.StorageHeader, domain.HoursPerYear).
		AddAssetReport(domain.CategoryRenewable, "solar", testutil.AssetReport)
	rs, err := ingest.Ingest(context.Background(), p.Root, config.Default())
	require.NoError(t, err)

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store, err := series.NewStore(db)
	require.NoError(t, err)

	// When
	written, err := NewExporter(db, store).Export(context.Background(), "demo", rs)

	// Then
	require.NoError(t, err)
	// 2 dispatch + 2 mode + 4 battery columns; solar carries no columns
	assert.Equal(t, 8*domain.HoursPerYear, written)

	count, err := store.CountPoints(context.Background(), rs.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(written), count)

	ingestions, err := NewExporter(db, store).History(context.Background(), "demo")
	require.NoError(t, err)
	require.Len(t, ingestions, 1)
	assert.Equal(t, rs.ID, ingestions[0].ID)
	assert.Equal(t, 1, ingestions[0].Years)

	var issues int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM ingestion_issues WHERE ingestion_id = ?`, rs.ID).Scan(&issues))
	assert.Equal(t, len(rs.Issues), issues)

	t.Run("re-export of the same ingestion fails and leaves no partial rows", func(t *testing.T) {
		_, err := NewExporter(db, store).Export(context.Background(), "demo", rs)
		assert.Error(t, err)

		count, err := store.CountPoints(context.Background(), rs.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(written), count)
	})
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) AddIngestion(ctx context.Context, ingestion store.Ingestion) error {
	return m.Called(ctx, ingestion).Error(0)
}

func (m *mockStore) AddPoints(ctx context.Context, ingestionID string, points []store.SeriesPoint) error {
	return m.Called(ctx, ingestionID, points).Error(0)
}

func (m *mockStore) AddIssues(ctx context.Context, ingestionID string, issues []store.IngestionIssue) error {
	return m.Called(ctx, ingestionID, issues).Error(0)
}

func (m *mockStore) ListIngestions(ctx context.Context, project string) ([]store.Ingestion, error) {
	args := m.Called(ctx, project)
	ingestions, _ := args.Get(0).([]store.Ingestion)
	return ingestions, args.Error(1)
}

func (m *mockStore) CountPoints(ctx context.Context, ingestionID string) (int64, error) {
	args := m.Called(ctx, ingestionID)
	return args.Get(0).(int64), args.Error(1)
}

func TestExporter_Export_CountMismatchRollsBack(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	axis := domain.TimeAxis{time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2030, 1, 1, 1, 0, 0, 0, time.UTC)}
	rs := &domain.ResultSet{
		ID:   "ing-1",
		Axis: axis,
		Model: domain.ModelResult{
			Dispatch:       domain.Series{Time: axis, Columns: []domain.Column{{Name: "Total Dispatch [kW]", Values: []float64{1, 2}}}},
			OperationModes: domain.Series{Time: axis},
		},
	}

	s := &mockStore{}
	s.On("AddIngestion", mock.Anything, mock.Anything).Return(nil)
	s.On("AddIssues", mock.Anything, "ing-1", mock.Anything).Return(nil)
	s.On("AddPoints", mock.Anything, "ing-1", mock.Anything).Return(nil)
	s.On("CountPoints", mock.Anything, "ing-1").Return(int64(1), nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	written, err := NewExporter(db, s).Export(context.Background(), "demo", rs)

	assert.ErrorIs(t, err, ErrIncompleteExport)
	assert.Zero(t, written)
	s.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

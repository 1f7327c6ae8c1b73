package ingest

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/result-atlas/pkg/models/domain"
	"github.com/de-tools/result-atlas/pkg/services/config"
	"github.com/de-tools/result-atlas/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuesOf(rs *domain.ResultSet, kind domain.IssueKind) []domain.IngestIssue {
	var out []domain.IngestIssue
	for _, issue := range rs.Issues {
		if issue.Kind == kind {
			out = append(out, issue)
		}
	}
	return out
}

func TestIngest_CompleteProject(t *testing.T) {
	// Given
	p := testutil.NewProject(t).
		WriteModel(domain.HoursPerYear, true).
		WriteModelReport(testutil.ModelReport).
		AddAssetSeries(domain.CategoryCombustion, "diesel", testutil.ProductionHeader, domain.HoursPerYear).
		AddAssetReport(domain.CategoryCombustion, "diesel", testutil.CombustionReport).
		AddAssetSeries(domain.CategoryRenewable, "solar", testutil.RenewableHeader, domain.HoursPerYear).
		AddAssetReport(domain.CategoryRenewable, "solar", testutil.AssetReport).
		AddAssetSeries(domain.CategoryStorage, "battery", testutil.StorageHeader, domain.HoursPerYear)

	// When
	rs, err := Ingest(context.Background(), p.Root, config.Default())

	// Then
	require.NoError(t, err)
	assert.NotEmpty(t, rs.ID)
	assert.Equal(t, p.Root, rs.Root)
	assert.Equal(t, domain.ProjectMetadata{StartYear: 2030, LifetimeYears: 1, Years: 1, SamplingIntervalHours: 1}, rs.Metadata)
	require.Len(t, rs.Axis, domain.HoursPerYear)
	assert.Equal(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), rs.Axis[0])

	assert.Equal(t, []string{"Electrical Load [kW]", "Total Dispatch [kW]"}, rs.Model.Dispatch.ColumnNames())
	assert.Equal(t, []string{"Operation Mode A", "Operation Mode B"}, rs.Model.OperationModes.ColumnNames())
	assert.True(t, rs.Model.HasOperationModes)

	require.Len(t, rs.OperationModes.Rows, 1)
	row := rs.OperationModes.Rows[0]
	assert.Equal(t, 1, row.Year)
	assert.Equal(t, 4380.0, row.Hours["Operation Mode A"])
	assert.Equal(t, 50.0, row.Percentages["Operation Mode B"])

	assert.Equal(t, domain.ProjectKPIs{
		LifetimeYears:             1,
		NetPresentCost:            2500000.75,
		LevelizedCostOfEnergy:     0.3123,
		RenewableFraction:         62.5,
		TotalDispatchAndDischarge: 120000,
		TotalFuelConsumed:         5000,
	}, rs.KPIs)
	assert.Contains(t, rs.Sections.Summary, "Years: 1.0")
	assert.Contains(t, rs.Sections.Results, "Net Present Cost")
	assert.True(t, strings.HasPrefix(rs.Sections.Emissions, "Total Carbon Dioxide"))

	assert.Equal(t, map[domain.AssetCategory][]string{
		domain.CategoryCombustion:    {"diesel"},
		domain.CategoryNoncombustion: {},
		domain.CategoryRenewable:     {"solar"},
		domain.CategoryStorage:       {"battery"},
	}, rs.Architecture())

	diesel, err := rs.Asset(domain.CategoryCombustion, "diesel")
	require.NoError(t, err)
	assert.True(t, diesel.HasSeries)
	assert.True(t, diesel.HasReport)
	assert.Equal(t, "Total Production: 1000 kWh", diesel.ResultsText)
	assert.Equal(t, "Total Carbon Dioxide (CO2) Emissions: 5 kg", diesel.EmissionsText)

	solar, err := rs.Asset(domain.CategoryRenewable, "solar")
	require.NoError(t, err)
	assert.Empty(t, solar.EmissionsText)
	assert.Equal(t, "Total Production: 750 kWh", solar.ResultsText)

	battery, err := rs.Asset(domain.CategoryStorage, "battery")
	require.NoError(t, err)
	assert.False(t, battery.HasReport)
	assert.Equal(t, "No Specs Found!", battery.SpecText)
	assert.Len(t, issuesOf(rs, domain.IssueMissingReport), 1)

	missing := issuesOf(rs, domain.IssueMissingCategory)
	require.Len(t, missing, 1)
	assert.Equal(t, domain.CategoryNoncombustion, missing[0].Category)

	assert.NoError(t, rs.Validate())
}

func TestIngest_RenewableOnly(t *testing.T) {
	p := testutil.NewProject(t).
		WriteModel(domain.HoursPerYear, true).
		WriteModelReport(testutil.ModelReport).
		AddAssetSeries(domain.CategoryRenewable, "wind", testutil.RenewableHeader, domain.HoursPerYear).
		AddAssetReport(domain.CategoryRenewable, "wind", testutil.AssetReport)

	rs, err := Ingest(context.Background(), p.Root, config.Default())

	require.NoError(t, err)
	arch := rs.Architecture()
	assert.Equal(t, []string{"wind"}, arch[domain.CategoryRenewable])
	assert.Empty(t, arch[domain.CategoryCombustion])
	assert.Empty(t, arch[domain.CategoryNoncombustion])
	assert.Empty(t, arch[domain.CategoryStorage])
	assert.Len(t, issuesOf(rs, domain.IssueMissingCategory), 3)
	assert.Len(t, rs.Assets, len(domain.Categories()))
}

func TestIngest_UnlistableCategoryRoot(t *testing.T) {
	p := testutil.NewProject(t).
		WriteModel(domain.HoursPerYear, true).
		WriteModelReport(testutil.ModelReport).
		AddAssetSeries(domain.CategoryRenewable, "wind", testutil.RenewableHeader, domain.HoursPerYear)
	require.NoError(t, os.WriteFile(filepath.Join(p.Root, testutil.CategoryDirs[domain.CategoryStorage]), []byte("not a folder"), 0o644))

	rs, err := Ingest(context.Background(), p.Root, config.Default())

	require.NoError(t, err)
	require.Contains(t, rs.Assets, domain.CategoryStorage)
	assert.Empty(t, rs.Assets[domain.CategoryStorage])
	assert.Equal(t, []string{"wind"}, rs.Architecture()[domain.CategoryRenewable])

	var storageIssues []domain.IngestIssue
	for _, issue := range issuesOf(rs, domain.IssueMissingCategory) {
		if issue.Category == domain.CategoryStorage {
			storageIssues = append(storageIssues, issue)
		}
	}
	require.Len(t, storageIssues, 1)
	assert.Contains(t, storageIssues[0].Message, "list storage assets")
}

func TestIngest_NoModelReport(t *testing.T) {
	p := testutil.NewProject(t).WriteModel(domain.HoursPerYear, true)

	rs, err := Ingest(context.Background(), p.Root, config.Default())

	require.NoError(t, err)
	assert.Equal(t, domain.ProjectSections{
		Summary:   "No Model Summary!",
		Results:   "No Results Summary!",
		Emissions: "No Emission Results!",
	}, rs.Sections)
	assert.Equal(t, domain.ProjectKPIs{}, rs.KPIs)
	assert.Len(t, issuesOf(rs, domain.IssueMissingReport), 1)
	assert.Empty(t, issuesOf(rs, domain.IssueKPIParse))
}

func TestIngest_MissingNetPresentCost(t *testing.T) {
	report := strings.Replace(testutil.ModelReport, "Net Present Cost: 2500000.75 CAD\n", "", 1)
	p := testutil.NewProject(t).WriteModel(domain.HoursPerYear, true).WriteModelReport(report)

	rs, err := Ingest(context.Background(), p.Root, config.Default())

	require.NoError(t, err)
	assert.Equal(t, 0.0, rs.KPIs.NetPresentCost)
	assert.Equal(t, 0.3123, rs.KPIs.LevelizedCostOfEnergy)
	issues := issuesOf(rs, domain.IssueKPIParse)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "Net Present Cost")
}

func TestIngest_PlaceholderOperationModes(t *testing.T) {
	p := testutil.NewProject(t).WriteModel(domain.HoursPerYear, false).WriteModelReport(testutil.ModelReport)

	rs, err := Ingest(context.Background(), p.Root, config.Default())

	require.NoError(t, err)
	assert.False(t, rs.Model.HasOperationModes)
	assert.Equal(t, []string{"Operation Mode A", "Operation Mode B"}, rs.Model.OperationModes.ColumnNames())
	assert.Equal(t, domain.HoursPerYear, rs.Model.OperationModes.Len())
	require.Len(t, rs.OperationModes.Rows, 1)
	assert.Equal(t, 0.0, rs.OperationModes.Rows[0].Percentages["Operation Mode A"])
	assert.Equal(t, 0.0, rs.OperationModes.Rows[0].Hours["Operation Mode B"])
}

func TestIngest_MultiYearAxis(t *testing.T) {
	cfg := config.Default()
	cfg.StartYear = 2031
	p := testutil.NewProject(t).WriteModel(2*domain.HoursPerYear, true)

	rs, err := Ingest(context.Background(), p.Root, cfg)

	require.NoError(t, err)
	assert.Equal(t, 2, rs.Metadata.Years)
	require.Len(t, rs.Axis, 2*domain.HoursPerYear)
	assert.Equal(t, time.Date(2032, 1, 1, 0, 0, 0, 0, time.UTC), rs.Axis[domain.HoursPerYear])
	assert.Len(t, rs.OperationModes.Rows, 2)
}

func TestIngest_AssetMerge(t *testing.T) {
	p := testutil.NewProject(t).
		WriteModel(domain.HoursPerYear, true).
		WriteModelReport(testutil.ModelReport).
		AddAssetReport(domain.CategoryNoncombustion, "hydro", testutil.AssetReport).
		AddAssetSeries(domain.CategoryNoncombustion, "short", testutil.ProductionHeader, domain.HoursPerYear-1).
		AddAssetReport(domain.CategoryNoncombustion, "short", testutil.AssetReport).
		AddAssetSeries(domain.CategoryNoncombustion, "wrong", testutil.StorageHeader, domain.HoursPerYear).
		AddAssetFolder(domain.CategoryNoncombustion, "empty")

	rs, err := Ingest(context.Background(), p.Root, config.Default())

	require.NoError(t, err)
	assert.Equal(t, []string{"hydro"}, rs.Architecture()[domain.CategoryNoncombustion])

	hydro, err := rs.Asset(domain.CategoryNoncombustion, "hydro")
	require.NoError(t, err)
	assert.False(t, hydro.HasSeries)
	assert.True(t, hydro.HasReport)
	assert.Equal(t, domain.HoursPerYear, hydro.Series.Len())
	assert.Empty(t, hydro.Series.Columns)

	_, err = rs.Asset(domain.CategoryNoncombustion, "short")
	assert.ErrorIs(t, err, domain.ErrUnknownAsset)

	mismatch := issuesOf(rs, domain.IssueAxisLengthMismatch)
	require.Len(t, mismatch, 1)
	assert.Equal(t, "short", mismatch[0].Asset)

	schema := issuesOf(rs, domain.IssueSchemaMismatch)
	require.Len(t, schema, 1)
	assert.Equal(t, "wrong", schema[0].Asset)

	var missingAssets []string
	for _, issue := range issuesOf(rs, domain.IssueMissingAssetFile) {
		missingAssets = append(missingAssets, issue.Asset)
	}
	assert.ElementsMatch(t, []string{"empty", "hydro"}, missingAssets)

	assert.NoError(t, rs.Validate())
}

func TestIngest_FreshIDPerIngestion(t *testing.T) {
	p := testutil.NewProject(t).WriteModel(domain.HoursPerYear, true)

	first, err := Ingest(context.Background(), p.Root, config.Default())
	require.NoError(t, err)
	second, err := Ingest(context.Background(), p.Root, config.Default())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.KPIs, second.KPIs)
	assert.Equal(t, first.Architecture(), second.Architecture())
}

func TestIngest_FatalErrors(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		write   bool
		wantErr error
	}{
		{name: "missing primary series", write: false, wantErr: fs.ErrNotExist},
		{name: "less than half a year", rows: domain.HoursPerYear / 2, write: true, wantErr: ErrNoCompleteYear},
		{name: "partial year", rows: domain.HoursPerYear * 3 / 2, write: true, wantErr: domain.ErrAxisLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testutil.NewProject(t)
			if tt.write {
				p.WriteModel(tt.rows, true)
			}

			rs, err := Ingest(context.Background(), p.Root, config.Default())

			assert.Nil(t, rs)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

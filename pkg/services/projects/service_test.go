package projects

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/result-atlas/pkg/models/domain"
	"github.com/de-tools/result-atlas/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRegistry struct {
	mock.Mock
}

func (m *mockRegistry) GetProfiles(ctx context.Context) ([]domain.ProjectProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProjectProfile), args.Error(1)
}

func (m *mockRegistry) GetProfile(ctx context.Context, name string) (domain.ProjectProfile, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.ProjectProfile), args.Error(1)
}

func newProject(t *testing.T) *testutil.Project {
	return testutil.NewProject(t).
		WriteModel(domain.HoursPerYear, true).
		WriteModelReport(testutil.ModelReport).
		AddAssetSeries(domain.CategoryStorage, "battery", testutil.StorageHeader, domain.HoursPerYear)
}

func TestService_Init(t *testing.T) {
	// Given
	good := newProject(t)
	broken := testutil.NewProject(t)
	registry := &mockRegistry{}
	registry.On("GetProfiles", mock.Anything).Return([]domain.ProjectProfile{
		{Name: "good", Root: good.Root, StartYear: 2040},
		{Name: "broken", Root: broken.Root},
	}, nil)
	svc := NewService(registry)

	// When
	err := svc.Init(context.Background())

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"broken", "good"}, svc.ListProjects(context.Background()))

	rs, err := svc.GetResultSet(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, 2040, rs.Metadata.StartYear)
	assert.Equal(t, []string{"battery"}, rs.Architecture()[domain.CategoryStorage])

	_, err = svc.GetResultSet(context.Background(), "broken")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = svc.GetResultSet(context.Background(), "other")
	assert.ErrorIs(t, err, domain.ErrUnknownProject)

	assert.Equal(t, map[string]string{"good": good.Root, "broken": broken.Root}, svc.Roots())
	registry.AssertExpectations(t)
}

func TestService_Init_RegistryError(t *testing.T) {
	registry := &mockRegistry{}
	registry.On("GetProfiles", mock.Anything).Return(nil, errors.New("unreadable"))

	err := NewService(registry).Init(context.Background())

	assert.ErrorContains(t, err, "unreadable")
}

func TestService_Reload(t *testing.T) {
	p := newProject(t)
	registry := &mockRegistry{}
	registry.On("GetProfiles", mock.Anything).Return([]domain.ProjectProfile{{Name: "demo", Root: p.Root}}, nil)
	svc := NewService(registry)
	require.NoError(t, svc.Init(context.Background()))

	before, err := svc.GetResultSet(context.Background(), "demo")
	require.NoError(t, err)

	p.WriteModelReport(strings.Replace(testutil.ModelReport, "2500000.75", "999", 1))
	require.NoError(t, svc.Reload(context.Background(), "demo"))

	after, err := svc.GetResultSet(context.Background(), "demo")
	require.NoError(t, err)
	assert.NotEqual(t, before.ID, after.ID)
	assert.Equal(t, 999.0, after.KPIs.NetPresentCost)
	assert.Equal(t, 2500000.75, before.KPIs.NetPresentCost)

	// a failed reload keeps the previous set
	require.NoError(t, os.Remove(filepath.Join(p.Root, "Model", testutil.SeriesFile)))
	assert.Error(t, svc.Reload(context.Background(), "demo"))
	kept, err := svc.GetResultSet(context.Background(), "demo")
	require.NoError(t, err)
	assert.Equal(t, after.ID, kept.ID)

	assert.ErrorIs(t, svc.Reload(context.Background(), "other"), domain.ErrUnknownProject)
}

func TestProfileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atlas.yaml")
	require.NoError(t, os.WriteFile(path, []byte("start_year: 2035\n"), 0o644))

	cfg, err := ProfileConfig(domain.ProjectProfile{Name: "a", ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, 2035, cfg.StartYear)

	cfg, err = ProfileConfig(domain.ProjectProfile{Name: "a", ConfigPath: path, StartYear: 2050})
	require.NoError(t, err)
	assert.Equal(t, 2050, cfg.StartYear)

	_, err = ProfileConfig(domain.ProjectProfile{Name: "a", ConfigPath: filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}

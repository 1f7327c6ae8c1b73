// Package ingest builds a ResultSet from a simulation output tree.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/de-tools/result-atlas/pkg/models/domain"
	"github.com/de-tools/result-atlas/pkg/services/assets"
	"github.com/de-tools/result-atlas/pkg/services/config"
	"github.com/de-tools/result-atlas/pkg/services/opmode"
	"github.com/de-tools/result-atlas/pkg/services/sections"
	"github.com/de-tools/result-atlas/pkg/services/table"
	"github.com/de-tools/result-atlas/pkg/services/timeaxis"
)

// ErrNoCompleteYear is returned when the primary series rounds to zero project years.
var ErrNoCompleteYear = errors.New("primary series covers less than half a project year")

var projectRules = []sections.Rule{sections.ProjectSummary, sections.ProjectResults, sections.ProjectEmissions}

type ingestion struct {
	root   string
	cfg    config.Config
	logger *zerolog.Logger
	rs     *domain.ResultSet
}

// Ingest reads the project tree at root. Problems with the primary series are
// fatal; every other problem is recorded in ResultSet.Issues and the affected
// part is skipped or replaced with a placeholder.
func Ingest(ctx context.Context, root string, cfg config.Config) (*domain.ResultSet, error) {
	logger := zerolog.Ctx(ctx).With().Str("root", root).Logger()

	in := &ingestion{
		root:   root,
		cfg:    cfg,
		logger: &logger,
		rs: &domain.ResultSet{
			ID:     uuid.NewString(),
			Root:   root,
			Assets: make(map[domain.AssetCategory]map[string]domain.AssetResult, len(domain.Categories())),
		},
	}

	if err := in.loadModel(); err != nil {
		return nil, err
	}
	in.loadReport()

	loader := assets.NewLoader(root, assets.Files{Series: cfg.Layout.SeriesFile, Report: cfg.Layout.ReportFile})
	for _, desc := range assets.Descriptors(cfg.Layout.CategoryDirs()) {
		in.loadCategory(loader, desc)
	}

	in.rs.OperationModes = opmode.Aggregate(in.rs.Model.OperationModes, in.rs.Metadata.Years)

	if err := in.rs.Validate(); err != nil {
		return nil, fmt.Errorf("inconsistent result set: %w", err)
	}

	logger.Info().
		Str("id", in.rs.ID).
		Int("years", in.rs.Metadata.Years).
		Int("issues", len(in.rs.Issues)).
		Msg("project ingested")
	return in.rs, nil
}

func (in *ingestion) loadModel() error {
	path := filepath.Join(in.root, in.cfg.Layout.ModelDir, in.cfg.Layout.SeriesFile)
	raw, err := table.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read primary series: %w", err)
	}
	// source time index first, producer's trailing empty column last
	raw = raw.DropLast(1).DropAt(0)

	rows := raw.Len()
	years := timeaxis.YearsFor(rows)
	if years == 0 {
		return fmt.Errorf("%w: %s has %d rows", ErrNoCompleteYear, path, rows)
	}
	axis := timeaxis.Build(in.cfg.StartYear, rows)
	if rows != axis.Len() {
		return &domain.AxisLengthMismatchError{Source: path, Got: rows, Want: axis.Len()}
	}

	var dispatchNames, modeNames []string
	for _, h := range raw.Header {
		switch {
		case slices.Contains(in.cfg.Model.DropColumns, h):
		case strings.HasPrefix(h, in.cfg.Model.ModePrefix):
			modeNames = append(modeNames, h)
		default:
			dispatchNames = append(dispatchNames, h)
		}
	}

	dispatch, err := raw.Numeric(dispatchNames)
	if err != nil {
		return fmt.Errorf("failed to parse primary series: %w", err)
	}
	modes, err := raw.Numeric(modeNames)
	if err != nil {
		return fmt.Errorf("failed to parse operation modes: %w", err)
	}

	hasModes := len(modes) > 0
	if !hasModes {
		for _, name := range in.cfg.Model.PlaceholderModes {
			modes = append(modes, domain.Column{Name: name, Values: make([]float64, rows)})
		}
	}

	in.rs.Axis = axis
	in.rs.Metadata = domain.ProjectMetadata{
		StartYear:             in.cfg.StartYear,
		LifetimeYears:         float64(rows) / domain.HoursPerYear,
		Years:                 years,
		SamplingIntervalHours: 1,
	}
	in.rs.Model = domain.ModelResult{
		Dispatch:          domain.Series{Time: axis, Columns: dispatch},
		OperationModes:    domain.Series{Time: axis, Columns: modes},
		HasOperationModes: hasModes,
	}
	return nil
}

func (in *ingestion) loadReport() {
	path := filepath.Join(in.root, in.cfg.Layout.ModelDir, in.cfg.Layout.ReportFile)
	text, found, err := sections.ReadReport(path)
	if err != nil || !found {
		if err == nil {
			err = fmt.Errorf("%w: %s", domain.ErrMissingAssetFile, path)
		}
		in.issue("", "", domain.IssueMissingReport, err)
		placeholders := sections.Placeholders(projectRules)
		in.rs.Sections = domain.ProjectSections{
			Summary:   placeholders[sections.NameSummary],
			Results:   placeholders[sections.NameResults],
			Emissions: placeholders[sections.NameEmissions],
		}
		return
	}

	extracted := sections.ExtractAll(text, projectRules)
	in.rs.Sections = domain.ProjectSections{
		Summary:   extracted[sections.NameSummary],
		Results:   extracted[sections.NameResults],
		Emissions: extracted[sections.NameEmissions],
	}

	kpis, errs := sections.ExtractKPIs(text)
	for _, err := range errs {
		in.issue("", "", domain.IssueKPIParse, err)
	}
	in.rs.KPIs = kpis
}

// loadCategory runs the series and text passes over one category root and
// merges them by asset name. An asset survives when its series loaded or is
// missing while its report exists; a rejected series drops the asset.
// A category root that cannot be listed leaves the category empty.
func (in *ingestion) loadCategory(loader *assets.Loader, desc assets.Descriptor) {
	results := map[string]domain.AssetResult{}
	in.rs.Assets[desc.Category] = results

	series, err := loader.LoadSeries(desc, in.rs.Axis)
	if err != nil {
		in.issue(desc.Category, "", domain.IssueMissingCategory, err)
		return
	}
	text, err := loader.LoadText(desc)
	if err != nil {
		in.issue(desc.Category, "", domain.IssueMissingCategory, err)
		return
	}

	if !series.Present && !text.Present {
		in.issue(desc.Category, "", domain.IssueMissingCategory,
			fmt.Errorf("%w: %s", domain.ErrMissingCategory, filepath.Join(in.root, desc.Dir)))
		return
	}

	names := make([]string, 0, len(series.Assets))
	for name := range series.Assets {
		names = append(names, name)
	}
	for name := range text.Assets {
		if _, ok := series.Assets[name]; !ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	for _, name := range names {
		s, hasSeriesOutcome := series.Assets[name]
		t := text.Assets[name]

		if hasSeriesOutcome && s.Status == assets.StatusRejected {
			in.issue(desc.Category, name, domain.IssueKindOf(s.Err), s.Err)
			continue
		}
		seriesFound := hasSeriesOutcome && s.Status == assets.StatusLoaded
		if !seriesFound && !t.Found {
			in.issue(desc.Category, name, domain.IssueMissingAssetFile,
				fmt.Errorf("%w: no series or report in %s", domain.ErrMissingAssetFile, name))
			continue
		}

		result := domain.AssetResult{
			Category:  desc.Category,
			Name:      name,
			Series:    domain.Series{Time: in.rs.Axis},
			HasSeries: seriesFound,
			HasReport: t.Found,
		}
		if seriesFound {
			result.Series = s.Series
		} else if s.Err != nil {
			in.issue(desc.Category, name, domain.IssueMissingAssetFile, s.Err)
		}

		extracted := t.Sections
		if extracted == nil {
			extracted = sections.Placeholders(desc.Sections)
		}
		if !t.Found && t.Err != nil {
			in.issue(desc.Category, name, domain.IssueMissingReport, t.Err)
		}
		result.SpecText = extracted[sections.NameSpecs]
		result.ResultsText = extracted[sections.NameResults]
		if desc.HasSection(sections.NameEmissions) {
			result.EmissionsText = extracted[sections.NameEmissions]
		}

		results[name] = result
	}
}

func (in *ingestion) issue(category domain.AssetCategory, asset string, kind domain.IssueKind, err error) {
	in.logger.Warn().
		Err(err).
		Str("category", string(category)).
		Str("asset", asset).
		Str("kind", string(kind)).
		Msg("contained ingestion error")

	in.rs.Issues = append(in.rs.Issues, domain.IngestIssue{
		Category: category,
		Asset:    asset,
		Kind:     kind,
		Message:  err.Error(),
	})
}

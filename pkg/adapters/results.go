package adapters

import (
	"time"

	"github.com/de-tools/result-atlas/pkg/models/api"
	"github.com/de-tools/result-atlas/pkg/models/domain"
)

func MapResultSetDomainToApiOverview(name string, rs *domain.ResultSet) api.ProjectOverview {
	architecture := map[string][]string{}
	for category, assets := range rs.Architecture() {
		architecture[category.String()] = assets
	}

	issues := make([]api.Issue, 0, len(rs.Issues))
	for _, issue := range rs.Issues {
		issues = append(issues, MapIssueDomainToApi(issue))
	}

	return api.ProjectOverview{
		ID:   rs.ID,
		Name: name,
		Metadata: api.Metadata{
			StartYear:             rs.Metadata.StartYear,
			LifetimeYears:         rs.Metadata.LifetimeYears,
			Years:                 rs.Metadata.Years,
			SamplingIntervalHours: rs.Metadata.SamplingIntervalHours,
		},
		KPIs: api.KPIs{
			LifetimeYears:             rs.KPIs.LifetimeYears,
			NetPresentCost:            rs.KPIs.NetPresentCost,
			LevelizedCostOfEnergy:     rs.KPIs.LevelizedCostOfEnergy,
			RenewableFraction:         rs.KPIs.RenewableFraction,
			TotalDispatchAndDischarge: rs.KPIs.TotalDispatchAndDischarge,
			TotalFuelConsumed:         rs.KPIs.TotalFuelConsumed,
		},
		Architecture:      architecture,
		HasOperationModes: rs.Model.HasOperationModes,
		Issues:            issues,
	}
}

func MapIssueDomainToApi(issue domain.IngestIssue) api.Issue {
	return api.Issue{
		Category: issue.Category.String(),
		Asset:    issue.Asset,
		Kind:     string(issue.Kind),
		Message:  issue.Message,
	}
}

func MapOperationModesDomainToApi(summary domain.YearlyOperationModeSummary) api.OperationModeSummary {
	out := api.OperationModeSummary{
		Modes: append([]string{}, summary.Modes...),
		Rows:  make([]api.OperationModeRow, 0, len(summary.Rows)),
	}
	for _, row := range summary.Rows {
		out.Rows = append(out.Rows, api.OperationModeRow{
			Year:        row.Year,
			Hours:       row.Hours,
			Percentages: row.Percentages,
		})
	}
	return out
}

func MapSectionsDomainToApi(sections domain.ProjectSections) api.ProjectSections {
	return api.ProjectSections{
		Summary:   sections.Summary,
		Results:   sections.Results,
		Emissions: sections.Emissions,
	}
}

func MapAssetDomainToApi(asset domain.AssetResult) api.Asset {
	return api.Asset{
		Category:  asset.Category.String(),
		Name:      asset.Name,
		HasSeries: asset.HasSeries,
		HasReport: asset.HasReport,
		Columns:   asset.Series.ColumnNames(),
		Specs:     asset.SpecText,
		Results:   asset.ResultsText,
		Emissions: asset.EmissionsText,
	}
}

func MapSeriesDomainToApi(s domain.Series) api.Series {
	out := api.Series{
		Time:    []time.Time(s.Time),
		Columns: make([]api.SeriesColumn, 0, len(s.Columns)),
	}
	if out.Time == nil {
		out.Time = []time.Time{}
	}
	for _, c := range s.Columns {
		out.Columns = append(out.Columns, api.SeriesColumn{Name: c.Name, Values: c.Values})
	}
	return out
}

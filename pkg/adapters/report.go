package adapters

import (
	"fmt"
	"strings"

	"github.com/de-tools/result-atlas/pkg/models/domain"
)

// MapResultSetDomainToReport assembles the terminal summary of a result set.
func MapResultSetDomainToReport(project string, rs *domain.ResultSet) *domain.Report {
	report := &domain.Report{
		Title:   fmt.Sprintf("Project Results: %s", project),
		Project: project,
		Period:  domain.TimePeriod{Years: rs.Metadata.Years},
	}
	if n := rs.Axis.Len(); n > 0 {
		report.Period.Start = rs.Axis[0]
		report.Period.End = rs.Axis[n-1]
	}

	report.Sections = append(report.Sections,
		kpiSection(rs),
		architectureSection(rs),
		operationModeSection(rs),
	)
	if len(rs.Issues) > 0 {
		report.Sections = append(report.Sections, issueSection(rs.Issues))
	}
	return report
}

func kpiSection(rs *domain.ResultSet) domain.ReportSection {
	k := rs.KPIs
	return domain.ReportSection{
		Title: "Key Performance Indicators",
		Summary: map[string]interface{}{
			"Result Set": rs.ID,
			"Root":       rs.Root,
		},
		Details: []domain.ReportDetail{
			{Name: "Project Lifetime", Value: k.LifetimeYears, Unit: "years"},
			{Name: "Net Present Cost", Value: fmt.Sprintf("%.2f", k.NetPresentCost)},
			{Name: "Levelized Cost of Energy", Value: k.LevelizedCostOfEnergy, Unit: "per kWh"},
			{Name: "Renewable Fraction", Value: k.RenewableFraction, Unit: "%"},
			{Name: "Total Dispatch + Discharge", Value: k.TotalDispatchAndDischarge, Unit: "kWh"},
			{Name: "Total Fuel Consumed", Value: k.TotalFuelConsumed, Unit: "L"},
		},
	}
}

func architectureSection(rs *domain.ResultSet) domain.ReportSection {
	arch := rs.Architecture()
	section := domain.ReportSection{
		Title:   "Architecture",
		Summary: map[string]interface{}{},
	}
	total := 0
	for _, c := range domain.Categories() {
		names := arch[c]
		total += len(names)
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        c.String(),
			Value:       len(names),
			Unit:        "assets",
			Description: strings.Join(names, ", "),
		})
	}
	section.Summary["Assets"] = total
	return section
}

func operationModeSection(rs *domain.ResultSet) domain.ReportSection {
	section := domain.ReportSection{
		Title: "Operation Modes",
		Summary: map[string]interface{}{
			"Reported by model": rs.Model.HasOperationModes,
		},
	}
	for _, row := range rs.OperationModes.Rows {
		for _, mode := range rs.OperationModes.Modes {
			section.Details = append(section.Details, domain.ReportDetail{
				Name:        fmt.Sprintf("Year %d: %s", row.Year, mode),
				Value:       row.Hours[mode],
				Unit:        "h",
				Description: fmt.Sprintf("%.1f%% of the year", row.Percentages[mode]),
			})
		}
	}
	return section
}

func issueSection(issues []domain.IngestIssue) domain.ReportSection {
	section := domain.ReportSection{
		Title:   "Ingestion Issues",
		Summary: map[string]interface{}{"Count": len(issues)},
	}
	for _, issue := range issues {
		where := issue.Category.String()
		if issue.Asset != "" {
			where += "/" + issue.Asset
		}
		if where == "" {
			where = "model"
		}
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        string(issue.Kind),
			Value:       where,
			Description: issue.Message,
		})
	}
	return section
}

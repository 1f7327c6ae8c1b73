package adapters

import (
	"time"

	"github.com/de-tools/result-atlas/pkg/models/domain"
	"github.com/de-tools/result-atlas/pkg/models/store"
)

func MapResultSetDomainToStoreIngestion(project string, rs *domain.ResultSet, at time.Time) store.Ingestion {
	return store.Ingestion{
		ID:         rs.ID,
		Project:    project,
		Root:       rs.Root,
		StartYear:  rs.Metadata.StartYear,
		Years:      rs.Metadata.Years,
		IngestedAt: at,
	}
}

// MapSeriesDomainToStorePoints flattens s into one point per row and column.
func MapSeriesDomainToStorePoints(stream string, category domain.AssetCategory, asset string, s domain.Series) []store.SeriesPoint {
	points := make([]store.SeriesPoint, 0, s.Len()*len(s.Columns))
	for _, c := range s.Columns {
		for row, v := range c.Values {
			points = append(points, store.SeriesPoint{
				Stream:   stream,
				Category: category.String(),
				Asset:    asset,
				Column:   c.Name,
				Row:      row,
				Time:     s.Time[row],
				Value:    v,
			})
		}
	}
	return points
}

func MapIssuesDomainToStore(issues []domain.IngestIssue) []store.IngestionIssue {
	out := make([]store.IngestionIssue, 0, len(issues))
	for _, issue := range issues {
		out = append(out, store.IngestionIssue{
			Category: issue.Category.String(),
			Asset:    issue.Asset,
			Kind:     string(issue.Kind),
			Message:  issue.Message,
		})
	}
	return out
}

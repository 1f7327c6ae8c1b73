// Package opmode reduces the per-timestep operation mode stream into yearly totals.
package opmode

import (
	"github.com/de-tools/result-atlas/pkg/models/domain"
	"github.com/de-tools/result-atlas/pkg/services/numeric"
)

// Aggregate sums every mode column over consecutive blocks of 8760 rows
// (row index / 8760, not calendar years) and emits one row per project year.
// Percentages are each mode's share of the row total, rounded to one decimal with ties to even;
// a zero total gives 0 for every mode.
func Aggregate(modes domain.Series, years int) domain.YearlyOperationModeSummary {
	summary := domain.YearlyOperationModeSummary{
		Modes: modes.ColumnNames(),
		Rows:  make([]domain.YearlyOperationModeRow, 0, years),
	}

	n := modes.Len()
	for y := 0; y < years; y++ {
		lo := y * domain.HoursPerYear
		hi := min(lo+domain.HoursPerYear, n)

		row := domain.YearlyOperationModeRow{
			Year:        y + 1,
			Hours:       make(map[string]float64, len(modes.Columns)),
			Percentages: make(map[string]float64, len(modes.Columns)),
		}

		total := 0.0
		for _, c := range modes.Columns {
			sum := 0.0
			for i := lo; i < hi; i++ {
				sum += c.Values[i]
			}
			row.Hours[c.Name] = sum
			total += sum
		}

		for _, c := range modes.Columns {
			if total == 0 {
				row.Percentages[c.Name] = 0
				continue
			}
			row.Percentages[c.Name] = numeric.Round(100*row.Hours[c.Name]/total, 1)
		}

		summary.Rows = append(summary.Rows, row)
	}
	return summary
}

// Package timeaxis builds the canonical hourly time axis of a project.
//
// The axis is synthesised from a 365-day base year whose year field is rewritten
// to the project start year, then repeated with whole-year offsets. Feb 29 never
// appears, even when the start year or an offset year is a leap year; operation
// mode aggregation groups by fixed 8760-row blocks and relies on that.
package timeaxis

import (
	"math"
	"time"

	"github.com/de-tools/result-atlas/pkg/models/domain"
)

// baseYear is any non-leap year; only its month/day/hour sequence is used.
const baseYear = 2019

// YearsFor returns the whole number of project years represented by rowCount
// hourly samples, rounding half to even.
func YearsFor(rowCount int) int {
	if rowCount <= 0 {
		return 0
	}
	return int(math.RoundToEven(float64(rowCount) / domain.HoursPerYear))
}

// Build returns YearsFor(rowCount)*8760 UTC timestamps starting at Jan 1 00:00 of startYear.
func Build(startYear, rowCount int) domain.TimeAxis {
	years := YearsFor(rowCount)
	axis := make(domain.TimeAxis, 0, years*domain.HoursPerYear)

	base := time.Date(baseYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	for y := 0; y < years; y++ {
		year := startYear + y
		for h := 0; h < domain.HoursPerYear; h++ {
			t := base.Add(time.Duration(h) * time.Hour)
			axis = append(axis, time.Date(year, t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC))
		}
	}
	return axis
}

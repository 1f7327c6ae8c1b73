package timeaxis

import (
	"testing"
	"time"

	"github.com/de-tools/result-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearsFor(t *testing.T) {
	tests := []struct {
		name string
		rows int
		want int
	}{
		{name: "empty", rows: 0, want: 0},
		{name: "negative", rows: -10, want: 0},
		{name: "one year", rows: 8760, want: 1},
		{name: "twenty five years", rows: 25 * 8760, want: 25},
		{name: "partial year rounds down", rows: 8760 + 100, want: 1},
		{name: "partial year rounds up", rows: 2*8760 - 100, want: 2},
		{name: "half rounds to even", rows: 8760 / 2 * 5, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YearsFor(tt.rows))
		})
	}
}

func TestBuild_LengthAndSpacing(t *testing.T) {
	for _, years := range []int{1, 2, 3} {
		rows := years * domain.HoursPerYear
		axis := Build(2030, rows)
		require.Len(t, axis, rows)

		assert.Equal(t, time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC), axis[0])
		assert.Equal(t, time.Date(2030+years-1, time.December, 31, 23, 0, 0, 0, time.UTC), axis[rows-1])

		for i := 1; i < rows; i++ {
			require.True(t, axis[i].After(axis[i-1]), "axis not strictly increasing at %d", i)
			if i%domain.HoursPerYear != 0 {
				require.Equal(t, time.Hour, axis[i].Sub(axis[i-1]), "spacing at %d", i)
			}
		}
	}
}

func TestBuild_YearBoundaries(t *testing.T) {
	axis := Build(2030, 3*domain.HoursPerYear)

	for y := 1; y < 3; y++ {
		first := axis[y*domain.HoursPerYear]
		last := axis[y*domain.HoursPerYear-1]
		assert.Equal(t, time.Date(2030+y, time.January, 1, 0, 0, 0, 0, time.UTC), first)
		assert.Equal(t, time.Date(2030+y-1, time.December, 31, 23, 0, 0, 0, time.UTC), last)
	}
}

func TestBuild_NoLeapDay(t *testing.T) {
	// 2032 and 2036 are leap years.
	axis := Build(2031, 6*domain.HoursPerYear)
	require.Len(t, axis, 6*domain.HoursPerYear)

	for i, ts := range axis {
		require.False(t, ts.Month() == time.February && ts.Day() == 29, "Feb 29 at index %d", i)
		if i > 0 {
			require.True(t, ts.After(axis[i-1]))
		}
	}

	leapStart := domain.HoursPerYear // first hour of 2032
	feb28Last := axis[leapStart+59*24-1]
	mar1First := axis[leapStart+59*24]
	assert.Equal(t, time.Date(2032, time.February, 28, 23, 0, 0, 0, time.UTC), feb28Last)
	assert.Equal(t, time.Date(2032, time.March, 1, 0, 0, 0, 0, time.UTC), mar1First)
}

func TestBuild_TruncatesToWholeYears(t *testing.T) {
	axis := Build(2030, domain.HoursPerYear+12)
	assert.Len(t, axis, domain.HoursPerYear)

	assert.Empty(t, Build(2030, 100))
}

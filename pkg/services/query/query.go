// Package query slices and projects the series of an ingested ResultSet.
// Every function is pure and returns views sharing the ResultSet's backing arrays.
package query

import (
	"fmt"

	"github.com/de-tools/result-atlas/pkg/models/domain"
)

// SliceByYear returns the rows of the 0-based project year.
func SliceByYear(s domain.Series, year int) (domain.Series, error) {
	years := (s.Len() + domain.HoursPerYear - 1) / domain.HoursPerYear
	if year < 0 || year >= years {
		return domain.Series{}, fmt.Errorf("%w: year %d, series has %d rows", domain.ErrYearOutOfRange, year, s.Len())
	}
	lo := year * domain.HoursPerYear
	return s.Window(lo, min(lo+domain.HoursPerYear, s.Len())), nil
}

// SliceByRange returns rows start..end, both inclusive. Bounds are clamped to
// the series; start after end gives an empty series with the same columns.
func SliceByRange(s domain.Series, start, end int) domain.Series {
	n := s.Len()
	start = max(0, min(start, n))
	end = max(-1, min(end, n-1))
	if start > end {
		return s.Window(start, start)
	}
	return s.Window(start, end+1)
}

// SelectColumns keeps the named columns in the requested order. An empty
// selection keeps every column; any unknown name fails the whole selection.
func SelectColumns(s domain.Series, names []string) (domain.Series, error) {
	if len(names) == 0 {
		return s, nil
	}

	var unknown []string
	columns := make([]domain.Column, 0, len(names))
	for _, name := range names {
		c, ok := s.Column(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		columns = append(columns, c)
	}
	if len(unknown) > 0 {
		return domain.Series{}, &domain.InvalidColumnSelectionError{Unknown: unknown, Available: s.ColumnNames()}
	}
	return domain.Series{Time: s.Time, Columns: columns}, nil
}

// Request is a view over one series: a project year, an optional inclusive
// hour range within that year, and a column selection.
type Request struct {
	Year    int
	From    *int
	To      *int
	Columns []string
}

func (r Request) Apply(s domain.Series) (domain.Series, error) {
	out, err := SliceByYear(s, r.Year)
	if err != nil {
		return domain.Series{}, err
	}

	if r.From != nil || r.To != nil {
		from, to := 0, domain.HoursPerYear
		if r.From != nil {
			from = *r.From
		}
		if r.To != nil {
			to = *r.To
		}
		out = SliceByRange(out, from, to)
	}

	return SelectColumns(out, r.Columns)
}

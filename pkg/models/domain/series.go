package domain

import "time"

// TimeAxis is the canonical timestamp sequence every series of a ResultSet is aligned to by position.
type TimeAxis []time.Time

func (a TimeAxis) Len() int {
	return len(a)
}

type Column struct {
	Name   string
	Values []float64
}

// Series is a column-ordered numeric table keyed by a TimeAxis.
// A Series with a time axis and no columns carries no numeric data.
//
// Series values are shared between a ResultSet and every slice taken from it,
// so they must be treated as read-only.
type Series struct {
	Time    TimeAxis
	Columns []Column
}

func (s Series) Len() int {
	return len(s.Time)
}

func (s Series) ColumnNames() []string {
	names := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		names = append(names, c.Name)
	}
	return names
}

func (s Series) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Window returns rows [lo, hi). Bounds must already be valid for s.
func (s Series) Window(lo, hi int) Series {
	out := Series{
		Time:    s.Time[lo:hi:hi],
		Columns: make([]Column, 0, len(s.Columns)),
	}
	for _, c := range s.Columns {
		out.Columns = append(out.Columns, Column{Name: c.Name, Values: c.Values[lo:hi:hi]})
	}
	return out
}

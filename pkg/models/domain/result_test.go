package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alignedResultSet(rows int) *ResultSet {
	axis := make(TimeAxis, rows)
	start := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := range axis {
		axis[i] = start.Add(time.Duration(i) * time.Hour)
	}
	column := func(name string) Column {
		return Column{Name: name, Values: make([]float64, rows)}
	}
	return &ResultSet{
		Axis: axis,
		Model: ModelResult{
			Dispatch:       Series{Time: axis, Columns: []Column{column("Total Dispatch [kW]")}},
			OperationModes: Series{Time: axis, Columns: []Column{column("Operation Mode A")}},
		},
		Assets: map[AssetCategory]map[string]AssetResult{
			CategoryStorage: {
				"battery": {Category: CategoryStorage, Name: "battery", Series: Series{Time: axis, Columns: []Column{column("Charging Power [kW]")}}},
				"text":    {Category: CategoryStorage, Name: "text", Series: Series{Time: axis}},
			},
		},
	}
}

func TestResultSet_Validate(t *testing.T) {
	assert.NoError(t, alignedResultSet(48).Validate())
}

func TestResultSet_Validate_ShortColumn(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(rs *ResultSet)
		source string
	}{
		{
			name: "model column",
			mutate: func(rs *ResultSet) {
				rs.Model.Dispatch.Columns[0].Values = rs.Model.Dispatch.Columns[0].Values[:47]
			},
			source: "model dispatch",
		},
		{
			name: "asset column",
			mutate: func(rs *ResultSet) {
				battery := rs.Assets[CategoryStorage]["battery"]
				battery.Series.Columns = []Column{{Name: "Charging Power [kW]", Values: make([]float64, 12)}}
				rs.Assets[CategoryStorage]["battery"] = battery
			},
			source: "storage/battery",
		},
		{
			name: "asset time",
			mutate: func(rs *ResultSet) {
				text := rs.Assets[CategoryStorage]["text"]
				text.Series.Time = text.Series.Time[:24]
				rs.Assets[CategoryStorage]["text"] = text
			},
			source: "storage/text",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rs := alignedResultSet(48)
			tc.mutate(rs)

			err := rs.Validate()
			require.ErrorIs(t, err, ErrAxisLengthMismatch)
			var mismatch *AxisLengthMismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Contains(t, mismatch.Source, tc.source)
			assert.Equal(t, 48, mismatch.Want)
		})
	}
}

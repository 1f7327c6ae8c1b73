package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		places   int32
		expected float64
	}{
		{name: "repeating down", value: 100.0 / 3, places: 1, expected: 33.3},
		{name: "repeating up", value: 200.0 / 3, places: 1, expected: 66.7},
		{name: "tie to even below", value: 0.25, places: 1, expected: 0.2},
		{name: "tie to even mode share", value: 6.25, places: 1, expected: 6.2},
		{name: "tie to even above", value: 6.35, places: 1, expected: 6.4},
		{name: "negative tie", value: -2.5, places: 0, expected: -2},
		{name: "four places", value: 0.412345, places: 4, expected: 0.4123},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Round(tc.value, tc.places))
		})
	}
}

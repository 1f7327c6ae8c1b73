// Package numeric holds the rounding shared by KPI extraction and aggregation.
package numeric

import "github.com/shopspring/decimal"

// Round rounds v to places decimals on its shortest decimal representation,
// with ties going to the even digit (6.25 -> 6.2, 6.35 -> 6.4).
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).RoundBank(places).InexactFloat64()
}

package dto

import "github.com/shopspring/decimal"

// round rounds half away from zero to the given number of decimal places.
// Rounding happens only at the API boundary; the engine keeps full precision.
func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

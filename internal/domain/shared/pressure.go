package shared

import "math"

// Atmospheres converts a freshwater depth in metres to absolute pressure in
// atmospheres: every 10 m of water column adds roughly one atmosphere.
func Atmospheres(depth float64) float64 {
	return depth/10.0 + 1.0
}

// RoundUpToTen rounds a pressure up to the nearest 10 bar. Used for turn
// pressures, where rounding up is the conservative, diver-legible choice.
func RoundUpToTen(pressure float64) float64 {
	return math.Ceil(pressure/10.0) * 10.0
}

// RoundDownToTen rounds a pressure down to the nearest 10 bar. Used for
// usable-gas budgets, where rounding down is the conservative choice.
func RoundDownToTen(pressure float64) float64 {
	return math.Floor(pressure/10.0) * 10.0
}

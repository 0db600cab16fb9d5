package util

import (
	"math"
)

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func ClampFloat64(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampRoundInt rounds val half-up and clamps the result to [min, max].
func ClampRoundInt(val float64, min, max int) int {
	rounded := int(math.Round(val))
	if rounded < min {
		return min
	}
	if rounded > max {
		return max
	}
	return rounded
}

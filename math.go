package iontrap

import (
	"math"
)

func pow2(x float64) float64 {
	return x * x
}

func lerp(value1, value2, amount float64) float64 { return value1 + (value2-value1)*amount }

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

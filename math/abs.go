package math

import "math"

func Abs[T float64 | float32](val T) float64 {
	return math.Abs(float64(val))
}

// Clamp limits val to the closed interval [lo, hi].
func Clamp[T float64 | float32](val, lo, hi T) T {
	return max(lo, min(hi, val))
}

// Finite reports whether val is neither NaN nor infinite.
func Finite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

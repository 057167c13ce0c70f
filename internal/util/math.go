package util

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Avg calculates the average of all values in the given array
func Avg(values []float64) float64 {
	sum := 0.0
	for i := 0; i < len(values); i++ {
		sum += values[i]
	}
	return sum / (float64(len(values)))
}

// Ratio calculates the ration that target has in comparison to rangeMin and rangeMax
// Make sure that:
// rangeMin <= target <= rangeMax
// rangeMax - rangeMin != 0
func Ratio(target float64, rangeMin float64, rangeMax float64) float64 {
	return (target - rangeMin) / (rangeMax - rangeMin)
}

func Coerce[T constraints.Ordered](value T, lower T, upper T) T {
	return min(max(value, lower), upper)
}

// Normalize maps value from [rangeMin..rangeMax] onto [0..upper], rounding to the nearest integer.
// Values outside of the range are clamped.
func Normalize(value float64, rangeMin float64, rangeMax float64, upper int) int {
	if rangeMax <= rangeMin {
		return 0
	}
	ratio := Coerce(Ratio(value, rangeMin, rangeMax), 0, 1)
	return int(math.Round(ratio * float64(upper)))
}

// Denormalize is the inverse of Normalize
func Denormalize(value int, upper int, rangeMin float64, rangeMax float64) float64 {
	if upper <= 0 {
		return rangeMin
	}
	ratio := Coerce(float64(value)/float64(upper), 0, 1)
	return rangeMin + ratio*(rangeMax-rangeMin)
}

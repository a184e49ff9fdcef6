package interpolate

import "math"

// Lerp returns the value found t of the way along the line from origin to
// target. It is exact at t=0 and t=1, monotonic in t, and constant when
// origin == target. Values of t outside [0,1] extrapolate. Results are not
// always bit-identical to origin*(1-t) + target*t.
func Lerp(origin, target, t float64) float64 {
	if (origin <= 0 && target >= 0) || (origin >= 0 && target <= 0) {
		return t*target + (1-t)*origin
	}

	if t == 1 {
		return target
	}

	x := origin + t*(target-origin)
	if (t > 1) == (target > origin) {
		return math.Max(target, x)
	}
	return math.Min(target, x)
}

// LerpChannel255 blends two 8-bit channel values. Both values are first
// normalised to 0..1 and blended, then the result is located between 0 and
// 255 and truncated toward zero (never rounded), so LerpChannel255(0, 255, 0.5)
// is 127. Fractions outside [0,1] can produce values outside 0..255.
func LerpChannel255(origin, target uint8, t float64) int {
	return truncate(Lerp(0, 255, Lerp(float64(origin)/255, float64(target)/255, t)))
}

// truncate converts toward zero, saturating at the int32 range, with NaN
// becoming zero.
func truncate(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int(v)
}

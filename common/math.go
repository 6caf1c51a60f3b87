package common

// Lerp interpolates from a to b. t is not clamped.
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Clamp01 limits v to [0,1]. NaN maps to 0.
func Clamp01[T ~float32 | ~float64](v T) T {
	switch {
	case v != v, v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

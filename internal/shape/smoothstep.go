package shape

// Smoothstep ramps from 0 at a to 1 at b along t*t*(3-2t), with zero slope
// at both ends. A degenerate interval (a == b) is a hard step: 0 up to and
// including a, 1 above it.
func Smoothstep(a, b, x float64) float64 {
	if x <= a {
		return 0
	}
	if x >= b {
		return 1
	}
	t := (x - a) / (b - a)
	return t * t * (3 - 2*t)
}

package integrators

// Guard limits an acceleration that opposes the current motion so that one
// step can stop the object but not reverse it. When it clamps, it returns
// -vx/dt and stopped=true; callers should then treat the new velocity as
// exactly zero rather than trusting vx + a*dt to cancel in floating point.
func Guard(vx, a, dt float64) (float64, bool) {
	if vx == 0 || a*vx >= 0 {
		return a, false
	}
	next := vx + a*dt
	if next*vx < 0 {
		return -vx / dt, true
	}
	return a, false
}

// Euler advances one semi-implicit Euler step: velocity first, then
// position with the new velocity.
func Euler(x, vx, a, dt float64) (float64, float64) {
	vx += a * dt
	x += vx * dt
	return x, vx
}

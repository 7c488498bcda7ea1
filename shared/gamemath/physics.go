package gamemath

// ApplyPlanarFriction reduces the length of a planar velocity toward zero
// by friction amount, keeping its direction.
func ApplyPlanarFriction(vel Vec2, friction float64) Vec2 {
	l := vel.Len()
	if l <= friction || l == 0 {
		return Vec2{}
	}
	return vel.Scale((l - friction) / l)
}

// StepHeight advances a falling body with radius resting on the ground at
// height radius. Returns the new height, vertical velocity and whether it
// is in contact with the ground. Bounces slower than 0.5 m/s come to rest.
func StepHeight(y, vy, gravity, radius, restitution, dt float64) (float64, float64, bool) {
	vy -= gravity * dt
	y += vy * dt
	if y > radius {
		return y, vy, false
	}
	y = radius
	if vy < 0 {
		vy = -vy * restitution
		if vy < 0.5 {
			vy = 0
		}
	}
	return y, vy, true
}

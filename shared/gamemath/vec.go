package gamemath

import "math"

// Vec2 is a point or direction on the ground plane. X runs along the pitch
// length, Z across it; height is tracked separately where it matters.
type Vec2 struct {
	X, Z float64
}

func V(x, z float64) Vec2 { return Vec2{X: x, Z: z} }

func (a Vec2) Add(b Vec2) Vec2        { return Vec2{a.X + b.X, a.Z + b.Z} }
func (a Vec2) Sub(b Vec2) Vec2        { return Vec2{a.X - b.X, a.Z - b.Z} }
func (a Vec2) Scale(s float64) Vec2   { return Vec2{a.X * s, a.Z * s} }
func (a Vec2) Dot(b Vec2) float64     { return a.X*b.X + a.Z*b.Z }
func (a Vec2) LenSqr() float64        { return a.X*a.X + a.Z*a.Z }
func (a Vec2) Len() float64           { return math.Sqrt(a.LenSqr()) }
func (a Vec2) DistSqr(b Vec2) float64 { return a.Sub(b).LenSqr() }
func (a Vec2) Dist(b Vec2) float64    { return a.Sub(b).Len() }
func (a Vec2) IsZero() bool           { return a.X == 0 && a.Z == 0 }

// Normalize returns the unit vector, or zero for vectors shorter than 1e-5.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l < 1e-5 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Z / l}
}

// Lerp moves from a to b by t without clamping t.
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Z + (b.Z-a.Z)*t}
}

// ClampLen limits the vector length to max.
func (a Vec2) ClampLen(max float64) Vec2 {
	l := a.Len()
	if l > max && l > 0 {
		return a.Scale(max / l)
	}
	return a
}

// Heading returns the yaw of a direction in degrees, 0 facing +Z and 90
// facing +X.
func (a Vec2) Heading() float64 {
	return math.Atan2(a.X, a.Z) * 180 / math.Pi
}

// FromHeading is the inverse of Heading.
func FromHeading(deg float64) Vec2 {
	rad := deg * math.Pi / 180
	return Vec2{math.Sin(rad), math.Cos(rad)}
}

// AngleBetween returns the unsigned angle between two directions in degrees.
// Zero vectors give 0.
func AngleBetween(a, b Vec2) float64 {
	an, bn := a.Normalize(), b.Normalize()
	if an.IsZero() || bn.IsZero() {
		return 0
	}
	d := Clamp(an.Dot(bn), -1, 1)
	return math.Acos(d) * 180 / math.Pi
}

// RotateTowards turns direction from towards to by at most maxDeg degrees
// and returns a unit vector.
func RotateTowards(from, to Vec2, maxDeg float64) Vec2 {
	from, to = from.Normalize(), to.Normalize()
	if to.IsZero() {
		return from
	}
	if from.IsZero() {
		return to
	}
	delta := math.Mod(to.Heading()-from.Heading()+540, 360) - 180
	if math.Abs(delta) <= maxDeg {
		return to
	}
	if delta < 0 {
		maxDeg = -maxDeg
	}
	return FromHeading(from.Heading() + maxDeg)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 { return Clamp(v, 0, 1) }

func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Normalize3 normalizes a vector given as ground-plane part plus height.
func Normalize3(v Vec2, y float64) (Vec2, float64) {
	l := math.Sqrt(v.LenSqr() + y*y)
	if l < 1e-5 {
		return Vec2{}, 0
	}
	return v.Scale(1 / l), y / l
}

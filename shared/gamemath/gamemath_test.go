package gamemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tanema/gween/ease"
)

func TestVec2Basics(t *testing.T) {
	a := V(3, 4)
	assert.InDelta(t, 25.0, a.LenSqr(), 1e-9)
	assert.InDelta(t, 5.0, a.Len(), 1e-9)
	assert.InDelta(t, 0.6, a.Normalize().X, 1e-9)
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())
	assert.InDelta(t, 2.0, V(0, 0).Dist(V(2, 0)), 1e-9)
	assert.Equal(t, V(1.5, 2), V(1, 0).Lerp(V(2, 4), 0.5))
	assert.InDelta(t, 10.0, V(30, 40).ClampLen(10).Len(), 1e-9)
	assert.Equal(t, V(1, 1), V(1, 1).ClampLen(10))
}

func TestHeadingRoundTrip(t *testing.T) {
	assert.InDelta(t, 90.0, V(1, 0).Heading(), 1e-9)
	assert.InDelta(t, 0.0, V(0, 1).Heading(), 1e-9)
	d := FromHeading(90)
	assert.InDelta(t, 1.0, d.X, 1e-9)
	assert.InDelta(t, 0.0, d.Z, 1e-9)
}

func TestAngleBetween(t *testing.T) {
	assert.InDelta(t, 90.0, AngleBetween(V(1, 0), V(0, 1)), 1e-9)
	assert.InDelta(t, 180.0, AngleBetween(V(1, 0), V(-2, 0)), 1e-9)
	assert.InDelta(t, 0.0, AngleBetween(V(1, 0), Vec2{}), 1e-9)
}

func TestRotateTowardsLimitsTurn(t *testing.T) {
	got := RotateTowards(V(0, 1), V(1, 0), 45)
	assert.InDelta(t, 45.0, got.Heading(), 1e-6)

	got = RotateTowards(V(0, 1), V(1, 0), 180)
	assert.InDelta(t, 90.0, got.Heading(), 1e-6)

	got = RotateTowards(V(0, 1), V(-1, 0), 30)
	assert.InDelta(t, -30.0, got.Heading(), 1e-6)
}

func TestClampAndLerp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-1))
	assert.Equal(t, 1.0, Clamp01(2))
	assert.Equal(t, 0.25, Clamp01(0.25))
	assert.Equal(t, 33.0, Lerp(16, 50, 0.5))
}

func TestChargeProgress(t *testing.T) {
	assert.Equal(t, 0.0, ChargeProgress(1.0, 1.0, 0.5))
	assert.InDelta(t, 0.5, ChargeProgress(1.25, 1.0, 0.5), 1e-9)
	assert.Equal(t, 1.0, ChargeProgress(3.0, 1.0, 0.5))
	assert.Equal(t, 0.0, ChargeProgress(0.5, 1.0, 0.5))
	assert.Equal(t, 1.0, ChargeProgress(0, 0, 0))
}

func TestKickPowerEndpointsAndLinearity(t *testing.T) {
	assert.Equal(t, 16.0, KickPower(16, 50, 0, ease.Linear))
	assert.Equal(t, 50.0, KickPower(16, 50, 1, ease.Linear))
	assert.InDelta(t, 33.0, KickPower(16, 50, 0.5, ease.Linear), 1e-4)
	assert.InDelta(t, 24.5, KickPower(16, 50, 0.25, nil), 1e-4)
	assert.Equal(t, 50.0, KickPower(16, 50, 7, ease.Linear))
}

func TestKickPowerLinearIsExact(t *testing.T) {
	linear := CurveByName("linear")
	assert.Nil(t, linear)
	assert.Equal(t, 26.2, KickPower(16, 50, 0.3, linear))
	assert.Equal(t, 16+34*0.7, KickPower(16, 50, 0.7, CurveByName("nope")))
}

func TestKickPowerCurves(t *testing.T) {
	quad := KickPower(0, 100, 0.5, CurveByName("inQuad"))
	assert.InDelta(t, 25.0, quad, 1e-3)
	assert.Equal(t, 100.0, KickPower(0, 100, 1, CurveByName("inQuad")))
	assert.InDelta(t, 50.0, KickPower(0, 100, 0.5, CurveByName("nope")), 1e-4)
}

func TestApplyPlanarFriction(t *testing.T) {
	v := ApplyPlanarFriction(V(3, 4), 1)
	assert.InDelta(t, 4.0, v.Len(), 1e-9)
	assert.Equal(t, Vec2{}, ApplyPlanarFriction(V(0.3, 0.4), 1))
}

func TestStepHeightBouncesAndSettles(t *testing.T) {
	y, vy, grounded := StepHeight(1.0, 0, 9.81, 0.25, 0.5, 0.1)
	assert.False(t, grounded)
	assert.Less(t, y, 1.0)
	assert.Less(t, vy, 0.0)

	y, vy, grounded = StepHeight(0.26, -4, 9.81, 0.25, 0.5, 0.1)
	assert.True(t, grounded)
	assert.Equal(t, 0.25, y)
	assert.Greater(t, vy, 0.0)

	_, vy, grounded = StepHeight(0.25, 0, 9.81, 0.25, 0.5, 0.01)
	assert.True(t, grounded)
	assert.Equal(t, 0.0, vy)
	assert.False(t, math.IsNaN(vy))
}

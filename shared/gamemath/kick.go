package gamemath

import "github.com/tanema/gween/ease"

// linear is absent: a nil curve is an exact float64 lerp.
var curves = map[string]ease.TweenFunc{
	"inQuad":    ease.InQuad,
	"outQuad":   ease.OutQuad,
	"inOutQuad": ease.InOutQuad,
	"inCubic":   ease.InCubic,
	"outCubic":  ease.OutCubic,
	"inSine":    ease.InSine,
	"outSine":   ease.OutSine,
}

// CurveByName returns the easing function for a charge curve name. Linear
// and unknown names return nil, which KickPower treats as linear.
func CurveByName(name string) ease.TweenFunc {
	return curves[name]
}

// ChargeProgress returns clamp01((now-start)/duration). A non-positive
// duration counts as fully charged.
func ChargeProgress(now, start, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return Clamp01((now - start) / duration)
}

// KickPower maps a charge ratio onto [minPower, maxPower] through curve.
// A nil curve is lerp(minPower, maxPower, ratio) in float64. Eased curves
// run in float32.
func KickPower(minPower, maxPower, ratio float64, curve ease.TweenFunc) float64 {
	ratio = Clamp01(ratio)
	if curve == nil {
		return Lerp(minPower, maxPower, ratio)
	}
	eased := float64(curve(float32(ratio), 0, 1, 1))
	if ratio == 0 {
		eased = 0
	} else if ratio == 1 {
		eased = 1
	}
	return Lerp(minPower, maxPower, eased)
}

package animation

// Easing and intensity curves used by the effects, all of them are pure
// functions of their arguments

import (
	"math"

	"github.com/TeamNorCal/presence/model"
)

// Smoothstep is the cubic ease t²(3−2t), t is clamped to [0,1] first
func Smoothstep(t float64) float64 {
	t = model.Clamp01(t)
	return t * t * (3.0 - 2.0*t)
}

// Gaussian is a bell shaped falloff exp(-(x-center)²/width)
func Gaussian(x float64, center float64, width float64) float64 {
	d := x - center
	return math.Exp(-(d * d) / width)
}

// EaseOutQuad is the soft leading edge t(2−t)
func EaseOutQuad(t float64) float64 {
	return t * (2.0 - t)
}

// Triangle folds step into a rise and fall over period steps, the result
// rises from 0 to period/2 and falls back
func Triangle(step int, period int) int {
	step %= period
	if step < period/2 {
		return step
	}
	return period - step
}

// Package tween provides easing curves and time-sampled interpolation between two points.
// Tweens hold no timers: callers pass the current time in milliseconds on every sample.
package tween

// EaseFunc remaps linear progress t in [0, 1] onto an eased progress in [0, 1].
type EaseFunc func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 {
	return t
}

// EaseInOutQuad accelerates quadratically to the midpoint and decelerates after it.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// EaseInOutCubic is the cubic S-curve: 4t³ below the midpoint, 1 - (-2t+2)³/2 above it.
// Value and first derivative are continuous at t = 0.5.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - pow(-2*t+2, 3)/2
}

// pow calculates x^n
func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}

package statusview

// Easing maps normalized animation time t in [0, 1] to normalized
// progress. Hosts apply it when interpolating between the start and end
// values of an animation.
type Easing func(t float64) float64

// Linear is constant-velocity interpolation.
func Linear(t float64) float64 { return clamp01(t) }

// EaseOutCubic starts fast and decelerates. Entry animations use it.
func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}

// EaseInCubic starts slow and accelerates. Exit animations use it.
func EaseInCubic(t float64) float64 {
	t = clamp01(t)
	return t * t * t
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

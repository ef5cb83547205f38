package statusview

import (
	"strings"
	"time"

	"github.com/hakkabon/StatusView/geom"
)

// View is the host-side visual for a single banner. The coordinator only
// moves and fades it; all drawing belongs to the host adapter.
type View interface {
	// Frame returns the view's current rectangle in host coordinates.
	Frame() geom.Rect
	// SetFrame moves and resizes the view immediately, without animating.
	SetFrame(geom.Rect)
	// SetOpacity sets the view's opacity in [0, 1].
	SetOpacity(float64)
}

// Host is an always-on-top surface banners are attached to. Hosts must
// tolerate Bounds and Insets being called from any goroutine; Attach and
// Detach are only ever called on the main loop.
type Host interface {
	// Attach creates and mounts a view for the banner. The returned view
	// starts fully transparent at an undefined position.
	Attach(n *Notification) (View, error)
	// Detach unmounts a view previously returned by Attach.
	Detach(v View)
	// Bounds returns the size of the host surface.
	Bounds() geom.Size
	// Insets returns the reserved space along each host edge.
	Insets() geom.Insets
}

// Animator performs visual interpolation for the coordinator. Completion
// callbacks must be invoked on the main loop, exactly once, after the
// final value has been applied. A non-positive duration applies the end
// value immediately.
type Animator interface {
	Move(v View, from, to geom.Point, d time.Duration, easing Easing, done func())
	Fade(v View, from, to float64, d time.Duration, done func())
}

// MainLoop is the UI-affine execution context. All geometry mutation and
// animation triggering happens on it. Post never blocks on the work it
// schedules; submitted functions run serially in submission order.
type MainLoop interface {
	Post(fn func())
}

// Measurer computes the bounding box needed to render a text block across
// multiple lines when constrained to the given width.
type Measurer interface {
	Measure(text string, width float64) geom.Size
}

// CharCellMeasurer approximates text measurement from fixed per-character
// metrics. It is the default measurer; hosts with access to real font
// metrics should supply their own.
type CharCellMeasurer struct {
	CharWidth  float64 // advance per character
	LineHeight float64 // height per wrapped line
	PadX       float64 // horizontal padding added to the result
	PadY       float64 // vertical padding added to the result
}

// DefaultMeasurer returns metrics sized for a typical UI font.
func DefaultMeasurer() CharCellMeasurer {
	return CharCellMeasurer{CharWidth: 8, LineHeight: 20, PadX: 24, PadY: 12}
}

// Measure greedily word-wraps text to the given width and returns the
// resulting block size including padding.
func (m CharCellMeasurer) Measure(text string, width float64) geom.Size {
	charW := m.CharWidth
	if charW <= 0 {
		charW = 1
	}
	lineH := m.LineHeight
	if lineH <= 0 {
		lineH = 1
	}

	maxChars := int((width - 2*m.PadX) / charW)
	if maxChars < 1 {
		maxChars = 1
	}

	lines := 0
	longest := 0
	for _, para := range strings.Split(text, "\n") {
		for _, chars := range wrapLine(para, maxChars) {
			lines++
			if chars > longest {
				longest = chars
			}
		}
	}
	if lines == 0 {
		lines = 1
	}

	return geom.Size{
		Width:  float64(longest)*charW + 2*m.PadX,
		Height: float64(lines)*lineH + 2*m.PadY,
	}
}

// wrapLine returns the character count of each wrapped line of a single
// paragraph. Words longer than the limit are broken mid-word.
func wrapLine(para string, limit int) []int {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []int{0}
	}

	var counts []int
	current := 0
	for _, w := range words {
		n := len([]rune(w))
		for n > limit {
			if current > 0 {
				counts = append(counts, current)
				current = 0
			}
			counts = append(counts, limit)
			n -= limit
		}
		if n == 0 {
			continue
		}
		switch {
		case current == 0:
			current = n
		case current+1+n <= limit:
			current += 1 + n
		default:
			counts = append(counts, current)
			current = n
		}
	}
	if current > 0 {
		counts = append(counts, current)
	}
	return counts
}

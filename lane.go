package statusview

import "github.com/hakkabon/StatusView/geom"

// Gap is the fixed vertical spacing between stacked banners, and between
// a banner and its anchor edge, in host units.
const Gap = 2.0

// lane is the ordered stack of banners currently attached to one anchor,
// oldest first. The newest banner occupies the head slot at the anchor
// edge; older banners sit further away, shifted forward each time a new
// sibling arrives. The coordinator's lock guards all access.
type lane struct {
	anchor  Anchor
	members []*Notification
}

func (l *lane) append(n *Notification) {
	l.members = append(l.members, n)
}

func (l *lane) index(n *Notification) int {
	for i, m := range l.members {
		if m == n {
			return i
		}
	}
	return -1
}

func (l *lane) remove(n *Notification) bool {
	i := l.index(n)
	if i < 0 {
		return false
	}
	l.members = append(l.members[:i], l.members[i+1:]...)
	return true
}

// snapshot returns a copy of the member slice for iteration outside the
// coordinator's lock.
func (l *lane) snapshot() []*Notification {
	out := make([]*Notification, len(l.members))
	copy(out, l.members)
	return out
}

// headFrame returns the on-screen slot a newly arriving banner of the
// given size occupies at the anchor edge.
func headFrame(anchor Anchor, sz geom.Size, bounds geom.Size, insets geom.Insets) geom.Rect {
	var x float64
	switch anchor {
	case AnchorTopLeft, AnchorBottomLeft:
		x = insets.Left + Gap
	case AnchorTopRight, AnchorBottomRight:
		x = bounds.Width - insets.Right - sz.Width - Gap
	default:
		x = (bounds.Width - sz.Width) / 2
	}

	var y float64
	if anchor.IsBottom() {
		y = bounds.Height - insets.Bottom - sz.Height - Gap
	} else {
		y = insets.Top + Gap
	}

	return geom.Rect{Origin: geom.Point{X: x, Y: y}, Size: sz}
}

// stagingFrame returns the fully off-screen starting position for a
// banner whose final slot is known. Entry is always vertical, from the
// banner's own anchor edge.
func stagingFrame(anchor Anchor, final geom.Rect, bounds geom.Size) geom.Rect {
	staging := final
	if anchor.IsBottom() {
		staging.Origin.Y = bounds.Height
	} else {
		staging.Origin.Y = -final.Size.Height
	}
	return staging
}

// exitPoint returns the destination origin for a banner's exit slide,
// derived from its anchor family and exit type.
//
//	              dequeue                pop                  slide
//	top family    down to bottom edge    up off the top       sideways
//	bottom family up to top edge         down off the bottom  sideways
//
// Slide leaves through the left edge for left anchors and through the
// right edge otherwise.
func exitPoint(anchor Anchor, exit ExitType, frame geom.Rect, bounds geom.Size) geom.Point {
	p := frame.Origin
	switch exit {
	case ExitPop:
		if anchor.IsBottom() {
			p.Y = bounds.Height
		} else {
			p.Y = -frame.Size.Height
		}
	case ExitSlide:
		if anchor.IsLeft() {
			p.X = -frame.Size.Width
		} else {
			p.X = bounds.Width
		}
	default: // ExitDequeue
		if anchor.IsBottom() {
			p.Y = -frame.Size.Height
		} else {
			p.Y = bounds.Height
		}
	}
	return p
}

// maxBannerHeight returns the tallest banner the host admits at the given
// anchor. Roomier hosts admit taller banners, and a banner never takes
// more than a third of the space left over after the anchor family's
// inset.
func maxBannerHeight(anchor Anchor, bounds geom.Size, insets geom.Insets) float64 {
	cap := 112.0
	if bounds.Height >= 700 {
		cap = 160.0
	}

	usable := bounds.Height
	if anchor.IsBottom() {
		usable -= insets.Bottom
	} else {
		usable -= insets.Top
	}
	if usable <= 0 {
		return cap
	}
	if third := usable / 3; third < cap {
		return third
	}
	return cap
}

package statusview

// Anchor is one of the six fixed screen positions a banner can attach to.
type Anchor string

const (
	AnchorTop         Anchor = "top"
	AnchorTopLeft     Anchor = "top-left"
	AnchorTopRight    Anchor = "top-right"
	AnchorBottom      Anchor = "bottom"
	AnchorBottomLeft  Anchor = "bottom-left"
	AnchorBottomRight Anchor = "bottom-right"
)

// ValidAnchors returns all valid anchor values.
func ValidAnchors() []Anchor {
	return []Anchor{
		AnchorTop,
		AnchorTopLeft,
		AnchorTopRight,
		AnchorBottom,
		AnchorBottomLeft,
		AnchorBottomRight,
	}
}

// Valid reports whether a is one of the six known anchors.
func (a Anchor) Valid() bool {
	switch a {
	case AnchorTop, AnchorTopLeft, AnchorTopRight,
		AnchorBottom, AnchorBottomLeft, AnchorBottomRight:
		return true
	default:
		return false
	}
}

// Group is an exclusivity domain: all top anchors share one exclusive
// animation slot, all bottom anchors share another.
type Group string

const (
	GroupTop    Group = "top"
	GroupBottom Group = "bottom"
)

// Group returns the exclusivity domain the anchor belongs to.
func (a Anchor) Group() Group {
	if a.IsBottom() {
		return GroupBottom
	}
	return GroupTop
}

// IsBottom reports whether the anchor is in the bottom family.
func (a Anchor) IsBottom() bool {
	switch a {
	case AnchorBottom, AnchorBottomLeft, AnchorBottomRight:
		return true
	default:
		return false
	}
}

// IsLeft reports whether the anchor hugs the left host edge. Used to pick
// the horizontal exit edge for the slide exit type.
func (a Anchor) IsLeft() bool {
	return a == AnchorTopLeft || a == AnchorBottomLeft
}

// ExitType selects the dismiss choreography for a banner.
type ExitType string

const (
	// ExitDequeue slides the banner across the host to the opposite edge.
	ExitDequeue ExitType = "dequeue"
	// ExitPop slides the banner back out past the edge it entered from.
	ExitPop ExitType = "pop"
	// ExitSlide slides the banner sideways off the nearest horizontal edge.
	ExitSlide ExitType = "slide"
)

// Valid reports whether e is a known exit type.
func (e ExitType) Valid() bool {
	switch e {
	case ExitDequeue, ExitPop, ExitSlide:
		return true
	default:
		return false
	}
}

// Alignment controls text alignment inside a banner.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// ImageLocation places an optional image on one side of the banner text.
type ImageLocation string

const (
	ImageLeft  ImageLocation = "left"
	ImageRight ImageLocation = "right"
)

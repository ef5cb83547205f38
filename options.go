package statusview

import "time"

// Default display parameters.
const (
	DefaultWidth    = 320.0
	MinWidth        = 96.0
	DefaultOpacity  = 1.0
	DefaultFadeIn   = 100 * time.Millisecond
	DefaultFadeOut  = 100 * time.Millisecond
	DefaultShowAnim = 500 * time.Millisecond
	DefaultHideAnim = 500 * time.Millisecond
	DefaultShowFor  = 3 * time.Second
)

// Options are the per-banner display parameters. They are copied at
// construction time; mutating an Options value after the banner has been
// created has no effect. Start from DefaultOptions and override what you
// need — the zero value of SecondsToShow is meaningful (it disables
// auto-hide), so Options are not normalized against the defaults.
type Options struct {
	// Position is the screen anchor the banner attaches to.
	Position Anchor

	// Width is the maximum banner width in host units. The measured text
	// may produce a narrower banner, never a wider one.
	Width float64

	// TextAlignment aligns the title and subtitle inside the banner.
	TextAlignment Alignment

	// Image is an optional host-interpreted image reference (a file path
	// or icon name). Empty means no image.
	Image string

	// ImageLocation places the image left or right of the text.
	ImageLocation ImageLocation

	// FadeIn is the opacity fade duration before the entry slide starts.
	FadeIn time.Duration

	// FadeOut is the opacity fade duration after the exit slide ends.
	FadeOut time.Duration

	// ShowAnimation is the duration of the entry slide.
	ShowAnimation time.Duration

	// HideAnimation is the duration of the exit slide.
	HideAnimation time.Duration

	// SecondsToShow is the auto-hide delay measured from the start of the
	// entry animation. Zero or negative disables auto-hide.
	SecondsToShow time.Duration

	// ViewOpacity is the banner's resting opacity in (0, 1].
	ViewOpacity float64

	// TapToDismiss hides the banner when it is tapped while visible.
	TapToDismiss bool

	// ExitType selects the dismiss choreography.
	ExitType ExitType

	// SoundPath is an optional sound file played when the banner starts
	// to show. Playback is the embedding application's responsibility.
	SoundPath string

	// Tag groups banners for deduplication. While a banner with a
	// non-zero tag is active under a host, showing another banner with
	// the same tag under that host is a no-op. Zero disables dedup.
	Tag int

	// OnTapped is invoked when the banner is tapped while visible, before
	// any tap-to-dismiss hide is triggered.
	OnTapped func()
}

// DefaultOptions returns Options with every field at its default value.
func DefaultOptions() Options {
	return Options{
		Position:      AnchorTop,
		Width:         DefaultWidth,
		TextAlignment: AlignCenter,
		ImageLocation: ImageLeft,
		FadeIn:        DefaultFadeIn,
		FadeOut:       DefaultFadeOut,
		ShowAnimation: DefaultShowAnim,
		HideAnimation: DefaultHideAnim,
		SecondsToShow: DefaultShowFor,
		ViewOpacity:   DefaultOpacity,
		TapToDismiss:  true,
		ExitType:      ExitDequeue,
	}
}

// Validate checks the option fields that have no sensible interpretation
// when out of range.
func (o Options) Validate() error {
	if !o.Position.Valid() {
		return ErrInvalidAnchor
	}
	if !o.ExitType.Valid() {
		return ErrInvalidExitType
	}
	return nil
}

// normalized returns a copy of o with out-of-range values clamped.
func (o Options) normalized() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.ViewOpacity <= 0 || o.ViewOpacity > 1 {
		o.ViewOpacity = DefaultOpacity
	}
	if o.TextAlignment == "" {
		o.TextAlignment = AlignCenter
	}
	if o.ImageLocation == "" {
		o.ImageLocation = ImageLeft
	}
	if o.FadeIn < 0 {
		o.FadeIn = 0
	}
	if o.FadeOut < 0 {
		o.FadeOut = 0
	}
	if o.ShowAnimation < 0 {
		o.ShowAnimation = 0
	}
	if o.HideAnimation < 0 {
		o.HideAnimation = 0
	}
	return o
}

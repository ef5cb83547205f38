package statusview

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hakkabon/StatusView/geom"
)

// State is a banner's position in its presentation lifecycle. A banner
// moves strictly forward through hidden, showing, visible and hiding;
// the two moving states are transient detours from visible taken while a
// sibling arrives or leaves.
type State string

const (
	StateHidden         State = "hidden"
	StateShowing        State = "showing"
	StateVisible        State = "visible"
	StateHiding         State = "hiding"
	StateMovingForward  State = "moving-forward"
	StateMovingBackward State = "moving-backward"
)

// active reports whether the banner occupies a lane slot that siblings
// must shift around.
func (s State) active() bool {
	switch s {
	case StateShowing, StateVisible, StateMovingForward, StateMovingBackward:
		return true
	default:
		return false
	}
}

// ForcedHideDuration is the fixed fast duration used for every stage of
// a forced hide, regardless of the banner's configured animations.
const ForcedHideDuration = 100 * time.Millisecond

// Banner IDs are ULIDs with monotonic entropy, so IDs order by creation
// time even within the same millisecond.
var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newID() (ulid.ULID, error) {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.New(ulid.Timestamp(time.Now()), entropy)
}

// Notification is a single transient banner. It is single-use: show it
// once, and once hidden it cannot be shown again. All methods are safe
// to call from any goroutine.
type Notification struct {
	id       ulid.ULID
	title    string
	subtitle string
	opts     Options

	coord *Coordinator
	host  Host

	mu            sync.Mutex
	view          View
	state         State
	frame         geom.Rect
	size          geom.Size
	hideScheduled bool
	holdsSlot     bool
}

// New creates a banner bound to a coordinator and a host surface. The
// options are copied; later mutation of opts has no effect.
func New(c *Coordinator, host Host, title, subtitle string, opts Options) (*Notification, error) {
	if c == nil {
		return nil, ErrNoCoordinator
	}
	if host == nil {
		return nil, ErrNoHost
	}
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	return &Notification{
		id:       id,
		title:    title,
		subtitle: subtitle,
		opts:     opts.normalized(),
		coord:    c,
		host:     host,
		state:    StateHidden,
	}, nil
}

// ID returns the banner's unique, time-ordered identifier.
func (n *Notification) ID() string { return n.id.String() }

// Title returns the banner title.
func (n *Notification) Title() string { return n.title }

// Subtitle returns the banner subtitle, which may be empty.
func (n *Notification) Subtitle() string { return n.subtitle }

// Tag returns the banner's dedup tag, zero if untagged.
func (n *Notification) Tag() int { return n.opts.Tag }

// Options returns the banner's normalized display options.
func (n *Notification) Options() Options { return n.opts }

// Host returns the surface the banner presents on.
func (n *Notification) Host() Host { return n.host }

// State returns the banner's current lifecycle state.
func (n *Notification) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Frame returns the banner's logical on-host rectangle. During shifts the
// logical frame leads the visual one: it is updated when the shift is
// decided, not when the animation lands.
func (n *Notification) Frame() geom.Rect {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.frame
}

// Size returns the banner's measured size.
func (n *Notification) Size() geom.Size {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.size
}

// Show enqueues the banner for presentation. Presentation order across
// banners follows Show call order; banners anchored to the same screen
// half additionally wait for each other's entry animations to finish.
func (n *Notification) Show() error {
	return n.coord.show(n)
}

// Hide enqueues the banner for dismissal. Hiding is idempotent: calling
// Hide on a banner that is already hiding, hidden, or queued to hide is
// a no-op, so an auto-hide timer firing after a manual Hide is harmless.
func (n *Notification) Hide() {
	n.coord.hide(n, false)
}

// ForceHide dismisses the banner immediately, skipping the ordering
// queue and replacing its exit animations with a fixed fast duration.
// A forced hide overrides an in-flight entry animation.
func (n *Notification) ForceHide() {
	n.coord.hide(n, true)
}

// Tap delivers a tap to the banner. Taps are ignored unless the banner
// is fully visible; a delivered tap first invokes the OnTapped callback,
// then hides the banner if TapToDismiss is set.
func (n *Notification) Tap() {
	if n.State() != StateVisible {
		return
	}
	if fn := n.opts.OnTapped; fn != nil {
		fn()
	}
	if n.opts.TapToDismiss {
		n.Hide()
	}
}

func (n *Notification) setState(s State) {
	n.mu.Lock()
	n.state = s
	n.mu.Unlock()
}

func (n *Notification) setFrame(f geom.Rect) {
	n.mu.Lock()
	n.frame = f
	n.mu.Unlock()
}

func (n *Notification) setView(v View) {
	n.mu.Lock()
	n.view = v
	n.mu.Unlock()
}

func (n *Notification) currentView() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.view
}

func (n *Notification) setHoldsSlot(v bool) {
	n.mu.Lock()
	n.holdsSlot = v
	n.mu.Unlock()
}

// takeHoldsSlot clears the holds-slot flag and reports whether it was
// set, so the slot is released exactly once per acquisition.
func (n *Notification) takeHoldsSlot() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	v := n.holdsSlot
	n.holdsSlot = false
	return v
}

// markHide records that a hide has been requested. It reports false if a
// hide was already pending, making every hide path idempotent.
func (n *Notification) markHide() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.hideScheduled {
		return false
	}
	n.hideScheduled = true
	return true
}

func (n *Notification) hideRequested() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.hideScheduled
}

// adjustSize measures the banner text against the live host geometry and
// records the resulting size. Runs on the main loop before attach.
func (n *Notification) adjustSize(bounds geom.Size, insets geom.Insets) {
	text := n.title
	if n.subtitle != "" {
		text += "\n" + n.subtitle
	}
	sz := n.coord.meas.Measure(text, n.opts.Width)

	if maxH := maxBannerHeight(n.opts.Position, bounds, insets); sz.Height > maxH {
		sz.Height = maxH
	}
	if n.opts.Image != "" {
		// room for a square image beside the text
		sz.Width += 2 * sz.Height
	}
	// the minimum only binds when the configured width allows it, so
	// hosts with coarse units (terminal cells) can go narrower
	minW := MinWidth
	if n.opts.Width < minW {
		minW = n.opts.Width
	}
	if sz.Width < minW {
		sz.Width = minW
	}
	if sz.Width > n.opts.Width {
		sz.Width = n.opts.Width
	}

	n.mu.Lock()
	n.size = sz
	n.mu.Unlock()
}

// showView runs the entry choreography: place the view off-screen at the
// anchor edge, fade it in, then slide it to its lane slot. Runs on the
// main loop. Completion callbacks bail out if a forced hide has taken
// over in the meantime.
func (n *Notification) showView(final geom.Rect) {
	c := n.coord
	staging := stagingFrame(n.opts.Position, final, n.host.Bounds())

	n.setState(StateShowing)
	n.setFrame(final)

	v := n.currentView()
	v.SetFrame(staging)
	v.SetOpacity(0)

	c.anim.Fade(v, 0, n.opts.ViewOpacity, n.opts.FadeIn, func() {
		if n.State() != StateShowing {
			return
		}
		c.anim.Move(v, staging.Origin, final.Origin, n.opts.ShowAnimation, EaseOutCubic, func() {
			if n.State() != StateShowing {
				return
			}
			n.setState(StateVisible)
			c.didShow(n)
		})
	})
}

// hideView runs the exit choreography: slide toward the exit point, then
// fade out, then tear down. Runs on the main loop. Once a banner is
// hiding nothing interrupts it, so the completions need no guards.
func (n *Notification) hideView(forced bool) {
	c := n.coord
	n.setState(StateHiding)

	frame := n.Frame()
	dest := exitPoint(n.opts.Position, n.opts.ExitType, frame, n.host.Bounds())

	slideDur := n.opts.HideAnimation
	fadeDur := n.opts.FadeOut
	if forced {
		slideDur = ForcedHideDuration
		fadeDur = ForcedHideDuration
	}

	v := n.currentView()
	c.anim.Move(v, frame.Origin, dest, slideDur, EaseInCubic, func() {
		c.anim.Fade(v, n.opts.ViewOpacity, 0, fadeDur, func() {
			n.setState(StateHidden)
			c.didHide(n)
		})
	})
}

// pushView shifts the banner along its lane axis to make room for an
// arriving sibling (forward) or close the gap left by a departing one
// (backward). The logical frame moves immediately; the visual move runs
// after the given delay. Runs on the main loop.
func (n *Notification) pushView(distance float64, forward bool, delay time.Duration) {
	dy := distance
	if !forward {
		dy = -distance
	}
	if n.opts.Position.IsBottom() {
		dy = -dy
	}

	from := n.Frame()
	to := from.Offset(0, dy)
	n.setFrame(to)

	dur := n.opts.ShowAnimation
	moving := StateMovingForward
	if !forward {
		dur = n.opts.HideAnimation
		moving = StateMovingBackward
	}

	n.mu.Lock()
	if n.state == StateVisible {
		n.state = moving
	}
	n.mu.Unlock()

	v := n.currentView()
	start := func() {
		if !n.State().active() {
			return
		}
		n.coord.anim.Move(v, from.Origin, to.Origin, dur, EaseOutCubic, func() {
			n.mu.Lock()
			if n.state == moving {
				n.state = StateVisible
			}
			n.mu.Unlock()
		})
	}
	if delay > 0 {
		n.coord.after(delay, start)
	} else {
		start()
	}
}

package termview

import (
	"log/slog"
	"sync"
	"time"

	statusview "github.com/hakkabon/StatusView"
	"github.com/hakkabon/StatusView/geom"
)

// tickInterval is the animation step rate, roughly 30fps.
const tickInterval = 33 * time.Millisecond

var (
	_ statusview.Host     = (*Host)(nil)
	_ statusview.Animator = (*Host)(nil)
	_ statusview.MainLoop = (*Host)(nil)
	_ statusview.View     = (*View)(nil)
)

// Host presents banners over a terminal surface measured in character
// cells. It owns a run-loop goroutine that serves as the coordinator's
// main loop and steps animations on a fixed tick.
type Host struct {
	logger *slog.Logger

	loop   chan func()
	stopCh chan struct{}
	doneCh chan struct{}

	mu     sync.RWMutex
	size   geom.Size
	insets geom.Insets
	views  []*View // attach order, last drawn on top

	// animation state, touched only on the run loop
	tweens []*tween
}

// NewHost creates a host covering a terminal area of the given size in
// cells and starts its run loop. A nil logger falls back to
// slog.Default. Call Close when done.
func NewHost(width, height int, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Host{
		logger: logger,
		loop:   make(chan func(), 256),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		size:   geom.Size{Width: float64(width), Height: float64(height)},
	}
	go h.run()
	return h
}

// Close stops the run loop. Pending animations are abandoned.
func (h *Host) Close() {
	close(h.stopCh)
	<-h.doneCh
}

func (h *Host) run() {
	defer close(h.doneCh)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case fn := <-h.loop:
			fn()
		case <-ticker.C:
			h.step(time.Now())
		case <-h.stopCh:
			return
		}
	}
}

// Post schedules fn on the run loop. It implements statusview.MainLoop.
func (h *Host) Post(fn func()) {
	select {
	case h.loop <- fn:
	case <-h.stopCh:
	}
}

// SetSize updates the hosted area, typically from a window size message.
func (h *Host) SetSize(width, height int) {
	h.mu.Lock()
	h.size = geom.Size{Width: float64(width), Height: float64(height)}
	h.mu.Unlock()
}

// SetInsets reserves terminal rows or columns banners must not cover,
// such as a status bar.
func (h *Host) SetInsets(insets geom.Insets) {
	h.mu.Lock()
	h.insets = insets
	h.mu.Unlock()
}

// Bounds implements statusview.Host.
func (h *Host) Bounds() geom.Size {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}

// Insets implements statusview.Host.
func (h *Host) Insets() geom.Insets {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.insets
}

// Attach implements statusview.Host.
func (h *Host) Attach(n *statusview.Notification) (statusview.View, error) {
	v := &View{banner: n, opacity: 0}
	h.mu.Lock()
	h.views = append(h.views, v)
	h.mu.Unlock()
	h.logger.Debug("banner attached to terminal host", "id", n.ID())
	return v, nil
}

// Detach implements statusview.Host.
func (h *Host) Detach(view statusview.View) {
	v, ok := view.(*View)
	if !ok {
		return
	}
	h.mu.Lock()
	for i, cur := range h.views {
		if cur == v {
			h.views = append(h.views[:i], h.views[i+1:]...)
			break
		}
	}
	h.mu.Unlock()
}

// Measurer returns cell-based text metrics: one cell per character, one
// row per line, plus the banner border and padding.
func (h *Host) Measurer() statusview.Measurer {
	return statusview.CharCellMeasurer{CharWidth: 1, LineHeight: 1, PadX: 2, PadY: 1}
}

// TapAt delivers a tap at the given cell to the topmost banner whose
// frame contains it. It reports whether a banner was hit.
func (h *Host) TapAt(x, y int) bool {
	p := geom.Point{X: float64(x), Y: float64(y)}

	h.mu.RLock()
	var hit *View
	for i := len(h.views) - 1; i >= 0; i-- {
		f := h.views[i].Frame()
		if p.X >= f.Origin.X && p.X < f.MaxX() && p.Y >= f.Origin.Y && p.Y < f.MaxY() {
			hit = h.views[i]
			break
		}
	}
	h.mu.RUnlock()

	if hit == nil {
		return false
	}
	hit.banner.Tap()
	return true
}

// View is a banner's visual on the terminal host.
type View struct {
	banner *statusview.Notification

	mu      sync.Mutex
	frame   geom.Rect
	opacity float64
}

// Frame implements statusview.View.
func (v *View) Frame() geom.Rect {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frame
}

// SetFrame implements statusview.View.
func (v *View) SetFrame(f geom.Rect) {
	v.mu.Lock()
	v.frame = f
	v.mu.Unlock()
}

// SetOpacity implements statusview.View.
func (v *View) SetOpacity(o float64) {
	v.mu.Lock()
	v.opacity = o
	v.mu.Unlock()
}

func (v *View) currentOpacity() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.opacity
}

package statusview

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/hakkabon/StatusView/geom"
)

// serialLoop runs posted functions one at a time on a dedicated
// goroutine, standing in for a toolkit main loop.
type serialLoop struct {
	ch chan func()
}

func newSerialLoop() *serialLoop {
	l := &serialLoop{ch: make(chan func(), 1024)}
	go func() {
		for fn := range l.ch {
			fn()
		}
	}()
	return l
}

func (l *serialLoop) Post(fn func()) { l.ch <- fn }

type fakeView struct {
	mu      sync.Mutex
	frame   geom.Rect
	opacity float64
}

func (v *fakeView) Frame() geom.Rect {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frame
}

func (v *fakeView) SetFrame(f geom.Rect) {
	v.mu.Lock()
	v.frame = f
	v.mu.Unlock()
}

func (v *fakeView) SetOpacity(o float64) {
	v.mu.Lock()
	v.opacity = o
	v.mu.Unlock()
}

func (v *fakeView) Opacity() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.opacity
}

// fakeHost records attach and detach traffic, in order.
type fakeHost struct {
	mu        sync.Mutex
	bounds    geom.Size
	insets    geom.Insets
	attached  []*Notification
	detached  []*Notification
	views     map[View]*Notification
	attachErr error
	onAttach  func(*Notification)
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		bounds: geom.Size{Width: 800, Height: 600},
		views:  make(map[View]*Notification),
	}
}

func (h *fakeHost) Attach(n *Notification) (View, error) {
	h.mu.Lock()
	err := h.attachErr
	h.attachErr = nil
	cb := h.onAttach
	var v *fakeView
	if err == nil {
		v = &fakeView{}
		h.attached = append(h.attached, n)
		h.views[v] = n
	}
	h.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if cb != nil {
		cb(n)
	}
	return v, nil
}

func (h *fakeHost) Detach(v View) {
	h.mu.Lock()
	h.detached = append(h.detached, h.views[v])
	delete(h.views, v)
	h.mu.Unlock()
}

func (h *fakeHost) Bounds() geom.Size {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bounds
}

func (h *fakeHost) Insets() geom.Insets {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.insets
}

func (h *fakeHost) attachCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.attached)
}

func (h *fakeHost) detachCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.detached)
}

func (h *fakeHost) detachOrder() []*Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Notification, len(h.detached))
	copy(out, h.detached)
	return out
}

// fakeAnimator honors requested durations on wall-clock timers and
// applies end values before invoking completions on the loop.
type fakeAnimator struct {
	loop *serialLoop

	mu        sync.Mutex
	moveCount int
	fadeCount int
}

func (a *fakeAnimator) Move(v View, from, to geom.Point, d time.Duration, easing Easing, done func()) {
	a.mu.Lock()
	a.moveCount++
	a.mu.Unlock()

	finish := func() {
		f := v.Frame()
		f.Origin = to
		v.SetFrame(f)
		if done != nil {
			done()
		}
	}
	if d <= 0 {
		finish()
		return
	}
	time.AfterFunc(d, func() { a.loop.Post(finish) })
}

func (a *fakeAnimator) Fade(v View, from, to float64, d time.Duration, done func()) {
	a.mu.Lock()
	a.fadeCount++
	a.mu.Unlock()

	finish := func() {
		v.SetOpacity(to)
		if done != nil {
			done()
		}
	}
	if d <= 0 {
		finish()
		return
	}
	time.AfterFunc(d, func() { a.loop.Post(finish) })
}

func (a *fakeAnimator) fades() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fadeCount
}

// fixedMeasurer returns the same size for every text block.
type fixedMeasurer struct {
	sz geom.Size
}

func (m fixedMeasurer) Measure(string, float64) geom.Size { return m.sz }

type fixture struct {
	loop *serialLoop
	anim *fakeAnimator
	host *fakeHost
	c    *Coordinator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loop := newSerialLoop()
	anim := &fakeAnimator{loop: loop}
	host := newFakeHost()
	meas := fixedMeasurer{sz: geom.Size{Width: 300, Height: 40}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewCoordinator(loop, anim, meas, logger)
	t.Cleanup(c.Close)
	return &fixture{loop: loop, anim: anim, host: host, c: c}
}

// quickOptions returns options with millisecond animations and auto-hide
// disabled, so tests control every hide explicitly.
func quickOptions(a Anchor) Options {
	o := DefaultOptions()
	o.Position = a
	o.FadeIn = time.Millisecond
	o.FadeOut = time.Millisecond
	o.ShowAnimation = 2 * time.Millisecond
	o.HideAnimation = 2 * time.Millisecond
	o.SecondsToShow = 0
	return o
}

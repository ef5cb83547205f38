package gtkview

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/glib/v2"

	statusview "github.com/hakkabon/StatusView"
	"github.com/hakkabon/StatusView/geom"
)

// frameInterval is the animation step rate in milliseconds, roughly
// 60fps.
const frameInterval = 16

// Loop adapts the GTK main loop to statusview.MainLoop.
type Loop struct{}

// NewLoop returns the GTK main-loop adapter.
func NewLoop() *Loop { return &Loop{} }

// Post schedules fn as an idle callback on the GTK main thread.
func (*Loop) Post(fn func()) {
	glib.IdleAdd(func() {
		fn()
	})
}

// Animator drives view animations with glib timeouts. Every tween runs
// on its own timeout source on the GTK main thread.
type Animator struct{}

// NewAnimator returns the glib timeout animator.
func NewAnimator() *Animator { return &Animator{} }

// Move implements statusview.Animator. It is called on the GTK main
// thread.
func (*Animator) Move(v statusview.View, from, to geom.Point, d time.Duration, easing statusview.Easing, done func()) {
	if d <= 0 {
		f := v.Frame()
		f.Origin = to
		v.SetFrame(f)
		if done != nil {
			done()
		}
		return
	}
	if easing == nil {
		easing = statusview.Linear
	}

	start := time.Now()
	glib.TimeoutAdd(frameInterval, func() bool {
		t := float64(time.Since(start)) / float64(d)
		if t >= 1 {
			f := v.Frame()
			f.Origin = to
			v.SetFrame(f)
			if done != nil {
				done()
			}
			return false
		}
		f := v.Frame()
		f.Origin = from.Lerp(to, easing(t))
		v.SetFrame(f)
		return true
	})
}

// Fade implements statusview.Animator. It is called on the GTK main
// thread.
func (*Animator) Fade(v statusview.View, from, to float64, d time.Duration, done func()) {
	if d <= 0 {
		v.SetOpacity(to)
		if done != nil {
			done()
		}
		return
	}

	start := time.Now()
	glib.TimeoutAdd(frameInterval, func() bool {
		t := float64(time.Since(start)) / float64(d)
		if t >= 1 {
			v.SetOpacity(to)
			if done != nil {
				done()
			}
			return false
		}
		v.SetOpacity(from + (to-from)*t)
		return true
	})
}

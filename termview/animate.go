package termview

import (
	"time"

	statusview "github.com/hakkabon/StatusView"
	"github.com/hakkabon/StatusView/geom"
)

// tweenKind selects which view property a tween drives.
type tweenKind int

const (
	tweenMove tweenKind = iota
	tweenFade
)

// tween is one in-flight animation. Tweens live on the run loop only.
type tween struct {
	view statusview.View
	kind tweenKind

	fromP, toP geom.Point
	fromO, toO float64

	easing   statusview.Easing
	start    time.Time
	duration time.Duration
	done     func()
}

// Move implements statusview.Animator. It is called on the run loop.
func (h *Host) Move(v statusview.View, from, to geom.Point, d time.Duration, easing statusview.Easing, done func()) {
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
	h.tweens = append(h.tweens, &tween{
		view:     v,
		kind:     tweenMove,
		fromP:    from,
		toP:      to,
		easing:   easing,
		start:    time.Now(),
		duration: d,
		done:     done,
	})
}

// Fade implements statusview.Animator. It is called on the run loop.
func (h *Host) Fade(v statusview.View, from, to float64, d time.Duration, done func()) {
	if d <= 0 {
		v.SetOpacity(to)
		if done != nil {
			done()
		}
		return
	}
	h.tweens = append(h.tweens, &tween{
		view:     v,
		kind:     tweenFade,
		fromO:    from,
		toO:      to,
		start:    time.Now(),
		duration: d,
		done:     done,
	})
}

// step advances every in-flight tween to now, applying eased values and
// firing completions for tweens that have landed. Runs on the run loop.
func (h *Host) step(now time.Time) {
	if len(h.tweens) == 0 {
		return
	}

	remaining := h.tweens[:0]
	var finished []*tween
	for _, tw := range h.tweens {
		t := float64(now.Sub(tw.start)) / float64(tw.duration)
		if t >= 1 {
			tw.apply(1)
			finished = append(finished, tw)
			continue
		}
		tw.apply(t)
		remaining = append(remaining, tw)
	}
	h.tweens = remaining

	for _, tw := range finished {
		if tw.done != nil {
			tw.done()
		}
	}
}

func (tw *tween) apply(t float64) {
	switch tw.kind {
	case tweenMove:
		p := t
		if tw.easing != nil {
			p = tw.easing(t)
		}
		f := tw.view.Frame()
		f.Origin = tw.fromP.Lerp(tw.toP, p)
		tw.view.SetFrame(f)
	case tweenFade:
		tw.view.SetOpacity(tw.fromO + (tw.toO-tw.fromO)*t)
	}
}

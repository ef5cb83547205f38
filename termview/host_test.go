package termview

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	statusview "github.com/hakkabon/StatusView"
	"github.com/hakkabon/StatusView/geom"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHost(t *testing.T) (*Host, *statusview.Coordinator) {
	t.Helper()
	h := NewHost(60, 20, testLogger())
	t.Cleanup(h.Close)
	c := statusview.NewCoordinator(h, h, h.Measurer(), testLogger())
	t.Cleanup(c.Close)
	return h, c
}

func quickOptions() statusview.Options {
	o := statusview.DefaultOptions()
	o.Width = 30
	o.FadeIn = time.Millisecond
	o.FadeOut = time.Millisecond
	o.ShowAnimation = 5 * time.Millisecond
	o.HideAnimation = 5 * time.Millisecond
	o.SecondsToShow = 0
	return o
}

func TestShowAndOverlay(t *testing.T) {
	h, c := newTestHost(t)

	n, err := statusview.New(c, h, "deploy done", "3 services updated", quickOptions())
	require.NoError(t, err)
	require.NoError(t, n.Show())

	require.Eventually(t, func() bool {
		return n.State() == statusview.StateVisible
	}, 2*time.Second, 5*time.Millisecond, "banner never became visible")

	out := h.Overlay("")
	assert.Contains(t, out, "deploy done")
	assert.Contains(t, out, "3 services updated")

	// clipped to the host height
	assert.Len(t, strings.Split(out, "\n"), 20)

	// the banner box sits at the measured frame, border and all
	f := n.Frame()
	topRow := strings.Split(out, "\n")[int(f.Origin.Y)]
	assert.Contains(t, topRow, "╭")
}

func TestOverlayPreservesBackground(t *testing.T) {
	h, _ := newTestHost(t)

	bg := strings.TrimSuffix(strings.Repeat("abcdef\n", 20), "\n")
	out := h.Overlay(bg)
	assert.Equal(t, bg, out, "no banners means the background passes through")
}

func TestDetachRemovesFromOverlay(t *testing.T) {
	h, c := newTestHost(t)

	n, err := statusview.New(c, h, "temporary", "", quickOptions())
	require.NoError(t, err)
	require.NoError(t, n.Show())
	require.Eventually(t, func() bool {
		return n.State() == statusview.StateVisible
	}, 2*time.Second, 5*time.Millisecond)

	n.Hide()
	require.Eventually(t, func() bool {
		return n.State() == statusview.StateHidden
	}, 2*time.Second, 5*time.Millisecond)

	assert.NotContains(t, h.Overlay(""), "temporary")
}

func TestTapAtDismisses(t *testing.T) {
	h, c := newTestHost(t)

	n, err := statusview.New(c, h, "tap target", "", quickOptions())
	require.NoError(t, err)
	require.NoError(t, n.Show())
	require.Eventually(t, func() bool {
		return n.State() == statusview.StateVisible
	}, 2*time.Second, 5*time.Millisecond)

	f := n.Frame()
	assert.False(t, h.TapAt(0, 19), "miss should not hit any banner")
	assert.True(t, h.TapAt(int(f.Origin.X)+1, int(f.Origin.Y)+1))

	require.Eventually(t, func() bool {
		return n.State() == statusview.StateHidden
	}, 2*time.Second, 5*time.Millisecond, "tap should dismiss")
}

func TestAnimatorCompletesOnLoop(t *testing.T) {
	h, _ := newTestHost(t)

	v := &View{}
	v.SetFrame(geom.Rect{Size: geom.Size{Width: 10, Height: 3}})

	done := make(chan struct{})
	h.Post(func() {
		h.Move(v, geom.Point{}, geom.Point{X: 20, Y: 5}, 40*time.Millisecond, statusview.EaseOutCubic, func() {
			close(done)
		})
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("move completion never fired")
	}
	assert.Equal(t, geom.Point{X: 20, Y: 5}, v.Frame().Origin)
	assert.Equal(t, geom.Size{Width: 10, Height: 3}, v.Frame().Size)
}

func TestAnimatorZeroDurationIsImmediate(t *testing.T) {
	h, _ := newTestHost(t)

	v := &View{}
	called := make(chan struct{})
	h.Post(func() {
		h.Fade(v, 0, 0.8, 0, func() { close(called) })
	})

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("fade completion never fired")
	}
	assert.Equal(t, 0.8, v.currentOpacity())
}

func TestOverlayLine(t *testing.T) {
	tests := []struct {
		name string
		base string
		over string
		x    int
		want string
	}{
		{name: "middle", base: "0123456789", over: "XX", x: 3, want: "012XX56789"},
		{name: "past end pads", base: "01", over: "XX", x: 4, want: "01  XX"},
		{name: "negative x clips", base: "0123456789", over: "ABCD", x: -2, want: "CD23456789"},
		{name: "fully off left", base: "0123", over: "AB", x: -5, want: "0123"},
		{name: "empty base", base: "", over: "XX", x: 2, want: "  XX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overlayLine(tt.base, tt.over, tt.x))
		})
	}
}

func TestSetSizeAndInsets(t *testing.T) {
	h := NewHost(80, 24, testLogger())
	t.Cleanup(h.Close)

	h.SetSize(100, 40)
	assert.Equal(t, geom.Size{Width: 100, Height: 40}, h.Bounds())

	h.SetInsets(geom.Insets{Top: 1, Bottom: 2})
	assert.Equal(t, geom.Insets{Top: 1, Bottom: 2}, h.Insets())
}

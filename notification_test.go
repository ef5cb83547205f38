package statusview

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakkabon/StatusView/geom"
)

func TestAdjustSize(t *testing.T) {
	bounds := geom.Size{Width: 800, Height: 600}

	tests := []struct {
		name     string
		measured geom.Size
		modify   func(*Options)
		want     geom.Size
	}{
		{
			name:     "measured size within limits",
			measured: geom.Size{Width: 300, Height: 40},
			want:     geom.Size{Width: 300, Height: 40},
		},
		{
			name:     "narrow text clamps to the minimum width",
			measured: geom.Size{Width: 50, Height: 20},
			want:     geom.Size{Width: MinWidth, Height: 20},
		},
		{
			name:     "tall text clamps to the host height cap",
			measured: geom.Size{Width: 300, Height: 500},
			want:     geom.Size{Width: 300, Height: 112},
		},
		{
			name:     "image reserves extra width",
			measured: geom.Size{Width: 300, Height: 40},
			modify:   func(o *Options) { o.Image = "alert.png"; o.Width = 500 },
			want:     geom.Size{Width: 380, Height: 40},
		},
		{
			name:     "image width still clamps to the configured width",
			measured: geom.Size{Width: 300, Height: 40},
			modify:   func(o *Options) { o.Image = "alert.png" },
			want:     geom.Size{Width: DefaultWidth, Height: 40},
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loop := newSerialLoop()
			c := NewCoordinator(loop, &fakeAnimator{loop: loop}, fixedMeasurer{sz: tt.measured}, logger)
			t.Cleanup(c.Close)

			opts := DefaultOptions()
			if tt.modify != nil {
				tt.modify(&opts)
			}
			n, err := New(c, newFakeHost(), "title", "subtitle", opts)
			require.NoError(t, err)

			n.adjustSize(bounds, geom.Insets{})
			assert.Equal(t, tt.want, n.Size())
		})
	}
}

func TestStateActive(t *testing.T) {
	active := []State{StateShowing, StateVisible, StateMovingForward, StateMovingBackward}
	for _, s := range active {
		assert.True(t, s.active(), string(s))
	}
	for _, s := range []State{StateHidden, StateHiding} {
		assert.False(t, s.active(), string(s))
	}
}

func TestNewIDsAreOrdered(t *testing.T) {
	f := newFixture(t)

	prev := ""
	for range 50 {
		n, err := New(f.c, f.host, "x", "", DefaultOptions())
		require.NoError(t, err)
		require.Greater(t, n.ID(), prev, "IDs must sort by creation order")
		prev = n.ID()
	}
}

func TestNotificationAccessors(t *testing.T) {
	f := newFixture(t)

	opts := DefaultOptions()
	opts.Tag = 9
	n, err := New(f.c, f.host, "title", "subtitle", opts)
	require.NoError(t, err)

	assert.Equal(t, "title", n.Title())
	assert.Equal(t, "subtitle", n.Subtitle())
	assert.Equal(t, 9, n.Tag())
	assert.Same(t, f.host, n.Host())
	assert.Equal(t, StateHidden, n.State())
	assert.True(t, n.Frame().Size.IsZero())
}

package statusview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharCellMeasurer(t *testing.T) {
	m := CharCellMeasurer{CharWidth: 10, LineHeight: 20}

	tests := []struct {
		name       string
		text       string
		width      float64
		wantWidth  float64
		wantHeight float64
	}{
		{
			name:       "single short line",
			text:       "hello",
			width:      200,
			wantWidth:  50,
			wantHeight: 20,
		},
		{
			name:       "explicit newline makes two lines",
			text:       "hello\nworld",
			width:      200,
			wantWidth:  50,
			wantHeight: 40,
		},
		{
			name:       "wrapping at the width limit",
			text:       "aaaa bbbb cccc", // 14 chars, limit 10 per line
			width:      100,
			wantWidth:  90, // "aaaa bbbb"
			wantHeight: 40,
		},
		{
			name:       "long word breaks mid-word",
			text:       "abcdefghijklmnop", // 16 chars, limit 10
			width:      100,
			wantWidth:  100,
			wantHeight: 40,
		},
		{
			name:       "empty text still measures one line",
			text:       "",
			width:      200,
			wantWidth:  0,
			wantHeight: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sz := m.Measure(tt.text, tt.width)
			assert.Equal(t, tt.wantWidth, sz.Width)
			assert.Equal(t, tt.wantHeight, sz.Height)
		})
	}
}

func TestCharCellMeasurerPadding(t *testing.T) {
	m := CharCellMeasurer{CharWidth: 10, LineHeight: 20, PadX: 12, PadY: 6}
	sz := m.Measure("hello", 200)
	assert.Equal(t, 50+2*12.0, sz.Width)
	assert.Equal(t, 20+2*6.0, sz.Height)
}

func TestDefaultMeasurer(t *testing.T) {
	m := DefaultMeasurer()
	sz := m.Measure("status", DefaultWidth)
	assert.Greater(t, sz.Width, 0.0)
	assert.Greater(t, sz.Height, 0.0)
	assert.LessOrEqual(t, sz.Width, DefaultWidth)
}

package termview

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	statusview "github.com/hakkabon/StatusView"
	"github.com/hakkabon/StatusView/geom"
)

// minVisibleOpacity is the opacity below which a banner is not drawn at
// all. Terminals have no alpha channel, so low opacity maps to absent
// and mid opacity to faint.
const minVisibleOpacity = 0.05

// faintBelowOpacity is the opacity below which a banner renders faint.
const faintBelowOpacity = 0.7

// FrameMsg asks the embedding bubbletea program to redraw.
type FrameMsg time.Time

// Tick returns a command that emits a FrameMsg at the animation rate.
// Embedding programs re-issue it from their Update to keep banner
// animations moving.
func Tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// Overlay composites the active banners over the embedding program's
// rendered view and returns the combined frame, clipped to the host
// bounds.
func (h *Host) Overlay(content string) string {
	h.mu.RLock()
	views := append([]*View(nil), h.views...)
	size := h.size
	h.mu.RUnlock()

	width := int(size.Width)
	height := int(size.Height)
	if width <= 0 || height <= 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]

	for _, v := range views {
		op := v.currentOpacity()
		if op < minVisibleOpacity {
			continue
		}
		f := v.Frame()
		box := renderBanner(v.banner, f, op < faintBelowOpacity)

		x := int(math.Round(f.Origin.X))
		y := int(math.Round(f.Origin.Y))
		for i, boxLine := range strings.Split(box, "\n") {
			row := y + i
			if row < 0 || row >= height {
				continue
			}
			lines[row] = ansi.Truncate(overlayLine(lines[row], boxLine, x), width, "")
		}
	}

	return strings.Join(lines, "\n")
}

// renderBanner draws one banner as a bordered lipgloss box sized to its
// frame.
func renderBanner(n *statusview.Notification, f geom.Rect, faint bool) string {
	w := int(f.Size.Width)
	if w < 4 {
		w = 4
	}
	innerHeight := int(f.Size.Height) - 2
	if innerHeight < 1 {
		innerHeight = 1
	}

	align := lipgloss.Center
	switch n.Options().TextAlignment {
	case statusview.AlignLeft:
		align = lipgloss.Left
	case statusview.AlignRight:
		align = lipgloss.Right
	}

	body := lipgloss.NewStyle().Bold(true).Render(n.Title())
	if s := n.Subtitle(); s != "" {
		body += "\n" + lipgloss.NewStyle().Faint(true).Render(s)
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(w - 2).
		Height(innerHeight).
		Align(align)
	if faint {
		style = style.Faint(true)
	}
	return style.Render(body)
}

// overlayLine splices over into base starting at column x, preserving
// escape sequences on both sides.
func overlayLine(base, over string, x int) string {
	overWidth := ansi.StringWidth(over)
	if x < 0 {
		over = ansi.TruncateLeft(over, -x, "")
		overWidth += x
		x = 0
		if overWidth <= 0 {
			return base
		}
	}

	left := padTo(ansi.Truncate(base, x, ""), x)
	right := ansi.TruncateLeft(base, x+overWidth, "")
	return left + over + right
}

// padTo pads s with spaces up to width w in terminal columns.
func padTo(s string, w int) string {
	if d := w - ansi.StringWidth(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}

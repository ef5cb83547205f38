package gtkview

import (
	"log/slog"
	"sync"
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	statusview "github.com/hakkabon/StatusView"
	"github.com/hakkabon/StatusView/geom"
)

var (
	_ statusview.Host     = (*Host)(nil)
	_ statusview.MainLoop = (*Loop)(nil)
	_ statusview.Animator = (*Animator)(nil)
	_ statusview.View     = (*winView)(nil)
)

// Host presents banners as layer-shell windows on one monitor.
type Host struct {
	app    *gtk.Application
	logger *slog.Logger

	mu     sync.RWMutex
	size   geom.Size
	insets geom.Insets
}

// NewHost creates a host covering the default monitor. Must be called
// on the GTK main thread after the display is available. A nil logger
// falls back to slog.Default.
func NewHost(app *gtk.Application, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Host{
		app:    app,
		logger: logger,
		size:   geom.Size{Width: 1920, Height: 1080},
	}
	if sz, ok := primaryMonitorSize(); ok {
		h.size = sz
	} else {
		logger.Warn("no monitor geometry available, using fallback bounds",
			"width", h.size.Width, "height", h.size.Height)
	}
	return h
}

// primaryMonitorSize returns the geometry of the first monitor.
func primaryMonitorSize() (geom.Size, bool) {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return geom.Size{}, false
	}
	monitors := display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		return geom.Size{}, false
	}
	obj := monitors.Item(0)
	if obj == nil {
		return geom.Size{}, false
	}
	g := wrapMonitor(obj).Geometry()
	return geom.Size{Width: float64(g.Width()), Height: float64(g.Height())}, true
}

// wrapMonitor wraps a coreglib.Object as a gdk.Monitor; gotk4 keeps the
// equivalent helper internal.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}

// SetBounds overrides the hosted area, for multi-monitor setups where
// the default monitor is not the target.
func (h *Host) SetBounds(size geom.Size) {
	h.mu.Lock()
	h.size = size
	h.mu.Unlock()
}

// SetInsets reserves screen space along each edge, e.g. for a panel.
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

// Attach implements statusview.Host. It runs on the GTK main thread.
func (h *Host) Attach(n *statusview.Notification) (statusview.View, error) {
	v := newWinView(h.app, n)
	h.logger.Debug("banner window created", "id", n.ID())
	return v, nil
}

// Detach implements statusview.Host. It runs on the GTK main thread.
func (h *Host) Detach(view statusview.View) {
	v, ok := view.(*winView)
	if !ok {
		return
	}
	v.destroy()
}

// Measurer returns pixel-based text metrics sized for the default
// desktop font.
func (h *Host) Measurer() statusview.Measurer {
	return statusview.CharCellMeasurer{CharWidth: 8, LineHeight: 22, PadX: 16, PadY: 10}
}

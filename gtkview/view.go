package gtkview

import (
	"math"
	"sync"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	statusview "github.com/hakkabon/StatusView"
	"github.com/hakkabon/StatusView/geom"
)

// winView is one banner's layer-shell window. The window is anchored to
// the monitor's top-left corner and positioned through the layer
// margins, so the coordinator's coordinates translate directly.
type winView struct {
	window *gtk.Window

	mu      sync.Mutex
	frame   geom.Rect
	opacity float64
}

func newWinView(app *gtk.Application, n *statusview.Notification) *winView {
	v := &winView{}

	w := gtk.NewWindow()
	w.SetApplication(app)
	w.SetDecorated(false)
	w.SetResizable(false)

	layershell.InitForWindow(w)
	layershell.SetLayer(w, layershell.LayerShellLayerOverlay)
	layershell.SetExclusiveZone(w, 0)
	layershell.SetKeyboardMode(w, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(w, "statusview-banner")

	layershell.SetAnchor(w, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(w, layershell.LayerShellEdgeLeft, true)
	layershell.SetAnchor(w, layershell.LayerShellEdgeBottom, false)
	layershell.SetAnchor(w, layershell.LayerShellEdgeRight, false)

	w.SetChild(buildContent(n))

	click := gtk.NewGestureClick()
	click.SetButton(1)
	click.ConnectReleased(func(nPress int, x, y float64) {
		n.Tap()
	})
	w.AddController(click)

	w.SetOpacity(0)
	v.window = w
	return v
}

// buildContent lays out the banner text and optional image.
func buildContent(n *statusview.Notification) gtk.Widgetter {
	opts := n.Options()

	align := gtk.AlignCenter
	switch opts.TextAlignment {
	case statusview.AlignLeft:
		align = gtk.AlignStart
	case statusview.AlignRight:
		align = gtk.AlignEnd
	}

	text := gtk.NewBox(gtk.OrientationVertical, 2)
	text.SetHExpand(true)

	title := gtk.NewLabel(n.Title())
	title.SetHAlign(align)
	title.SetWrap(true)
	title.AddCSSClass("statusview-title")
	text.Append(title)

	if s := n.Subtitle(); s != "" {
		subtitle := gtk.NewLabel(s)
		subtitle.SetHAlign(align)
		subtitle.SetWrap(true)
		subtitle.AddCSSClass("statusview-subtitle")
		subtitle.AddCSSClass("dim-label")
		text.Append(subtitle)
	}

	root := gtk.NewBox(gtk.OrientationHorizontal, 8)
	root.AddCSSClass("statusview-banner")
	root.SetMarginTop(6)
	root.SetMarginBottom(6)
	root.SetMarginStart(10)
	root.SetMarginEnd(10)

	if opts.Image != "" {
		img := gtk.NewImageFromFile(opts.Image)
		img.SetPixelSize(32)
		if opts.ImageLocation == statusview.ImageRight {
			root.Append(text)
			root.Append(img)
		} else {
			root.Append(img)
			root.Append(text)
		}
	} else {
		root.Append(text)
	}

	return root
}

// Frame implements statusview.View.
func (v *winView) Frame() geom.Rect {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frame
}

// SetFrame implements statusview.View. It runs on the GTK main thread.
func (v *winView) SetFrame(f geom.Rect) {
	v.mu.Lock()
	v.frame = f
	v.mu.Unlock()

	layershell.SetMargin(v.window, layershell.LayerShellEdgeLeft, int(math.Round(f.Origin.X)))
	layershell.SetMargin(v.window, layershell.LayerShellEdgeTop, int(math.Round(f.Origin.Y)))
	v.window.SetSizeRequest(int(f.Size.Width), int(f.Size.Height))

	if !v.window.Visible() {
		v.window.Present()
	}
}

// SetOpacity implements statusview.View. It runs on the GTK main thread.
func (v *winView) SetOpacity(o float64) {
	v.mu.Lock()
	v.opacity = o
	v.mu.Unlock()
	v.window.SetOpacity(o)
}

// destroy closes the window. Runs on the GTK main thread.
func (v *winView) destroy() {
	v.window.Close()
}

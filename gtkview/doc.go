// Package gtkview hosts banners on a Wayland desktop. Each banner gets
// its own undecorated layer-shell window anchored to the monitor's
// top-left corner, with the layer margins acting as the banner's
// coordinates; the GTK main loop is the coordinator's main loop and
// animations step on a glib timeout.
package gtkview

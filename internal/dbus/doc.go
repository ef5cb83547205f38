// Package dbus implements the org.freedesktop.Notifications interface
// for the statusview daemon, translating desktop notification requests
// into banner presentations, plus a small client for posting requests
// from the command line.
package dbus

package dbus

import (
	"time"

	"github.com/godbus/dbus/v5"
)

// Urgency levels per the freedesktop.org notification specification.
const (
	UrgencyLow      = 0
	UrgencyNormal   = 1
	UrgencyCritical = 2
)

// CloseReason is the reason carried by the NotificationClosed signal,
// per the freedesktop.org notification specification.
type CloseReason uint32

const (
	CloseReasonExpired   CloseReason = 1
	CloseReasonDismissed CloseReason = 2
	CloseReasonClosed    CloseReason = 3
	CloseReasonUndefined CloseReason = 4
)

// String returns the reason's wire-spec name.
func (r CloseReason) String() string {
	switch r {
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonClosed:
		return "closed"
	case CloseReasonUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// Request is one incoming Notify call, with the raw wire parameters.
type Request struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // alternating key, label pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // milliseconds; -1 = server default, 0 = never expire
}

// Urgency returns the urgency hint, defaulting to normal.
func (r *Request) Urgency() int {
	if v, ok := r.Hints["urgency"]; ok {
		if b, ok := v.Value().(byte); ok {
			return int(b)
		}
	}
	return UrgencyNormal
}

// Transient reports whether the transient hint is set.
func (r *Request) Transient() bool {
	v, ok := r.Hints["transient"]
	if !ok {
		return false
	}
	switch val := v.Value().(type) {
	case bool:
		return val
	case byte:
		return val != 0
	case int32:
		return val != 0
	default:
		return false
	}
}

// SoundFile returns the sound-file hint, empty if unset.
func (r *Request) SoundFile() string {
	if v, ok := r.Hints["sound-file"]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}

// Timeout converts the wire expire timeout into a banner display
// duration. The server default applies for -1, and 0 means the banner
// never auto-hides.
func (r *Request) Timeout(serverDefault time.Duration) time.Duration {
	switch {
	case r.ExpireTimeout < 0:
		return serverDefault
	case r.ExpireTimeout == 0:
		return 0
	default:
		return time.Duration(r.ExpireTimeout) * time.Millisecond
	}
}

// ServerInfo is the reply to GetServerInformation.
type ServerInfo struct {
	Name        string
	Vendor      string
	Version     string
	SpecVersion string
}

// DefaultServerInfo returns the statusview daemon's identity.
func DefaultServerInfo() ServerInfo {
	return ServerInfo{
		Name:        "statusviewd",
		Vendor:      "statusview",
		Version:     "1.0.0",
		SpecVersion: "1.2",
	}
}

// Capabilities lists what the banner renderer supports.
var Capabilities = []string{
	"body",
	"persistence",
	"sound",
}

package dbus

import (
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
)

func TestRequestUrgency(t *testing.T) {
	tests := []struct {
		name  string
		hints map[string]dbus.Variant
		want  int
	}{
		{
			name: "critical",
			hints: map[string]dbus.Variant{
				"urgency": dbus.MakeVariant(byte(UrgencyCritical)),
			},
			want: UrgencyCritical,
		},
		{
			name: "low",
			hints: map[string]dbus.Variant{
				"urgency": dbus.MakeVariant(byte(UrgencyLow)),
			},
			want: UrgencyLow,
		},
		{
			name:  "missing defaults to normal",
			hints: map[string]dbus.Variant{},
			want:  UrgencyNormal,
		},
		{
			name: "wrong type defaults to normal",
			hints: map[string]dbus.Variant{
				"urgency": dbus.MakeVariant("high"),
			},
			want: UrgencyNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Request{Hints: tt.hints}
			assert.Equal(t, tt.want, r.Urgency())
		})
	}
}

func TestRequestTransient(t *testing.T) {
	tests := []struct {
		name  string
		hints map[string]dbus.Variant
		want  bool
	}{
		{name: "missing", hints: map[string]dbus.Variant{}, want: false},
		{
			name:  "bool true",
			hints: map[string]dbus.Variant{"transient": dbus.MakeVariant(true)},
			want:  true,
		},
		{
			name:  "byte one",
			hints: map[string]dbus.Variant{"transient": dbus.MakeVariant(byte(1))},
			want:  true,
		},
		{
			name:  "int32 zero",
			hints: map[string]dbus.Variant{"transient": dbus.MakeVariant(int32(0))},
			want:  false,
		},
		{
			name:  "string is ignored",
			hints: map[string]dbus.Variant{"transient": dbus.MakeVariant("yes")},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Request{Hints: tt.hints}
			assert.Equal(t, tt.want, r.Transient())
		})
	}
}

func TestRequestSoundFile(t *testing.T) {
	r := &Request{Hints: map[string]dbus.Variant{
		"sound-file": dbus.MakeVariant("/usr/share/sounds/ping.ogg"),
	}}
	assert.Equal(t, "/usr/share/sounds/ping.ogg", r.SoundFile())

	assert.Empty(t, (&Request{Hints: map[string]dbus.Variant{}}).SoundFile())
}

func TestRequestTimeout(t *testing.T) {
	def := 3 * time.Second

	assert.Equal(t, def, (&Request{ExpireTimeout: -1}).Timeout(def))
	assert.Equal(t, time.Duration(0), (&Request{ExpireTimeout: 0}).Timeout(def))
	assert.Equal(t, 1500*time.Millisecond, (&Request{ExpireTimeout: 1500}).Timeout(def))
}

func TestCloseReasonString(t *testing.T) {
	assert.Equal(t, "expired", CloseReasonExpired.String())
	assert.Equal(t, "dismissed", CloseReasonDismissed.String())
	assert.Equal(t, "closed", CloseReasonClosed.String())
	assert.Equal(t, "undefined", CloseReasonUndefined.String())
	assert.Equal(t, "unknown", CloseReason(99).String())
}

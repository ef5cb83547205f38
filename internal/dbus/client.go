package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// SendOptions carries the optional parameters of a Send call.
type SendOptions struct {
	AppName   string
	Urgency   int
	SoundFile string
	// Expire is the wire expire timeout in milliseconds; -1 asks the
	// server to apply its default, 0 disables auto-hide.
	Expire int32
}

// Send posts a notification request to whatever server currently owns
// the notification bus name and returns the assigned ID.
func Send(summary, body string, opts SendOptions) (uint32, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return 0, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	appName := opts.AppName
	if appName == "" {
		appName = "statusview"
	}

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(opts.Urgency)),
	}
	if opts.SoundFile != "" {
		hints["sound-file"] = dbus.MakeVariant(opts.SoundFile)
	}

	obj := conn.Object(BusName, dbus.ObjectPath(Path))
	call := obj.Call(Interface+".Notify", 0,
		appName, uint32(0), "", summary, body, []string{}, hints, opts.Expire)

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify call failed: %w", err)
	}
	return id, nil
}

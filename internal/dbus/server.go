package dbus

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	// Interface is the notification interface name.
	Interface = "org.freedesktop.Notifications"
	// Path is the notification object path.
	Path = "/org/freedesktop/Notifications"
	// BusName is the bus name the server claims.
	BusName = "org.freedesktop.Notifications"
)

// RequestHandler receives each incoming notification request with its
// assigned wire ID.
type RequestHandler func(req *Request, id uint32)

// CloseHandler receives CloseNotification requests.
type CloseHandler func(id uint32)

// Server exports the org.freedesktop.Notifications interface on the
// session bus and forwards requests to the daemon.
type Server struct {
	conn   *dbus.Conn
	logger *slog.Logger

	nextID atomic.Uint32

	requestHandler RequestHandler
	closeHandler   CloseHandler

	mu      sync.RWMutex
	active  map[uint32]bool
	info    ServerInfo
	running bool
}

// NewServer creates a notification server. A nil logger falls back to
// slog.Default.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger: logger,
		active: make(map[uint32]bool),
		info:   DefaultServerInfo(),
	}
}

// SetRequestHandler sets the handler for incoming requests.
func (s *Server) SetRequestHandler(fn RequestHandler) {
	s.requestHandler = fn
}

// SetCloseHandler sets the handler for CloseNotification requests.
func (s *Server) SetCloseHandler(fn CloseHandler) {
	s.closeHandler = fn
}

// Start connects to the session bus, exports the service and claims
// the notification bus name.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, Path, Interface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: Path,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    Interface,
				Methods: methods(),
				Signals: signals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), Path,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue|dbus.NameFlagReplaceExisting)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", BusName)
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.logger.Info("notification service started", "interface", Interface, "path", Path)
	return nil
}

// Stop releases the bus name. The shared session connection stays open.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(BusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
	}

	s.logger.Info("notification service stopped")
	return nil
}

// GetCapabilities implements org.freedesktop.Notifications.GetCapabilities.
func (s *Server) GetCapabilities() ([]string, *dbus.Error) {
	return Capabilities, nil
}

// GetServerInformation implements
// org.freedesktop.Notifications.GetServerInformation.
func (s *Server) GetServerInformation() (string, string, string, string, *dbus.Error) {
	return s.info.Name, s.info.Vendor, s.info.Version, s.info.SpecVersion, nil
}

// Notify implements org.freedesktop.Notifications.Notify.
func (s *Server) Notify(
	appName string,
	replacesID uint32,
	appIcon string,
	summary string,
	body string,
	actions []string,
	hints map[string]dbus.Variant,
	expireTimeout int32,
) (uint32, *dbus.Error) {
	id := replacesID
	if id == 0 {
		id = s.nextID.Add(1)
	}

	s.logger.Debug("notify request",
		"app_name", appName,
		"summary", summary,
		"replaces_id", replacesID,
		"id", id)

	req := &Request{
		AppName:       appName,
		ReplacesID:    replacesID,
		AppIcon:       appIcon,
		Summary:       summary,
		Body:          body,
		Actions:       actions,
		Hints:         hints,
		ExpireTimeout: expireTimeout,
	}

	s.mu.Lock()
	s.active[id] = true
	s.mu.Unlock()

	if s.requestHandler != nil {
		s.requestHandler(req, id)
	}
	return id, nil
}

// CloseNotification implements
// org.freedesktop.Notifications.CloseNotification.
func (s *Server) CloseNotification(id uint32) *dbus.Error {
	s.logger.Debug("close request", "id", id)

	s.mu.Lock()
	exists := s.active[id]
	delete(s.active, id)
	s.mu.Unlock()

	if !exists {
		return nil
	}
	if s.closeHandler != nil {
		s.closeHandler(id)
	}
	if err := s.EmitClosed(id, CloseReasonClosed); err != nil {
		s.logger.Warn("failed to emit NotificationClosed", "id", id, "error", err)
	}
	return nil
}

// IsActive reports whether the ID is still being displayed.
func (s *Server) IsActive(id uint32) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active[id]
}

// CloseWithReason drops the ID from the active set and emits
// NotificationClosed. The daemon calls it when a banner finishes
// hiding on its own.
func (s *Server) CloseWithReason(id uint32, reason CloseReason) error {
	s.mu.Lock()
	delete(s.active, id)
	s.mu.Unlock()
	return s.EmitClosed(id, reason)
}

func methods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "GetCapabilities",
			Args: []introspect.Arg{
				{Name: "capabilities", Type: "as", Direction: "out"},
			},
		},
		{
			Name: "GetServerInformation",
			Args: []introspect.Arg{
				{Name: "name", Type: "s", Direction: "out"},
				{Name: "vendor", Type: "s", Direction: "out"},
				{Name: "version", Type: "s", Direction: "out"},
				{Name: "spec_version", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "Notify",
			Args: []introspect.Arg{
				{Name: "app_name", Type: "s", Direction: "in"},
				{Name: "replaces_id", Type: "u", Direction: "in"},
				{Name: "app_icon", Type: "s", Direction: "in"},
				{Name: "summary", Type: "s", Direction: "in"},
				{Name: "body", Type: "s", Direction: "in"},
				{Name: "actions", Type: "as", Direction: "in"},
				{Name: "hints", Type: "a{sv}", Direction: "in"},
				{Name: "expire_timeout", Type: "i", Direction: "in"},
				{Name: "id", Type: "u", Direction: "out"},
			},
		},
		{
			Name: "CloseNotification",
			Args: []introspect.Arg{
				{Name: "id", Type: "u", Direction: "in"},
			},
		},
	}
}

func signals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "NotificationClosed",
			Args: []introspect.Arg{
				{Name: "id", Type: "u"},
				{Name: "reason", Type: "u"},
			},
		},
		{
			Name: "ActionInvoked",
			Args: []introspect.Arg{
				{Name: "id", Type: "u"},
				{Name: "action_key", Type: "s"},
			},
		},
	}
}

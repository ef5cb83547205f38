// Package main is the entry point for the statusviewd banner daemon.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	statusview "github.com/hakkabon/StatusView"
	"github.com/hakkabon/StatusView/config"
	"github.com/hakkabon/StatusView/gtkview"
	notifydbus "github.com/hakkabon/StatusView/internal/dbus"
	"github.com/hakkabon/StatusView/sound"
)

const appID = "io.github.hakkabon.statusviewd"

var (
	// Build-time variables
	version = "dev"
)

// registry maps D-Bus wire IDs to live banners so CloseNotification and
// hide completion can find each other. Entries also remember whether the
// banner was dismissed by a tap so the NotificationClosed reason is
// accurate.
type registry struct {
	mu      sync.Mutex
	banners map[uint32]*statusview.Notification
	ids     map[*statusview.Notification]uint32
	tapped  map[uint32]bool
}

func newRegistry() *registry {
	return &registry{
		banners: make(map[uint32]*statusview.Notification),
		ids:     make(map[*statusview.Notification]uint32),
		tapped:  make(map[uint32]bool),
	}
}

func (r *registry) put(id uint32, n *statusview.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.banners[id] = n
	r.ids[n] = id
}

// get returns the banner for a wire ID without removing it.
func (r *registry) get(id uint32) (*statusview.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.banners[id]
	return n, ok
}

// markTapped records that the banner's hide was user initiated.
func (r *registry) markTapped(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tapped[id] = true
}

// take removes the banner's entry and returns its wire ID and close
// reason. It returns false when the banner was never registered or was
// already taken (e.g. by CloseNotification).
func (r *registry) take(n *statusview.Notification) (uint32, notifydbus.CloseReason, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.ids[n]
	if !ok {
		return 0, notifydbus.CloseReasonUndefined, false
	}
	delete(r.ids, n)
	delete(r.banners, id)
	reason := notifydbus.CloseReasonExpired
	if r.tapped[id] {
		reason = notifydbus.CloseReasonDismissed
		delete(r.tapped, id)
	}
	return id, reason, true
}

// drop removes the entry for a wire ID and returns the banner, so a
// CloseNotification hide does not also emit a second closed signal.
func (r *registry) drop(id uint32) (*statusview.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.banners[id]
	if !ok {
		return nil, false
	}
	delete(r.banners, id)
	delete(r.ids, n)
	delete(r.tapped, id)
	return n, true
}

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to the configuration file (default: ~/.config/statusview/config.toml)")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		println("statusviewd version", version)
		os.Exit(0)
	}

	// Load configuration before logging so the log level applies from
	// the first message.
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		cfg = config.Default()
	}

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))
	slog.SetDefault(logger)

	if err != nil {
		logger.Warn("failed to load configuration, using defaults", "error", err)
	}

	logger.Info("starting statusviewd", "version", version)

	app := adw.NewApplication(appID, 0)

	// Shared components, initialized in ConnectActivate
	var (
		host    *gtkview.Host
		coord   *statusview.Coordinator
		player  *sound.Player
		server  *notifydbus.Server
		watcher *config.Watcher
		reg     = newRegistry()
		running atomic.Bool
	)

	// The live configuration can be swapped by the watcher.
	var cfgMu sync.RWMutex
	currentConfig := func() *config.Config {
		cfgMu.RLock()
		defer cfgMu.RUnlock()
		return cfg
	}

	// Handle shutdown signals: retract every banner, then quit once the
	// forced hides have had time to finish.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		glib.IdleAdd(func() {
			if coord != nil && host != nil {
				coord.ForceHideAllIn(host)
			}
			glib.TimeoutAdd(500, func() bool {
				app.Quit()
				return false
			})
		})
	}()

	showRequest := func(req *notifydbus.Request, id uint32) {
		c := currentConfig()

		// A replacing request retracts the banner it supersedes.
		if req.ReplacesID != 0 {
			if old, ok := reg.drop(req.ReplacesID); ok {
				old.ForceHide()
			}
		}

		o := c.Options()
		o.SecondsToShow = req.Timeout(o.SecondsToShow)
		if req.Urgency() == notifydbus.UrgencyCritical {
			// Critical notifications stay until dismissed.
			o.SecondsToShow = 0
		}
		if req.AppIcon != "" {
			o.Image = req.AppIcon
		}
		if sf := req.SoundFile(); sf != "" {
			o.SoundPath = sf
		}
		o.OnTapped = func() {
			reg.markTapped(id)
		}

		n, err := statusview.New(coord, host, req.Summary, req.Body, o)
		if err != nil {
			logger.Warn("rejected notification", "id", id, "error", err)
			return
		}
		reg.put(id, n)

		if path := o.SoundPath; path != "" && c.Sound.Enabled {
			go func() {
				if err := player.Play(path); err != nil {
					logger.Warn("failed to play sound", "path", path, "error", err)
				}
			}()
		}

		if err := n.Show(); err != nil {
			logger.Warn("failed to show banner", "id", id, "error", err)
			reg.drop(id)
		}
	}

	app.ConnectActivate(func() {
		running.Store(true)

		// Initialize the banner host and coordinator
		host = gtkview.NewHost(&app.Application, logger)
		coord = statusview.NewCoordinator(gtkview.NewLoop(), gtkview.NewAnimator(), host.Measurer(), logger)

		// Initialize audio playback
		player = sound.NewPlayer(logger)
		player.SetVolume(float64(cfg.Sound.Volume) / 100)

		// Initialize D-Bus server
		server = notifydbus.NewServer(logger)
		server.SetRequestHandler(showRequest)
		server.SetCloseHandler(func(id uint32) {
			if n, ok := reg.drop(id); ok {
				n.ForceHide()
			}
		})

		// Report banners that finish hiding on their own back to the bus.
		coord.SetHiddenCallback(func(n *statusview.Notification) {
			if id, reason, ok := reg.take(n); ok {
				if err := server.CloseWithReason(id, reason); err != nil {
					logger.Warn("failed to signal close", "id", id, "error", err)
				}
			}
		})

		if err := server.Start(); err != nil {
			logger.Error("failed to start notification service", "error", err)
			app.Quit()
			return
		}

		// Watch the configuration file for changes
		watchPath := *configPath
		if watchPath == "" {
			if p, err := config.Path(); err == nil {
				watchPath = p
			}
		}
		if watchPath != "" {
			w, err := config.NewWatcher(watchPath, logger)
			if err != nil {
				logger.Warn("failed to create config watcher", "error", err)
			} else {
				w.SetReloadCallback(func(newCfg *config.Config) {
					glib.IdleAdd(func() {
						cfgMu.Lock()
						cfg = newCfg
						cfgMu.Unlock()
						player.SetVolume(float64(newCfg.Sound.Volume) / 100)

						o := newCfg.Options()
						o.SecondsToShow = 2 * time.Second
						if n, err := statusview.New(coord, host, "StatusView", "configuration reloaded", o); err == nil {
							_ = n.Show()
						}
					})
				})
				if err := w.Start(); err != nil {
					logger.Warn("failed to start config watcher", "error", err)
				} else {
					watcher = w
				}
			}
		}

		// Keep the application alive with a hidden window. GTK
		// applications quit when their last window closes, and banner
		// windows come and go.
		keepAlive := gtk.NewWindow()
		keepAlive.SetApplication(&app.Application)
		keepAlive.SetDefaultSize(1, 1)
		keepAlive.SetDecorated(false)
		keepAlive.SetVisible(false)

		logger.Info("statusviewd ready", "anchor", cfg.Banner.Position)
	})

	app.ConnectShutdown(func() {
		if !running.Load() {
			return
		}
		logger.Info("shutting down")

		if watcher != nil {
			watcher.Stop()
		}
		if server != nil {
			_ = server.Stop()
		}
		if coord != nil {
			coord.Close()
		}
		if player != nil {
			player.Close()
		}
		running.Store(false)
	})

	status := app.Run(os.Args)
	if status != 0 {
		logger.Error("application exited with error", "status", status)
		os.Exit(status)
	}

	logger.Info("statusviewd stopped")
}

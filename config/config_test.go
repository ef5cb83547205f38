package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	statusview "github.com/hakkabon/StatusView"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, string(statusview.AnchorTop), cfg.Banner.Position)
	assert.Equal(t, statusview.DefaultWidth, cfg.Banner.Width)
	assert.Equal(t, statusview.DefaultShowFor, cfg.Banner.ShowFor.Duration())
}

func TestDurationUnmarshalText(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "500ms", want: 500 * time.Millisecond},
		{input: "5s", want: 5 * time.Second},
		{input: "1m30s", want: 90 * time.Second},
		{input: "250", want: 250 * time.Millisecond}, // bare integers are milliseconds
		{input: "0", want: 0},
		{input: "fast", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}

func TestDurationMarshalText(t *testing.T) {
	d := Duration(90 * time.Second)
	out, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(out))
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[banner]
position = "bottom-right"
show_for = "7s"

[sound]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "bottom-right", cfg.Banner.Position)
	assert.Equal(t, 7*time.Second, cfg.Banner.ShowFor.Duration())
	assert.False(t, cfg.Sound.Enabled)
	// untouched sections keep their defaults
	assert.Equal(t, statusview.DefaultWidth, cfg.Banner.Width)
	assert.Equal(t, statusview.DefaultShowAnim, cfg.Animation.Show.Duration())
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[banner]
position = "middle"
`), 0600))

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := Default()
	cfg.Banner.Position = string(statusview.AnchorBottomLeft)
	cfg.Banner.Exit = string(statusview.ExitSlide)
	cfg.Animation.Hide = Duration(250 * time.Millisecond)
	cfg.Log.Level = "debug"

	require.NoError(t, SaveFile(cfg, path))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	// no stray temp file left behind
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:    "bad position",
			modify:  func(c *Config) { c.Banner.Position = "middle" },
			wantErr: "invalid position",
		},
		{
			name:    "bad exit",
			modify:  func(c *Config) { c.Banner.Exit = "vanish" },
			wantErr: "invalid exit type",
		},
		{
			name:    "bad alignment",
			modify:  func(c *Config) { c.Banner.TextAlignment = "justified" },
			wantErr: "invalid text alignment",
		},
		{
			name:    "bad image location",
			modify:  func(c *Config) { c.Banner.ImageLocation = "top" },
			wantErr: "invalid image location",
		},
		{
			name:    "width too small",
			modify:  func(c *Config) { c.Banner.Width = 10 },
			wantErr: "width must be",
		},
		{
			name:    "opacity out of range",
			modify:  func(c *Config) { c.Banner.Opacity = 1.5 },
			wantErr: "opacity must be",
		},
		{
			name:    "volume out of range",
			modify:  func(c *Config) { c.Sound.Volume = 150 },
			wantErr: "volume must be",
		},
		{
			name:    "bad log level",
			modify:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestOptionsMapping(t *testing.T) {
	cfg := Default()
	cfg.Banner.Position = string(statusview.AnchorBottom)
	cfg.Banner.Width = 400
	cfg.Banner.TapToDismiss = false
	cfg.Banner.ShowFor = 0
	cfg.Animation.FadeIn = Duration(50 * time.Millisecond)
	cfg.Sound.Enabled = true
	cfg.Sound.Path = "/usr/share/sounds/ping.wav"

	o := cfg.Options()
	assert.Equal(t, statusview.AnchorBottom, o.Position)
	assert.Equal(t, 400.0, o.Width)
	assert.False(t, o.TapToDismiss)
	assert.Equal(t, time.Duration(0), o.SecondsToShow)
	assert.Equal(t, 50*time.Millisecond, o.FadeIn)
	assert.Equal(t, "/usr/share/sounds/ping.wav", o.SoundPath)

	cfg.Sound.Enabled = false
	assert.Empty(t, cfg.Options().SoundPath, "disabled sound must not carry a path")
}

func TestLogLevel(t *testing.T) {
	for level, want := range map[string]string{
		"debug": "DEBUG", "info": "INFO", "warn": "WARN", "error": "ERROR",
	} {
		cfg := Default()
		cfg.Log.Level = level
		assert.Equal(t, want, cfg.LogLevel().String())
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, SaveFile(Default(), path))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	t.Cleanup(w.Stop)

	var mu sync.Mutex
	var got *Config
	w.SetReloadCallback(func(c *Config) {
		mu.Lock()
		got = c
		mu.Unlock()
	})
	require.NoError(t, w.Start())

	cfg := Default()
	cfg.Banner.Position = string(statusview.AnchorBottom)
	require.NoError(t, SaveFile(cfg, path))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got != nil && got.Banner.Position == string(statusview.AnchorBottom)
	}, 2*time.Second, 10*time.Millisecond, "watcher never delivered the reloaded config")
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, SaveFile(Default(), path))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	t.Cleanup(w.Stop)

	var mu sync.Mutex
	reloads := 0
	w.SetReloadCallback(func(*Config) {
		mu.Lock()
		reloads++
		mu.Unlock()
	})
	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0600))
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, reloads)
}

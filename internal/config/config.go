// Package config loads and watches the multiterm user configuration.
// The config file is TOML at $XDG_CONFIG_HOME/multiterm/config.toml; a
// missing file means defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/wallon-qodo/multi-term-sub000/internal/layout"
)

// Config is the root of the user configuration.
type Config struct {
	General     GeneralConfig     `toml:"general"`
	Appearance  AppearanceConfig  `toml:"appearance"`
	Workspaces  WorkspacesConfig  `toml:"workspaces"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// GeneralConfig holds behavior settings.
type GeneralConfig struct {
	// DefaultMode is the layout discipline new workspaces start in:
	// "tiled", "monocle" or "tabbed".
	DefaultMode string `toml:"default_mode"`
	// SplitStep is the ratio delta applied per split adjustment keypress.
	SplitStep float64 `toml:"split_step"`
	// RestoreOnStart reloads the last saved workspace snapshot at startup.
	RestoreOnStart bool `toml:"restore_on_start"`
}

// AppearanceConfig holds visual settings.
type AppearanceConfig struct {
	BorderStyle   string `toml:"border_style"` // rounded, normal, double, thick
	ShowStatusBar bool   `toml:"show_status_bar"`
}

// WorkspacesConfig names the nine workspace slots; missing entries fall
// back to the slot number.
type WorkspacesConfig struct {
	Names []string `toml:"names"`
}

// KeybindingsConfig customizes the prefix key. Everything after the
// prefix is fixed; see the help overlay.
type KeybindingsConfig struct {
	Prefix string `toml:"prefix"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			DefaultMode:    "tiled",
			SplitStep:      0.05,
			RestoreOnStart: true,
		},
		Appearance: AppearanceConfig{
			BorderStyle:   "rounded",
			ShowStatusBar: true,
		},
		Keybindings: KeybindingsConfig{
			Prefix: "ctrl+b",
		},
	}
}

// Validate checks cross-field constraints and value ranges.
func (c *Config) Validate() error {
	if _, err := layout.ParseMode(c.General.DefaultMode); err != nil {
		return fmt.Errorf("general.default_mode: %w", err)
	}
	if c.General.SplitStep <= 0 || c.General.SplitStep >= 0.5 {
		return fmt.Errorf("general.split_step %v out of range (0, 0.5)", c.General.SplitStep)
	}
	switch c.Appearance.BorderStyle {
	case "rounded", "normal", "double", "thick", "hidden":
	default:
		return fmt.Errorf("appearance.border_style %q unknown", c.Appearance.BorderStyle)
	}
	return nil
}

// DefaultModeValue returns the parsed default layout mode. Call after
// Validate; an unparsable value falls back to tiled.
func (c *Config) DefaultModeValue() layout.Mode {
	mode, err := layout.ParseMode(c.General.DefaultMode)
	if err != nil {
		return layout.ModeTiled
	}
	return mode
}

// ConfigPath returns the user config file location.
func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "multiterm", "config.toml")
}

// LoadUserConfig reads the user's config file, layering it over the
// defaults. A missing file is not an error.
func LoadUserConfig() (*Config, error) {
	return Load(ConfigPath())
}

// Load reads a config file from an explicit path, layering it over the
// defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the given path, creating parent directories
// as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Watch invokes onChange with the freshly loaded config every time the
// file at path is written. Load errors during reload are passed to onErr
// and the previous config stays in effect. The returned stop function
// releases the watcher.
func Watch(path string, onChange func(*Config), onErr func(error)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory: editors replace the file on save, which drops
	// a watch registered on the file itself.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch config dir: %w", err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					if onErr != nil {
						onErr(err)
					}
					continue
				}
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if onErr != nil {
					onErr(err)
				}
			}
		}
	}()

	return func() { _ = watcher.Close() }, nil
}

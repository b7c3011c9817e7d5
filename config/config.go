package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type BackendConfig struct {
	URL     string `toml:"url"`
	Timeout string `toml:"timeout"`
}

type ChatConfig struct {
	Renderer string `toml:"renderer"`
}

type UIConfig struct {
	Chart        string `toml:"chart"`
	TipsInterval string `toml:"tips_interval"`
}

// Settings mirrors settings.toml
type Settings struct {
	Backend BackendConfig `toml:"backend"`
	Chat    ChatConfig    `toml:"chat"`
	UI      UIConfig      `toml:"ui"`
}

type Config struct {
	BackendURL     string
	RequestTimeout time.Duration
	Renderer       string
	ChartKind      string
	TipsInterval   time.Duration
	Keybindings    *KeyBindingsConfig
}

const (
	RendererFarmbot  = "farmbot"
	RendererMarkdown = "markdown"

	ChartBar   = "bar"
	ChartRadar = "radar"
)

var Debug = false
var DebugLog *log.Logger

func (c *Config) applyEnvOverrides() error {
	if url := os.Getenv("FARMBOT_BACKEND_URL"); url != "" {
		c.BackendURL = url
	}
	if timeout := os.Getenv("FARMBOT_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid FARMBOT_TIMEOUT %q: %w", timeout, err)
		}
		c.RequestTimeout = d
	}
	return nil
}

func CheckDebug() bool {
	debug := os.Getenv("FARMBOT_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog() {
	if !CheckDebug() {
		return
	}

	cacheDir := GetCacheDir()
	if err := EnsureDir(cacheDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not create cache directory %s: %v\n", cacheDir, err)
		return
	}

	Debug = true
	logPath := filepath.Join(cacheDir, "debug.log")

	// 0600: request payloads and backend errors end up here
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (FARMBOT_DEBUG=%s) ===", os.Getenv("FARMBOT_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

// Load reads settings.toml (creating it from the template on first run), then
// applies .env and environment overrides on top.
func Load() (*Config, error) {
	return LoadFrom(GetSettingsFilePath())
}

func LoadFrom(settingsPath string) (*Config, error) {
	// A missing .env is the normal case
	_ = godotenv.Load()

	settings, err := LoadSettings(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	cfg, err := settings.toConfig()
	if err != nil {
		return nil, err
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	kb, err := LoadKeybindings(filepath.Dir(settingsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load keybindings: %w", err)
	}
	ok, warning := kb.Validate()
	if !ok {
		return nil, fmt.Errorf("invalid keybindings: %s", warning)
	}
	if warning != "" && DebugLog != nil {
		DebugLog.Printf("[Config] keybindings: %s", warning)
	}
	cfg.Keybindings = kb

	return cfg, nil
}

func (s *Settings) toConfig() (*Config, error) {
	defaults := DefaultSettings()

	cfg := &Config{
		BackendURL: s.Backend.URL,
		Renderer:   s.Chat.Renderer,
		ChartKind:  s.UI.Chart,
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = defaults.Backend.URL
	}
	if cfg.Renderer == "" {
		cfg.Renderer = defaults.Chat.Renderer
	}
	if cfg.ChartKind == "" {
		cfg.ChartKind = defaults.UI.Chart
	}

	timeout, err := parseDurationOr(s.Backend.Timeout, defaults.Backend.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid backend.timeout: %w", err)
	}
	cfg.RequestTimeout = timeout

	interval, err := parseDurationOr(s.UI.TipsInterval, defaults.UI.TipsInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid ui.tips_interval: %w", err)
	}
	cfg.TipsInterval = interval

	return cfg, nil
}

func parseDurationOr(value, fallback string) (time.Duration, error) {
	if value == "" {
		value = fallback
	}
	return time.ParseDuration(value)
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Renderer {
	case RendererFarmbot, RendererMarkdown:
	default:
		return fmt.Errorf("unknown chat renderer %q (want %q or %q)", c.Renderer, RendererFarmbot, RendererMarkdown)
	}

	switch c.ChartKind {
	case ChartBar, ChartRadar:
	default:
		return fmt.Errorf("unknown chart kind %q (want %q or %q)", c.ChartKind, ChartBar, ChartRadar)
	}

	if c.RequestTimeout < 0 {
		return fmt.Errorf("backend timeout cannot be negative")
	}

	return nil
}

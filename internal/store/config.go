package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultAutoscrollDelay = 650 * time.Millisecond
	DefaultGapWidth        = 5
)

// GlobalConfig holds per-user preferences. Zero values mean "use the built-in
// default", so an empty file is a valid config.
type GlobalConfig struct {
	// AutoscrollDelayMs is how long the loop waits for a key before ticking.
	AutoscrollDelayMs int `json:"autoscrollDelayMs,omitempty"`
	// InitialTimer overrides the number of idle ticks before reading starts.
	InitialTimer int `json:"initialTimer,omitempty"`
	ColumnWidth  int `json:"columnWidth,omitempty"`
	GapWidth     int `json:"gapWidth,omitempty"`

	// Theme is one of auto|light|dark.
	Theme string `json:"theme,omitempty"`
	// Glyphs is one of unicode|ascii.
	Glyphs string `json:"glyphs,omitempty"`
}

// ConfigKeys lists the settable keys in display order.
var ConfigKeys = []string{"autoscrollDelayMs", "initialTimer", "columnWidth", "gapWidth", "theme", "glyphs"}

func (c *GlobalConfig) AutoscrollDelay() time.Duration {
	if c == nil || c.AutoscrollDelayMs <= 0 {
		return DefaultAutoscrollDelay
	}
	return time.Duration(c.AutoscrollDelayMs) * time.Millisecond
}

func (c *GlobalConfig) Gap() int {
	if c == nil || c.GapWidth <= 0 {
		return DefaultGapWidth
	}
	return c.GapWidth
}

// Get returns the stored value for key ("" when unset).
func (c *GlobalConfig) Get(key string) (string, error) {
	intStr := func(n int) string {
		if n == 0 {
			return ""
		}
		return strconv.Itoa(n)
	}
	switch key {
	case "autoscrollDelayMs":
		return intStr(c.AutoscrollDelayMs), nil
	case "initialTimer":
		return intStr(c.InitialTimer), nil
	case "columnWidth":
		return intStr(c.ColumnWidth), nil
	case "gapWidth":
		return intStr(c.GapWidth), nil
	case "theme":
		return c.Theme, nil
	case "glyphs":
		return c.Glyphs, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// Set parses and assigns one key. An empty value resets the key to its default.
func (c *GlobalConfig) Set(key, value string) error {
	value = strings.TrimSpace(value)
	setInt := func(dst *int) error {
		if value == "" {
			*dst = 0
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if n < 0 {
			return fmt.Errorf("%s: must be positive, got %d", key, n)
		}
		*dst = n
		return nil
	}
	oneOf := func(allowed ...string) error {
		if value == "" {
			return nil
		}
		for _, a := range allowed {
			if value == a {
				return nil
			}
		}
		return fmt.Errorf("%s: expected one of %s, got %q", key, strings.Join(allowed, "|"), value)
	}

	var err error
	switch key {
	case "autoscrollDelayMs":
		err = setInt(&c.AutoscrollDelayMs)
	case "initialTimer":
		err = setInt(&c.InitialTimer)
	case "columnWidth":
		err = setInt(&c.ColumnWidth)
	case "gapWidth":
		err = setInt(&c.GapWidth)
	case "theme":
		value = strings.ToLower(value)
		if err = oneOf("auto", "light", "dark"); err == nil {
			c.Theme = value
		}
	case "glyphs":
		value = strings.ToLower(value)
		if err = oneOf("unicode", "ascii"); err == nil {
			c.Glyphs = value
		}
	default:
		err = fmt.Errorf("unknown config key %q", key)
	}
	return err
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.rotodendron).
	if v := strings.TrimSpace(os.Getenv("ROTODENDRON_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rotodendron"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func SaveConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Keep the previous config around; a failed backup never blocks the save.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}

	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

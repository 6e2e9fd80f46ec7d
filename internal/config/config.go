package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/vidyasagar/navframe/internal/nav"
)

const appName = "navframe"

// Config holds navframe settings. It is read once at startup.
type Config struct {
	Home         string        `json:"home" envconfig:"HOME_URL"`
	Capacity     int           `json:"capacity" envconfig:"HISTORY_CAPACITY"`
	Theme        string        `json:"theme" envconfig:"THEME"`
	BlockedHosts []string      `json:"blocked_hosts" envconfig:"BLOCKED_HOSTS"`
	CacheSize    int           `json:"cache_size" envconfig:"CACHE_SIZE"`
	FetchTimeout time.Duration `json:"fetch_timeout" envconfig:"FETCH_TIMEOUT"`
	LogLevel     string        `json:"log_level" envconfig:"LOG_LEVEL"`
	LogDev       bool          `json:"log_dev" envconfig:"LOG_DEV"`
	LogFile      string        `json:"log_file" envconfig:"LOG_FILE"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Home:         "https://example.com",
		Capacity:     nav.DefaultCapacity,
		Theme:        "default",
		CacheSize:    50,
		FetchTimeout: 15 * time.Second,
		LogLevel:     "info",
	}
}

// Load builds the configuration from defaults, the config file at path (when
// it exists) and NAVFRAME_* environment variables, in that order. An empty
// path means the standard location.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		dir, err := Dir()
		if err != nil {
			return Config{}, err
		}
		path = filepath.Join(dir, "config.json")
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if err := envconfig.Process(appName, &cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}

	return cfg, nil
}

// UnmarshalJSON reads the config file. fetch_timeout may be a duration
// string ("15s", "1m") or a number of seconds.
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	aux := struct {
		*plain
		FetchTimeout json.RawMessage `json:"fetch_timeout"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := strings.TrimSpace(string(aux.FetchTimeout))
	if raw == "" || raw == "null" {
		return nil
	}
	d, err := parseTimeout(aux.FetchTimeout)
	if err != nil {
		return fmt.Errorf("fetch_timeout: %w", err)
	}
	c.FetchTimeout = d
	return nil
}

func parseTimeout(raw json.RawMessage) (time.Duration, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return time.ParseDuration(s)
	}
	var secs float64
	if err := json.Unmarshal(raw, &secs); err != nil {
		return 0, fmt.Errorf("want a duration string or seconds, got %s", raw)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// Validate checks that the configuration can start a controller.
func (c Config) Validate() error {
	if _, err := nav.Normalize(c.Home); err != nil {
		return fmt.Errorf("home %q is not a valid address", c.Home)
	}
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1: %d", c.Capacity)
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("cache_size must be at least 1: %d", c.CacheSize)
	}
	if c.FetchTimeout <= 0 {
		return errors.New("fetch_timeout must be positive")
	}
	return nil
}

// HomeAddress returns the normalized home address. Validate first.
func (c Config) HomeAddress() string {
	addr, err := nav.Normalize(c.Home)
	if err != nil {
		return c.Home
	}
	return addr
}

// Dir returns the directory holding config.json.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			dir = filepath.Join(appData, appName)
		} else {
			dir = filepath.Join(home, "."+appName)
		}
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			dir = filepath.Join(xdg, appName)
		} else {
			dir = filepath.Join(home, ".config", appName)
		}
	}

	return dir, nil
}

// StateDir returns the directory used for the log file.
func StateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	switch runtime.GOOS {
	case "darwin", "windows":
		return Dir()
	default:
		if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		return filepath.Join(home, ".local", "state", appName), nil
	}
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config captures runtime configuration for the application.
type Config struct {
	Server  Server  `koanf:"server"`
	Client  Client  `koanf:"client"`
	Logging Logging `koanf:"logging"`

	File  string            `koanf:"-"`
	Flags map[string]string `koanf:"-"`
	Args  []string          `koanf:"-"`
}

type Server struct {
	Listen         string        `koanf:"listen"`
	Headless       bool          `koanf:"headless"`
	Layout         string        `koanf:"layout"`
	RedrawInterval time.Duration `koanf:"redraw_interval"`
}

type Client struct {
	Server  string        `koanf:"server"`
	Timeout time.Duration `koanf:"timeout"`
}

type Logging struct {
	FilePath  string `koanf:"file"`
	Trace     bool   `koanf:"trace"`
	Verbosity int    `koanf:"verbosity"`
}

const (
	EnvPrefix = "WIDGET_REMOTE_"
	delim     = "."
	appName   = "widget-remote"
)

// Options selects the sources layered on top of the defaults.
type Options struct {
	// File is an explicit config file. When empty the XDG config file is
	// used if present.
	File string
	// Flags holds command line overrides keyed by config path.
	Flags map[string]interface{}
	Args  []string
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.listen":          "127.0.0.1:14155",
		"server.headless":        false,
		"server.layout":          "",
		"server.redraw_interval": "50ms",
		"client.server":          "http://127.0.0.1:14155",
		"client.timeout":         "10s",
		"logging.file":           "",
		"logging.trace":          false,
		"logging.verbosity":      0,
	}
}

// DefaultFile is the config file consulted when none is given.
func DefaultFile() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// Load layers defaults, the config file, WIDGET_REMOTE_* environment
// variables and flag overrides, in that order.
func Load(opts Options) (Config, error) {
	k := koanf.New(delim)

	if err := k.Load(confmap.Provider(defaults(), delim), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	path, err := resolveFile(opts.File)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, delim, envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	if len(opts.Flags) > 0 {
		if err := k.Load(confmap.Provider(opts.Flags, delim), nil); err != nil {
			return Config{}, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = path
	cfg.Flags = flagStrings(opts.Flags)
	cfg.Args = append([]string(nil), opts.Args...)
	return cfg, nil
}

// envKey maps WIDGET_REMOTE_SERVER__REDRAW_INTERVAL to server.redraw_interval.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", delim)
}

func resolveFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	path := DefaultFile()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("config file: %w", err)
	}
	return path, nil
}

func flagStrings(flags map[string]interface{}) map[string]string {
	out := make(map[string]string, len(flags))
	keys := make([]string, 0, len(flags))
	for k := range flags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out[k] = fmt.Sprint(flags[k])
	}
	return out
}

// MustLoad returns configuration or exits.
func MustLoad(opts Options) Config {
	cfg, err := Load(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Server.Listen) == "" {
		return fmt.Errorf("server.listen must not be empty")
	}
	if cfg.Server.RedrawInterval < 0 {
		return fmt.Errorf("server.redraw_interval must be >= 0 (got %s)", cfg.Server.RedrawInterval)
	}
	if cfg.Client.Timeout < 0 {
		return fmt.Errorf("client.timeout must be >= 0 (got %s)", cfg.Client.Timeout)
	}
	u, err := url.Parse(cfg.Client.Server)
	if err != nil {
		return fmt.Errorf("client.server: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("client.server must be an http(s) URL (got %q)", cfg.Client.Server)
	}
	if cfg.Logging.Verbosity < 0 {
		return fmt.Errorf("logging.verbosity must be >= 0 (got %d)", cfg.Logging.Verbosity)
	}
	return nil
}

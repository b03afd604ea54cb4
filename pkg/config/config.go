// Package config provides configuration management for obstack. It handles
// loading and validating application settings from YAML files and applying
// per-package environment overrides. Sensible defaults are provided when no
// config file exists.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/obstack/obstack/pkg/errors"
	"github.com/obstack/obstack/pkg/model"
)

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`

	// Packages holds per-package overrides keyed by package name.
	Packages map[string]PackageOverride `yaml:"packages,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	// Scope selects the install flavor: "user" or "system".
	Scope string `yaml:"scope"`

	// HooksDir is the directory holding optional pre/post install hook
	// scripts. Empty disables hooks.
	HooksDir string `yaml:"hooks_dir,omitempty"`

	// Network settings.
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	UserAgent   string        `yaml:"user_agent,omitempty"`

	// Output settings.
	LogLevel string `yaml:"log_level"`
}

// PackageOverride carries the per-package knobs the operator may set in the
// config file or via environment variables.
type PackageOverride struct {
	Version    string   `yaml:"version,omitempty"`
	Port       int      `yaml:"port,omitempty"`
	SHA256     string   `yaml:"sha256,omitempty"`
	ExtraFlags []string `yaml:"extra_flags,omitempty"`
}

// Default configuration values.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 5 * time.Minute

	// DefaultUserAgent identifies obstack to release servers.
	DefaultUserAgent = "obstack/1.0"

	// envPrefix prefixes all environment override variables.
	envPrefix = "OBSTACK_"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			Scope:       string(model.ScopeUser),
			HTTPTimeout: DefaultHTTPTimeout,
			UserAgent:   DefaultUserAgent,
			LogLevel:    "info",
		},
		Packages: map[string]PackageOverride{},
	}
}

// GetDefaultConfigPath returns the default config file location.
func GetDefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to determine user config dir")
	}
	return filepath.Join(dir, "obstack", "config.yaml"), nil
}

// LoadConfig loads configuration from a file. A missing file yields the
// default configuration.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}
	if cfg.Packages == nil {
		cfg.Packages = map[string]PackageOverride{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch model.Scope(c.Settings.Scope) {
	case model.ScopeUser, model.ScopeSystem:
	default:
		return errors.Wrapf(errors.ErrConfigValidation, "scope must be %q or %q, got %q",
			model.ScopeUser, model.ScopeSystem, c.Settings.Scope)
	}
	for name, ov := range c.Packages {
		if _, err := model.Lookup(name); err != nil {
			return err
		}
		if ov.Port < 0 || ov.Port > 65535 {
			return errors.Wrapf(errors.ErrConfigValidation, "port out of range for %s: %d", name, ov.Port)
		}
	}
	return nil
}

// ApplyEnv overlays per-package environment overrides onto the config.
// Recognized variables, with the package name upper-cased and hyphens
// mapped to underscores:
//
//	OBSTACK_<PKG>_VERSION
//	OBSTACK_<PKG>_PORT
//	OBSTACK_<PKG>_SHA256
//	OBSTACK_<PKG>_FLAGS  (whitespace separated)
func (c *Config) ApplyEnv() error {
	for _, desc := range model.Catalog() {
		key := envKey(desc.Name)
		ov := c.Packages[desc.Name]

		if v := os.Getenv(envPrefix + key + "_VERSION"); v != "" {
			ov.Version = v
		}
		if v := os.Getenv(envPrefix + key + "_PORT"); v != "" {
			port, err := strconv.Atoi(v)
			if err != nil || port <= 0 || port > 65535 {
				return errors.Wrapf(errors.ErrConfigValidation, "invalid port for %s: %q", desc.Name, v)
			}
			ov.Port = port
		}
		if v := os.Getenv(envPrefix + key + "_SHA256"); v != "" {
			ov.SHA256 = v
		}
		if v := os.Getenv(envPrefix + key + "_FLAGS"); v != "" {
			ov.ExtraFlags = strings.Fields(v)
		}

		if ov.Version != "" || ov.Port != 0 || ov.SHA256 != "" || len(ov.ExtraFlags) > 0 {
			c.Packages[desc.Name] = ov
		}
	}
	return nil
}

// Override returns the override block for the named package, zero-valued
// when none is configured.
func (c *Config) Override(name string) PackageOverride {
	return c.Packages[name]
}

func envKey(pkg string) string {
	return strings.ToUpper(strings.ReplaceAll(pkg, "-", "_"))
}
